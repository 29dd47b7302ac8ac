// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// encodeTypedUint encodes an unsigned value with the given major type using the
// canonical shortest-form argument encoding
func encodeTypedUint(majorType uint8, n uint64) []byte {
	switch {
	case n <= uint64(CborMaxUintSimple):
		return []byte{majorType | uint8(n)}
	case n <= 0xff:
		return []byte{majorType | 0x18, uint8(n)}
	case n <= 0xffff:
		ret := []byte{majorType | 0x19, 0, 0}
		binary.BigEndian.PutUint16(ret[1:], uint16(n))
		return ret
	case n <= 0xffffffff:
		ret := []byte{majorType | 0x1a, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(ret[1:], uint32(n))
		return ret
	default:
		ret := []byte{majorType | 0x1b, 0, 0, 0, 0, 0, 0, 0, 0}
		binary.BigEndian.PutUint64(ret[1:], n)
		return ret
	}
}

// EncodeUint encodes an unsigned integer (major type 0) in canonical form
func EncodeUint(n uint64) []byte {
	return encodeTypedUint(CborTypeUint, n)
}

// EncodeInt encodes a signed integer in canonical form, using major type 1
// for negative values (encoded argument is -1-n)
func EncodeInt(n int64) []byte {
	if n >= 0 {
		return EncodeUint(uint64(n))
	}
	return encodeTypedUint(CborTypeNint, uint64(-(n + 1)))
}

// EncodeBytes encodes a byte string (major type 2) in canonical form
func EncodeBytes(data []byte) []byte {
	ret := encodeTypedUint(CborTypeByteString, uint64(len(data)))
	return append(ret, data...)
}

// EncodeArrayHeader encodes a definite-length array header (major type 4)
func EncodeArrayHeader(length int) []byte {
	// #nosec G115
	return encodeTypedUint(CborTypeArray, uint64(length))
}

// EncodeMapHeader encodes a definite-length map header (major type 5)
func EncodeMapHeader(length int) []byte {
	// #nosec G115
	return encodeTypedUint(CborTypeMap, uint64(length))
}

// UnwrapByteString strips a single level of CBOR byte-string framing from the
// provided data. It returns the payload and whether any framing was removed.
// Data that does not start with a byte-string header is returned unchanged
// with wrapped=false
func UnwrapByteString(data []byte) ([]byte, bool, error) {
	if len(data) == 0 {
		return nil, false, errors.New("empty CBOR data")
	}
	if data[0]&CborTypeMask != CborTypeByteString {
		return data, false, nil
	}
	additional := data[0] & 0x1f
	var payloadStart, payloadLen int
	switch {
	case additional <= CborMaxUintSimple:
		payloadStart = 1
		payloadLen = int(additional)
	case additional == 0x18:
		if len(data) < 2 {
			return nil, false, errors.New("truncated byte string header")
		}
		payloadStart = 2
		payloadLen = int(data[1])
	case additional == 0x19:
		if len(data) < 3 {
			return nil, false, errors.New("truncated byte string header")
		}
		payloadStart = 3
		payloadLen = int(binary.BigEndian.Uint16(data[1:3]))
	case additional == 0x1a:
		if len(data) < 5 {
			return nil, false, errors.New("truncated byte string header")
		}
		tmpLen := binary.BigEndian.Uint32(data[1:5])
		if tmpLen > uint32(len(data)) {
			return nil, false, errors.New("byte string length exceeds data")
		}
		payloadStart = 5
		payloadLen = int(tmpLen)
	default:
		// Indefinite-length byte strings and reserved forms
		return nil, false, fmt.Errorf(
			"unsupported byte string header: 0x%02x",
			data[0],
		)
	}
	if payloadStart+payloadLen > len(data) {
		return nil, false, errors.New("byte string length exceeds data")
	}
	return data[payloadStart : payloadStart+payloadLen], true, nil
}
