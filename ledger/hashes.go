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

package ledger

import (
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/plutustx/cbor"

	"golang.org/x/crypto/blake2b"
)

// Known BLAKE2b-256 digest of the ASCII bytes "abc", used to verify the hash
// implementation before any hash-dependent logic runs
const blake2b256TestVector = "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"

func init() {
	// Wrong bytes here mean silently-invalid script data hashes and on-chain
	// rejections, so refuse to run at all
	if Blake2b256Hash([]byte("abc")).String() != blake2b256TestVector {
		panic("blake2b-256 self-test failed")
	}
}

type Blake2b256 [32]byte

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromHex decodes a hex-encoded 32-byte digest
func NewBlake2b256FromHex(hexDigest string) (Blake2b256, error) {
	data, err := hex.DecodeString(hexDigest)
	if err != nil {
		return Blake2b256{}, err
	}
	if len(data) != 32 {
		return Blake2b256{}, fmt.Errorf(
			"expected 32 bytes, got %d",
			len(data),
		)
	}
	return NewBlake2b256(data), nil
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(b.Bytes())
}

func (b *Blake2b256) UnmarshalCBOR(data []byte) error {
	tmpBytes := []byte{}
	if _, err := cbor.Decode(data, &tmpBytes); err != nil {
		return err
	}
	if len(tmpBytes) != 32 {
		return fmt.Errorf("expected 32 bytes, got %d", len(tmpBytes))
	}
	copy(b[:], tmpBytes)
	return nil
}

func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New256(nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error creating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return NewBlake2b256(tmpHash.Sum(nil))
}

type Blake2b224 [28]byte

func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

// NewBlake2b224FromHex decodes a hex-encoded 28-byte digest
func NewBlake2b224FromHex(hexDigest string) (Blake2b224, error) {
	data, err := hex.DecodeString(hexDigest)
	if err != nil {
		return Blake2b224{}, err
	}
	if len(data) != 28 {
		return Blake2b224{}, fmt.Errorf(
			"expected 28 bytes, got %d",
			len(data),
		)
	}
	return NewBlake2b224(data), nil
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(b.Bytes())
}

func (b *Blake2b224) UnmarshalCBOR(data []byte) error {
	tmpBytes := []byte{}
	if _, err := cbor.Decode(data, &tmpBytes); err != nil {
		return err
	}
	if len(tmpBytes) != 28 {
		return fmt.Errorf("expected 28 bytes, got %d", len(tmpBytes))
	}
	copy(b[:], tmpBytes)
	return nil
}

func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(28, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error creating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return NewBlake2b224(tmpHash.Sum(nil))
}
