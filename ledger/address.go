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
	"errors"
	"fmt"

	"github.com/blinklabs-io/plutustx/cbor"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1

	AddressTypeKeyKey       = 0b0000
	AddressTypeScriptKey    = 0b0001
	AddressTypeKeyScript    = 0b0010
	AddressTypeScriptScript = 0b0011
	AddressTypeKeyNone      = 0b0110
	AddressTypeScriptNone   = 0b0111
	AddressTypeByron        = 0b1000
)

// Address represents a Shelley-era payment address. Byron addresses and
// stake/reward addresses are not supported
type Address struct {
	header      uint8
	paymentHash Blake2b224
	stakingPart []byte
}

// NewAddress returns an Address decoded from a bech32 address string
func NewAddress(addr string) (Address, error) {
	_, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return Address{}, err
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, err
	}
	return NewAddressFromBytes(decoded)
}

// NewAddressFromBytes returns an Address from the raw address bytes
func NewAddressFromBytes(addrBytes []byte) (Address, error) {
	if len(addrBytes) < 1+AddressHashSize {
		return Address{}, fmt.Errorf(
			"address too short: %d bytes",
			len(addrBytes),
		)
	}
	addrType := (addrBytes[0] & AddressHeaderTypeMask) >> 4
	if addrType == AddressTypeByron {
		return Address{}, errors.New("Byron addresses are not supported")
	}
	if addrType > AddressTypeScriptNone {
		return Address{}, fmt.Errorf("unsupported address type: %d", addrType)
	}
	a := Address{
		header:      addrBytes[0],
		paymentHash: NewBlake2b224(addrBytes[1 : 1+AddressHashSize]),
	}
	if len(addrBytes) > 1+AddressHashSize {
		a.stakingPart = make([]byte, len(addrBytes)-1-AddressHashSize)
		copy(a.stakingPart, addrBytes[1+AddressHashSize:])
	}
	return a, nil
}

// NewAddressFromHex returns an Address from hex-encoded raw address bytes,
// the form used across the CIP-30 wallet boundary
func NewAddressFromHex(hexAddr string) (Address, error) {
	addrBytes, err := hex.DecodeString(hexAddr)
	if err != nil {
		return Address{}, err
	}
	return NewAddressFromBytes(addrBytes)
}

func (a Address) NetworkId() uint8 {
	return a.header & AddressHeaderNetworkMask
}

func (a Address) addressType() uint8 {
	return (a.header & AddressHeaderTypeMask) >> 4
}

// PaymentScript returns true if the payment credential is a script hash
func (a Address) PaymentScript() bool {
	return a.addressType()&0x1 > 0
}

// PaymentHash returns the payment credential hash (key hash or script hash)
func (a Address) PaymentHash() Blake2b224 {
	return a.paymentHash
}

// PaymentKeyHash returns the payment key hash for key-credential addresses
func (a Address) PaymentKeyHash() (Blake2b224, error) {
	if a.PaymentScript() {
		return Blake2b224{}, errors.New(
			"address payment credential is a script hash",
		)
	}
	return a.paymentHash, nil
}

func (a Address) Bytes() []byte {
	ret := make([]byte, 0, 1+AddressHashSize+len(a.stakingPart))
	ret = append(ret, a.header)
	ret = append(ret, a.paymentHash.Bytes()...)
	ret = append(ret, a.stakingPart...)
	return ret
}

// String returns the bech32-encoded version of the address
func (a Address) String() string {
	hrp := "addr"
	if a.NetworkId() == AddressNetworkTestnet {
		hrp = "addr_test"
	}
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting address data: %s", err),
		)
	}
	encoded, err := bech32.Encode(hrp, convData)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error encoding data as bech32: %s", err),
		)
	}
	return encoded
}

// Equal compares addresses by their raw bytes
func (a Address) Equal(other Address) bool {
	return a.header == other.header &&
		a.paymentHash == other.paymentHash &&
		string(a.stakingPart) == string(other.stakingPart)
}

func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a.Bytes())
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	tmpBytes := []byte{}
	if _, err := cbor.Decode(data, &tmpBytes); err != nil {
		return err
	}
	tmpAddr, err := NewAddressFromBytes(tmpBytes)
	if err != nil {
		return err
	}
	*a = tmpAddr
	return nil
}
