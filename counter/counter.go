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

// Package counter implements an on-chain counter kept as a single UTxO with
// an inline integer datum at a Plutus script address
package counter

import (
	"fmt"
	"math/big"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/blinklabs-io/plutigo/data"
)

// EncodeValue encodes a counter value as its on-chain datum: a bare CBOR
// integer, not wrapped in a constructor
func EncodeValue(value uint64) (ledger.Datum, error) {
	return ledger.NewDatum(
		data.NewInteger(new(big.Int).SetUint64(value)),
	)
}

// DecodeValue decodes a counter datum. The current script keeps a bare
// integer; datums from an earlier deployment wrapped the integer in a
// single-field constructor and are still accepted
func DecodeValue(datumCbor []byte) (uint64, error) {
	if len(datumCbor) == 0 {
		return 0, &ledger.DatumDecodeError{
			Expected: "counter",
			Err:      fmt.Errorf("empty datum"),
		}
	}
	if datumCbor[0]&cbor.CborTypeMask == cbor.CborTypeUint {
		var value uint64
		if _, err := cbor.Decode(datumCbor, &value); err != nil {
			return 0, &ledger.DatumDecodeError{
				Expected: "counter",
				Err:      err,
			}
		}
		return value, nil
	}
	var constr cbor.Constructor
	if _, err := cbor.Decode(datumCbor, &constr); err != nil {
		return 0, &ledger.DatumDecodeError{
			Expected: "counter",
			Err:      err,
		}
	}
	if constr.Alternative() != 0 {
		return 0, &ledger.DatumDecodeError{
			Expected: "counter",
			Err: fmt.Errorf(
				"unexpected constructor alternative %d",
				constr.Alternative(),
			),
		}
	}
	var tmpFields struct {
		cbor.StructAsArray
		Value uint64
	}
	if err := constr.DecodeFields(&tmpFields); err != nil {
		return 0, &ledger.DatumDecodeError{
			Expected: "counter",
			Err:      err,
		}
	}
	return tmpFields.Value, nil
}

// IsValidDatum reports whether the datum bytes decode as a counter value
func IsValidDatum(datumCbor []byte) bool {
	_, err := DecodeValue(datumCbor)
	return err == nil
}

// IncrementRedeemer returns the redeemer for the increment action: an empty
// constructor 0
func IncrementRedeemer() (ledger.Datum, error) {
	return ledger.NewDatum(data.NewConstr(0))
}
