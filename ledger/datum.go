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
	"github.com/blinklabs-io/plutustx/cbor"

	"github.com/blinklabs-io/plutigo/data"
)

type DatumHash = Blake2b256

// Datum represents a Plutus datum
type Datum struct {
	cbor.DecodeStoreCbor
	Data data.PlutusData
}

// NewDatum creates a Datum from a Plutus data value
func NewDatum(pd data.PlutusData) (Datum, error) {
	tmpCbor, err := data.Encode(pd)
	if err != nil {
		return Datum{}, err
	}
	d := Datum{Data: pd}
	d.SetCbor(tmpCbor)
	return d, nil
}

// NewDatumFromCbor creates a Datum from existing CBOR bytes, such as an
// inline datum observed on-chain
func NewDatumFromCbor(cborData []byte) (Datum, error) {
	var d Datum
	if err := d.UnmarshalCBOR(cborData); err != nil {
		return Datum{}, err
	}
	return d, nil
}

func (d *Datum) UnmarshalCBOR(cborData []byte) error {
	tmpData, err := data.Decode(cborData)
	if err != nil {
		return err
	}
	d.Data = tmpData
	d.SetCbor(cborData)
	return nil
}

func (d Datum) MarshalCBOR() ([]byte, error) {
	if stored := d.Cbor(); len(stored) > 0 {
		return stored, nil
	}
	return data.Encode(d.Data)
}

func (d Datum) Hash() DatumHash {
	return Blake2b256Hash(d.Cbor())
}
