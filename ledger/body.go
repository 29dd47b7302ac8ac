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
)

// TransactionBody is a Babbage-compatible transaction body limited to the
// fields this builder populates
type TransactionBody struct {
	cbor.DecodeStoreCbor
	TxInputs         []TransactionInput  `cbor:"0,keyasint"`
	TxOutputs        []TransactionOutput `cbor:"1,keyasint"`
	TxFee            uint64              `cbor:"2,keyasint"`
	Ttl              uint64              `cbor:"3,keyasint,omitempty"`
	TxScriptDataHash *Blake2b256         `cbor:"11,keyasint,omitempty"`
	TxCollateral     []TransactionInput  `cbor:"13,keyasint,omitempty"`
	TxRequiredSigners []Blake2b224       `cbor:"14,keyasint,omitempty"`
	CollateralReturn *TransactionOutput  `cbor:"16,keyasint,omitempty"`
	TotalCollateral  uint64              `cbor:"17,keyasint,omitempty"`
}

func (b *TransactionBody) UnmarshalCBOR(cborData []byte) error {
	type tTransactionBody TransactionBody
	var tmp tTransactionBody
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*b = TransactionBody(tmp)
	b.SetCbor(cborData)
	return nil
}

// Hash returns the transaction ID: the Blake2b-256 hash of the encoded body.
// Signatures from the wallet cover this hash, so the body must not be
// re-encoded differently after signing
func (b *TransactionBody) Hash() (Blake2b256, error) {
	bodyCbor := b.Cbor()
	if len(bodyCbor) == 0 {
		tmpCbor, err := cbor.Encode(b)
		if err != nil {
			return Blake2b256{}, err
		}
		b.SetCbor(tmpCbor)
		bodyCbor = tmpCbor
	}
	return Blake2b256Hash(bodyCbor), nil
}

// Transaction is a complete transaction: body, witness set, validity flag,
// and auxiliary data (always null for the transactions built here)
type Transaction struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body       TransactionBody
	WitnessSet WitnessSet
	TxIsValid  bool
	TxMetadata *cbor.LazyValue
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	type tTransaction Transaction
	var tmp tTransaction
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*t = Transaction(tmp)
	t.SetCbor(cborData)
	return nil
}

func (t *Transaction) Hash() (Blake2b256, error) {
	return t.Body.Hash()
}
