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
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/blinklabs-io/plutustx/cbor"

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

type TransactionInput struct {
	cbor.StructAsArray
	TxId        Blake2b256
	OutputIndex uint32
}

func NewTransactionInput(txIdHex string, outputIndex uint32) (TransactionInput, error) {
	txId, err := NewBlake2b256FromHex(txIdHex)
	if err != nil {
		return TransactionInput{}, err
	}
	return TransactionInput{
		TxId:        txId,
		OutputIndex: outputIndex,
	}, nil
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxId.String(), i.OutputIndex)
}

func (i TransactionInput) Utxorpc() *utxorpc.TxInput {
	return &utxorpc.TxInput{
		TxHash:      i.TxId.Bytes(),
		OutputIndex: i.OutputIndex,
	}
}

// SortInputs sorts transaction inputs into the canonical ledger order:
// ascending by transaction hash, then by output index. Redeemer indexes are
// only meaningful against this ordering
func SortInputs(inputs []TransactionInput) []TransactionInput {
	ret := slices.Clone(inputs)
	slices.SortFunc(ret, func(a, b TransactionInput) int {
		if c := bytes.Compare(a.TxId.Bytes(), b.TxId.Bytes()); c != 0 {
			return c
		}
		return cmp.Compare(a.OutputIndex, b.OutputIndex)
	})
	return ret
}

// InputIndex returns the position of the target input within the given input
// list. The list must already be in canonical order when the result is used
// as a redeemer index
func InputIndex(
	inputs []TransactionInput,
	target TransactionInput,
) (uint32, error) {
	for idx, input := range inputs {
		if input.TxId == target.TxId &&
			input.OutputIndex == target.OutputIndex {
			// #nosec G115
			return uint32(idx), nil
		}
	}
	return 0, fmt.Errorf("input %s not present in input set", target.String())
}

const (
	DatumOptionTypeHash = 0
	DatumOptionTypeData = 1
)

// DatumOption represents a post-Alonzo transaction output datum: either a
// datum hash or an inline datum
type DatumOption struct {
	hash  *Blake2b256
	datum *Datum
}

func NewInlineDatumOption(datum Datum) DatumOption {
	return DatumOption{datum: &datum}
}

func NewDatumHashOption(hash Blake2b256) DatumOption {
	return DatumOption{hash: &hash}
}

// InlineDatum returns the inline datum, or nil for datum-hash options
func (d DatumOption) InlineDatum() *Datum {
	return d.datum
}

// DatumHash returns the datum hash, or nil for inline-datum options
func (d DatumOption) DatumHash() *Blake2b256 {
	return d.hash
}

func (d DatumOption) MarshalCBOR() ([]byte, error) {
	if d.datum != nil {
		tmpData := []any{
			DatumOptionTypeData,
			cbor.Tag{
				Number:  cbor.CborTagCbor,
				Content: d.datum.Cbor(),
			},
		}
		return cbor.Encode(tmpData)
	}
	if d.hash != nil {
		return cbor.Encode([]any{DatumOptionTypeHash, d.hash})
	}
	return nil, errors.New("empty datum option")
}

func (d *DatumOption) UnmarshalCBOR(data []byte) error {
	var tmpItems []cbor.RawMessage
	if _, err := cbor.Decode(data, &tmpItems); err != nil {
		return err
	}
	if len(tmpItems) != 2 {
		return fmt.Errorf(
			"expected 2 elements in datum option, got %d",
			len(tmpItems),
		)
	}
	var optionType uint
	if _, err := cbor.Decode(tmpItems[0], &optionType); err != nil {
		return err
	}
	switch optionType {
	case DatumOptionTypeHash:
		var tmpHash Blake2b256
		if _, err := cbor.Decode(tmpItems[1], &tmpHash); err != nil {
			return err
		}
		d.hash = &tmpHash
	case DatumOptionTypeData:
		var tmpWrapped cbor.WrappedCbor
		if _, err := cbor.Decode(tmpItems[1], &tmpWrapped); err != nil {
			return err
		}
		tmpDatum, err := NewDatumFromCbor(tmpWrapped.Bytes())
		if err != nil {
			return err
		}
		d.datum = &tmpDatum
	default:
		return fmt.Errorf("unsupported datum option type: %d", optionType)
	}
	return nil
}

// TransactionOutput is a post-Alonzo (map-format) transaction output. Legacy
// array-format outputs are accepted when decoding. Multi-asset bundles are
// carried through as raw CBOR without interpretation
type TransactionOutput struct {
	cbor.DecodeStoreCbor
	OutputAddress Address
	OutputAmount  uint64
	OutputAssets  cbor.RawMessage
	OutputDatum   *DatumOption
}

func (o TransactionOutput) MarshalCBOR() ([]byte, error) {
	var amount any = o.OutputAmount
	if len(o.OutputAssets) > 0 {
		amount = []any{o.OutputAmount, o.OutputAssets}
	}
	tmpMap := map[int]any{
		0: o.OutputAddress,
		1: amount,
	}
	if o.OutputDatum != nil {
		tmpMap[2] = o.OutputDatum
	}
	return cbor.Encode(tmpMap)
}

func (o *TransactionOutput) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty CBOR data")
	}
	switch data[0] & cbor.CborTypeMask {
	case cbor.CborTypeMap:
		var tmpOutput struct {
			Address     Address          `cbor:"0,keyasint"`
			Amount      cbor.RawMessage  `cbor:"1,keyasint"`
			DatumOption *DatumOption     `cbor:"2,keyasint,omitempty"`
			ScriptRef   *cbor.RawMessage `cbor:"3,keyasint,omitempty"`
		}
		if _, err := cbor.Decode(data, &tmpOutput); err != nil {
			return err
		}
		o.OutputAddress = tmpOutput.Address
		o.OutputDatum = tmpOutput.DatumOption
		if err := o.decodeAmount(tmpOutput.Amount); err != nil {
			return err
		}
	case cbor.CborTypeArray:
		// Legacy output: [address, amount, ?datum_hash]
		var tmpItems []cbor.RawMessage
		if _, err := cbor.Decode(data, &tmpItems); err != nil {
			return err
		}
		if len(tmpItems) < 2 {
			return fmt.Errorf(
				"expected at least 2 elements in output, got %d",
				len(tmpItems),
			)
		}
		if _, err := cbor.Decode(tmpItems[0], &o.OutputAddress); err != nil {
			return err
		}
		if err := o.decodeAmount(tmpItems[1]); err != nil {
			return err
		}
		if len(tmpItems) > 2 {
			var tmpHash Blake2b256
			if _, err := cbor.Decode(tmpItems[2], &tmpHash); err != nil {
				return err
			}
			tmpOption := NewDatumHashOption(tmpHash)
			o.OutputDatum = &tmpOption
		}
	default:
		return fmt.Errorf("unsupported output CBOR type: 0x%02x", data[0])
	}
	o.SetCbor(data)
	return nil
}

// decodeAmount handles both bare-coin and [coin, multiasset] amounts
func (o *TransactionOutput) decodeAmount(data cbor.RawMessage) error {
	if len(data) == 0 {
		return errors.New("empty amount")
	}
	if data[0]&cbor.CborTypeMask == cbor.CborTypeArray {
		var tmpAmount struct {
			cbor.StructAsArray
			Coin   uint64
			Assets cbor.RawMessage
		}
		if _, err := cbor.Decode(data, &tmpAmount); err != nil {
			return err
		}
		o.OutputAmount = tmpAmount.Coin
		o.OutputAssets = tmpAmount.Assets
		return nil
	}
	_, err := cbor.Decode(data, &o.OutputAmount)
	return err
}

func (o TransactionOutput) Utxorpc() *utxorpc.TxOutput {
	return &utxorpc.TxOutput{
		Address: o.OutputAddress.Bytes(),
		Coin:    o.OutputAmount,
	}
}

// Utxo pairs a transaction input with the output it refers to. Its CBOR form
// matches the CIP-30 TransactionUnspentOutput structure
type Utxo struct {
	cbor.StructAsArray
	Id     TransactionInput
	Output TransactionOutput
}
