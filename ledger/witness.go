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

type VkeyWitness struct {
	cbor.StructAsArray
	Vkey      []byte
	Signature []byte
}

// ExUnits is an execution budget for a Plutus script evaluation
type ExUnits struct {
	cbor.StructAsArray
	Memory uint64
	Steps  uint64
}

type RedeemerTag uint8

const (
	RedeemerTagSpend   RedeemerTag = 0
	RedeemerTagMint    RedeemerTag = 1
	RedeemerTagCert    RedeemerTag = 2
	RedeemerTagReward  RedeemerTag = 3
	RedeemerTagVoting  RedeemerTag = 4
	RedeemerTagPropose RedeemerTag = 5
)

func (t RedeemerTag) String() string {
	switch t {
	case RedeemerTagSpend:
		return "spend"
	case RedeemerTagMint:
		return "mint"
	case RedeemerTagCert:
		return "cert"
	case RedeemerTagReward:
		return "reward"
	case RedeemerTagVoting:
		return "voting"
	case RedeemerTagPropose:
		return "propose"
	}
	return "unknown"
}

// Redeemer uses the flat array encoding. The index is the position of the
// redeemed item within its group, which for spend redeemers means the
// position of the script input in the canonically sorted input list
type Redeemer struct {
	cbor.StructAsArray
	Tag     RedeemerTag
	Index   uint32
	Data    Datum
	ExUnits ExUnits
}

// WitnessSet is a transaction witness set. Inline-datum transactions must
// leave PlutusData empty: a populated datum list changes the script data
// hash and fails phase-1 validation
type WitnessSet struct {
	cbor.DecodeStoreCbor
	VkeyWitnesses   []VkeyWitness `cbor:"0,keyasint,omitempty"`
	PlutusV1Scripts [][]byte      `cbor:"3,keyasint,omitempty"`
	PlutusData      []Datum       `cbor:"4,keyasint,omitempty"`
	Redeemers       []Redeemer    `cbor:"5,keyasint,omitempty"`
	PlutusV2Scripts [][]byte      `cbor:"6,keyasint,omitempty"`
	PlutusV3Scripts [][]byte      `cbor:"7,keyasint,omitempty"`
}

func (w *WitnessSet) UnmarshalCBOR(cborData []byte) error {
	type tWitnessSet WitnessSet
	var tmp tWitnessSet
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*w = WitnessSet(tmp)
	w.SetCbor(cborData)
	return nil
}

// AddScript appends the script bytes under the witness set entry for the
// script's language
func (w *WitnessSet) AddScript(script PlutusScript) {
	switch script.Language {
	case PlutusLanguageV1:
		w.PlutusV1Scripts = append(w.PlutusV1Scripts, script.Bytes)
	case PlutusLanguageV2:
		w.PlutusV2Scripts = append(w.PlutusV2Scripts, script.Bytes)
	case PlutusLanguageV3:
		w.PlutusV3Scripts = append(w.PlutusV3Scripts, script.Bytes)
	}
}
