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
	"fmt"

	"github.com/blinklabs-io/plutustx/cbor"
)

// LanguageViews encodes the cost models for the given languages as the
// canonical CBOR map of language ID to cost model integers that feeds into
// the script data hash
func LanguageViews(
	costModels map[PlutusLanguage][]int64,
	languages []PlutusLanguage,
) ([]byte, error) {
	tmpViews := map[uint][]int64{}
	for _, language := range languages {
		costModel, ok := costModels[language]
		if !ok {
			return nil, fmt.Errorf(
				"no cost model for %s",
				language.String(),
			)
		}
		tmpViews[language.LanguageId()] = costModel
	}
	return cbor.Encode(tmpViews)
}

// ComputeScriptDataHash computes the script data hash over the encoded
// redeemer list, the encoded datum list (omitted entirely when empty), and
// the language views. A transaction with inline datums must pass no datums
// here, since its witness set carries none
func ComputeScriptDataHash(
	redeemers []Redeemer,
	datums []Datum,
	languageViews []byte,
) (Blake2b256, error) {
	redeemersCbor, err := cbor.Encode(redeemers)
	if err != nil {
		return Blake2b256{}, err
	}
	hashInput := make([]byte, 0, len(redeemersCbor)+len(languageViews))
	hashInput = append(hashInput, redeemersCbor...)
	if len(datums) > 0 {
		datumsCbor, err := cbor.Encode(datums)
		if err != nil {
			return Blake2b256{}, err
		}
		hashInput = append(hashInput, datumsCbor...)
	}
	hashInput = append(hashInput, languageViews...)
	return Blake2b256Hash(hashInput), nil
}
