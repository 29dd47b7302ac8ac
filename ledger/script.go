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
	"slices"
)

type ScriptHash = Blake2b224

// PlutusLanguage identifies a Plutus script language version
type PlutusLanguage uint8

const (
	PlutusLanguageV1 PlutusLanguage = 1
	PlutusLanguageV2 PlutusLanguage = 2
	PlutusLanguageV3 PlutusLanguage = 3
)

func (l PlutusLanguage) String() string {
	switch l {
	case PlutusLanguageV1:
		return "PlutusV1"
	case PlutusLanguageV2:
		return "PlutusV2"
	case PlutusLanguageV3:
		return "PlutusV3"
	}
	return fmt.Sprintf("PlutusLanguage(%d)", uint8(l))
}

// HashPrefix returns the byte prepended to the raw script bytes before hashing
func (l PlutusLanguage) HashPrefix() byte {
	return byte(l)
}

// LanguageId returns the ledger language ID used in cost model language views
func (l PlutusLanguage) LanguageId() uint {
	return uint(l) - 1
}

// WitnessSetKey returns the transaction witness set map key for scripts of
// this language
func (l PlutusLanguage) WitnessSetKey() uint {
	switch l {
	case PlutusLanguageV1:
		return 3
	case PlutusLanguageV2:
		return 6
	case PlutusLanguageV3:
		return 7
	}
	return 0
}

// PlutusScript is a validated script: flat (unwrapped) script bytes plus the
// language version they hash correctly under
type PlutusScript struct {
	Language PlutusLanguage
	Bytes    []byte
}

// Hash returns the script hash, computed over the language prefix byte
// followed by the raw script bytes
func (s PlutusScript) Hash() ScriptHash {
	return Blake2b224Hash(
		slices.Concat(
			[]byte{s.Language.HashPrefix()},
			s.Bytes,
		),
	)
}
