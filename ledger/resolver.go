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
	"strings"

	"github.com/blinklabs-io/plutustx/cbor"
)

// Script bytes fetched from an explorer may carry up to two extra levels of
// CBOR byte-string framing on top of the flat script
const maxScriptUnwrapDepth = 2

// ResolvedScript is the result of a successful script resolution
type ResolvedScript struct {
	Script      PlutusScript
	UnwrapDepth int
}

// ScriptCandidate records one (unwrap depth, language) combination tried
// during script resolution and the hash it produced
type ScriptCandidate struct {
	Language    PlutusLanguage
	UnwrapDepth int
	Hash        ScriptHash
}

// ScriptHashMismatchError is returned when no combination of byte unwrapping
// and language version hashes to the expected script hash. It carries every
// candidate hash tried so the caller can diagnose a wrong-script or
// wrong-address pairing
type ScriptHashMismatchError struct {
	Expected   ScriptHash
	Candidates []ScriptCandidate
}

func (e *ScriptHashMismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(
		&sb,
		"no script variant matches expected hash %s; tried:",
		e.Expected.String(),
	)
	for _, candidate := range e.Candidates {
		fmt.Fprintf(
			&sb,
			" [%s depth=%d hash=%s]",
			candidate.Language.String(),
			candidate.UnwrapDepth,
			candidate.Hash.String(),
		)
	}
	return sb.String()
}

// Languages are tried most-likely first: fresh contracts are V3, most
// deployed ones V2
var resolverLanguages = []PlutusLanguage{
	PlutusLanguageV3,
	PlutusLanguageV2,
	PlutusLanguageV1,
}

type scriptByteVariant struct {
	scriptBytes []byte
	unwrapDepth int
	// Language pinned by a [version, bytes] envelope, 0 if unconstrained
	pinnedLanguage PlutusLanguage
}

// ResolveScript finds the byte-unwrapping depth and language version under
// which the candidate script bytes hash to the expected script hash. The
// expected hash is the sole correctness oracle: a transaction must never be
// built against a script that does not match its address
func ResolveScript(
	rawBytes []byte,
	expectedHash ScriptHash,
) (*ResolvedScript, error) {
	variants := scriptByteVariants(rawBytes)
	candidates := []ScriptCandidate{}
	for _, variant := range variants {
		languages := resolverLanguages
		if variant.pinnedLanguage != 0 {
			languages = []PlutusLanguage{variant.pinnedLanguage}
		}
		for _, language := range languages {
			script := PlutusScript{
				Language: language,
				Bytes:    variant.scriptBytes,
			}
			scriptHash := script.Hash()
			if scriptHash == expectedHash {
				return &ResolvedScript{
					Script:      script,
					UnwrapDepth: variant.unwrapDepth,
				}, nil
			}
			candidates = append(candidates, ScriptCandidate{
				Language:    language,
				UnwrapDepth: variant.unwrapDepth,
				Hash:        scriptHash,
			})
		}
	}
	return nil, &ScriptHashMismatchError{
		Expected:   expectedHash,
		Candidates: candidates,
	}
}

// scriptByteVariants enumerates the plausible interpretations of the raw
// bytes: unwrapped 0-2 levels of byte-string framing, plus a
// [version, bytes] envelope if present
func scriptByteVariants(rawBytes []byte) []scriptByteVariant {
	variants := []scriptByteVariant{}
	current := rawBytes
	for depth := 0; depth <= maxScriptUnwrapDepth; depth++ {
		variants = append(variants, scriptByteVariant{
			scriptBytes: current,
			unwrapDepth: depth,
		})
		payload, wrapped, err := cbor.UnwrapByteString(current)
		if err != nil || !wrapped {
			break
		}
		current = payload
	}
	// [version, bytes] envelope
	var envelope struct {
		cbor.StructAsArray
		Version     uint8
		ScriptBytes []byte
	}
	if _, err := cbor.Decode(rawBytes, &envelope); err == nil {
		if envelope.Version >= uint8(PlutusLanguageV1) &&
			envelope.Version <= uint8(PlutusLanguageV3) {
			variants = append(variants, scriptByteVariant{
				scriptBytes:    envelope.ScriptBytes,
				unwrapDepth:    0,
				pinnedLanguage: PlutusLanguage(envelope.Version),
			})
		}
	}
	return variants
}
