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

package ledger_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWitnessSetOmitsEmptyPlutusData(t *testing.T) {
	ws := &ledger.WitnessSet{
		Redeemers: testRedeemers(t),
	}
	ws.AddScript(
		ledger.PlutusScript{
			Language: ledger.PlutusLanguageV3,
			Bytes:    testScriptBytes,
		},
	)
	cborData, err := cbor.Encode(ws)
	require.NoError(t, err)
	var decoded map[uint64]cbor.RawMessage
	_, err = cbor.Decode(cborData, &decoded)
	require.NoError(t, err)
	assert.Contains(t, decoded, uint64(5))
	assert.Contains(t, decoded, uint64(7))
	// Inline datums must never surface as witness set plutus_data
	assert.NotContains(t, decoded, uint64(4))
	assert.NotContains(t, decoded, uint64(0))
}

func TestWitnessSetAddScript(t *testing.T) {
	testDefs := []struct {
		language ledger.PlutusLanguage
		check    func(ws *ledger.WitnessSet) [][]byte
	}{
		{
			language: ledger.PlutusLanguageV1,
			check: func(ws *ledger.WitnessSet) [][]byte {
				return ws.PlutusV1Scripts
			},
		},
		{
			language: ledger.PlutusLanguageV2,
			check: func(ws *ledger.WitnessSet) [][]byte {
				return ws.PlutusV2Scripts
			},
		},
		{
			language: ledger.PlutusLanguageV3,
			check: func(ws *ledger.WitnessSet) [][]byte {
				return ws.PlutusV3Scripts
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.language.String(), func(t *testing.T) {
			var ws ledger.WitnessSet
			ws.AddScript(
				ledger.PlutusScript{
					Language: testDef.language,
					Bytes:    testScriptBytes,
				},
			)
			scripts := testDef.check(&ws)
			require.Len(t, scripts, 1)
			assert.Equal(t, testScriptBytes, scripts[0])
		})
	}
}

func TestWitnessSetDecode(t *testing.T) {
	// {0: [[vkey, signature]]}
	cborData, err := hex.DecodeString(
		"a10081824101" + "4102",
	)
	require.NoError(t, err)
	var ws ledger.WitnessSet
	_, err = cbor.Decode(cborData, &ws)
	require.NoError(t, err)
	require.Len(t, ws.VkeyWitnesses, 1)
	assert.Equal(t, []byte{0x01}, ws.VkeyWitnesses[0].Vkey)
	assert.Equal(t, []byte{0x02}, ws.VkeyWitnesses[0].Signature)
	assert.Equal(t, cborData, ws.Cbor())
}
