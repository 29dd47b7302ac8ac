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

package counter

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeValue(t *testing.T) {
	testDefs := []struct {
		value       uint64
		expectedHex string
	}{
		{value: 0, expectedHex: "00"},
		{value: 5, expectedHex: "05"},
		{value: 42, expectedHex: "182a"},
		{value: 1000, expectedHex: "1903e8"},
	}
	for _, testDef := range testDefs {
		datum, err := EncodeValue(testDef.value)
		require.NoError(t, err)
		assert.Equal(
			t,
			testDef.expectedHex,
			hex.EncodeToString(datum.Cbor()),
		)
	}
}

func TestDecodeValue(t *testing.T) {
	testDefs := []struct {
		name          string
		datumHex      string
		expectedValue uint64
		expectErr     bool
	}{
		{
			name:          "bare integer",
			datumHex:      "05",
			expectedValue: 5,
		},
		{
			name:          "bare integer long form",
			datumHex:      "182a",
			expectedValue: 42,
		},
		{
			name:          "legacy wrapped indefinite",
			datumHex:      "d8799f05ff",
			expectedValue: 5,
		},
		{
			name:          "legacy wrapped definite",
			datumHex:      "d8798105",
			expectedValue: 5,
		},
		{
			name:      "wrong constructor",
			datumHex:  "d87a8105",
			expectErr: true,
		},
		{
			name:      "text string",
			datumHex:  "63666f6f",
			expectErr: true,
		},
		{
			name:      "empty constructor",
			datumHex:  "d87980",
			expectErr: true,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			datumCbor, err := hex.DecodeString(testDef.datumHex)
			require.NoError(t, err)
			value, err := DecodeValue(datumCbor)
			if testDef.expectErr {
				require.Error(t, err)
				var decodeErr *ledger.DatumDecodeError
				assert.ErrorAs(t, err, &decodeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedValue, value)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, value := range []uint64{0, 1, 23, 24, 255, 65536, 1 << 40} {
		datum, err := EncodeValue(value)
		require.NoError(t, err)
		decoded, err := DecodeValue(datum.Cbor())
		require.NoError(t, err)
		assert.Equal(t, value, decoded)
	}
}

func TestIncrementRedeemer(t *testing.T) {
	redeemer, err := IncrementRedeemer()
	require.NoError(t, err)
	assert.Equal(t, "d87980", hex.EncodeToString(redeemer.Cbor()))
}

func TestClassifyUtxos(t *testing.T) {
	utxos := []blockfrost.AddressUtxo{
		{TxHash: "aa", OutputIndex: 0, InlineDatum: "05"},
		{TxHash: "bb", OutputIndex: 1},
		{TxHash: "cc", OutputIndex: 0, InlineDatum: "63666f6f"},
		{TxHash: "dd", OutputIndex: 2, InlineDatum: "d8799f182aff"},
	}
	valid, poisoned := ClassifyUtxos(utxos)
	require.Len(t, valid, 2)
	assert.Equal(t, "aa", valid[0].TxHash)
	assert.Equal(t, "dd", valid[1].TxHash)
	require.Len(t, poisoned, 2)
	assert.Equal(t, "bb", poisoned[0].TxHash)
	assert.Equal(t, "cc", poisoned[1].TxHash)
}
