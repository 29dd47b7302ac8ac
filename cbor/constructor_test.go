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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/plutustx/cbor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorEncode(t *testing.T) {
	testDefs := []struct {
		name        string
		alternative uint
		fields      any
		expectedHex string
	}{
		{
			name:        "empty constructor 0",
			alternative: 0,
			fields:      []any{},
			expectedHex: "d87980",
		},
		{
			name:        "constructor 1 empty",
			alternative: 1,
			fields:      []any{},
			expectedHex: "d87a80",
		},
		{
			name:        "constructor 0 with int field",
			alternative: 0,
			fields:      []any{uint64(5)},
			expectedHex: "d8798105",
		},
		{
			name:        "alternative 7 uses second tag range",
			alternative: 7,
			fields:      []any{},
			expectedHex: "d9050080",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			constr, err := cbor.NewConstructor(
				testDef.alternative,
				testDef.fields,
			)
			require.NoError(t, err)
			data, err := cbor.Encode(&constr)
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedHex, hex.EncodeToString(data))
		})
	}
}

func TestConstructorDecode(t *testing.T) {
	testDefs := []struct {
		name                string
		dataHex             string
		expectedAlternative uint
		expectedFieldCount  int
	}{
		{
			name:                "empty constructor 0",
			dataHex:             "d87980",
			expectedAlternative: 0,
			expectedFieldCount:  0,
		},
		{
			name:                "nested vote constructor",
			dataHex:             "d87981d87a80",
			expectedAlternative: 0,
			expectedFieldCount:  1,
		},
		{
			name:                "alternative 128 via tag 101",
			dataHex:             "d86582188080",
			expectedAlternative: 128,
			expectedFieldCount:  0,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := hex.DecodeString(testDef.dataHex)
			require.NoError(t, err)
			var constr cbor.Constructor
			_, err = cbor.Decode(data, &constr)
			require.NoError(t, err)
			assert.Equal(t, testDef.expectedAlternative, constr.Alternative())
			fields, err := constr.Fields()
			require.NoError(t, err)
			assert.Len(t, fields, testDef.expectedFieldCount)
		})
	}
}

func TestConstructorRoundTrip(t *testing.T) {
	origHex := "d87983412a4568656c6c6f182a"
	data, err := hex.DecodeString(origHex)
	require.NoError(t, err)
	var constr cbor.Constructor
	_, err = cbor.Decode(data, &constr)
	require.NoError(t, err)
	reencoded, err := cbor.Encode(&constr)
	require.NoError(t, err)
	assert.Equal(t, origHex, hex.EncodeToString(reencoded))
}

func TestConstructorDecodeFields(t *testing.T) {
	// Constr 0 [bytes, int]
	data, err := hex.DecodeString("d8798242abcd1864")
	require.NoError(t, err)
	var constr cbor.Constructor
	_, err = cbor.Decode(data, &constr)
	require.NoError(t, err)
	var fields struct {
		cbor.StructAsArray
		Data  []byte
		Count uint64
	}
	require.NoError(t, constr.DecodeFields(&fields))
	assert.Equal(t, []byte{0xab, 0xcd}, fields.Data)
	assert.Equal(t, uint64(100), fields.Count)
}

func TestIsAlternativeTag(t *testing.T) {
	assert.True(t, cbor.IsAlternativeTag(121))
	assert.True(t, cbor.IsAlternativeTag(127))
	assert.True(t, cbor.IsAlternativeTag(1280))
	assert.True(t, cbor.IsAlternativeTag(101))
	assert.False(t, cbor.IsAlternativeTag(24))
	assert.False(t, cbor.IsAlternativeTag(258))
}
