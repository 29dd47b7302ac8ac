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
	"math/big"
	"testing"

	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/stretchr/testify/assert"
)

func TestMinFee(t *testing.T) {
	pparams := &ledger.ProtocolParameters{
		MinFeeA:   44,
		MinFeeB:   155381,
		PriceMem:  big.NewRat(577, 10_000),
		PriceStep: big.NewRat(721, 10_000_000),
	}
	testDefs := []struct {
		name        string
		txSize      uint64
		exUnits     ledger.ExUnits
		expectedFee uint64
	}{
		{
			name:   "no scripts",
			txSize: 300,
			// 44*450 + 155381
			expectedFee: 175181,
		},
		{
			name:   "with execution units",
			txSize: 300,
			exUnits: ledger.ExUnits{
				Memory: 1_000_000,
				Steps:  500_000_000,
			},
			// 175181 + 57700 + 36050
			expectedFee: 268931,
		},
		{
			name:   "rounds up",
			txSize: 300,
			exUnits: ledger.ExUnits{
				Memory: 3,
				Steps:  0,
			},
			// ceil(577/10000 * 3) = 1
			expectedFee: 175182,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			fee := pparams.MinFee(testDef.txSize, testDef.exUnits)
			assert.Equal(t, testDef.expectedFee, fee)
		})
	}
}

func TestMinFeeNilPrices(t *testing.T) {
	pparams := &ledger.ProtocolParameters{
		MinFeeA: 44,
		MinFeeB: 155381,
	}
	fee := pparams.MinFee(
		100,
		ledger.ExUnits{Memory: 1000, Steps: 1000},
	)
	assert.Equal(t, uint64(44*250+155381), fee)
}
