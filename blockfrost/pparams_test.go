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

package blockfrost

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolParameters(t *testing.T) {
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/epochs/latest/parameters", r.URL.Path)
			w.Write([]byte(`{
				"min_fee_a": 44,
				"min_fee_b": 155381,
				"max_tx_size": 16384,
				"max_tx_ex_mem": "14000000",
				"max_tx_ex_steps": "10000000000",
				"price_mem": 0.0577,
				"price_step": 0.0000721,
				"collateral_percent": 150,
				"max_collateral_inputs": 3,
				"cost_models_raw": {
					"PlutusV2": [1, 2, 3],
					"PlutusV3": [4, 5]
				}
			}`))
		}),
	)
	defer srv.Close()
	client := NewClient(srv.URL, "testKey", nil)
	pparams, err := client.ProtocolParameters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(44), pparams.MinFeeA)
	assert.Equal(t, uint64(155381), pparams.MinFeeB)
	assert.Equal(t, uint64(16384), pparams.MaxTxSize)
	assert.Equal(t, uint64(14_000_000), pparams.MaxTxExMem)
	assert.Equal(t, uint64(10_000_000_000), pparams.MaxTxExSteps)
	assert.Equal(t, uint64(150), pparams.CollateralPercentage)
	// Prices parse exactly from their decimal form
	assert.Equal(t, 0, pparams.PriceMem.Cmp(big.NewRat(577, 10_000)))
	assert.Equal(
		t,
		0,
		pparams.PriceStep.Cmp(big.NewRat(721, 10_000_000)),
	)
	assert.Equal(
		t,
		[]int64{1, 2, 3},
		pparams.CostModels[ledger.PlutusLanguageV2],
	)
	assert.Equal(
		t,
		[]int64{4, 5},
		pparams.CostModels[ledger.PlutusLanguageV3],
	)
}

func TestParseCostModelValuesObjectOrder(t *testing.T) {
	// Parameter order in the object form must be preserved
	values, err := parseCostModelValues(
		[]byte(`{"zzz-first": 10, "aaa-second": 20, "mmm-third": 30}`),
	)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, values)
}

func TestParseCostModelsNamedFallback(t *testing.T) {
	costModels, err := parseCostModels(
		nil,
		[]byte(`{"PlutusV2": {"addInteger-cpu-arguments-intercept": 205665, "addInteger-cpu-arguments-slope": 812}}`),
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]int64{205665, 812},
		costModels[ledger.PlutusLanguageV2],
	)
}
