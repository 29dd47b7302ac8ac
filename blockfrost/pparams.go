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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/blinklabs-io/plutustx/ledger"
)

type protocolParametersJson struct {
	MinFeeA             uint64          `json:"min_fee_a"`
	MinFeeB             uint64          `json:"min_fee_b"`
	MaxTxSize           uint64          `json:"max_tx_size"`
	MaxTxExMem          string          `json:"max_tx_ex_mem"`
	MaxTxExSteps        string          `json:"max_tx_ex_steps"`
	PriceMem            json.Number     `json:"price_mem"`
	PriceStep           json.Number     `json:"price_step"`
	CollateralPercent   uint64          `json:"collateral_percent"`
	MaxCollateralInputs uint64          `json:"max_collateral_inputs"`
	CostModels          json.RawMessage `json:"cost_models"`
	CostModelsRaw       json.RawMessage `json:"cost_models_raw"`
}

// ProtocolParameters fetches the current epoch's protocol parameters and
// converts them into ledger form. Execution prices are parsed from their
// decimal representation to avoid binary float drift in fee math
func (c *Client) ProtocolParameters(
	ctx context.Context,
) (*ledger.ProtocolParameters, error) {
	var tmpParams protocolParametersJson
	if err := c.get(ctx, "/epochs/latest/parameters", &tmpParams); err != nil {
		return nil, err
	}
	priceMem, err := parsePrice(tmpParams.PriceMem)
	if err != nil {
		return nil, fmt.Errorf("parse price_mem: %w", err)
	}
	priceStep, err := parsePrice(tmpParams.PriceStep)
	if err != nil {
		return nil, fmt.Errorf("parse price_step: %w", err)
	}
	costModels, err := parseCostModels(
		tmpParams.CostModelsRaw,
		tmpParams.CostModels,
	)
	if err != nil {
		return nil, fmt.Errorf("parse cost models: %w", err)
	}
	ret := &ledger.ProtocolParameters{
		MinFeeA:              tmpParams.MinFeeA,
		MinFeeB:              tmpParams.MinFeeB,
		MaxTxSize:            tmpParams.MaxTxSize,
		PriceMem:             priceMem,
		PriceStep:            priceStep,
		CollateralPercentage: tmpParams.CollateralPercent,
		MaxCollateralInputs:  tmpParams.MaxCollateralInputs,
		CostModels:           costModels,
	}
	if tmpParams.MaxTxExMem != "" {
		ret.MaxTxExMem, err = strconv.ParseUint(
			tmpParams.MaxTxExMem, 10, 64,
		)
		if err != nil {
			return nil, fmt.Errorf("parse max_tx_ex_mem: %w", err)
		}
	}
	if tmpParams.MaxTxExSteps != "" {
		ret.MaxTxExSteps, err = strconv.ParseUint(
			tmpParams.MaxTxExSteps, 10, 64,
		)
		if err != nil {
			return nil, fmt.Errorf("parse max_tx_ex_steps: %w", err)
		}
	}
	return ret, nil
}

func parsePrice(num json.Number) (*big.Rat, error) {
	if num == "" {
		return nil, nil
	}
	price, ok := new(big.Rat).SetString(num.String())
	if !ok {
		return nil, fmt.Errorf("malformed price: %q", num.String())
	}
	return price, nil
}

var languageNames = map[string]ledger.PlutusLanguage{
	"PlutusV1": ledger.PlutusLanguageV1,
	"PlutusV2": ledger.PlutusLanguageV2,
	"PlutusV3": ledger.PlutusLanguageV3,
}

// parseCostModels prefers the raw (array) cost model form and falls back to
// the named-parameter object form. Parameter order within an object is
// semantic, so the fallback walks tokens instead of unmarshaling into a map
func parseCostModels(
	rawForm json.RawMessage,
	namedForm json.RawMessage,
) (map[ledger.PlutusLanguage][]int64, error) {
	source := rawForm
	if len(source) == 0 || string(source) == "null" {
		source = namedForm
	}
	if len(source) == 0 || string(source) == "null" {
		return nil, nil
	}
	var tmpModels map[string]json.RawMessage
	if err := json.Unmarshal(source, &tmpModels); err != nil {
		return nil, err
	}
	ret := map[ledger.PlutusLanguage][]int64{}
	for name, rawModel := range tmpModels {
		language, ok := languageNames[name]
		if !ok {
			continue
		}
		values, err := parseCostModelValues(rawModel)
		if err != nil {
			return nil, fmt.Errorf("cost model %s: %w", name, err)
		}
		ret[language] = values
	}
	return ret, nil
}

func parseCostModelValues(raw json.RawMessage) ([]int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty cost model")
	}
	if trimmed[0] == '[' {
		var values []int64
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, err
		}
		return values, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	// Opening brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	values := []int64{}
	for dec.More() {
		// Parameter name
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		valueToken, err := dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := valueToken.(json.Number)
		if !ok {
			return nil, fmt.Errorf(
				"unexpected cost model value: %v",
				valueToken,
			)
		}
		value, err := num.Int64()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
