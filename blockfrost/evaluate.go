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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/blinklabs-io/plutustx/ledger"
)

// RedeemerBudget is the measured execution budget for one redeemer
type RedeemerBudget struct {
	Purpose string
	Index   uint32
	ExUnits ledger.ExUnits
}

// EvaluateTransaction submits a draft transaction for script evaluation and
// returns the measured execution budget per redeemer. The transaction is
// sent as hex text, and the evaluator is pinned to Ogmios protocol version 6
func (c *Client) EvaluateTransaction(
	ctx context.Context,
	txCbor []byte,
) ([]RedeemerBudget, error) {
	respBody, err := c.do(
		ctx,
		http.MethodPost,
		"/utils/txs/evaluate?version=6",
		"application/cbor",
		[]byte(hex.EncodeToString(txCbor)),
	)
	if err != nil {
		return nil, err
	}
	budgets, err := parseEvaluationResponse(respBody)
	if err != nil {
		return nil, err
	}
	for _, budget := range budgets {
		c.logger.Debug(
			"evaluated redeemer",
			"purpose", budget.Purpose,
			"index", budget.Index,
			"memory", budget.ExUnits.Memory,
			"steps", budget.ExUnits.Steps,
		)
	}
	return budgets, nil
}

// parseEvaluationResponse handles the evaluator response shapes seen in the
// wild: the Ogmios v6 result list and the older EvaluationResult map keyed
// by "purpose:index"
func parseEvaluationResponse(respBody []byte) ([]RedeemerBudget, error) {
	var tmpResponse struct {
		Result json.RawMessage `json:"result"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(respBody, &tmpResponse); err != nil {
		return nil, fmt.Errorf("decode evaluation response: %w", err)
	}
	if len(tmpResponse.Error) > 0 && string(tmpResponse.Error) != "null" {
		return nil, newEvaluationError(tmpResponse.Error)
	}
	result := bytes.TrimSpace(tmpResponse.Result)
	if len(result) == 0 {
		return nil, fmt.Errorf(
			"evaluation response has no result: %s",
			string(respBody),
		)
	}
	if result[0] == '[' {
		return parseEvaluationList(result)
	}
	return parseEvaluationMap(result)
}

func newEvaluationError(raw json.RawMessage) *EvaluationError {
	var tmpError struct {
		Message string `json:"message"`
	}
	message := string(raw)
	if err := json.Unmarshal(raw, &tmpError); err == nil &&
		tmpError.Message != "" {
		message = tmpError.Message
	}
	return &EvaluationError{
		Message: message,
		Raw:     raw,
	}
}

func parseEvaluationList(result json.RawMessage) ([]RedeemerBudget, error) {
	var tmpEntries []struct {
		Validator struct {
			Index   uint32 `json:"index"`
			Purpose string `json:"purpose"`
		} `json:"validator"`
		Budget struct {
			Memory uint64 `json:"memory"`
			Cpu    uint64 `json:"cpu"`
		} `json:"budget"`
		ExUnits *struct {
			Mem   uint64 `json:"mem"`
			Steps uint64 `json:"steps"`
		} `json:"ex_units"`
	}
	if err := json.Unmarshal(result, &tmpEntries); err != nil {
		return nil, fmt.Errorf("decode evaluation result list: %w", err)
	}
	ret := make([]RedeemerBudget, 0, len(tmpEntries))
	for _, entry := range tmpEntries {
		budget := RedeemerBudget{
			Purpose: entry.Validator.Purpose,
			Index:   entry.Validator.Index,
			ExUnits: ledger.ExUnits{
				Memory: entry.Budget.Memory,
				Steps:  entry.Budget.Cpu,
			},
		}
		if entry.ExUnits != nil {
			budget.ExUnits = ledger.ExUnits{
				Memory: entry.ExUnits.Mem,
				Steps:  entry.ExUnits.Steps,
			}
		}
		ret = append(ret, budget)
	}
	return ret, nil
}

func parseEvaluationMap(result json.RawMessage) ([]RedeemerBudget, error) {
	var tmpResult map[string]json.RawMessage
	if err := json.Unmarshal(result, &tmpResult); err != nil {
		return nil, fmt.Errorf("decode evaluation result: %w", err)
	}
	if failure, ok := tmpResult["EvaluationFailure"]; ok {
		return nil, newEvaluationError(failure)
	}
	// Unwrap {"EvaluationResult": {...}}
	if inner, ok := tmpResult["EvaluationResult"]; ok {
		tmpResult = map[string]json.RawMessage{}
		if err := json.Unmarshal(inner, &tmpResult); err != nil {
			return nil, fmt.Errorf("decode evaluation result: %w", err)
		}
	}
	ret := make([]RedeemerBudget, 0, len(tmpResult))
	for key, rawUnits := range tmpResult {
		purpose, indexStr, found := strings.Cut(key, ":")
		if !found {
			return nil, fmt.Errorf(
				"malformed evaluation result key: %q",
				key,
			)
		}
		index, err := strconv.ParseUint(indexStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf(
				"malformed evaluation result key: %q",
				key,
			)
		}
		var tmpUnits struct {
			Memory uint64 `json:"memory"`
			Steps  uint64 `json:"steps"`
		}
		if err := json.Unmarshal(rawUnits, &tmpUnits); err != nil {
			return nil, fmt.Errorf(
				"decode execution units for %q: %w",
				key,
				err,
			)
		}
		ret = append(ret, RedeemerBudget{
			Purpose: purpose,
			// #nosec G115
			Index: uint32(index),
			ExUnits: ledger.ExUnits{
				Memory: tmpUnits.Memory,
				Steps:  tmpUnits.Steps,
			},
		})
	}
	return ret, nil
}
