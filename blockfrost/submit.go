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
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// SubmitTransaction submits a fully signed transaction and returns its
// transaction hash
func (c *Client) SubmitTransaction(
	ctx context.Context,
	txCbor []byte,
) (string, error) {
	c.logger.Debug("submitting transaction", "size", len(txCbor))
	respBody, err := c.do(
		ctx,
		http.MethodPost,
		"/tx/submit",
		"application/cbor",
		txCbor,
	)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return "", &SubmitError{
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Message,
			}
		}
		return "", err
	}
	// Response is a JSON-quoted hash, but tolerate a bare one
	var txHash string
	if err := json.Unmarshal(respBody, &txHash); err != nil {
		txHash = strings.Trim(strings.TrimSpace(string(respBody)), `"`)
	}
	c.logger.Info("transaction submitted", "tx_hash", txHash)
	return txHash, nil
}
