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
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-200 response from the Blockfrost API
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func newAPIError(endpoint string, statusCode int, body []byte) *APIError {
	// Blockfrost error bodies carry a structured message
	var tmpError struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &tmpError); err == nil &&
		tmpError.Message != "" {
		message = tmpError.Message
	}
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf(
		"blockfrost: %s returned status %d: %s",
		e.Endpoint,
		e.StatusCode,
		e.Message,
	)
}

// EvaluationError is a script evaluation rejection. The raw evaluator
// response is preserved since script failures are only debuggable from the
// full trace
type EvaluationError struct {
	Message string
	Raw     json.RawMessage
}

func (e *EvaluationError) Error() string {
	return "script evaluation failed: " + e.Message
}

// SubmitError is a transaction rejection at submission time
type SubmitError struct {
	StatusCode int
	Message    string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf(
		"transaction submission failed (status %d): %s",
		e.StatusCode,
		e.Message,
	)
}
