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

package wallet

import (
	"strings"
)

// UserDeclinedError indicates the user refused a wallet prompt. Callers
// should treat this as a normal outcome rather than a failure
type UserDeclinedError struct {
	Err error
}

func (e *UserDeclinedError) Error() string {
	return "user declined wallet request: " + e.Err.Error()
}

func (e *UserDeclinedError) Unwrap() error {
	return e.Err
}

// CIP-30 gives no structured error code for refusal, so wallets are matched
// on the message substrings they are known to use
var declineSubstrings = []string{
	"reject",
	"cancel",
	"denied",
}

func classifyWalletError(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	for _, substring := range declineSubstrings {
		if strings.Contains(message, substring) {
			return &UserDeclinedError{Err: err}
		}
	}
	return err
}
