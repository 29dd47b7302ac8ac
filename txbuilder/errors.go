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

package txbuilder

import (
	"errors"
)

var (
	// ErrNoWalletUtxos means the wallet reported no spendable UTxOs
	ErrNoWalletUtxos = errors.New("wallet has no spendable UTxOs")

	// ErrNoCollateral means neither the wallet's collateral nor its
	// spendable UTxOs yielded a usable collateral input
	ErrNoCollateral = errors.New("no usable collateral UTxO")

	// ErrInsufficientFunds means no wallet UTxO covers the payment plus
	// fee and minimum change
	ErrInsufficientFunds = errors.New("insufficient funds in wallet")

	// ErrNotScriptAddress means the address's payment credential is a key
	// hash where a script hash is required
	ErrNotScriptAddress = errors.New(
		"address payment credential is not a script",
	)

	// ErrNoScriptUtxo means the expected UTxO was not found at the script
	// address
	ErrNoScriptUtxo = errors.New("no matching UTxO at script address")

	// ErrNoInlineDatum means the script UTxO being spent has no inline
	// datum
	ErrNoInlineDatum = errors.New("script UTxO has no inline datum")

	// ErrValueNotConserved means the built transaction's inputs do not
	// balance its outputs plus fee
	ErrValueNotConserved = errors.New(
		"transaction value not conserved",
	)

	// ErrMissingEvaluation means the evaluator returned no budget for a
	// redeemer in the transaction
	ErrMissingEvaluation = errors.New(
		"evaluation result missing redeemer budget",
	)
)
