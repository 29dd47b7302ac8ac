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
	"context"
	"slices"

	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/wallet"
)

// pureAdaUtxos filters out UTxOs carrying native assets. Fee and collateral
// inputs must be plain ADA so change stays a simple coin value
func pureAdaUtxos(utxos []ledger.Utxo) []ledger.Utxo {
	ret := make([]ledger.Utxo, 0, len(utxos))
	for _, utxo := range utxos {
		if len(utxo.Output.OutputAssets) == 0 {
			ret = append(ret, utxo)
		}
	}
	return ret
}

func containsInput(
	inputs []ledger.TransactionInput,
	target ledger.TransactionInput,
) bool {
	return slices.ContainsFunc(
		inputs,
		func(input ledger.TransactionInput) bool {
			return input.TxId == target.TxId &&
				input.OutputIndex == target.OutputIndex
		},
	)
}

// selectFundingUtxo picks the largest pure-ADA UTxO holding at least
// minAmount, skipping any excluded inputs
func selectFundingUtxo(
	utxos []ledger.Utxo,
	exclude []ledger.TransactionInput,
	minAmount uint64,
) (*ledger.Utxo, error) {
	var best *ledger.Utxo
	for _, utxo := range pureAdaUtxos(utxos) {
		if containsInput(exclude, utxo.Id) {
			continue
		}
		if utxo.Output.OutputAmount < minAmount {
			continue
		}
		if best == nil ||
			utxo.Output.OutputAmount > best.Output.OutputAmount {
			tmpUtxo := utxo
			best = &tmpUtxo
		}
	}
	if best == nil {
		return nil, ErrInsufficientFunds
	}
	return best, nil
}

// selectCollateral returns a collateral UTxO, preferring the wallet's
// dedicated collateral and falling back to the smallest sufficient plain-ADA
// UTxO so larger ones stay available for funding
func (s *Session) selectCollateral(
	ctx context.Context,
	walletUtxos []ledger.Utxo,
) (*ledger.Utxo, error) {
	collaterals, err := wallet.Collateral(ctx, s.wallet)
	if err != nil {
		return nil, err
	}
	for _, utxo := range pureAdaUtxos(collaterals) {
		if utxo.Output.OutputAmount > 0 {
			tmpUtxo := utxo
			return &tmpUtxo, nil
		}
	}
	s.logger.Debug(
		"wallet has no dedicated collateral, falling back to spendable UTxOs",
	)
	var best *ledger.Utxo
	for _, utxo := range pureAdaUtxos(walletUtxos) {
		if utxo.Output.OutputAmount < minCollateralLovelace {
			continue
		}
		if best == nil ||
			utxo.Output.OutputAmount < best.Output.OutputAmount {
			tmpUtxo := utxo
			best = &tmpUtxo
		}
	}
	if best == nil {
		return nil, ErrNoCollateral
	}
	return best, nil
}
