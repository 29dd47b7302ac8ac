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
	"github.com/blinklabs-io/plutustx/ledger"
)

// feeWithMargin computes the minimum fee for the transaction and adds a
// safety margin. Overpaying slightly beats a rejected submission, since the
// size and budget the fee was computed from are both estimates
func feeWithMargin(
	pparams *ledger.ProtocolParameters,
	txSize uint64,
	exUnits ledger.ExUnits,
) uint64 {
	fee := pparams.MinFee(txSize, exUnits)
	return fee + fee*feeMarginPercent/100
}

// collateralAmount computes the total collateral a transaction must pledge
// for the given fee: ceil(fee * collateralPercentage / 100)
func collateralAmount(
	pparams *ledger.ProtocolParameters,
	fee uint64,
) uint64 {
	percentage := pparams.CollateralPercentage
	if percentage == 0 {
		percentage = 150
	}
	return (fee*percentage + 99) / 100
}
