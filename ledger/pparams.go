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

package ledger

import (
	"math/big"
)

// ProtocolParameters holds the subset of protocol parameters needed to fee
// and evaluate Plutus transactions
type ProtocolParameters struct {
	MinFeeA              uint64
	MinFeeB              uint64
	MaxTxSize            uint64
	PriceMem             *big.Rat
	PriceStep            *big.Rat
	MaxTxExMem           uint64
	MaxTxExSteps         uint64
	CollateralPercentage uint64
	MaxCollateralInputs  uint64
	CostModels           map[PlutusLanguage][]int64
}

// Fee size padding covers the witness bytes not yet present when the fee is
// computed from an unsigned transaction
const feeSizePadding = 150

// MinFee computes the minimum fee for a transaction of the given serialized
// size carrying scripts with the given total execution budget:
//
//	minFeeA * (size + padding) + minFeeB + ceil(priceMem * mem) + ceil(priceStep * steps)
func (p *ProtocolParameters) MinFee(txSize uint64, exUnits ExUnits) uint64 {
	fee := p.MinFeeA*(txSize+feeSizePadding) + p.MinFeeB
	fee += ratCeilMul(p.PriceMem, exUnits.Memory)
	fee += ratCeilMul(p.PriceStep, exUnits.Steps)
	return fee
}

// ratCeilMul returns ceil(price * units)
func ratCeilMul(price *big.Rat, units uint64) uint64 {
	if price == nil || units == 0 {
		return 0
	}
	product := new(big.Rat).Mul(
		price,
		new(big.Rat).SetUint64(units),
	)
	quo, rem := new(big.Int).QuoRem(
		product.Num(),
		product.Denom(),
		new(big.Int),
	)
	if rem.Sign() > 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return quo.Uint64()
}
