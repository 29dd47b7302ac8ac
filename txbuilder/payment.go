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
	"fmt"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/wallet"
)

// Payment is a plain transfer from the wallet, optionally locking an inline
// datum at the destination. No scripts run, so no collateral or evaluation
// is involved
type Payment struct {
	ToAddress   ledger.Address
	Amount      uint64
	InlineDatum *ledger.Datum
}

// Pay builds, signs, and submits a payment funded by a single wallet UTxO
func (s *Session) Pay(
	ctx context.Context,
	payment Payment,
) (*Result, error) {
	if err := wallet.CheckNetwork(ctx, s.wallet, payment.ToAddress); err != nil {
		return nil, err
	}
	pparams, err := s.gateway.ProtocolParameters(ctx)
	if err != nil {
		return nil, err
	}
	ttl, err := s.currentTtl(ctx)
	if err != nil {
		return nil, err
	}
	walletUtxos, err := wallet.Utxos(ctx, s.wallet)
	if err != nil {
		return nil, err
	}
	if len(walletUtxos) == 0 {
		return nil, ErrNoWalletUtxos
	}
	changeAddr, err := wallet.ChangeAddress(ctx, s.wallet)
	if err != nil {
		return nil, err
	}
	funding, err := selectFundingUtxo(
		walletUtxos,
		nil,
		payment.Amount+fundingBufferLovelace,
	)
	if err != nil {
		return nil, err
	}
	paymentOutput := ledger.TransactionOutput{
		OutputAddress: payment.ToAddress,
		OutputAmount:  payment.Amount,
	}
	if payment.InlineDatum != nil {
		datumOption := ledger.NewInlineDatumOption(*payment.InlineDatum)
		paymentOutput.OutputDatum = &datumOption
	}
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			TxInputs: []ledger.TransactionInput{funding.Id},
			TxOutputs: []ledger.TransactionOutput{
				paymentOutput,
				{
					OutputAddress: changeAddr,
					// Placeholder change at full width, replaced
					// once the fee is known
					OutputAmount: funding.Output.OutputAmount,
				},
			},
			Ttl: ttl,
		},
		TxIsValid: true,
	}
	draftCbor, err := cbor.Encode(tx)
	if err != nil {
		return nil, fmt.Errorf("encode draft transaction: %w", err)
	}
	fee := feeWithMargin(
		pparams,
		uint64(len(draftCbor)),
		ledger.ExUnits{},
	)
	required := payment.Amount + fee + minChangeLovelace
	if funding.Output.OutputAmount < required {
		return nil, ErrInsufficientFunds
	}
	tx.Body.TxFee = fee
	tx.Body.TxOutputs[1].OutputAmount = funding.Output.OutputAmount -
		payment.Amount - fee
	s.logger.Debug(
		"built payment transaction",
		"to", payment.ToAddress.String(),
		"amount", payment.Amount,
		"fee", fee,
	)
	return s.signAndSubmit(ctx, tx, false)
}
