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

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/wallet"
)

// ScriptSpend describes spending one UTxO locked by a Plutus script and
// locking a continuing output with a fresh inline datum back at the script
// address
type ScriptSpend struct {
	ScriptAddress ledger.Address
	ScriptUtxo    ledger.Utxo
	Script        ledger.PlutusScript
	Redeemer      ledger.Datum
	NewDatum      ledger.Datum
	// Value of the continuing output. Zero preserves the value of the
	// UTxO being spent
	OutputAmount uint64
}

// SpendScriptUtxo runs the full script spending pipeline: assemble a draft
// with a placeholder budget, evaluate it, reconcile the real budget into the
// fee and change, then sign and submit
func (s *Session) SpendScriptUtxo(
	ctx context.Context,
	spend ScriptSpend,
) (*Result, error) {
	if err := wallet.CheckNetwork(ctx, s.wallet, spend.ScriptAddress); err != nil {
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
	// The wallet must witness the spend alongside the script
	requiredSigner, err := changeAddr.PaymentKeyHash()
	if err != nil {
		return nil, err
	}
	collateral, err := s.selectCollateral(ctx, walletUtxos)
	if err != nil {
		return nil, err
	}
	funding, err := selectFundingUtxo(
		walletUtxos,
		[]ledger.TransactionInput{collateral.Id},
		fundingBufferLovelace,
	)
	if err != nil {
		return nil, err
	}

	outputAmount := spend.OutputAmount
	if outputAmount == 0 {
		outputAmount = spend.ScriptUtxo.Output.OutputAmount
	}
	inputs := ledger.SortInputs(
		[]ledger.TransactionInput{spend.ScriptUtxo.Id, funding.Id},
	)
	redeemerIndex, err := ledger.InputIndex(inputs, spend.ScriptUtxo.Id)
	if err != nil {
		return nil, err
	}
	languages := []ledger.PlutusLanguage{spend.Script.Language}
	views, err := ledger.LanguageViews(pparams.CostModels, languages)
	if err != nil {
		return nil, err
	}
	redeemers := []ledger.Redeemer{
		{
			Tag:     ledger.RedeemerTagSpend,
			Index:   redeemerIndex,
			Data:    spend.Redeemer,
			ExUnits: placeholderExUnits,
		},
	}
	// The continuing output carries its datum inline, so the witness set
	// stays free of plutus_data and the hash covers redeemers and
	// language views only
	scriptDataHash, err := ledger.ComputeScriptDataHash(
		redeemers,
		nil,
		views,
	)
	if err != nil {
		return nil, err
	}
	newDatumOption := ledger.NewInlineDatumOption(spend.NewDatum)
	var ws ledger.WitnessSet
	ws.AddScript(spend.Script)
	ws.Redeemers = redeemers
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			TxInputs: inputs,
			TxOutputs: []ledger.TransactionOutput{
				{
					OutputAddress: spend.ScriptAddress,
					OutputAmount:  outputAmount,
					OutputDatum:   &newDatumOption,
				},
				{
					OutputAddress: changeAddr,
					// Placeholder, rewritten once the fee is known
					OutputAmount: funding.Output.OutputAmount,
				},
			},
			Ttl:              ttl,
			TxScriptDataHash: &scriptDataHash,
			TxCollateral: []ledger.TransactionInput{
				collateral.Id,
			},
			TxRequiredSigners: []ledger.Blake2b224{requiredSigner},
		},
		WitnessSet: ws,
		TxIsValid:  true,
	}

	draftCbor, err := cbor.Encode(tx)
	if err != nil {
		return nil, fmt.Errorf("encode draft transaction: %w", err)
	}
	txSize := uint64(len(draftCbor))
	fee := feeWithMargin(pparams, txSize, placeholderExUnits)
	if err := s.applyFee(tx, pparams, spend, funding, collateral, outputAmount, fee); err != nil {
		return nil, err
	}

	evalCbor, err := cbor.Encode(tx)
	if err != nil {
		return nil, fmt.Errorf("encode transaction for evaluation: %w", err)
	}
	budgets, err := s.gateway.EvaluateTransaction(ctx, evalCbor)
	if err != nil {
		return nil, err
	}
	realUnits, err := findBudget(budgets, "spend", redeemerIndex)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(
		"reconciling evaluated budget",
		"memory", realUnits.Memory,
		"steps", realUnits.Steps,
	)

	// Reconcile: real budget changes the redeemer, which changes the
	// script data hash and the fee. The change output absorbs exactly the
	// fee delta
	tx.WitnessSet.Redeemers[0].ExUnits = realUnits
	newHash, err := ledger.ComputeScriptDataHash(
		tx.WitnessSet.Redeemers,
		nil,
		views,
	)
	if err != nil {
		return nil, err
	}
	tx.Body.TxScriptDataHash = &newHash
	newFee := feeWithMargin(pparams, txSize, realUnits)
	if err := s.applyFee(tx, pparams, spend, funding, collateral, outputAmount, newFee); err != nil {
		return nil, err
	}

	// Value conservation: inputs must balance outputs plus fee
	totalIn := spend.ScriptUtxo.Output.OutputAmount +
		funding.Output.OutputAmount
	totalOut := tx.Body.TxOutputs[0].OutputAmount +
		tx.Body.TxOutputs[1].OutputAmount +
		tx.Body.TxFee
	if totalIn != totalOut {
		return nil, fmt.Errorf(
			"%w: inputs %d, outputs plus fee %d",
			ErrValueNotConserved,
			totalIn,
			totalOut,
		)
	}
	return s.signAndSubmit(ctx, tx, true)
}

// applyFee sets the fee and everything derived from it: the change output
// and the collateral pledge
func (s *Session) applyFee(
	tx *ledger.Transaction,
	pparams *ledger.ProtocolParameters,
	spend ScriptSpend,
	funding *ledger.Utxo,
	collateral *ledger.Utxo,
	outputAmount uint64,
	fee uint64,
) error {
	available := funding.Output.OutputAmount +
		spend.ScriptUtxo.Output.OutputAmount
	needed := outputAmount + fee + minChangeLovelace
	if available < needed {
		return ErrInsufficientFunds
	}
	tx.Body.TxFee = fee
	tx.Body.TxOutputs[1].OutputAmount = available - outputAmount - fee
	totalCollateral := collateralAmount(pparams, fee)
	if collateral.Output.OutputAmount < totalCollateral {
		return fmt.Errorf(
			"%w: need %d lovelace, collateral UTxO holds %d",
			ErrNoCollateral,
			totalCollateral,
			collateral.Output.OutputAmount,
		)
	}
	tx.Body.TotalCollateral = totalCollateral
	tx.Body.CollateralReturn = &ledger.TransactionOutput{
		OutputAddress: tx.Body.TxOutputs[1].OutputAddress,
		OutputAmount: collateral.Output.OutputAmount -
			totalCollateral,
	}
	return nil
}

func findBudget(
	budgets []blockfrost.RedeemerBudget,
	purpose string,
	index uint32,
) (ledger.ExUnits, error) {
	for _, budget := range budgets {
		if budget.Purpose == purpose && budget.Index == index {
			return budget.ExUnits, nil
		}
	}
	return ledger.ExUnits{}, fmt.Errorf(
		"%w: %s:%d",
		ErrMissingEvaluation,
		purpose,
		index,
	)
}
