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

package dao

import (
	"context"
	"io"
	"log/slog"

	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/txbuilder"
)

// Value locked with each newly created proposal
const proposalLovelace = 2_000_000

// App drives the DAO voting contract through a wallet session
type App struct {
	session       *txbuilder.Session
	scriptAddress ledger.Address
	logger        *slog.Logger
}

func New(
	session *txbuilder.Session,
	scriptAddress ledger.Address,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &App{
		session:       session,
		scriptAddress: scriptAddress,
		logger:        logger.With("component", "dao"),
	}
}

// ProposalUtxo is a live proposal together with the UTxO holding it
type ProposalUtxo struct {
	Proposal Proposal
	Utxo     ledger.Utxo
}

// FetchProposals lists the live proposals at the script address. Script
// UTxOs whose datums do not decode as proposals are skipped, since anyone
// can send arbitrary UTxOs to the script address
func (a *App) FetchProposals(ctx context.Context) ([]ProposalUtxo, error) {
	utxos, err := a.session.Gateway().AddressUtxos(
		ctx,
		a.scriptAddress.String(),
	)
	if err != nil {
		return nil, err
	}
	ret := []ProposalUtxo{}
	for _, utxo := range utxos {
		datumCbor, err := utxo.InlineDatumBytes()
		if err != nil || len(datumCbor) == 0 {
			continue
		}
		proposal, err := DecodeProposal(datumCbor)
		if err != nil {
			a.logger.Debug(
				"skipping script UTxO without proposal datum",
				"tx_hash", utxo.TxHash,
				"output_index", utxo.OutputIndex,
			)
			continue
		}
		input, err := utxo.Input()
		if err != nil {
			return nil, err
		}
		lovelace, err := utxo.Lovelace()
		if err != nil {
			return nil, err
		}
		datum, err := ledger.NewDatumFromCbor(datumCbor)
		if err != nil {
			return nil, err
		}
		datumOption := ledger.NewInlineDatumOption(datum)
		ret = append(ret, ProposalUtxo{
			Proposal: *proposal,
			Utxo: ledger.Utxo{
				Id: input,
				Output: ledger.TransactionOutput{
					OutputAddress: a.scriptAddress,
					OutputAmount:  lovelace,
					OutputDatum:   &datumOption,
				},
			},
		})
	}
	return ret, nil
}

// CreateProposal locks a new proposal with zeroed tallies at the script
// address. Creation is a plain payment: the script only runs when a
// proposal is spent
func (a *App) CreateProposal(
	ctx context.Context,
	proposal Proposal,
) (*txbuilder.Result, error) {
	datum, err := proposal.Datum()
	if err != nil {
		return nil, err
	}
	a.logger.Info(
		"creating proposal",
		"title", proposal.Title,
		"script_address", a.scriptAddress.String(),
	)
	return a.session.Pay(
		ctx,
		txbuilder.Payment{
			ToAddress:   a.scriptAddress,
			Amount:      proposalLovelace,
			InlineDatum: &datum,
		},
	)
}

// VoteResult describes a submitted vote
type VoteResult struct {
	TxHash   string
	Choice   VoteChoice
	Proposal Proposal
}

// Vote spends the proposal UTxO identified by target and locks it back with
// the chosen tally incremented. The target is explicit so concurrent votes
// fail fast on a stale UTxO instead of silently voting on the wrong
// proposal state
func (a *App) Vote(
	ctx context.Context,
	target ledger.TransactionInput,
	choice VoteChoice,
) (*VoteResult, error) {
	proposals, err := a.FetchProposals(ctx)
	if err != nil {
		return nil, err
	}
	var proposalUtxo *ProposalUtxo
	for i := range proposals {
		if proposals[i].Utxo.Id == target {
			proposalUtxo = &proposals[i]
			break
		}
	}
	if proposalUtxo == nil {
		return nil, txbuilder.ErrNoScriptUtxo
	}
	script, err := a.session.ResolveScriptAtAddress(ctx, a.scriptAddress)
	if err != nil {
		return nil, err
	}
	updated := proposalUtxo.Proposal.Applied(choice)
	newDatum, err := updated.Datum()
	if err != nil {
		return nil, err
	}
	redeemer, err := choice.Redeemer()
	if err != nil {
		return nil, err
	}
	a.logger.Info(
		"voting on proposal",
		"title", proposalUtxo.Proposal.Title,
		"choice", choice.String(),
	)
	result, err := a.session.SpendScriptUtxo(
		ctx,
		txbuilder.ScriptSpend{
			ScriptAddress: a.scriptAddress,
			ScriptUtxo:    proposalUtxo.Utxo,
			Script:        script,
			Redeemer:      redeemer,
			NewDatum:      newDatum,
		},
	)
	if err != nil {
		return nil, err
	}
	return &VoteResult{
		TxHash:   result.TxHash,
		Choice:   choice,
		Proposal: updated,
	}, nil
}
