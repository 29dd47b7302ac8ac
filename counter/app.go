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

package counter

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/txbuilder"
)

// Value locked with the counter datum when initializing
const initLovelace = 2_000_000

// ErrAlreadyInitialized means a valid counter UTxO already exists at the
// script address
var ErrAlreadyInitialized = errors.New("counter already initialized")

// App drives the counter contract through a wallet session
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
		logger:        logger.With("component", "counter"),
	}
}

// ClassifyUtxos splits script UTxOs into those carrying a decodable counter
// datum and those that do not. Anyone can send funds to a script address,
// so garbage UTxOs are expected and must never be selected for spending
func ClassifyUtxos(
	utxos []blockfrost.AddressUtxo,
) (valid []blockfrost.AddressUtxo, poisoned []blockfrost.AddressUtxo) {
	for _, utxo := range utxos {
		datumCbor, err := utxo.InlineDatumBytes()
		if err != nil || len(datumCbor) == 0 ||
			!IsValidDatum(datumCbor) {
			poisoned = append(poisoned, utxo)
			continue
		}
		valid = append(valid, utxo)
	}
	return valid, poisoned
}

// State is the current on-chain counter state
type State struct {
	Value uint64
	Utxo  ledger.Utxo
}

// Fetch returns the current counter state, reading the first script UTxO
// with a valid counter datum
func (a *App) Fetch(ctx context.Context) (*State, error) {
	utxos, err := a.session.Gateway().AddressUtxos(
		ctx,
		a.scriptAddress.String(),
	)
	if err != nil {
		return nil, err
	}
	valid, poisoned := ClassifyUtxos(utxos)
	if len(poisoned) > 0 {
		a.logger.Debug(
			"ignoring script UTxOs without valid counter datums",
			"count", len(poisoned),
		)
	}
	if len(valid) == 0 {
		return nil, txbuilder.ErrNoScriptUtxo
	}
	return a.stateFromUtxo(valid[0])
}

func (a *App) stateFromUtxo(utxo blockfrost.AddressUtxo) (*State, error) {
	datumCbor, err := utxo.InlineDatumBytes()
	if err != nil {
		return nil, err
	}
	if len(datumCbor) == 0 {
		return nil, txbuilder.ErrNoInlineDatum
	}
	value, err := DecodeValue(datumCbor)
	if err != nil {
		return nil, err
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
	return &State{
		Value: value,
		Utxo: ledger.Utxo{
			Id: input,
			Output: ledger.TransactionOutput{
				OutputAddress: a.scriptAddress,
				OutputAmount:  lovelace,
				OutputDatum:   &datumOption,
			},
		},
	}, nil
}

// Init creates the counter UTxO with the given starting value. A counter
// that already exists is left alone
func (a *App) Init(
	ctx context.Context,
	initialValue uint64,
) (*txbuilder.Result, error) {
	_, err := a.Fetch(ctx)
	if err == nil {
		return nil, ErrAlreadyInitialized
	}
	if !errors.Is(err, txbuilder.ErrNoScriptUtxo) {
		return nil, err
	}
	datum, err := EncodeValue(initialValue)
	if err != nil {
		return nil, err
	}
	a.logger.Info(
		"initializing counter",
		"value", initialValue,
		"script_address", a.scriptAddress.String(),
	)
	return a.session.Pay(
		ctx,
		txbuilder.Payment{
			ToAddress:   a.scriptAddress,
			Amount:      initLovelace,
			InlineDatum: &datum,
		},
	)
}

// IncrementResult describes a submitted counter increment
type IncrementResult struct {
	TxHash   string
	OldValue uint64
	NewValue uint64
}

// Increment spends the counter UTxO and locks it back with the value
// incremented by one
func (a *App) Increment(ctx context.Context) (*IncrementResult, error) {
	state, err := a.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	script, err := a.session.ResolveScriptAtAddress(ctx, a.scriptAddress)
	if err != nil {
		return nil, err
	}
	newValue := state.Value + 1
	newDatum, err := EncodeValue(newValue)
	if err != nil {
		return nil, err
	}
	redeemer, err := IncrementRedeemer()
	if err != nil {
		return nil, err
	}
	a.logger.Info(
		"incrementing counter",
		"old_value", state.Value,
		"new_value", newValue,
	)
	result, err := a.session.SpendScriptUtxo(
		ctx,
		txbuilder.ScriptSpend{
			ScriptAddress: a.scriptAddress,
			ScriptUtxo:    state.Utxo,
			Script:        script,
			Redeemer:      redeemer,
			NewDatum:      newDatum,
		},
	)
	if err != nil {
		return nil, err
	}
	return &IncrementResult{
		TxHash:   result.TxHash,
		OldValue: state.Value,
		NewValue: newValue,
	}, nil
}
