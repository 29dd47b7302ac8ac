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
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/txbuilder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScriptBytes = []byte{0x01, 0x00, 0x00, 0x32, 0x22, 0x25, 0x33}

func testScriptAddress(t *testing.T) ledger.Address {
	t.Helper()
	scriptHash := ledger.PlutusScript{
		Language: ledger.PlutusLanguageV2,
		Bytes:    testScriptBytes,
	}.Hash()
	addr, err := ledger.NewAddressFromBytes(
		append([]byte{0x70}, scriptHash.Bytes()...),
	)
	require.NoError(t, err)
	return addr
}

type mockWallet struct {
	utxos         []ledger.Utxo
	collateral    []ledger.Utxo
	changeAddress ledger.Address
	signedTxHex   string
}

func encodeUtxoHexes(utxos []ledger.Utxo) ([]string, error) {
	ret := make([]string, 0, len(utxos))
	for i := range utxos {
		utxoCbor, err := cbor.Encode(&utxos[i])
		if err != nil {
			return nil, err
		}
		ret = append(ret, hex.EncodeToString(utxoCbor))
	}
	return ret, nil
}

func (m *mockWallet) GetUtxos(ctx context.Context) ([]string, error) {
	return encodeUtxoHexes(m.utxos)
}

func (m *mockWallet) GetChangeAddress(ctx context.Context) (string, error) {
	return hex.EncodeToString(m.changeAddress.Bytes()), nil
}

func (m *mockWallet) GetCollateral(ctx context.Context) ([]string, error) {
	return encodeUtxoHexes(m.collateral)
}

func (m *mockWallet) SignTx(
	ctx context.Context,
	txHex string,
	partialSign bool,
) (string, error) {
	m.signedTxHex = txHex
	return "a100818241014102", nil
}

func (m *mockWallet) SubmitTx(
	ctx context.Context,
	txHex string,
) (string, error) {
	return "submitted-tx-hash", nil
}

func (m *mockWallet) GetNetworkId(ctx context.Context) (uint8, error) {
	return 0, nil
}

type mockGateway struct {
	scriptUtxos []blockfrost.AddressUtxo
	scriptCbor  []byte
	evalBudgets []blockfrost.RedeemerBudget
	paid        int
}

func (m *mockGateway) LatestBlock(
	ctx context.Context,
) (*blockfrost.Block, error) {
	return &blockfrost.Block{Hash: "abc", Height: 1, Slot: 9000}, nil
}

func (m *mockGateway) AddressUtxos(
	ctx context.Context,
	address string,
) ([]blockfrost.AddressUtxo, error) {
	return m.scriptUtxos, nil
}

func (m *mockGateway) ScriptCbor(
	ctx context.Context,
	scriptHash string,
) ([]byte, error) {
	if m.scriptCbor == nil {
		return nil, errors.New("script not found")
	}
	return m.scriptCbor, nil
}

func (m *mockGateway) ProtocolParameters(
	ctx context.Context,
) (*ledger.ProtocolParameters, error) {
	return &ledger.ProtocolParameters{
		MinFeeA:              44,
		MinFeeB:              155381,
		PriceMem:             big.NewRat(577, 10_000),
		PriceStep:            big.NewRat(721, 10_000_000),
		CollateralPercentage: 150,
		CostModels: map[ledger.PlutusLanguage][]int64{
			ledger.PlutusLanguageV2: {1, 2, 3},
		},
	}, nil
}

func (m *mockGateway) EvaluateTransaction(
	ctx context.Context,
	txCbor []byte,
) ([]blockfrost.RedeemerBudget, error) {
	return m.evalBudgets, nil
}

func (m *mockGateway) SubmitTransaction(
	ctx context.Context,
	txCbor []byte,
) (string, error) {
	m.paid++
	return "gateway-tx-hash", nil
}

func testFixture(t *testing.T) (*mockWallet, *mockGateway, *App) {
	t.Helper()
	walletAddr, err := ledger.NewAddressFromBytes(
		append([]byte{0x60}, bytes.Repeat([]byte{0xBB}, 28)...),
	)
	require.NoError(t, err)
	makeWalletUtxo := func(txIdHex string, idx uint32, amount uint64) ledger.Utxo {
		input, err := ledger.NewTransactionInput(txIdHex, idx)
		require.NoError(t, err)
		return ledger.Utxo{
			Id: input,
			Output: ledger.TransactionOutput{
				OutputAddress: walletAddr,
				OutputAmount:  amount,
			},
		}
	}
	w := &mockWallet{
		utxos: []ledger.Utxo{
			makeWalletUtxo(
				"aa00000000000000000000000000000000000000000000000000000000000000",
				1,
				50_000_000,
			),
		},
		collateral: []ledger.Utxo{
			makeWalletUtxo(
				"bb00000000000000000000000000000000000000000000000000000000000000",
				0,
				5_000_000,
			),
		},
		changeAddress: walletAddr,
	}
	gateway := &mockGateway{
		scriptCbor: testScriptBytes,
		scriptUtxos: []blockfrost.AddressUtxo{
			{
				TxHash:      "cc00000000000000000000000000000000000000000000000000000000000000",
				OutputIndex: 0,
				Amount: []blockfrost.TxAmount{
					{Unit: "lovelace", Quantity: "2000000"},
				},
				InlineDatum: "05",
			},
		},
		evalBudgets: []blockfrost.RedeemerBudget{
			{
				Purpose: "spend",
				Index:   1,
				ExUnits: ledger.ExUnits{Memory: 2000, Steps: 400000},
			},
		},
	}
	session := txbuilder.NewSession(w, gateway, nil)
	app := New(session, testScriptAddress(t), nil)
	return w, gateway, app
}

func TestFetch(t *testing.T) {
	_, _, app := testFixture(t)
	state, err := app.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), state.Value)
	assert.Equal(t, uint64(2_000_000), state.Utxo.Output.OutputAmount)
	assert.Equal(t, uint32(0), state.Utxo.Id.OutputIndex)
}

func TestFetchSkipsPoisonedUtxos(t *testing.T) {
	_, gateway, app := testFixture(t)
	gateway.scriptUtxos = append(
		[]blockfrost.AddressUtxo{
			{
				TxHash:      "dd00000000000000000000000000000000000000000000000000000000000000",
				OutputIndex: 0,
				Amount: []blockfrost.TxAmount{
					{Unit: "lovelace", Quantity: "1000000"},
				},
				InlineDatum: "63666f6f",
			},
		},
		gateway.scriptUtxos...,
	)
	state, err := app.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), state.Value)
}

func TestFetchNoCounter(t *testing.T) {
	_, gateway, app := testFixture(t)
	gateway.scriptUtxos = nil
	_, err := app.Fetch(context.Background())
	require.ErrorIs(t, err, txbuilder.ErrNoScriptUtxo)
}

func TestIncrement(t *testing.T) {
	w, _, app := testFixture(t)
	result, err := app.Increment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), result.OldValue)
	assert.Equal(t, uint64(6), result.NewValue)
	assert.Equal(t, "submitted-tx-hash", result.TxHash)

	// The continuing output carries the incremented value inline
	txCbor, err := hex.DecodeString(w.signedTxHex)
	require.NoError(t, err)
	var tx ledger.Transaction
	_, err = cbor.Decode(txCbor, &tx)
	require.NoError(t, err)
	require.Len(t, tx.Body.TxOutputs, 2)
	scriptOut := tx.Body.TxOutputs[0]
	assert.True(
		t,
		scriptOut.OutputAddress.Equal(testScriptAddress(t)),
	)
	require.NotNil(t, scriptOut.OutputDatum)
	require.NotNil(t, scriptOut.OutputDatum.InlineDatum())
	assert.Equal(
		t,
		"06",
		hex.EncodeToString(scriptOut.OutputDatum.InlineDatum().Cbor()),
	)
	// Increment redeemer is the empty constructor
	require.Len(t, tx.WitnessSet.Redeemers, 1)
	assert.Equal(
		t,
		"d87980",
		hex.EncodeToString(tx.WitnessSet.Redeemers[0].Data.Cbor()),
	)
}

func TestInit(t *testing.T) {
	w, gateway, app := testFixture(t)
	gateway.scriptUtxos = nil
	result, err := app.Init(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, result)

	txCbor, err := hex.DecodeString(w.signedTxHex)
	require.NoError(t, err)
	var tx ledger.Transaction
	_, err = cbor.Decode(txCbor, &tx)
	require.NoError(t, err)
	require.Len(t, tx.Body.TxOutputs, 2)
	initOut := tx.Body.TxOutputs[0]
	assert.Equal(t, uint64(2_000_000), initOut.OutputAmount)
	require.NotNil(t, initOut.OutputDatum)
	require.NotNil(t, initOut.OutputDatum.InlineDatum())
	assert.Equal(
		t,
		"00",
		hex.EncodeToString(initOut.OutputDatum.InlineDatum().Cbor()),
	)
	// Initialization is a plain payment: no scripts, no collateral
	assert.Empty(t, tx.WitnessSet.Redeemers)
	assert.Empty(t, tx.Body.TxCollateral)
}

func TestInitAlreadyExists(t *testing.T) {
	_, _, app := testFixture(t)
	_, err := app.Init(context.Background(), 0)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}
