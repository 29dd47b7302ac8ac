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
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/stretchr/testify/require"
)

type mockWallet struct {
	utxos         []ledger.Utxo
	collateral    []ledger.Utxo
	changeAddress ledger.Address
	witnessHex    string
	signErr       error
	submitErr     error
	signedTxHex   string
	submittedHex  string
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
	if m.signErr != nil {
		return "", m.signErr
	}
	m.signedTxHex = txHex
	if m.witnessHex == "" {
		// {0: [[h'01', h'02']]}
		return "a100818241014102", nil
	}
	return m.witnessHex, nil
}

func (m *mockWallet) SubmitTx(
	ctx context.Context,
	txHex string,
) (string, error) {
	if m.submitErr != nil {
		return "", m.submitErr
	}
	m.submittedHex = txHex
	return "", nil
}

func (m *mockWallet) GetNetworkId(ctx context.Context) (uint8, error) {
	return 0, nil
}

type mockGateway struct {
	tipSlot     uint64
	pparams     *ledger.ProtocolParameters
	evalBudgets []blockfrost.RedeemerBudget
	evalErr     error
	evaluated   [][]byte
	submitted   [][]byte
	submitErr   error
}

func (m *mockGateway) LatestBlock(
	ctx context.Context,
) (*blockfrost.Block, error) {
	return &blockfrost.Block{Hash: "abc", Height: 1, Slot: m.tipSlot}, nil
}

func (m *mockGateway) AddressUtxos(
	ctx context.Context,
	address string,
) ([]blockfrost.AddressUtxo, error) {
	return nil, errors.New("not implemented")
}

func (m *mockGateway) ScriptCbor(
	ctx context.Context,
	scriptHash string,
) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (m *mockGateway) ProtocolParameters(
	ctx context.Context,
) (*ledger.ProtocolParameters, error) {
	return m.pparams, nil
}

func (m *mockGateway) EvaluateTransaction(
	ctx context.Context,
	txCbor []byte,
) ([]blockfrost.RedeemerBudget, error) {
	m.evaluated = append(m.evaluated, txCbor)
	if m.evalErr != nil {
		return nil, m.evalErr
	}
	return m.evalBudgets, nil
}

func (m *mockGateway) SubmitTransaction(
	ctx context.Context,
	txCbor []byte,
) (string, error) {
	if m.submitErr != nil {
		return "", m.submitErr
	}
	m.submitted = append(m.submitted, txCbor)
	return "mock-gateway-hash", nil
}

func testPparams() *ledger.ProtocolParameters {
	return &ledger.ProtocolParameters{
		MinFeeA:              44,
		MinFeeB:              155381,
		MaxTxSize:            16384,
		PriceMem:             big.NewRat(577, 10_000),
		PriceStep:            big.NewRat(721, 10_000_000),
		CollateralPercentage: 150,
		MaxCollateralInputs:  3,
		CostModels: map[ledger.PlutusLanguage][]int64{
			ledger.PlutusLanguageV2: {1, 2, 3},
			ledger.PlutusLanguageV3: {4, 5, 6},
		},
	}
}

func addressFromHeader(t *testing.T, header byte, fill byte) ledger.Address {
	t.Helper()
	addr, err := ledger.NewAddressFromBytes(
		append([]byte{header}, bytes.Repeat([]byte{fill}, 28)...),
	)
	require.NoError(t, err)
	return addr
}

func makeUtxo(
	t *testing.T,
	txIdHex string,
	index uint32,
	addr ledger.Address,
	amount uint64,
) ledger.Utxo {
	t.Helper()
	input, err := ledger.NewTransactionInput(txIdHex, index)
	require.NoError(t, err)
	return ledger.Utxo{
		Id: input,
		Output: ledger.TransactionOutput{
			OutputAddress: addr,
			OutputAmount:  amount,
		},
	}
}

func makeDatum(t *testing.T, datumHex string) ledger.Datum {
	t.Helper()
	datumCbor, err := hex.DecodeString(datumHex)
	require.NoError(t, err)
	datum, err := ledger.NewDatumFromCbor(datumCbor)
	require.NoError(t, err)
	return datum
}

// decodeSignedTx returns the transaction the wallet was asked to sign
func decodeSignedTx(t *testing.T, w *mockWallet) *ledger.Transaction {
	t.Helper()
	require.NotEmpty(t, w.signedTxHex)
	txCbor, err := hex.DecodeString(w.signedTxHex)
	require.NoError(t, err)
	var tx ledger.Transaction
	_, err = cbor.Decode(txCbor, &tx)
	require.NoError(t, err)
	return &tx
}
