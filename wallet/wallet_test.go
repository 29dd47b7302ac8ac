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

package wallet

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWallet struct {
	utxos         []string
	collateral    []string
	changeAddress string
	signErr       error
	witnessHex    string
}

func (m *mockWallet) GetUtxos(ctx context.Context) ([]string, error) {
	return m.utxos, nil
}

func (m *mockWallet) GetChangeAddress(ctx context.Context) (string, error) {
	return m.changeAddress, nil
}

func (m *mockWallet) GetCollateral(ctx context.Context) ([]string, error) {
	return m.collateral, nil
}

func (m *mockWallet) SignTx(
	ctx context.Context,
	txHex string,
	partialSign bool,
) (string, error) {
	if m.signErr != nil {
		return "", m.signErr
	}
	return m.witnessHex, nil
}

func (m *mockWallet) SubmitTx(
	ctx context.Context,
	txHex string,
) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockWallet) GetNetworkId(ctx context.Context) (uint8, error) {
	return 0, nil
}

func testUtxoHex(t *testing.T) string {
	t.Helper()
	input, err := ledger.NewTransactionInput(
		"aa00000000000000000000000000000000000000000000000000000000000000",
		0,
	)
	require.NoError(t, err)
	addr, err := ledger.NewAddressFromBytes(
		append([]byte{0x60}, bytes.Repeat([]byte{0x11}, 28)...),
	)
	require.NoError(t, err)
	utxo := ledger.Utxo{
		Id: input,
		Output: ledger.TransactionOutput{
			OutputAddress: addr,
			OutputAmount:  5_000_000,
		},
	}
	utxoCbor, err := cbor.Encode(&utxo)
	require.NoError(t, err)
	return hex.EncodeToString(utxoCbor)
}

func TestUtxos(t *testing.T) {
	w := &mockWallet{utxos: []string{testUtxoHex(t)}}
	utxos, err := Utxos(context.Background(), w)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, uint32(0), utxos[0].Id.OutputIndex)
	assert.Equal(t, uint64(5_000_000), utxos[0].Output.OutputAmount)
}

func TestChangeAddress(t *testing.T) {
	addrBytes := append([]byte{0x60}, bytes.Repeat([]byte{0x22}, 28)...)
	w := &mockWallet{changeAddress: hex.EncodeToString(addrBytes)}
	addr, err := ChangeAddress(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, addrBytes, addr.Bytes())
}

func TestSignTransactionDeclined(t *testing.T) {
	testDefs := []struct {
		name         string
		signErr      error
		wantDeclined bool
	}{
		{
			name:         "user rejected",
			signErr:      errors.New("user rejected the request"),
			wantDeclined: true,
		},
		{
			name:         "cancelled prompt",
			signErr:      errors.New("Cancelled by user"),
			wantDeclined: true,
		},
		{
			name:         "access denied",
			signErr:      errors.New("Access Denied"),
			wantDeclined: true,
		},
		{
			name:         "unrelated failure",
			signErr:      errors.New("wallet internal error"),
			wantDeclined: false,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			w := &mockWallet{signErr: testDef.signErr}
			_, err := SignTransaction(
				context.Background(),
				w,
				&ledger.Transaction{},
				true,
			)
			require.Error(t, err)
			var declinedErr *UserDeclinedError
			assert.Equal(
				t,
				testDef.wantDeclined,
				errors.As(err, &declinedErr),
			)
		})
	}
}

func TestSignTransactionWitnesses(t *testing.T) {
	// {0: [[h'01', h'02']]}
	w := &mockWallet{witnessHex: "a100818241014102"}
	ws, err := SignTransaction(
		context.Background(),
		w,
		&ledger.Transaction{},
		true,
	)
	require.NoError(t, err)
	require.Len(t, ws.VkeyWitnesses, 1)
	assert.Equal(t, []byte{0x01}, ws.VkeyWitnesses[0].Vkey)
}
