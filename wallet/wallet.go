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

// Package wallet bridges a CIP-30 wallet connection into ledger types. The
// Wallet interface mirrors the CIP-30 API surface, which exchanges all
// values as hex-encoded CBOR
package wallet

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"
)

// Wallet is a connected CIP-30 wallet
type Wallet interface {
	// GetUtxos returns the wallet's spendable UTxOs as hex-encoded
	// TransactionUnspentOutput CBOR
	GetUtxos(ctx context.Context) ([]string, error)
	// GetChangeAddress returns the wallet's change address as hex-encoded
	// address bytes
	GetChangeAddress(ctx context.Context) (string, error)
	// GetCollateral returns UTxOs the wallet has set aside as collateral
	GetCollateral(ctx context.Context) ([]string, error)
	// SignTx signs the hex-encoded transaction and returns a hex-encoded
	// witness set. With partialSign the wallet signs only for its own keys
	SignTx(
		ctx context.Context,
		txHex string,
		partialSign bool,
	) (string, error)
	// SubmitTx submits the hex-encoded signed transaction and returns the
	// transaction hash
	SubmitTx(ctx context.Context, txHex string) (string, error)
	// GetNetworkId returns the wallet's network (0 testnet, 1 mainnet)
	GetNetworkId(ctx context.Context) (uint8, error)
}

// NetworkMismatchError indicates the wallet is connected to a different
// network than an address it was asked to operate against
type NetworkMismatchError struct {
	WalletNetworkId  uint8
	AddressNetworkId uint8
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf(
		"wallet network %d does not match address network %d",
		e.WalletNetworkId,
		e.AddressNetworkId,
	)
}

// CheckNetwork verifies that the wallet and the given address agree on the
// network
func CheckNetwork(
	ctx context.Context,
	w Wallet,
	addr ledger.Address,
) error {
	networkId, err := w.GetNetworkId(ctx)
	if err != nil {
		return classifyWalletError(err)
	}
	if networkId != addr.NetworkId() {
		return &NetworkMismatchError{
			WalletNetworkId:  networkId,
			AddressNetworkId: addr.NetworkId(),
		}
	}
	return nil
}

// Utxos fetches and decodes the wallet's spendable UTxOs
func Utxos(ctx context.Context, w Wallet) ([]ledger.Utxo, error) {
	utxosHex, err := w.GetUtxos(ctx)
	if err != nil {
		return nil, classifyWalletError(err)
	}
	return decodeUtxos(utxosHex)
}

// Collateral fetches and decodes the wallet's collateral UTxOs. A wallet
// with no collateral configured returns an empty list
func Collateral(ctx context.Context, w Wallet) ([]ledger.Utxo, error) {
	utxosHex, err := w.GetCollateral(ctx)
	if err != nil {
		return nil, classifyWalletError(err)
	}
	return decodeUtxos(utxosHex)
}

func decodeUtxos(utxosHex []string) ([]ledger.Utxo, error) {
	ret := make([]ledger.Utxo, 0, len(utxosHex))
	for _, utxoHex := range utxosHex {
		utxoCbor, err := hex.DecodeString(utxoHex)
		if err != nil {
			return nil, fmt.Errorf("decode UTxO hex: %w", err)
		}
		var utxo ledger.Utxo
		if _, err := cbor.Decode(utxoCbor, &utxo); err != nil {
			return nil, fmt.Errorf("decode UTxO CBOR: %w", err)
		}
		ret = append(ret, utxo)
	}
	return ret, nil
}

// ChangeAddress fetches and decodes the wallet's change address
func ChangeAddress(ctx context.Context, w Wallet) (ledger.Address, error) {
	addrHex, err := w.GetChangeAddress(ctx)
	if err != nil {
		return ledger.Address{}, classifyWalletError(err)
	}
	addr, err := ledger.NewAddressFromHex(addrHex)
	if err != nil {
		return ledger.Address{}, fmt.Errorf(
			"decode change address: %w",
			err,
		)
	}
	return addr, nil
}

// SignTransaction asks the wallet to sign the transaction and returns the
// decoded witness set carrying the wallet's signatures
func SignTransaction(
	ctx context.Context,
	w Wallet,
	tx *ledger.Transaction,
	partialSign bool,
) (*ledger.WitnessSet, error) {
	txCbor, err := cbor.Encode(tx)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	witnessHex, err := w.SignTx(
		ctx,
		hex.EncodeToString(txCbor),
		partialSign,
	)
	if err != nil {
		return nil, classifyWalletError(err)
	}
	witnessCbor, err := hex.DecodeString(witnessHex)
	if err != nil {
		return nil, fmt.Errorf("decode witness set hex: %w", err)
	}
	var ws ledger.WitnessSet
	if _, err := cbor.Decode(witnessCbor, &ws); err != nil {
		return nil, fmt.Errorf("decode witness set CBOR: %w", err)
	}
	return &ws, nil
}
