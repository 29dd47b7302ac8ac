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

package blockfrost

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/blinklabs-io/plutustx/ledger"
)

// Block is the chain tip summary returned by /blocks/latest
type Block struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
	Slot   uint64 `json:"slot"`
}

func (c *Client) LatestBlock(ctx context.Context) (*Block, error) {
	var block Block
	if err := c.get(ctx, "/blocks/latest", &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// TxAmount is a single asset quantity within a UTxO
type TxAmount struct {
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
}

// AddressUtxo is a UTxO at an address as reported by Blockfrost
type AddressUtxo struct {
	TxHash              string     `json:"tx_hash"`
	OutputIndex         uint32     `json:"output_index"`
	Amount              []TxAmount `json:"amount"`
	Block               string     `json:"block"`
	DataHash            string     `json:"data_hash"`
	InlineDatum         string     `json:"inline_datum"`
	ReferenceScriptHash string     `json:"reference_script_hash"`
}

// Input returns the UTxO reference as a transaction input
func (u AddressUtxo) Input() (ledger.TransactionInput, error) {
	return ledger.NewTransactionInput(u.TxHash, u.OutputIndex)
}

// Lovelace returns the ADA quantity of the UTxO
func (u AddressUtxo) Lovelace() (uint64, error) {
	for _, amount := range u.Amount {
		if amount.Unit == "lovelace" {
			return strconv.ParseUint(amount.Quantity, 10, 64)
		}
	}
	return 0, errors.New("no lovelace amount in UTxO")
}

// HasNativeAssets returns true if the UTxO carries anything besides ADA
func (u AddressUtxo) HasNativeAssets() bool {
	for _, amount := range u.Amount {
		if amount.Unit != "lovelace" {
			return true
		}
	}
	return false
}

// InlineDatumBytes returns the decoded inline datum, or nil when the UTxO
// has none
func (u AddressUtxo) InlineDatumBytes() ([]byte, error) {
	if u.InlineDatum == "" {
		return nil, nil
	}
	return hex.DecodeString(u.InlineDatum)
}

// AddressUtxos returns the UTxOs at an address. An address Blockfrost has
// never seen returns 404, which simply means the address holds nothing
func (c *Client) AddressUtxos(
	ctx context.Context,
	address string,
) ([]AddressUtxo, error) {
	var utxos []AddressUtxo
	err := c.get(ctx, "/addresses/"+address+"/utxos", &utxos)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) &&
			apiErr.StatusCode == http.StatusNotFound {
			return []AddressUtxo{}, nil
		}
		return nil, err
	}
	return utxos, nil
}

// ScriptCbor fetches the raw CBOR bytes of an on-chain script
func (c *Client) ScriptCbor(
	ctx context.Context,
	scriptHash string,
) ([]byte, error) {
	var tmpScript struct {
		Cbor string `json:"cbor"`
	}
	err := c.get(ctx, "/scripts/"+scriptHash+"/cbor", &tmpScript)
	if err != nil {
		return nil, err
	}
	if tmpScript.Cbor == "" {
		return nil, fmt.Errorf(
			"script %s has no CBOR representation",
			scriptHash,
		)
	}
	scriptBytes, err := hex.DecodeString(tmpScript.Cbor)
	if err != nil {
		return nil, fmt.Errorf(
			"decode script CBOR for %s: %w",
			scriptHash,
			err,
		)
	}
	return scriptBytes, nil
}
