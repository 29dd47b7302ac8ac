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
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/wallet"
)

// signAndSubmit has the wallet sign the finished transaction, merges the
// returned key witnesses, and submits. Submission goes through the wallet
// first and falls back to the chain gateway if the wallet cannot submit
func (s *Session) signAndSubmit(
	ctx context.Context,
	tx *ledger.Transaction,
	partialSign bool,
) (*Result, error) {
	ws, err := wallet.SignTransaction(ctx, s.wallet, tx, partialSign)
	if err != nil {
		return nil, err
	}
	// Merge only the key witnesses. Some wallets echo back datums or
	// scripts, and carrying those over would change the witness set the
	// script data hash was computed against
	tx.WitnessSet.VkeyWitnesses = append(
		tx.WitnessSet.VkeyWitnesses,
		ws.VkeyWitnesses...,
	)
	txCbor, err := cbor.Encode(tx)
	if err != nil {
		return nil, fmt.Errorf("encode signed transaction: %w", err)
	}
	txHash, err := tx.Hash()
	if err != nil {
		return nil, err
	}
	s.logger.Info(
		"submitting transaction",
		"tx_hash", txHash.String(),
		"size", len(txCbor),
	)
	submittedHash, err := s.wallet.SubmitTx(
		ctx,
		hex.EncodeToString(txCbor),
	)
	if err != nil {
		var declinedErr *wallet.UserDeclinedError
		if errors.As(err, &declinedErr) {
			return nil, err
		}
		s.logger.Warn(
			"wallet submission failed, falling back to gateway",
			"error", err,
		)
		submittedHash, err = s.gateway.SubmitTransaction(ctx, txCbor)
		if err != nil {
			return nil, err
		}
	}
	if submittedHash == "" {
		submittedHash = txHash.String()
	}
	return &Result{TxHash: submittedHash}, nil
}
