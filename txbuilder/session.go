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

// Package txbuilder assembles, evaluates, signs, and submits Cardano
// transactions against a CIP-30 wallet and a chain gateway
package txbuilder

import (
	"context"
	"io"
	"log/slog"

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/ledger"
	"github.com/blinklabs-io/plutustx/wallet"
)

const (
	// Validity window applied to every transaction, in slots past the
	// current chain tip
	ttlWindowSlots = 600

	// Fee margin applied on top of the computed minimum fee
	feeMarginPercent = 10

	// Smallest change output worth creating
	minChangeLovelace = 1_000_000

	// Minimum value of a UTxO picked as fallback collateral
	minCollateralLovelace = 5_000_000

	// Headroom required of a funding UTxO beyond the payment amount, to
	// cover the fee and a minimum change output
	fundingBufferLovelace = 3_000_000
)

// Evaluation runs against a draft transaction, so the draft carries a
// deliberately oversized budget that any reasonable script fits inside
var placeholderExUnits = ledger.ExUnits{
	Memory: 1_000_000,
	Steps:  500_000_000,
}

// ChainGateway is the chain query and submission surface the builder needs.
// *blockfrost.Client satisfies it
type ChainGateway interface {
	LatestBlock(ctx context.Context) (*blockfrost.Block, error)
	AddressUtxos(
		ctx context.Context,
		address string,
	) ([]blockfrost.AddressUtxo, error)
	ScriptCbor(ctx context.Context, scriptHash string) ([]byte, error)
	ProtocolParameters(
		ctx context.Context,
	) (*ledger.ProtocolParameters, error)
	EvaluateTransaction(
		ctx context.Context,
		txCbor []byte,
	) ([]blockfrost.RedeemerBudget, error)
	SubmitTransaction(
		ctx context.Context,
		txCbor []byte,
	) (string, error)
}

// Session ties a wallet connection to a chain gateway for the lifetime of a
// user interaction
type Session struct {
	wallet  wallet.Wallet
	gateway ChainGateway
	logger  *slog.Logger
}

func NewSession(
	w wallet.Wallet,
	gateway ChainGateway,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Session{
		wallet:  w,
		gateway: gateway,
		logger:  logger.With("component", "txbuilder"),
	}
}

func (s *Session) Wallet() wallet.Wallet {
	return s.wallet
}

func (s *Session) Gateway() ChainGateway {
	return s.gateway
}

// Result describes a submitted transaction
type Result struct {
	TxHash string
}

// ResolveScriptAtAddress fetches the script deployed at a script address and
// resolves its byte framing and language against the address's script hash
func (s *Session) ResolveScriptAtAddress(
	ctx context.Context,
	scriptAddress ledger.Address,
) (ledger.PlutusScript, error) {
	if !scriptAddress.PaymentScript() {
		return ledger.PlutusScript{}, ErrNotScriptAddress
	}
	expectedHash := scriptAddress.PaymentHash()
	rawBytes, err := s.gateway.ScriptCbor(ctx, expectedHash.String())
	if err != nil {
		return ledger.PlutusScript{}, err
	}
	resolved, err := ledger.ResolveScript(rawBytes, expectedHash)
	if err != nil {
		return ledger.PlutusScript{}, err
	}
	s.logger.Debug(
		"resolved script",
		"hash", expectedHash.String(),
		"language", resolved.Script.Language.String(),
		"unwrap_depth", resolved.UnwrapDepth,
	)
	return resolved.Script, nil
}

// currentTtl computes the absolute slot past which built transactions expire
func (s *Session) currentTtl(ctx context.Context) (uint64, error) {
	tip, err := s.gateway.LatestBlock(ctx)
	if err != nil {
		return 0, err
	}
	return tip.Slot + ttlWindowSlots, nil
}
