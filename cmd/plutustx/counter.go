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

package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/plutustx/counter"
	"github.com/blinklabs-io/plutustx/internal/config"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/spf13/cobra"
)

func counterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "counter [script-address]",
		Short: "Show the on-chain counter value",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := commonRun()
			bech32Addr := config.GetConfig().CounterAddress
			if len(args) > 0 {
				bech32Addr = args[0]
			}
			if bech32Addr == "" {
				slog.Error(
					"no counter script address configured (set PLUTUSTX_COUNTER_ADDRESS)",
				)
				os.Exit(1)
			}
			scriptAddress, err := ledger.NewAddress(bech32Addr)
			if err != nil {
				slog.Error("invalid counter address", "error", err)
				os.Exit(1)
			}
			gateway, err := newGateway(logger)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			utxos, err := gateway.AddressUtxos(
				cmd.Context(),
				scriptAddress.String(),
			)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			valid, poisoned := counter.ClassifyUtxos(utxos)
			if len(valid) == 0 {
				slog.Error(
					"no counter UTxO at script address",
					"address", scriptAddress.String(),
					"poisoned_utxos", len(poisoned),
				)
				os.Exit(1)
			}
			datumCbor, err := valid[0].InlineDatumBytes()
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			value, err := counter.DecodeValue(datumCbor)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			fmt.Printf("value: %d\n", value)
			fmt.Printf(
				"utxo:  %s#%d\n",
				valid[0].TxHash,
				valid[0].OutputIndex,
			)
			fmt.Printf("datum: %s\n", hex.EncodeToString(datumCbor))
			if len(poisoned) > 0 {
				fmt.Printf("poisoned utxos skipped: %d\n", len(poisoned))
			}
		},
	}
}
