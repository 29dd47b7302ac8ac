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

	"github.com/blinklabs-io/plutustx/dao"
	"github.com/blinklabs-io/plutustx/internal/config"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/spf13/cobra"
)

func proposalsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "proposals [script-address]",
		Short: "List live DAO proposals and their tallies",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := commonRun()
			bech32Addr := config.GetConfig().DaoAddress
			if len(args) > 0 {
				bech32Addr = args[0]
			}
			if bech32Addr == "" {
				slog.Error(
					"no DAO script address configured (set PLUTUSTX_DAO_ADDRESS)",
				)
				os.Exit(1)
			}
			scriptAddress, err := ledger.NewAddress(bech32Addr)
			if err != nil {
				slog.Error("invalid DAO address", "error", err)
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
			found := 0
			for _, utxo := range utxos {
				datumCbor, err := utxo.InlineDatumBytes()
				if err != nil || len(datumCbor) == 0 {
					continue
				}
				proposal, err := dao.DecodeProposal(datumCbor)
				if err != nil {
					logger.Debug(
						"skipping script UTxO without proposal datum",
						"tx_hash", utxo.TxHash,
						"output_index", utxo.OutputIndex,
					)
					continue
				}
				if found > 0 {
					fmt.Println()
				}
				found++
				fmt.Printf("utxo:        %s#%d\n", utxo.TxHash, utxo.OutputIndex)
				fmt.Printf("policy:      %s\n", hex.EncodeToString(proposal.PolicyId))
				fmt.Printf("title:       %s\n", proposal.Title)
				fmt.Printf("description: %s\n", proposal.Description)
				fmt.Printf(
					"tallies:     yes=%d no=%d appeal=%d\n",
					proposal.Yes,
					proposal.No,
					proposal.Appeal,
				)
			}
			if found == 0 {
				fmt.Println("no proposals found")
			}
		},
	}
}
