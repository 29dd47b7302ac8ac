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
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

func tipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tip",
		Short: "Show the latest block on the configured network",
		Run: func(cmd *cobra.Command, args []string) {
			logger := commonRun()
			gateway, err := newGateway(logger)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			block, err := gateway.LatestBlock(cmd.Context())
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			fmt.Printf("hash:   %s\n", block.Hash)
			fmt.Printf("height: %d\n", block.Height)
			fmt.Printf("slot:   %d\n", block.Slot)
		},
	}
}

func parametersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parameters",
		Short: "Show the fee-relevant protocol parameters",
		Run: func(cmd *cobra.Command, args []string) {
			logger := commonRun()
			gateway, err := newGateway(logger)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			pparams, err := gateway.ProtocolParameters(cmd.Context())
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			fmt.Printf("min fee a:             %d\n", pparams.MinFeeA)
			fmt.Printf("min fee b:             %d\n", pparams.MinFeeB)
			fmt.Printf("max tx size:           %d\n", pparams.MaxTxSize)
			fmt.Printf("price mem:             %s\n", pparams.PriceMem.RatString())
			fmt.Printf("price step:            %s\n", pparams.PriceStep.RatString())
			fmt.Printf("max tx ex mem:         %d\n", pparams.MaxTxExMem)
			fmt.Printf("max tx ex steps:       %d\n", pparams.MaxTxExSteps)
			fmt.Printf("collateral percentage: %d\n", pparams.CollateralPercentage)
			languages := slices.Sorted(maps.Keys(pparams.CostModels))
			for _, language := range languages {
				fmt.Printf(
					"cost model %s:  %d operations\n",
					language,
					len(pparams.CostModels[language]),
				)
			}
		},
	}
}
