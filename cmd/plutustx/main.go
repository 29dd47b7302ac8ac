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
	"os"

	"github.com/blinklabs-io/plutustx/blockfrost"
	"github.com/blinklabs-io/plutustx/internal/config"

	"github.com/spf13/cobra"
)

const programName = "plutustx"

var globalFlags = struct {
	debug bool
}{}

func commonRun() *slog.Logger {
	logLevel := slog.LevelInfo
	if globalFlags.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

func newGateway(logger *slog.Logger) (*blockfrost.Client, error) {
	cfg := config.GetConfig()
	if cfg.BlockfrostProjectId == "" {
		return nil, fmt.Errorf(
			"no Blockfrost project ID configured (set PLUTUSTX_BLOCKFROST_PROJECT_ID)",
		)
	}
	return blockfrost.NewClient(
		cfg.BlockfrostUrl,
		cfg.BlockfrostProjectId,
		logger,
	), nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Inspect Plutus contract state through Blockfrost",
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	}

	// Subcommands
	rootCmd.AddCommand(tipCommand())
	rootCmd.AddCommand(parametersCommand())
	rootCmd.AddCommand(counterCommand())
	rootCmd.AddCommand(proposalsCommand())

	// Execute cobra command
	if err := rootCmd.Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}
