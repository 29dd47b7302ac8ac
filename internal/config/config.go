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

package config

import (
	"fmt"

	"github.com/blinklabs-io/plutustx/blockfrost"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Network             string `split_words:"true"`
	BlockfrostUrl       string `envconfig:"BLOCKFROST_URL"`
	BlockfrostProjectId string `envconfig:"BLOCKFROST_PROJECT_ID"`
	CounterAddress      string `split_words:"true"`
	DaoAddress          string `split_words:"true"`
}

var globalConfig = &Config{
	Network: "preprod",
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Network: "preprod",
	}
	if err := envconfig.Process("plutustx", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if cfg.BlockfrostUrl == "" {
		baseUrl, err := networkBaseUrl(cfg.Network)
		if err != nil {
			return nil, err
		}
		cfg.BlockfrostUrl = baseUrl
	}
	globalConfig = cfg
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}

func networkBaseUrl(network string) (string, error) {
	switch network {
	case "mainnet":
		return blockfrost.MainnetBaseUrl, nil
	case "preprod":
		return blockfrost.PreprodBaseUrl, nil
	case "preview":
		return blockfrost.PreviewBaseUrl, nil
	}
	return "", fmt.Errorf("unknown network: %q", network)
}
