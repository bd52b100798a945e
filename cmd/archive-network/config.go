// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archive-network/internal/pipeline"
	"github.com/pdiddy/archive-network/pkg/types"
)

// flagKeys maps flag names to the config keys they override. Several
// subcommands declare the same flag, so binding happens per invocation.
var flagKeys = map[string]string{
	"input":      "input",
	"out-dir":    "out_dir",
	"names-file": "names_file",
	"top-k":      "top_k",
	"fields":     "fields",
	"min-weight": "members.min_weight",
}

// loadConfig assembles the pipeline configuration from defaults, the config
// file, ARCHIVE_NETWORK_* environment variables and cmd's flags, in
// increasing precedence.
func loadConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return types.PipelineConfig{}, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := pipeline.Validate(cfg); err != nil {
		return types.PipelineConfig{}, err
	}
	return cfg, nil
}
