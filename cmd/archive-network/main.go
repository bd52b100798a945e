// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the archive-network CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archive-network/internal/pipeline"
	"github.com/pdiddy/archive-network/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE once flags and config are read.
var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

// rootCmd is the base command for the archive-network CLI.
var rootCmd = &cobra.Command{
	Use:   "archive-network",
	Short: "Build a co-occurrence network from captioned archive images",
	Long: `archive-network scans archival image records for the people and
organizations they name, counts how often each pair appears in the same
record, and writes a connected force-layout graph.

The stages are extract, build and normalize. run executes all three and
writes processed_data.json, adjacency_matrix.json, d3_data.json and
members.json to the output directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := viper.GetString("log.level")
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
		logger.SetLevel(lvl)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./archive-network.yaml or ~/.config/archive-network/archive-network.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("out-dir", ".", "directory holding the pipeline artifacts")
	pf.String("names-file", "", "YAML alias table and keep list (default: built-in table)")

	setDefaults(pipeline.Defaults())
}

// setDefaults registers every config key so file values and environment
// variables reach viper.Unmarshal.
func setDefaults(d types.PipelineConfig) {
	viper.SetDefault("input", d.Input)
	viper.SetDefault("out_dir", d.OutDir)
	viper.SetDefault("names_file", d.NamesFile)
	viper.SetDefault("top_k", d.TopK)
	viper.SetDefault("fields", d.Fields)
	viper.SetDefault("members.min_weight", d.Members.MinWeight)
	viper.SetDefault("members.name_contains", d.Members.NameContains)
	viper.SetDefault("log.level", d.Log.Level)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using process environment")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("archive-network")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "archive-network"))
		}
	}

	viper.SetEnvPrefix("ARCHIVE_NETWORK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
