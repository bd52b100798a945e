// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archive-network/internal/pipeline"
	"github.com/pdiddy/archive-network/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run extraction, adjacency and normalization in one pass",
	Long: `Run reads the input records, extracts canonical names, counts pairwise
co-occurrence, repairs isolated nodes and writes processed_data.json,
adjacency_matrix.json, d3_data.json and members.json to --out-dir.

Nothing is written when the input is malformed.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	summary, err := pipeline.Run(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Records:      %d (%d with names)\n", summary.Records, summary.Matched)
	fmt.Fprintf(os.Stdout, "Vocabulary:   %d\n", summary.Vocabulary)
	fmt.Fprintf(os.Stdout, "Edges:        %d (+%d repair)\n", summary.Edges, summary.RepairLinks)
	if summary.Central != "" {
		fmt.Fprintf(os.Stdout, "Central:      %s\n", summary.Central)
	}
	for i, name := range summary.Top {
		fmt.Fprintf(os.Stdout, "Top %-2d        %s\n", i+1, name)
	}
	return nil
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Tag each record with the canonical names it mentions",
	Long: `Extract scans the configured fields of every input record for alias
variants and keep-list names, and writes processed_data.json with
processedNames and processedLinks added to each record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		summary, err := pipeline.Extract(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d of %d records name someone (%d names)\n", summary.Matched, summary.Records, summary.Names)
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Count pairwise co-occurrence into adjacency_matrix.json",
	Long: `Build reads processed_data.json from --out-dir, assigns every name an
index in first-seen order and writes the symmetric co-occurrence matrix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		m, err := pipeline.Build(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d names\n", m.Size())
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Turn adjacency_matrix.json into a connected d3_data.json",
	Long: `Normalize reads adjacency_matrix.json from --out-dir, links every
isolated node to the most connected one and marks the top --top-k nodes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		res, err := pipeline.Normalize(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d nodes, %d links (%d repair)\n", len(res.Graph.Nodes), len(res.Graph.Links), res.RepairLinks)
		return nil
	},
}

func addInputFlags(cmd *cobra.Command) {
	d := pipeline.Defaults()
	cmd.Flags().String("input", d.Input, "JSON array of input records")
	cmd.Flags().StringSlice("fields", types.DefaultSearchFields, "record fields searched for names")
}

func addTopKFlag(cmd *cobra.Command) {
	cmd.Flags().Int("top-k", pipeline.Defaults().TopK, "number of nodes drawn in the highlight group")
}

func init() {
	addInputFlags(runCmd)
	addTopKFlag(runCmd)
	addInputFlags(extractCmd)
	addTopKFlag(normalizeCmd)

	rootCmd.AddCommand(runCmd, extractCmd, buildCmd, normalizeCmd)
}
