// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archive-network/internal/artifact"
	"github.com/pdiddy/archive-network/internal/gallery"
	"github.com/pdiddy/archive-network/internal/pipeline"
	"github.com/pdiddy/archive-network/pkg/types"
)

// --- members subcommand ---

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List graph nodes with the media that name them",
	Long: `Members pairs every node of d3_data.json with the records in
processed_data.json that name it. By default only key members are listed:
nodes whose total weight exceeds --min-weight or whose name contains one
of members.name_contains. Use --all to list every node and --write to
save the list as members.json.`,
	RunE: runMembers,
}

func runMembers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

	members, err := pipeline.Members(cfg, !all)
	if err != nil {
		return err
	}

	if write, _ := cmd.Flags().GetBool("write"); write {
		if err := pipeline.WriteMembers(cfg, members); err != nil {
			return err
		}
		logger.Info("wrote members", "path", artifact.MembersFile, "members", len(members))
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(members)
	}

	if len(members) == 0 {
		fmt.Println("No members found.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-4s  %-40s  %-6s  %-6s  %s\n", "ID", "Name", "Degree", "Weight", "Images")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, m := range members {
		fmt.Fprintf(os.Stdout, "%-4d  %-40s  %-6d  %-6d  %d\n", m.ID, truncate(m.Name, 40), m.Degree, m.TotalWeight, len(m.Images))
	}
	fmt.Fprintf(os.Stdout, "\n%d members\n", len(members))
	return nil
}

// --- associated subcommand ---

var associatedCmd = &cobra.Command{
	Use:   "associated <id|name>",
	Short: "List the people linked to one node",
	Long: `Associated resolves a node by numeric id, by name, or by any alias in
the name table, and lists every node that shares a link with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssociated,
}

func runAssociated(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	table, err := pipeline.LoadNames(cfg.NamesFile)
	if err != nil {
		return err
	}
	g, err := pipeline.ReadGraph(cfg)
	if err != nil {
		return err
	}

	node, err := gallery.Lookup(g, args[0], table)
	if err != nil {
		return err
	}
	nodes, err := gallery.Associated(g, node.ID)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(nodes)
	}
	fmt.Fprintf(os.Stdout, "%s (id %d, degree %d)\n", node.Name, node.ID, node.Degree)
	for _, n := range nodes {
		fmt.Fprintf(os.Stdout, "  %-4d  %s\n", n.ID, n.Name)
	}
	return nil
}

// --- gallery subcommand ---

var galleryCmd = &cobra.Command{
	Use:   "gallery <name>",
	Short: "List the input records filed under a gallery",
	Args:  cobra.ExactArgs(1),
	RunE:  runGallery,
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := artifact.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	records, err := types.ParseRecords(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}

	matched := gallery.ByGallery(records, args[0])
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(matched)
	}
	if len(matched) == 0 {
		fmt.Printf("No records in gallery %q.\n", args[0])
		return nil
	}
	for _, rec := range matched {
		fmt.Fprintf(os.Stdout, "%-30s  %-12s  %s\n", truncate(rec.Filename(), 30), rec.Date(), rec.Title())
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", len(matched))
	return nil
}

func printJSON(v any) error {
	data, err := artifact.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	membersCmd.Flags().Int("min-weight", pipeline.Defaults().Members.MinWeight, "list nodes whose total weight exceeds this")
	membersCmd.Flags().Bool("all", false, "list every node, not only key members")
	membersCmd.Flags().Bool("json", false, "output members as JSON")
	membersCmd.Flags().Bool("write", false, "write members.json to --out-dir")

	associatedCmd.Flags().Bool("json", false, "output nodes as JSON")

	galleryCmd.Flags().String("input", pipeline.Defaults().Input, "JSON array of input records")
	galleryCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(membersCmd, associatedCmd, galleryCmd)
}
