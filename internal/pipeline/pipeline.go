// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the extraction, adjacency and normalization stages
// in order and writes their artifacts. Every artifact of a run is computed
// and encoded before the first one is written, so malformed input leaves
// the output directory untouched.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pdiddy/archive-network/internal/adjacency"
	"github.com/pdiddy/archive-network/internal/artifact"
	"github.com/pdiddy/archive-network/internal/extract"
	"github.com/pdiddy/archive-network/internal/gallery"
	"github.com/pdiddy/archive-network/internal/names"
	"github.com/pdiddy/archive-network/internal/network"
	"github.com/pdiddy/archive-network/pkg/types"
)

// Summary holds counts from a full pipeline run.
type Summary struct {
	Records     int
	Matched     int
	Vocabulary  int
	Edges       int
	Isolates    int
	RepairLinks int
	Central     string
	Top         []string
}

// output is one artifact ready to be written.
type output struct {
	path string
	data []byte
}

func discardIfNil(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

func outPath(cfg types.PipelineConfig, name string) string {
	return filepath.Join(cfg.OutDir, name)
}

// encode marshals every document before anything touches the disk.
func encode(cfg types.PipelineConfig, docs map[string]any, order []string) ([]output, error) {
	outs := make([]output, 0, len(order))
	for _, name := range order {
		data, err := artifact.Marshal(docs[name])
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", name, err)
		}
		outs = append(outs, output{path: outPath(cfg, name), data: data})
	}
	return outs, nil
}

func writeAll(outs []output, logger *log.Logger) error {
	for _, o := range outs {
		if err := artifact.WriteFile(o.path, o.data); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "path", o.path, "bytes", len(o.data))
	}
	return nil
}

// readRecords loads and checks the input document. A top level that is not
// a list of objects is fatal.
func readRecords(path string) ([]types.Record, error) {
	data, err := artifact.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := types.ParseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func newExtractor(cfg types.PipelineConfig) (*extract.Extractor, error) {
	table, err := LoadNames(cfg.NamesFile)
	if err != nil {
		return nil, err
	}
	m, err := names.NewMatcher(table)
	if err != nil {
		return nil, err
	}
	return extract.New(m, cfg.Fields), nil
}

// Run executes all three stages and writes processed_data.json,
// adjacency_matrix.json, d3_data.json and members.json to cfg.OutDir.
func Run(ctx context.Context, cfg types.PipelineConfig, logger *log.Logger) (Summary, error) {
	logger = discardIfNil(logger).With("run", uuid.NewString())
	if err := Validate(cfg); err != nil {
		return Summary{}, err
	}

	ex, err := newExtractor(cfg)
	if err != nil {
		return Summary{}, err
	}
	records, err := readRecords(cfg.Input)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("loaded records", "input", cfg.Input, "records", len(records))

	enriched, exSummary, err := ex.Extract(records)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("extracted names", "matched", exSummary.Matched, "unmatched", exSummary.Unmatched(), "names", exSummary.Names)
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	matrix := adjacency.Build(enriched)
	edges := adjacency.Edges(matrix)
	logger.Info("built adjacency", "vocabulary", matrix.Size(), "edges", edges)
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	res, err := network.Normalize(matrix, network.Options{TopK: cfg.TopK})
	if err != nil {
		return Summary{}, err
	}
	summary := summarize(exSummary, matrix, edges, res)
	logger.Info("normalized graph", "isolates", summary.Isolates, "repair_links", summary.RepairLinks, "central", summary.Central)

	members := gallery.AttachMedia(res.Graph, enriched)

	outs, err := encode(cfg, map[string]any{
		artifact.ProcessedFile: enriched,
		artifact.MatrixFile:    matrix,
		artifact.GraphFile:     res.Graph,
		artifact.MembersFile:   members,
	}, []string{artifact.ProcessedFile, artifact.MatrixFile, artifact.GraphFile, artifact.MembersFile})
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if err := writeAll(outs, logger); err != nil {
		return Summary{}, err
	}

	logger.Info("pipeline complete", "out_dir", cfg.OutDir, "top", summary.Top)
	return summary, nil
}

func summarize(ex extract.Summary, m types.Matrix, edges int, res network.Result) Summary {
	s := Summary{
		Records:     ex.Records,
		Matched:     ex.Matched,
		Vocabulary:  m.Size(),
		Edges:       edges,
		Isolates:    len(res.Isolates),
		RepairLinks: res.RepairLinks,
		Top:         []string{},
	}
	if res.Central >= 0 {
		s.Central = m.Names[res.Central]
	}
	for _, n := range res.Graph.Nodes {
		if n.Group == types.GroupTop {
			s.Top = append(s.Top, n.Name)
		}
	}
	return s
}

// Extract runs the first stage alone: cfg.Input to processed_data.json.
func Extract(ctx context.Context, cfg types.PipelineConfig, logger *log.Logger) (extract.Summary, error) {
	logger = discardIfNil(logger)
	if err := Validate(cfg); err != nil {
		return extract.Summary{}, err
	}
	ex, err := newExtractor(cfg)
	if err != nil {
		return extract.Summary{}, err
	}
	records, err := readRecords(cfg.Input)
	if err != nil {
		return extract.Summary{}, err
	}

	enriched, summary, err := ex.Extract(records)
	if err != nil {
		return extract.Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return extract.Summary{}, err
	}
	if err := artifact.WriteJSON(outPath(cfg, artifact.ProcessedFile), enriched); err != nil {
		return extract.Summary{}, err
	}
	logger.Info("extracted names", "records", summary.Records, "matched", summary.Matched, "names", summary.Names)
	return summary, nil
}

// Build runs the second stage alone: processed_data.json to
// adjacency_matrix.json.
func Build(ctx context.Context, cfg types.PipelineConfig, logger *log.Logger) (types.Matrix, error) {
	logger = discardIfNil(logger)
	enriched, err := ReadEnriched(cfg)
	if err != nil {
		return types.Matrix{}, err
	}

	matrix := adjacency.Build(enriched)
	if err := ctx.Err(); err != nil {
		return types.Matrix{}, err
	}
	if err := artifact.WriteJSON(outPath(cfg, artifact.MatrixFile), matrix); err != nil {
		return types.Matrix{}, err
	}
	logger.Info("built adjacency", "vocabulary", matrix.Size(), "edges", adjacency.Edges(matrix))
	return matrix, nil
}

// Normalize runs the third stage alone: adjacency_matrix.json to
// d3_data.json.
func Normalize(ctx context.Context, cfg types.PipelineConfig, logger *log.Logger) (network.Result, error) {
	logger = discardIfNil(logger)
	var matrix types.Matrix
	if err := artifact.ReadJSON(outPath(cfg, artifact.MatrixFile), &matrix); err != nil {
		return network.Result{}, err
	}

	res, err := network.Normalize(matrix, network.Options{TopK: cfg.TopK})
	if err != nil {
		return network.Result{}, fmt.Errorf("%s: %w", artifact.MatrixFile, err)
	}
	if err := ctx.Err(); err != nil {
		return network.Result{}, err
	}
	if err := artifact.WriteJSON(outPath(cfg, artifact.GraphFile), res.Graph); err != nil {
		return network.Result{}, err
	}
	logger.Info("normalized graph", "nodes", len(res.Graph.Nodes), "links", len(res.Graph.Links), "repair_links", res.RepairLinks)
	return res, nil
}

// ReadEnriched loads processed_data.json from cfg.OutDir.
func ReadEnriched(cfg types.PipelineConfig) ([]types.EnrichedRecord, error) {
	path := outPath(cfg, artifact.ProcessedFile)
	data, err := artifact.ReadFile(path)
	if err != nil {
		return nil, err
	}
	enriched, err := types.ParseEnrichedRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return enriched, nil
}

// ReadGraph loads d3_data.json from cfg.OutDir.
func ReadGraph(cfg types.PipelineConfig) (types.Graph, error) {
	var g types.Graph
	if err := artifact.ReadJSON(outPath(cfg, artifact.GraphFile), &g); err != nil {
		return types.Graph{}, err
	}
	return g, nil
}

// Members attaches media to the graph stored in cfg.OutDir and optionally
// keeps only key members.
func Members(cfg types.PipelineConfig, keyOnly bool) ([]types.Member, error) {
	g, err := ReadGraph(cfg)
	if err != nil {
		return nil, err
	}
	enriched, err := ReadEnriched(cfg)
	if err != nil {
		return nil, err
	}
	members := gallery.AttachMedia(g, enriched)
	if keyOnly {
		members = gallery.KeyMembers(members, cfg.Members)
	}
	return members, nil
}

// WriteMembers writes members.json to cfg.OutDir.
func WriteMembers(cfg types.PipelineConfig, members []types.Member) error {
	return artifact.WriteJSON(outPath(cfg, artifact.MembersFile), members)
}
