// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/archive-network/internal/artifact"
	"github.com/pdiddy/archive-network/pkg/types"
)

const testNames = `aliases:
  Chairman Fred Hampton: Fred Hampton
keep:
  - Fred Hampton
  - David Hilliard
`

const twoRecords = `[
  {"filename":"1.jpg","title":"Chairman Fred Hampton and Chief David Hilliard speak","link":"a"},
  {"filename":"2.jpg","title":"David Hilliard alone","link":"b"}
]`

// setup writes the input and name table into a temp dir and returns a
// config that points at them.
func setup(t *testing.T, input string) types.PipelineConfig {
	t.Helper()
	dir := t.TempDir()
	namesPath := filepath.Join(dir, "names.yaml")
	inputPath := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(namesPath, []byte(testNames), 0o644))
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	cfg := Defaults()
	cfg.Input = inputPath
	cfg.NamesFile = namesPath
	cfg.OutDir = filepath.Join(dir, "out")
	return cfg
}

func readOut(t *testing.T, cfg types.PipelineConfig, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunTwoRecordExample(t *testing.T) {
	cfg := setup(t, twoRecords)

	summary, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{
		Records:    2,
		Matched:    2,
		Vocabulary: 2,
		Edges:      1,
		Central:    "Fred Hampton",
		Top:        []string{"Fred Hampton", "David Hilliard"},
	}, summary)

	assert.JSONEq(t, `[
	  {"filename":"1.jpg","title":"Chairman Fred Hampton and Chief David Hilliard speak","link":"a","processedNames":["Fred Hampton","David Hilliard"],"processedLinks":["a"]},
	  {"filename":"2.jpg","title":"David Hilliard alone","link":"b","processedNames":["David Hilliard"],"processedLinks":["b"]}
	]`, readOut(t, cfg, artifact.ProcessedFile))

	assert.JSONEq(t, `{
	  "names":["Fred Hampton","David Hilliard"],
	  "matrix":[
	    [{"count":0,"links":[]},{"count":1,"links":["a"]}],
	    [{"count":1,"links":["a"]},{"count":0,"links":[]}]
	  ]
	}`, readOut(t, cfg, artifact.MatrixFile))

	assert.JSONEq(t, `{
	  "nodes":[
	    {"id":0,"name":"Fred Hampton","group":2,"degree":1,"totalWeight":1},
	    {"id":1,"name":"David Hilliard","group":2,"degree":1,"totalWeight":1}
	  ],
	  "links":[{"source":0,"target":1,"value":1,"links":["a"]}]
	}`, readOut(t, cfg, artifact.GraphFile))

	members := readOut(t, cfg, artifact.MembersFile)
	assert.Contains(t, members, `"filename": "2.jpg"`)
}

func TestRunTwoRecordExampleDefaultTable(t *testing.T) {
	cfg := setup(t, twoRecords)
	cfg.NamesFile = ""

	summary, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Vocabulary)
	assert.Equal(t, 1, summary.Edges)
	assert.Zero(t, summary.RepairLinks)

	m, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fred Hampton", "David Hilliard"}, m.Names)

	g, err := ReadGraph(cfg)
	require.NoError(t, err)
	assert.Equal(t, []types.Link{{Source: 0, Target: 1, Value: 1, Links: []string{"a"}}}, g.Links)
	for _, n := range g.Nodes {
		assert.Equal(t, 1, n.Degree, n.Name)
		assert.Equal(t, 1, n.TotalWeight, n.Name)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := setup(t, twoRecords)

	_, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	first := map[string]string{}
	for _, name := range []string{artifact.ProcessedFile, artifact.MatrixFile, artifact.GraphFile, artifact.MembersFile} {
		first[name] = readOut(t, cfg, name)
	}

	_, err = Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	for name, want := range first {
		assert.Equal(t, want, readOut(t, cfg, name), name)
	}
}

func TestRunMalformedInputWritesNothing(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `[{"title":`},
		{"object at top level", `{"title":"Fred Hampton"}`},
		{"non-object entry", `[{"title":"Fred Hampton"}, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t, tt.input)

			_, err := Run(context.Background(), cfg, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrMalformedInput))
			_, statErr := os.Stat(cfg.OutDir)
			assert.True(t, os.IsNotExist(statErr), "output dir must not be created")
		})
	}
}

func TestRunCanceled(t *testing.T) {
	cfg := setup(t, twoRecords)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(cfg.OutDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingInput(t *testing.T) {
	cfg := setup(t, twoRecords)
	cfg.Input = filepath.Join(t.TempDir(), "missing.json")

	_, err := Run(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStagesMatchRun(t *testing.T) {
	cfg := setup(t, twoRecords)
	ctx := context.Background()

	_, err := Run(ctx, cfg, nil)
	require.NoError(t, err)
	want := readOut(t, cfg, artifact.GraphFile)

	staged := cfg
	staged.OutDir = filepath.Join(t.TempDir(), "staged")
	exSummary, err := Extract(ctx, staged, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, exSummary.Matched)

	m, err := Build(ctx, staged, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fred Hampton", "David Hilliard"}, m.Names)

	res, err := Normalize(ctx, staged, nil)
	require.NoError(t, err)
	assert.Zero(t, res.RepairLinks)

	assert.Equal(t, want, readOut(t, staged, artifact.GraphFile))
}

func TestStagesNeedPreviousArtifact(t *testing.T) {
	cfg := setup(t, twoRecords)

	_, err := Build(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Normalize(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMembers(t *testing.T) {
	cfg := setup(t, twoRecords)
	_, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	all, err := Members(cfg, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "David Hilliard", all[1].Name)
	assert.Len(t, all[1].Images, 2)

	key, err := Members(cfg, true)
	require.NoError(t, err)
	assert.Empty(t, key, "no node reaches the default weight")

	cfg.Members.MinWeight = 0
	key, err = Members(cfg, true)
	require.NoError(t, err)
	assert.Len(t, key, 2)
	require.NoError(t, WriteMembers(cfg, key))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Defaults()))

	tests := []struct {
		name   string
		mutate func(*types.PipelineConfig)
	}{
		{"empty input", func(c *types.PipelineConfig) { c.Input = "" }},
		{"empty out dir", func(c *types.PipelineConfig) { c.OutDir = "" }},
		{"negative top k", func(c *types.PipelineConfig) { c.TopK = -1 }},
		{"no fields", func(c *types.PipelineConfig) { c.Fields = nil }},
		{"blank field", func(c *types.PipelineConfig) { c.Fields = []string{"title", ""} }},
		{"negative min weight", func(c *types.PipelineConfig) { c.Members.MinWeight = -2 }},
		{"unknown log level", func(c *types.PipelineConfig) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestDefaultsAreIndependent(t *testing.T) {
	a := Defaults()
	a.Fields[0] = "changed"
	a.Members.NameContains[0] = "changed"

	b := Defaults()
	assert.Equal(t, types.DefaultSearchFields, b.Fields)
	assert.Equal(t, "Unidentified", b.Members.NameContains[0])
}

func TestLoadNames(t *testing.T) {
	table, err := LoadNames("")
	require.NoError(t, err)
	assert.True(t, table.Kept("Fred Hampton"))

	_, err = LoadNames(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
