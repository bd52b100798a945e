// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adjacency builds the symmetric co-occurrence matrix over the
// canonical names found in enriched records.
package adjacency

import (
	"fmt"
	"slices"

	"github.com/pdiddy/archive-network/pkg/types"
)

// Vocabulary returns every canonical name in the records, each once, in
// order of first appearance.
func Vocabulary(records []types.EnrichedRecord) []string {
	vocab := []string{}
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, name := range rec.ProcessedNames {
			if seen[name] {
				continue
			}
			seen[name] = true
			vocab = append(vocab, name)
		}
	}
	return vocab
}

// Build returns the vocabulary and an N×N matrix in which cell (i, j)
// counts the records naming both vocab[i] and vocab[j] and lists those
// records' links. Each record adds at most one to a pair, however often the
// names repeat in its text. The diagonal stays empty.
func Build(records []types.EnrichedRecord) types.Matrix {
	vocab := Vocabulary(records)
	index := make(map[string]int, len(vocab))
	for i, name := range vocab {
		index[name] = i
	}

	n := len(vocab)
	cells := make([][]types.Cell, n)
	for i := range cells {
		cells[i] = make([]types.Cell, n)
		for j := range cells[i] {
			cells[i][j].Links = []string{}
		}
	}

	for _, rec := range records {
		ids := uniqueIndices(rec.ProcessedNames, index)
		if len(ids) < 2 {
			continue
		}
		for x := 0; x < len(ids); x++ {
			for y := x + 1; y < len(ids); y++ {
				a, b := ids[x], ids[y]
				cells[a][b].Count++
				cells[b][a].Count++
				cells[a][b].Links = append(cells[a][b].Links, rec.ProcessedLinks...)
				cells[b][a].Links = append(cells[b][a].Links, rec.ProcessedLinks...)
			}
		}
	}

	return types.Matrix{Names: vocab, Cells: cells}
}

// uniqueIndices maps names to vocabulary indices, dropping repeats so a
// record read back from disk with a duplicated name cannot produce a
// self-pair.
func uniqueIndices(names []string, index map[string]int) []int {
	ids := make([]int, 0, len(names))
	seen := make(map[int]bool, len(names))
	for _, name := range names {
		i := index[name]
		if seen[i] {
			continue
		}
		seen[i] = true
		ids = append(ids, i)
	}
	return ids
}

// Edges returns the number of unordered pairs with a non-zero count.
func Edges(m types.Matrix) int {
	edges := 0
	for i := range m.Cells {
		for j := i + 1; j < len(m.Cells[i]); j++ {
			if m.Cells[i][j].Count > 0 {
				edges++
			}
		}
	}
	return edges
}

// Validate checks that m is square over its names, has an empty diagonal,
// and is symmetric in both counts and links.
func Validate(m types.Matrix) error {
	n := len(m.Names)
	if len(m.Cells) != n {
		return fmt.Errorf("%w: %d names but %d rows", types.ErrInvalidMatrix, n, len(m.Cells))
	}
	seen := make(map[string]bool, n)
	for _, name := range m.Names {
		if seen[name] {
			return fmt.Errorf("%w: duplicate name %q", types.ErrInvalidMatrix, name)
		}
		seen[name] = true
	}
	for i, row := range m.Cells {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", types.ErrInvalidMatrix, i, len(row), n)
		}
		if row[i].Count != 0 {
			return fmt.Errorf("%w: self-pair at %d", types.ErrInvalidMatrix, i)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := m.Cells[i][j], m.Cells[j][i]
			if a.Count < 0 || a.Count != b.Count || !slices.Equal(a.Links, b.Links) {
				return fmt.Errorf("%w: cells (%d,%d) and (%d,%d) differ", types.ErrInvalidMatrix, i, j, j, i)
			}
		}
	}
	return nil
}
