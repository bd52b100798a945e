// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract attaches canonical entity names and supporting links to
// captioned archive records.
package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/archive-network/pkg/types"
)

// fieldSeparator joins searched fields. A newline is never part of a
// pattern, so a phrase cannot match across the end of one field and the
// start of the next.
const fieldSeparator = "\n"

// NameFinder reports the canonical names mentioned in lowercase text.
// *names.Matcher is the production implementation.
type NameFinder interface {
	Match(text string) ([]string, error)
}

// Extractor scans records for known names.
type Extractor struct {
	finder NameFinder
	fields []string
}

// New returns an Extractor that searches the given record fields. An empty
// field list selects types.DefaultSearchFields.
func New(finder NameFinder, fields []string) *Extractor {
	if len(fields) == 0 {
		fields = types.DefaultSearchFields
	}
	return &Extractor{finder: finder, fields: fields}
}

// Summary holds counts from an extraction run.
type Summary struct {
	Records int
	Matched int
	Names   int
}

// Unmatched returns the number of records that named no kept entity.
func (s Summary) Unmatched() int {
	return s.Records - s.Matched
}

// SearchText builds the lowercase buffer searched for names: each present,
// non-empty field (arrays joined with spaces) lowercased and joined with a
// newline.
func (e *Extractor) SearchText(rec types.Record) string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		text, ok := rec.Text(f)
		if !ok {
			continue
		}
		parts = append(parts, strings.ToLower(text))
	}
	return strings.Join(parts, fieldSeparator)
}

// Record enriches one record.
func (e *Extractor) Record(rec types.Record) (types.EnrichedRecord, error) {
	found, err := e.finder.Match(e.SearchText(rec))
	if err != nil {
		return types.EnrichedRecord{}, err
	}
	if found == nil {
		found = []string{}
	}

	links := []string{}
	if link := rec.Link(); link != "" {
		links = append(links, link)
	}

	return types.EnrichedRecord{
		Record:         rec,
		ProcessedNames: found,
		ProcessedLinks: links,
	}, nil
}

// Extract enriches every record in order.
func (e *Extractor) Extract(records []types.Record) ([]types.EnrichedRecord, Summary, error) {
	out := make([]types.EnrichedRecord, 0, len(records))
	summary := Summary{Records: len(records)}
	distinct := make(map[string]bool)

	for i, rec := range records {
		enriched, err := e.Record(rec)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("record %d: %w", i, err)
		}
		if len(enriched.ProcessedNames) > 0 {
			summary.Matched++
		}
		for _, n := range enriched.ProcessedNames {
			distinct[n] = true
		}
		out = append(out, enriched)
	}

	summary.Names = len(distinct)
	return out, summary, nil
}
