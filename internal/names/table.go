// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names holds the hand-curated alias table and keep-set that map
// name variants in captions to canonical people and organizations, and the
// whole-word matcher compiled from them.
package names

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed default_names.yaml
var defaultNames []byte

// Alias maps one textual variant to its canonical name.
type Alias struct {
	Variant   string
	Canonical string
}

// AliasTable is an ordered list of aliases. It decodes from a YAML mapping
// and keeps document order, which fixes the order names are discovered in.
type AliasTable []Alias

// UnmarshalYAML decodes a mapping of variant to canonical name.
func (t *AliasTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: aliases must be a mapping of variant to canonical name", node.Line)
	}
	out := make(AliasTable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: alias entries must map a name to a name", k.Line)
		}
		out = append(out, Alias{Variant: k.Value, Canonical: v.Value})
	}
	*t = out
	return nil
}

// Table is the static name configuration: the alias table plus the set of
// canonical names allowed into the graph.
type Table struct {
	Aliases AliasTable `yaml:"aliases"`
	Keep    []string   `yaml:"keep"`

	keep  map[string]bool
	index map[string]string
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Parse decodes and checks a YAML name table. Empty variants, empty
// canonical names, and a variant mapped to two different canonical names
// are rejected. Repeated keep-set entries are collapsed.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing name table: %w", err)
	}

	t.index = make(map[string]string, len(t.Aliases))
	for _, a := range t.Aliases {
		key := Normalize(a.Variant)
		if key == "" {
			return nil, fmt.Errorf("alias for %q has an empty variant", a.Canonical)
		}
		if strings.TrimSpace(a.Canonical) == "" {
			return nil, fmt.Errorf("alias %q has an empty canonical name", a.Variant)
		}
		if prev, ok := t.index[key]; ok && prev != a.Canonical {
			return nil, fmt.Errorf("alias %q maps to both %q and %q", a.Variant, prev, a.Canonical)
		}
		t.index[key] = a.Canonical
	}

	t.keep = make(map[string]bool, len(t.Keep))
	keep := make([]string, 0, len(t.Keep))
	for _, name := range t.Keep {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("keep-set contains an empty name")
		}
		if t.keep[name] {
			continue
		}
		t.keep[name] = true
		keep = append(keep, name)
	}
	t.Keep = keep

	return &t, nil
}

// Load reads a YAML name table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading name table %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the built-in name table.
func Default() (*Table, error) {
	return Parse(defaultNames)
}

// Kept reports whether canonical is in the keep-set.
func (t *Table) Kept(canonical string) bool {
	return t.keep[canonical]
}

// Resolve maps a variant or canonical name to the canonical name it stands
// for. Variants are compared after Normalize. A keep-set name resolves to
// itself. ok is false when the name is unknown or its canonical target is
// not kept.
func (t *Table) Resolve(name string) (canonical string, ok bool) {
	key := Normalize(name)
	if c, found := t.index[key]; found && t.keep[c] {
		return c, true
	}
	for _, k := range t.Keep {
		if Normalize(k) == key {
			return k, true
		}
	}
	return "", false
}
