// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// metaChars are escaped before a name is embedded in a pattern.
const metaChars = `-/\^$*+?.()|[]{}`

// Escape backslash-escapes every pattern metacharacter in s.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(metaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// wordPattern compiles a case-insensitive whole-word or whole-phrase
// matcher for name. Word boundaries follow ECMAScript rules: a boundary sits
// between an ASCII word character and anything else, so internal spaces of
// a phrase must match literally and "hampton" does not match inside
// "hamptonville".
func wordPattern(name string) (*regexp2.Regexp, error) {
	expr := `\b` + Escape(Normalize(name)) + `\b`
	re, err := regexp2.Compile(expr, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern for %q: %w", name, err)
	}
	return re, nil
}

type rule struct {
	re        *regexp2.Regexp
	canonical string
}

// Matcher finds canonical names in text. All patterns are compiled once by
// NewMatcher; a Matcher is read-only afterwards.
type Matcher struct {
	aliases []rule
	keep    []rule
	table   *Table
}

// NewMatcher compiles one pattern per alias variant and one per keep-set
// name. Aliases whose canonical name is not kept are dropped here since
// they can never contribute a match.
func NewMatcher(t *Table) (*Matcher, error) {
	m := &Matcher{table: t}
	for _, a := range t.Aliases {
		if !t.Kept(a.Canonical) {
			continue
		}
		re, err := wordPattern(a.Variant)
		if err != nil {
			return nil, err
		}
		m.aliases = append(m.aliases, rule{re: re, canonical: a.Canonical})
	}
	for _, name := range t.Keep {
		re, err := wordPattern(name)
		if err != nil {
			return nil, err
		}
		m.keep = append(m.keep, rule{re: re, canonical: name})
	}
	return m, nil
}

// Table returns the name table the matcher was built from.
func (m *Matcher) Table() *Table {
	return m.table
}

// Match returns the kept canonical names mentioned in text, each once,
// ordered by where the earliest variant of each name starts. Names found
// at the same offset keep rule order: aliases in table order, then the
// keep-set.
func (m *Matcher) Match(text string) ([]string, error) {
	found := []string{}
	if text == "" {
		return found, nil
	}
	first := make(map[string]int)
	for _, rules := range [][]rule{m.aliases, m.keep} {
		for _, r := range rules {
			hit, err := r.re.FindStringMatch(text)
			if err != nil {
				return nil, fmt.Errorf("matching %q: %w", r.canonical, err)
			}
			if hit == nil {
				continue
			}
			at, seen := first[r.canonical]
			if !seen {
				found = append(found, r.canonical)
				first[r.canonical] = hit.Index
			} else if hit.Index < at {
				first[r.canonical] = hit.Index
			}
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return first[found[i]] < first[found[j]]
	})
	return found, nil
}
