// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gallery answers the questions the exploration views ask of the
// pipeline artifacts: which media show a person, who the key members are,
// who is associated with whom, and which items belong to a named gallery.
package gallery

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/archive-network/internal/names"
	"github.com/pdiddy/archive-network/pkg/types"
)

// DefaultMinWeight is the key-member total-weight threshold.
const DefaultMinWeight = 11

// DefaultNameContains selects members shown regardless of weight.
var DefaultNameContains = []string{"Unidentified"}

// AttachMedia pairs every graph node with the media items of the records
// that name it, in record order. Nodes keep the graph's order.
func AttachMedia(g types.Graph, records []types.EnrichedRecord) []types.Member {
	media := make(map[string][]types.MediaItem)
	for _, rec := range records {
		item := types.MediaItem{
			Filename:    rec.Filename(),
			Date:        rec.Date(),
			Title:       rec.Title(),
			Description: rec.Description(),
		}
		for _, name := range rec.ProcessedNames {
			media[name] = append(media[name], item)
		}
	}

	members := make([]types.Member, len(g.Nodes))
	for i, node := range g.Nodes {
		images := media[node.Name]
		if images == nil {
			images = []types.MediaItem{}
		}
		members[i] = types.Member{Node: node, Images: images}
	}
	return members
}

// KeyMembers returns the members whose total weight exceeds cfg.MinWeight
// or whose name contains one of cfg.NameContains.
func KeyMembers(members []types.Member, cfg types.MembersConfig) []types.Member {
	out := []types.Member{}
	for _, m := range members {
		if m.TotalWeight > cfg.MinWeight || containsAny(m.Name, cfg.NameContains) {
			out = append(out, m)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Associated returns the nodes sharing a link with id, in graph order.
func Associated(g types.Graph, id int) ([]types.Node, error) {
	if !slices.ContainsFunc(g.Nodes, func(n types.Node) bool { return n.ID == id }) {
		return nil, fmt.Errorf("%w: id %d", types.ErrNodeNotFound, id)
	}

	neighbors := make(map[int]bool)
	for _, l := range g.Links {
		switch id {
		case l.Source:
			neighbors[l.Target] = true
		case l.Target:
			neighbors[l.Source] = true
		}
	}
	delete(neighbors, id)

	out := []types.Node{}
	for _, n := range g.Nodes {
		if neighbors[n.ID] {
			out = append(out, n)
		}
	}
	return out, nil
}

// Lookup resolves ref to a node. ref may be a numeric id, a node name
// (case-insensitive), or, when table is non-nil, any variant the table
// resolves to a node name.
func Lookup(g types.Graph, ref string, table *names.Table) (types.Node, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		for _, n := range g.Nodes {
			if n.ID == id {
				return n, nil
			}
		}
		return types.Node{}, fmt.Errorf("%w: id %d", types.ErrNodeNotFound, id)
	}

	want := names.Normalize(ref)
	if table != nil {
		if canonical, ok := table.Resolve(ref); ok {
			want = names.Normalize(canonical)
		}
	}
	for _, n := range g.Nodes {
		if names.Normalize(n.Name) == want {
			return n, nil
		}
	}
	return types.Node{}, fmt.Errorf("%w: %q", types.ErrNodeNotFound, ref)
}

// ByGallery returns the records listed in the named gallery.
func ByGallery(records []types.Record, name string) []types.Record {
	out := []types.Record{}
	for _, rec := range records {
		if slices.Contains(rec.Galleries(), name) {
			out = append(out, rec)
		}
	}
	return out
}
