// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package network turns the co-occurrence matrix into the node and link
// lists drawn by the force layout. Isolated nodes are tied to the heaviest
// node so the layout has a single component, and the top-K nodes by total
// weight are flagged for distinct styling.
package network

import (
	"slices"
	"sort"

	"github.com/pdiddy/archive-network/internal/adjacency"
	"github.com/pdiddy/archive-network/pkg/types"
)

// DefaultTopK is the number of nodes placed in types.GroupTop.
const DefaultTopK = 5

// repairWeight is the value of a synthetic link attaching an isolate.
const repairWeight = 1

// Options controls normalization.
type Options struct {
	// TopK nodes by total weight get types.GroupTop. Values below zero
	// count as zero.
	TopK int
}

// Result is a normalized graph plus what the repair step did.
type Result struct {
	Graph types.Graph

	// Central is the id of the node isolates were attached to, or -1 for
	// an empty vocabulary.
	Central int

	// Isolates lists the ids that had no link before repair, in
	// vocabulary order.
	Isolates []int

	// RepairLinks is the number of synthetic links added.
	RepairLinks int
}

// Normalize converts m into a graph.
//
// Nodes are created in vocabulary order and one link is emitted per pair
// i < j with a non-zero count. The central node is the one with the largest
// total weight, ties going to the lowest vocabulary index. Every node with
// no links is then linked to it with value 1. The central node is chosen
// once; its degree and weight grow as isolates attach, and it is never
// linked to itself. The output lists nodes by final total weight, highest
// first, with ties kept in their pre-repair ranking.
func Normalize(m types.Matrix, opts Options) (Result, error) {
	if err := adjacency.Validate(m); err != nil {
		return Result{}, err
	}

	n := m.Size()
	nodes := make([]types.Node, n)
	for i, name := range m.Names {
		nodes[i] = types.Node{ID: i, Name: name, Group: types.GroupDefault}
	}

	links := []types.Link{}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cell := m.Cells[i][j]
			if cell.Count <= 0 {
				continue
			}
			links = append(links, types.Link{
				Source: i,
				Target: j,
				Value:  cell.Count,
				Links:  cloneLinks(cell.Links),
			})
		}
	}
	for _, l := range links {
		attach(nodes, l)
	}

	var isolates []int
	for _, node := range nodes {
		if node.Degree == 0 {
			isolates = append(isolates, node.ID)
		}
	}

	ranked := make([]int, n)
	for i := range ranked {
		ranked[i] = i
	}
	rank(ranked, nodes)

	res := Result{Central: -1, Isolates: isolates}
	if n > 0 {
		res.Central = ranked[0]
	}

	for _, id := range isolates {
		if id == res.Central {
			continue
		}
		l := types.Link{Source: id, Target: res.Central, Value: repairWeight, Links: []string{}}
		links = append(links, l)
		attach(nodes, l)
		res.RepairLinks++
	}

	rank(ranked, nodes)

	k := max(opts.TopK, 0)
	out := make([]types.Node, 0, n)
	for pos, id := range ranked {
		node := nodes[id]
		if pos < k {
			node.Group = types.GroupTop
		}
		out = append(out, node)
	}

	res.Graph = types.Graph{Nodes: out, Links: links}
	return res, nil
}

func attach(nodes []types.Node, l types.Link) {
	nodes[l.Source].Degree++
	nodes[l.Source].TotalWeight += l.Value
	nodes[l.Target].Degree++
	nodes[l.Target].TotalWeight += l.Value
}

// rank stable-sorts ids by total weight, descending.
func rank(ids []int, nodes []types.Node) {
	sort.SliceStable(ids, func(a, b int) bool {
		return nodes[ids[a]].TotalWeight > nodes[ids[b]].TotalWeight
	})
}

func cloneLinks(links []string) []string {
	if links == nil {
		return []string{}
	}
	return slices.Clone(links)
}
