// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Cell is one entry of the co-occurrence matrix: how many records named
// both entities, and the links of those records.
type Cell struct {
	Count int      `json:"count" jsonschema:"minimum=0"`
	Links []string `json:"links"`
}

// Matrix is the adjacency_matrix.json document. Names[i] labels row and
// column i of Cells.
type Matrix struct {
	Names []string `json:"names"`
	Cells [][]Cell `json:"matrix"`
}

// Size returns the vocabulary size.
func (m Matrix) Size() int {
	return len(m.Names)
}

// Group selects the visual treatment of a node.
type Group int

const (
	// GroupDefault is the ordinary node style.
	GroupDefault Group = 1

	// GroupTop marks the top-K nodes by total weight.
	GroupTop Group = 2
)

// Node is a graph vertex as consumed by the force layout.
type Node struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Group       Group  `json:"group" jsonschema:"enum=1,enum=2"`
	Degree      int    `json:"degree" jsonschema:"minimum=0"`
	TotalWeight int    `json:"totalWeight" jsonschema:"minimum=0"`
}

// Link is an undirected weighted edge between two node ids.
type Link struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Value  int      `json:"value" jsonschema:"minimum=1"`
	Links  []string `json:"links"`
}

// Graph is the d3_data.json document.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// MediaItem is the subset of a record shown in a person's gallery.
type MediaItem struct {
	Filename    string `json:"filename"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Member is a node together with the media that names it.
type Member struct {
	Node
	Images []MediaItem `json:"images"`
}
