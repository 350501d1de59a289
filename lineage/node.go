// Package lineage implements the mutable forest of per-frame cells
// linked across frames by parent/child edges (spec.md §4.E). Nodes live
// in a flat arena keyed by stable integer IDs rather than holding
// pointers to each other, so a child can reach its parent without the
// two owning each other — the "arena of nodes keyed by stable integer
// IDs" design note in spec.md §9.
package lineage

import "github.com/cellanneal/cellanneal/cell"

// noParent marks a root node: one with no link into a previous frame.
const noParent = -1

// CellNode is one node of the lineage forest: a cell together with its
// parent link (by arena ID) and its 0-2 children. A node with two
// children represents a division event between its frame and the next.
type CellNode struct {
	ID       int
	Cell     *cell.Bacillus
	Parent   int // noParent if this node is a root
	Children []int
}

// HasParent reports whether n has a parent link.
func (n *CellNode) HasParent() bool {
	return n.Parent != noParent
}
