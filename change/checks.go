package change

import (
	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/lineage"
)

// parentChecks builds the (prior, current) validation pair against
// node's parent, if any. If the parent has one child, it is paired
// directly (persistence). If it has two (a division), the parent's
// would-be split is reconstructed using node's own SplitAlpha and the
// half whose name matches replacement is paired with it.
func parentChecks(l *lineage.Lineage, node *lineage.CellNode, replacement *cell.Bacillus) []constraint.Pair {
	parent := l.ParentNode(node)
	if parent == nil {
		return nil
	}
	switch len(parent.Children) {
	case 1:
		return []constraint.Pair{{Prior: parent.Cell, Current: replacement}}
	case 2:
		p1, p2 := parent.Cell.Split(node.Cell.SplitAlpha)
		if p1.Name == replacement.Name {
			return []constraint.Pair{{Prior: p1, Current: replacement}}
		}
		if p2.Name == replacement.Name {
			return []constraint.Pair{{Prior: p2, Current: replacement}}
		}
	}
	return nil
}

// childChecks builds the (prior, current) validation pairs against
// node's children. If there is one child, it is paired directly. If
// there are two (a division), replacement's own would-be split is
// reconstructed using the first child's SplitAlpha and matched by
// name to each actual child.
func childChecks(l *lineage.Lineage, node *lineage.CellNode, replacement *cell.Bacillus) []constraint.Pair {
	children := l.ChildNodes(node)
	switch len(children) {
	case 1:
		return []constraint.Pair{{Prior: replacement, Current: children[0].Cell}}
	case 2:
		p1, p2 := replacement.Split(children[0].Cell.SplitAlpha)
		var pairs []constraint.Pair
		for _, c := range children {
			switch c.Cell.Name {
			case p1.Name:
				pairs = append(pairs, constraint.Pair{Prior: p1, Current: c.Cell})
			case p2.Name:
				pairs = append(pairs, constraint.Pair{Prior: p2, Current: c.Cell})
			}
		}
		return pairs
	}
	return nil
}
