package change

import (
	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
)

// Combine moves a division point one frame later: it applies only
// when node has exactly two children and at most two grandchildren,
// merging the two children back into one cell (spec.md §4.F).
type Combine struct {
	env         *Env
	node        *lineage.CellNode
	children    []*lineage.CellNode
	combination *cell.Bacillus
	checks      []constraint.Pair
}

// NewCombine merges node's two children with cell.Combine. It returns
// (nil, false) if node does not have exactly two children, if there
// are more than two grandchildren, or if the combination is not
// valid.
func NewCombine(env *Env, node *lineage.CellNode) (*Combine, bool) {
	children := env.Lineage.ChildNodes(node)
	if len(children) != 2 {
		return nil, false
	}
	if len(env.Lineage.GrandChildren(node)) > 2 {
		return nil, false
	}

	combination := children[0].Cell.Combine(children[1].Cell)
	cb := &Combine{env: env, node: node, children: children, combination: combination}
	cb.checks = cb.buildChecks()
	if !cb.IsValid() {
		return nil, false
	}
	return cb, true
}

func (c *Combine) buildChecks() []constraint.Pair {
	pairs := []constraint.Pair{{Prior: c.node.Cell, Current: c.combination}}

	p1, p2 := c.combination.Split(c.children[0].Cell.SplitAlpha)
	for _, gc := range c.env.Lineage.GrandChildren(c.node) {
		switch gc.Cell.Name {
		case p1.Name:
			pairs = append(pairs, constraint.Pair{Prior: p1, Current: gc.Cell})
		case p2.Name:
			pairs = append(pairs, constraint.Pair{Prior: p2, Current: gc.Cell})
		}
	}
	return pairs
}

// IsValid reports whether node still has exactly two children, at
// most two grandchildren, and the combination satisfies every
// constraint pairing.
func (c *Combine) IsValid() bool {
	children := c.env.Lineage.ChildNodes(c.node)
	if len(children) != 2 {
		return false
	}
	if len(c.env.Lineage.GrandChildren(c.node)) > 2 {
		return false
	}
	return constraint.Check([]*cell.Bacillus{c.combination}, c.checks, c.env.Constraint)
}

// CostDiff redraws both children as background and the combination as
// cell over the union of all their bounding rectangles, minus an
// additive split.cost term (the inverse of Split's prior).
func (c *Combine) CostDiff() float64 {
	f := c.env.frame()
	newSynth := f.SynthImage.Clone()
	newCellmap := f.CellMap.Clone()

	region := c.combination.Region()
	for _, child := range c.children {
		region = region.Union(child.Cell.Region())
	}
	for _, child := range c.children {
		raster.Draw(newSynth, newCellmap, child.Cell, raster.IsBackground, f.SimConfig)
	}
	raster.Draw(newSynth, newCellmap, c.combination, raster.IsCell, f.SimConfig)

	start := c.env.regionCost(f.SynthImage, f.CellMap, f.Distmap, region)
	end := c.env.regionCost(newSynth, newCellmap, f.Distmap, region)
	return end - start - c.env.SplitCost
}

// Apply removes both children from the frame, inserts the
// combination, and re-parents any grandchildren onto it.
func (c *Combine) Apply() {
	f := c.env.frame()
	for _, child := range c.children {
		raster.Draw(f.SynthImage, f.CellMap, child.Cell, raster.IsBackground, f.SimConfig)
	}
	raster.Draw(f.SynthImage, f.CellMap, c.combination, raster.IsCell, f.SimConfig)

	grandchildren := c.env.Lineage.GrandChildren(c.node)

	for _, child := range c.children {
		c.env.Lineage.RemoveCell(c.env.FrameIndex, child.Cell.Name)
		c.env.Lineage.DetachChild(c.node.ID, child.ID)
	}
	combinedID := c.env.Lineage.AddCell(c.env.FrameIndex, c.combination)

	for _, gc := range grandchildren {
		for _, child := range c.children {
			c.env.Lineage.DetachChild(child.ID, gc.ID)
		}
		c.env.Lineage.Reparent(gc.ID, combinedID)
	}
}
