package change

import (
	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
)

// Split samples its fractional split position from
// [splitAlphaMin, splitAlphaMin+splitAlphaSpan), per spec.md §4.H
// step 5's `alpha in [0.4, 0.6]`.
const (
	splitAlphaMin = 0.4
	splitAlphaSpan = 0.2
)

// Split moves a division point one frame earlier: it applies only
// when node has exactly one child, which it splits into two siblings
// (spec.md §4.F).
type Split struct {
	env    *Env
	node   *lineage.CellNode
	child  *lineage.CellNode
	s1, s2 *cell.Bacillus
	checks []constraint.Pair
}

// NewSplit samples an alpha in [0.4, 0.6) and splits node's single
// child. It returns (nil, false) if node does not have exactly one
// child, if the child has exactly one grandchild (an asymmetric state
// the original forbids), or if the split is not valid.
func NewSplit(env *Env, node *lineage.CellNode) (*Split, bool) {
	children := env.Lineage.ChildNodes(node)
	if len(children) != 1 {
		return nil, false
	}
	child := children[0]

	alpha := env.RNG.Float64()*splitAlphaSpan + splitAlphaMin
	s1, s2 := child.Cell.Split(alpha)

	sp := &Split{env: env, node: node, child: child, s1: s1, s2: s2}
	sp.checks = sp.buildChecks()
	if !sp.IsValid() {
		return nil, false
	}
	return sp, true
}

func (s *Split) buildChecks() []constraint.Pair {
	var pairs []constraint.Pair

	p1, p2 := s.node.Cell.Split(s.s1.SplitAlpha)
	switch p1.Name {
	case s.s1.Name:
		pairs = append(pairs, constraint.Pair{Prior: p1, Current: s.s1})
	case s.s2.Name:
		pairs = append(pairs, constraint.Pair{Prior: p1, Current: s.s2})
	}
	switch p2.Name {
	case s.s1.Name:
		pairs = append(pairs, constraint.Pair{Prior: p2, Current: s.s1})
	case s.s2.Name:
		pairs = append(pairs, constraint.Pair{Prior: p2, Current: s.s2})
	}

	for _, gc := range s.env.Lineage.ChildNodes(s.child) {
		switch gc.Cell.Name {
		case s.s1.Name:
			pairs = append(pairs, constraint.Pair{Prior: s.s1, Current: gc.Cell})
		case s.s2.Name:
			pairs = append(pairs, constraint.Pair{Prior: s.s2, Current: gc.Cell})
		}
	}
	return pairs
}

// IsValid reports whether node still has exactly one child, that
// child does not have exactly one grandchild, and s1/s2 satisfy every
// constraint pairing.
func (s *Split) IsValid() bool {
	children := s.env.Lineage.ChildNodes(s.node)
	if len(children) != 1 {
		return false
	}
	if len(s.env.Lineage.ChildNodes(s.child)) == 1 {
		return false
	}
	return constraint.Check([]*cell.Bacillus{s.s1, s.s2}, s.checks, s.env.Constraint)
}

// CostDiff redraws the child as background and s1/s2 as cell over the
// union of all three bounding rectangles, plus an additive
// split.cost term (a soft prior against spurious divisions).
func (s *Split) CostDiff() float64 {
	f := s.env.frame()
	newSynth := f.SynthImage.Clone()
	newCellmap := f.CellMap.Clone()

	region := s.child.Cell.Region().Union(s.s1.Region()).Union(s.s2.Region())
	raster.Draw(newSynth, newCellmap, s.child.Cell, raster.IsBackground, f.SimConfig)
	raster.Draw(newSynth, newCellmap, s.s1, raster.IsCell, f.SimConfig)
	raster.Draw(newSynth, newCellmap, s.s2, raster.IsCell, f.SimConfig)

	start := s.env.regionCost(f.SynthImage, f.CellMap, f.Distmap, region)
	end := s.env.regionCost(newSynth, newCellmap, f.Distmap, region)
	return end - start + s.env.SplitCost
}

// Apply removes the single child from the frame, inserts s1 and s2 as
// siblings under node, and re-parents any grandchildren by name.
func (s *Split) Apply() {
	f := s.env.frame()
	raster.Draw(f.SynthImage, f.CellMap, s.child.Cell, raster.IsBackground, f.SimConfig)
	raster.Draw(f.SynthImage, f.CellMap, s.s1, raster.IsCell, f.SimConfig)
	raster.Draw(f.SynthImage, f.CellMap, s.s2, raster.IsCell, f.SimConfig)

	grandchildren := s.env.Lineage.ChildNodes(s.child)

	s.env.Lineage.RemoveCell(s.env.FrameIndex, s.child.Cell.Name)
	s.env.Lineage.DetachChild(s.node.ID, s.child.ID)

	s1ID := s.env.Lineage.AddCell(s.env.FrameIndex, s.s1)
	s2ID := s.env.Lineage.AddCell(s.env.FrameIndex, s.s2)

	for _, gc := range grandchildren {
		s.env.Lineage.DetachChild(s.child.ID, gc.ID)
		switch gc.Cell.Name {
		case s.s1.Name:
			s.env.Lineage.Reparent(gc.ID, s1ID)
		case s.s2.Name:
			s.env.Lineage.Reparent(gc.ID, s2ID)
		}
	}
}
