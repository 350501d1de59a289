// Package constraint implements the biological feasibility checker:
// per-cell bounds and per-parent-child-pair motion/growth limits
// (spec.md §4.G).
package constraint

import (
	"math"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/simconfig"
)

// Params bundles the config values the checker consults. Field names
// mirror the config keys in spec.md §6 (bacilli.* and global.*).
type Params struct {
	ImageWidth, ImageHeight int

	MinWidth, MaxWidth   float64
	MinLength, MaxLength float64

	MaxSpeed, MaxSpin    float64
	MinGrowth, MaxGrowth float64

	FramesPerSecond float64
	ImageType       simconfig.ImageType
}

// Pair is a (prior-frame, current-frame) parent/child cell pair to
// check for plausible motion and growth between frames.
type Pair struct {
	Prior, Current *cell.Bacillus
}

// Check reports whether every cell in cells satisfies the per-cell
// invariants and every pair in pairs satisfies the per-pair motion and
// growth limits, under p.
func Check(cells []*cell.Bacillus, pairs []Pair, p Params) bool {
	for _, c := range cells {
		if !checkCell(c, p) {
			return false
		}
	}
	for _, pair := range pairs {
		if !checkPair(pair, p) {
			return false
		}
	}
	return true
}

func checkCell(c *cell.Bacillus, p Params) bool {
	if c.X < 0 || c.X >= float64(p.ImageWidth) || c.Y < 0 || c.Y >= float64(p.ImageHeight) {
		return false
	}
	if c.Width < p.MinWidth || c.Width > p.MaxWidth {
		return false
	}
	if c.Length <= p.MinLength || c.Length >= p.MaxLength {
		return false
	}
	if p.ImageType == simconfig.GraySynthetic && c.Opacity <= 0 {
		return false
	}
	return true
}

// checkPair validates motion and growth between a cell and its
// counterpart in the adjacent frame. Displacement uses the true
// Euclidean norm of the position delta; spec.md §9 records that an
// earlier code path computed sqrt(sum(delta)) squared instead of
// sqrt(sum(delta squared)) and treats the correct norm as canonical.
func checkPair(pair Pair, p Params) bool {
	curr, prior := pair.Current, pair.Prior

	delta := curr.Position().Sub(prior.Position())
	displacement := math.Sqrt(delta.Dot(delta))
	if displacement > p.MaxSpeed/p.FramesPerSecond {
		return false
	}

	spin := math.Abs(curr.Rotation - prior.Rotation)
	if spin > p.MaxSpin/p.FramesPerSecond {
		return false
	}

	growth := curr.Length - prior.Length
	if growth <= p.MinGrowth || growth >= p.MaxGrowth {
		return false
	}

	return true
}
