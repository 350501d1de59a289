// Package change implements the four structural edit kinds the
// annealing driver proposes: Perturbation, Split, Combine, and
// BackgroundOffset (spec.md §4.F). They share a single interface —
// IsValid/CostDiff/Apply — which the driver pattern-matches over,
// mirroring spec.md §9's "Change dispatch" note that this is best
// modeled in Go as a tagged variant (an interface with one struct per
// kind) rather than a sum-type workaround.
package change

import (
	"math/rand"

	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/geom"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
	"github.com/cellanneal/cellanneal/score"
)

// Change is the shared contract every proposal kind implements. A
// Change is single-shot: constructed with a snapshot of its target
// node and images, IsValid may be called any number of times, but
// Apply must be called at most once and only after IsValid is true.
type Change interface {
	IsValid() bool
	CostDiff() float64
	Apply()
}

// Env bundles the state every Change needs to validate and score
// itself: the lineage, which frame it operates in, the real image,
// the objective weights, and the constraint parameters. It is pure
// read access except through the Lineage/Frame mutation each Change's
// Apply performs.
type Env struct {
	Lineage    *lineage.Lineage
	FrameIndex int

	Real          []float64
	Width, Height int

	OverlapCost    float64
	CellImportance float64
	SplitCost      float64

	Constraint constraint.Params

	UseDistanceObjective bool

	RNG *rand.Rand
}

func (e *Env) frame() *lineage.Frame {
	return e.Lineage.Frame(e.FrameIndex)
}

// regionCost evaluates the objective (plain or distance-weighted,
// per e.UseDistanceObjective) over r against synth/cellmap.
func (e *Env) regionCost(synth *raster.Image, cellmap *raster.CellMap, distmap []float64, r geom.Rectangle) float64 {
	if e.UseDistanceObjective {
		return score.DistanceWeighted(e.Real, synth.Pix, distmap, cellmap.Pix, e.Width, r, e.OverlapCost, e.CellImportance)
	}
	return score.Plain(e.Real, synth.Pix, cellmap.Pix, e.Width, r, e.OverlapCost, e.CellImportance)
}
