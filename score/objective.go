package score

import "github.com/cellanneal/cellanneal/geom"

// Region restricts an objective evaluation to a rectangular subregion of
// the image, per spec.md §4.C's locality contract: a Change may evaluate
// cost over any rectangle containing every pixel it modifies, and the
// incremental sum must equal the full-image cost change.
type Region = geom.Rectangle

// Full returns the region covering the whole width x height image.
func Full(width, height int) Region {
	return Region{Top: 0, Bottom: height, Left: 0, Right: width}
}

// overlapPenalty sums max(cellmap[p]-1, 0) over r, the count of pixels
// covered by more than one cell.
func overlapPenalty(cellmap []int, width int, r Region) float64 {
	var sum float64
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			c := cellmap[y*width+x] - 1
			if c > 0 {
				sum += float64(c)
			}
		}
	}
	return sum
}

// Plain computes the plain objective over r: sum of squared pixel
// differences plus the overlap penalty weighted by overlapCost and
// cellImportance.
func Plain(real, synth []float64, cellmap []int, width int, r Region, overlapCost, cellImportance float64) float64 {
	var sum float64
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			i := y*width + x
			d := real[i] - synth[i]
			sum += d * d
		}
	}
	return sum + overlapCost*overlapPenalty(cellmap, width, r)*cellImportance
}

// DistanceWeighted computes the distance-weighted objective over r: sum
// of squared, distmap-weighted pixel differences plus the overlap
// penalty.
func DistanceWeighted(real, synth, distmap []float64, cellmap []int, width int, r Region, overlapCost, cellImportance float64) float64 {
	var sum float64
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			i := y*width + x
			d := (real[i] - synth[i]) * distmap[i]
			sum += d * d
		}
	}
	return sum + overlapCost*overlapPenalty(cellmap, width, r)*cellImportance
}

// Objective dispatches to Plain or DistanceWeighted depending on
// whether distmap is non-nil.
func Objective(real, synth, distmap []float64, cellmap []int, width int, r Region, overlapCost, cellImportance float64) float64 {
	if distmap != nil {
		return DistanceWeighted(real, synth, distmap, cellmap, width, r, overlapCost, cellImportance)
	}
	return Plain(real, synth, cellmap, width, r, overlapCost, cellImportance)
}
