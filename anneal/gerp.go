package anneal

import "math"

// gerp is the geometric interpolation the temperature schedule is
// built from: gerp(a, a, t) = a, gerp(a, b, 0) = a, gerp(a, b, 1) = b
// (spec.md §8 invariant 6, grounded on
// original_source/global_optimization.py's gerp).
func gerp(a, b, t float64) float64 {
	if a == b {
		return a
	}
	return a * math.Pow(b/a, t)
}

// splitProba is the probability that a split proposal is even
// attempted, as a function of the target cell's length (spec.md §4.H
// step 5, grounded on original_source/optimization.py's split_proba).
// Outside [14, 45] microns it is zero.
func splitProba(length float64) float64 {
	if length < 14 || length > 45 {
		return 0
	}
	return math.Sin((length - 14) / (2 * math.Pi * math.Pi))
}
