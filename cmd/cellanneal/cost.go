package main

import (
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/score"
)

// totalCost sums each frame's objective value, the "Final Cost" the
// original prints per frame before writing lineage rows (spec.md §4's
// save_output note, carried here as the dispatch comparison metric
// instead of a print statement).
func totalCost(l *lineage.Lineage, real [][]float64, width, height int, overlapCost, cellImportance float64) float64 {
	region := score.Full(width, height)
	var sum float64
	for i := 0; i < l.FrameCount(); i++ {
		f := l.Frame(i)
		if f.SynthImage == nil {
			continue
		}
		sum += score.Objective(real[i], f.SynthImage.Pix, f.Distmap, f.CellMap.Pix, width, region, overlapCost, cellImportance)
	}
	return sum
}
