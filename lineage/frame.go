package lineage

import (
	"github.com/cellanneal/cellanneal/raster"
	"github.com/cellanneal/cellanneal/simconfig"
)

// Frame is one time step of the lineage: a map from cell name to node
// ID for that step, a reference to the previous frame, and a per-frame
// simulation config that may drift via BackgroundOffset (spec.md §3).
//
// SynthImage, CellMap, and Distmap are the rendered state the annealing
// driver mutates as it accepts changes; spec.md's data model discusses
// them as state carried alongside each frame's cells, so they live here
// rather than in a separate parallel slice.
type Frame struct {
	Nodes map[string]int

	PrevIndex int // -1 for frame 0

	SimConfig simconfig.Config

	SynthImage *raster.Image
	CellMap    *raster.CellMap
	Distmap    []float64 // nil unless the distance-weighted objective is in use
}

func newFrame(prevIndex int, cfg simconfig.Config) *Frame {
	return &Frame{
		Nodes:     make(map[string]int),
		PrevIndex: prevIndex,
		SimConfig: cfg,
	}
}

// CellCount returns the number of cells alive in this frame.
func (f *Frame) CellCount() int {
	return len(f.Nodes)
}
