package change

import (
	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
	"github.com/cellanneal/cellanneal/score"
)

// BackgroundOffset perturbs the frame's background color baseline and
// re-renders the entire synth image from every live cell, since the
// baseline change affects every background-polarity pixel, not just a
// local region (spec.md §4.F).
type BackgroundOffset struct {
	env      *Env
	oldColor float64
	newColor float64
	newSynth *raster.Image
	newMap   *raster.CellMap
}

// NewBackgroundOffset samples a Gaussian increment with the given mu
// and sigma and adds it to the frame's current background color.
func NewBackgroundOffset(env *Env, mu, sigma float64) *BackgroundOffset {
	f := env.frame()
	oldColor := f.SimConfig.BackgroundColor
	newColor := oldColor + env.RNG.NormFloat64()*sigma + mu

	newCfg := f.SimConfig.Copy()
	newCfg.BackgroundColor = newColor

	newSynth, newMap := raster.RenderFrame(env.Width, env.Height, liveCells(env.Lineage, f), newCfg)

	return &BackgroundOffset{env: env, oldColor: oldColor, newColor: newColor, newSynth: newSynth, newMap: newMap}
}

func liveCells(l *lineage.Lineage, f *lineage.Frame) []*cell.Bacillus {
	cells := make([]*cell.Bacillus, 0, len(f.Nodes))
	for _, id := range f.Nodes {
		cells = append(cells, l.Node(id).Cell)
	}
	return cells
}

// IsValid reports whether the new background color is positive.
func (b *BackgroundOffset) IsValid() bool {
	return b.newColor > 0
}

// CostDiff compares the whole-image objective before and after the
// re-render (no locality restriction: every pixel can change).
func (b *BackgroundOffset) CostDiff() float64 {
	f := b.env.frame()
	full := score.Full(b.env.Width, b.env.Height)
	start := b.env.regionCost(f.SynthImage, f.CellMap, f.Distmap, full)
	end := b.env.regionCost(b.newSynth, b.newMap, f.Distmap, full)
	return end - start
}

// Apply installs the re-rendered synth image, cell map, and the new
// background color onto the frame.
func (b *BackgroundOffset) Apply() {
	f := b.env.frame()
	f.SynthImage.CopyFrom(b.newSynth)
	f.CellMap.CopyFrom(b.newMap)
	f.SimConfig.BackgroundColor = b.newColor
}
