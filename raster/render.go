package raster

import (
	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/simconfig"
)

// RenderFrame builds a synth image and cell map from scratch by drawing
// every cell in cells onto a freshly filled canvas. Binary images start
// at zero (the additive baseline); graySynthetic and phaseContrast
// images start filled with cfg.BackgroundColor, the configurable
// baseline that change.BackgroundOffset perturbs (spec.md §4.F).
//
// This is used when extending the lineage with a brand-new frame
// (spec.md §4.H's "render the new frame's synth image and cell map")
// and by BackgroundOffset's costdiff/apply, which must re-render the
// whole frame rather than a local region since every background pixel
// is affected by the baseline change.
func RenderFrame(width, height int, cells []*cell.Bacillus, cfg simconfig.Config) (*Image, *CellMap) {
	var img *Image
	if cfg.ImageType == simconfig.Binary {
		img = NewImage(width, height)
	} else {
		img = NewImageFilled(width, height, cfg.BackgroundColor)
	}
	cellmap := NewCellMap(width, height)
	for _, c := range cells {
		Draw(img, cellmap, c, IsCell, cfg)
	}
	return img, cellmap
}
