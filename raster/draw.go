package raster

import (
	"math"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/geom"
	"github.com/cellanneal/cellanneal/simconfig"
)

// Polarity selects whether a Draw call adds cell-colored or
// background-colored contribution.
type Polarity bool

const (
	// IsCell draws the cell's own contribution.
	IsCell Polarity = true
	// IsBackground draws the inverse contribution that undoes a
	// previous IsCell draw (spec.md §4.B's round-trip invariant).
	IsBackground Polarity = false
)

// Gray levels used by the graySynthetic and phaseContrast renderers
// (spec.md §4.B). The background level itself is not one of these: it
// is the frame's configurable SimulationConfig.BackgroundColor (the
// quantity BackgroundOffset drifts), not a fixed constant.
const (
	grayCellLevel        = 0.15
	phaseBodyLevel       = 0.25
	phaseUpperBandLevel  = 0.63
	phaseMiddleBandLevel = 0.39
)

// coverage describes the union of shapes a bacillus covers: the body
// quadrilateral plus two end circles.
type coverage struct {
	body         []geom.Vector
	headC, tailC geom.Vector
	radius       float64
}

func cellCoverage(b *cell.Bacillus) coverage {
	return coverage{
		body:   bodyQuad(b.HeadLeft(), b.HeadRight(), b.TailRight(), b.TailLeft()),
		headC:  b.HeadCenter(),
		tailC:  b.TailCenter(),
		radius: b.Width / 2,
	}
}

func (c coverage) contains(x, y float64) bool {
	if pointInCircle(c.headC, c.radius, x, y) || pointInCircle(c.tailC, c.radius, x, y) {
		return true
	}
	return pointInPolygon(c.body, x, y)
}

// forEachCoveredPixel calls fn(x, y) for every integer pixel coordinate
// in region whose center lies inside cov, per spec.md §4.B's
// conservative coverage rule.
func forEachCoveredPixel(cov coverage, region geom.Rectangle, width, height int, fn func(x, y int)) {
	region = clampRegion(region, width, height)
	for y := region.Top; y < region.Bottom; y++ {
		for x := region.Left; x < region.Right; x++ {
			if cov.contains(float64(x), float64(y)) {
				fn(x, y)
			}
		}
	}
}

// Draw adds b's contribution to img and cellmap according to cfg's
// image type and the given polarity. Draw followed by the opposite
// polarity always restores cellmap. It restores img exactly in binary
// mode; in graySynthetic and phaseContrast modes covered pixels are
// overwritten, so img comes back unchanged only where those pixels held
// cfg.BackgroundColor before the IsCell draw (spec.md §8 invariant 1).
func Draw(img *Image, cellmap *CellMap, b *cell.Bacillus, polarity Polarity, cfg simconfig.Config) {
	switch cfg.ImageType {
	case simconfig.Binary:
		drawBinary(img, cellmap, b, polarity)
	case simconfig.GraySynthetic:
		drawGraySynthetic(img, cellmap, b, polarity, cfg)
	case simconfig.PhaseContrast:
		drawPhaseContrast(img, cellmap, b, polarity, cfg)
	}
}

func drawBinary(img *Image, cellmap *CellMap, b *cell.Bacillus, polarity Polarity) {
	cov := cellCoverage(b)
	region := b.Region()
	delta := 1.0
	mapDelta := 1
	if polarity == IsBackground {
		delta = -1.0
		mapDelta = -1
	}
	forEachCoveredPixel(cov, region, img.Width, img.Height, func(x, y int) {
		img.Add(x, y, delta)
		cellmap.Add(x, y, mapDelta)
	})
}

func drawGraySynthetic(img *Image, cellmap *CellMap, b *cell.Bacillus, polarity Polarity, cfg simconfig.Config) {
	cov := cellCoverage(b)
	region := b.Region()
	mapDelta := 1
	if polarity == IsBackground {
		mapDelta = -1
	}

	if cfg.DiffractionSigma > 0 && cfg.DiffractionAmplitude > 0 {
		applyDiffraction(img, cov, region, cfg.DiffractionSigma, cfg.DiffractionAmplitude, polarity)
	}

	level := grayCellLevel
	if polarity == IsBackground {
		level = cfg.BackgroundColor
	}
	forEachCoveredPixel(cov, region, img.Width, img.Height, func(x, y int) {
		img.Set(x, y, level)
		cellmap.Add(x, y, mapDelta)
	})
}

func drawPhaseContrast(img *Image, cellmap *CellMap, b *cell.Bacillus, polarity Polarity, cfg simconfig.Config) {
	cov := cellCoverage(b)
	region := b.Region()
	mapDelta := 1
	if polarity == IsBackground {
		mapDelta = -1
	}

	if polarity == IsBackground {
		forEachCoveredPixel(cov, region, img.Width, img.Height, func(x, y int) {
			img.Set(x, y, cfg.BackgroundColor)
			cellmap.Add(x, y, mapDelta)
		})
		return
	}

	hl, hr, tl, tr := b.HeadLeft(), b.HeadRight(), b.TailLeft(), b.TailRight()

	// whole cell (body + end circles): base phase level
	forEachCoveredPixel(cov, region, img.Width, img.Height, func(x, y int) {
		img.Set(x, y, phaseBodyLevel)
		cellmap.Add(x, y, mapDelta)
	})

	// upper-half band: from the left edge to the midline
	upperBand := []geom.Vector{
		hl,
		weighted(hr, 1, hl, 1, 2),
		weighted(tr, 1, tl, 1, 2),
		tl,
	}
	forEachPolygonPixel(upperBand, region, img.Width, img.Height, func(x, y int) {
		img.Set(x, y, phaseUpperBandLevel)
	})

	// middle-third band: from 1/3 to 2/3 across the width
	middleBand := []geom.Vector{
		weighted(hr, 1, hl, 2, 3),
		weighted(hr, 2, hl, 1, 3),
		weighted(tr, 2, tl, 1, 3),
		weighted(tr, 1, tl, 2, 3),
	}
	forEachPolygonPixel(middleBand, region, img.Width, img.Height, func(x, y int) {
		img.Set(x, y, phaseMiddleBandLevel)
	})
}

func forEachPolygonPixel(poly []geom.Vector, region geom.Rectangle, width, height int, fn func(x, y int)) {
	region = clampRegion(region, width, height)
	for y := region.Top; y < region.Bottom; y++ {
		for x := region.Left; x < region.Right; x++ {
			if pointInPolygon(poly, float64(x), float64(y)) {
				fn(x, y)
			}
		}
	}
}

// expandedRegion pads r by pad pixels on every side, matching
// spec.md §4.B's "expand by floor(2*sigma)" rule for diffraction.
func expandedRegion(r geom.Rectangle, pad int) geom.Rectangle {
	return geom.Rectangle{
		Top:    r.Top - pad,
		Bottom: r.Bottom + pad,
		Left:   r.Left - pad,
		Right:  r.Right + pad,
	}
}

func diffractionPad(sigma float64) int {
	return int(math.Floor(2 * sigma))
}
