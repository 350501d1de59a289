// Package cell implements the parametric bacillus (rod-shaped cell)
// model: its derived geometry, and the Split/Combine operations that
// drive lineage division edits.
package cell

import (
	"math"

	"github.com/cellanneal/cellanneal/geom"
)

// Bacillus is a rod-shaped cell: a rectangular body capped by two
// hemispherical end circles. Raw parameters (X, Y, Width, Length,
// Rotation) are public and mutable; derived geometry (corners, end
// centers, bounding region) is recomputed lazily on next access after
// a parameter change made through a Set* method, per the dirty-flag
// pattern in DESIGN.md; writing a field directly does not mark the
// geometry stale.
type Bacillus struct {
	Name string

	X, Y     float64
	Width    float64
	Length   float64
	Rotation float64

	// Opacity only matters when the owning frame's SimulationConfig has
	// ImageType == GraySynthetic; it must stay positive in that mode.
	// See constraint.Check and change.Perturbation.
	Opacity float64

	// SplitAlpha is the alpha this cell was produced with by Split, so
	// that later structural edits (Perturbation, Combination, Split) can
	// reconstruct the same division geometry for constraint checking.
	// Zero for cells not produced by Split.
	SplitAlpha float64

	dirty                  bool
	headCenter, tailCenter geom.Vector
	headLeft, headRight    geom.Vector
	tailLeft, tailRight    geom.Vector
	region                 geom.Rectangle
}

// New creates a Bacillus with the given raw parameters. Opacity defaults
// to 1 (fully opaque); it is only consulted in graySynthetic mode.
func New(name string, x, y, width, length, rotation float64) *Bacillus {
	return &Bacillus{
		Name:     name,
		X:        x,
		Y:        y,
		Width:    width,
		Length:   length,
		Rotation: rotation,
		Opacity:  1,
		dirty:    true,
	}
}

// Clone returns an independent deep copy of b. Bacillus holds no
// pointers in its exported state, so a plain value copy suffices; this
// method documents call sites (Perturbation in particular) that rely on
// it not aliasing the original.
func (b *Bacillus) Clone() *Bacillus {
	clone := *b
	return &clone
}

// Position returns the cell's center as a Vector.
func (b *Bacillus) Position() geom.Vector {
	return geom.Vector{X: b.X, Y: b.Y}
}

func (b *Bacillus) markDirty() {
	b.dirty = true
}

// SetX updates the x-coordinate, invalidating derived geometry.
func (b *Bacillus) SetX(x float64) {
	if x != b.X {
		b.X = x
		b.markDirty()
	}
}

// SetY updates the y-coordinate, invalidating derived geometry.
func (b *Bacillus) SetY(y float64) {
	if y != b.Y {
		b.Y = y
		b.markDirty()
	}
}

// SetWidth updates the width, invalidating derived geometry.
func (b *Bacillus) SetWidth(width float64) {
	if width != b.Width {
		b.Width = width
		b.markDirty()
	}
}

// SetLength updates the length, invalidating derived geometry.
func (b *Bacillus) SetLength(length float64) {
	if length != b.Length {
		b.Length = length
		b.markDirty()
	}
}

// SetRotation updates the rotation, invalidating derived geometry.
func (b *Bacillus) SetRotation(rotation float64) {
	if rotation != b.Rotation {
		b.Rotation = rotation
		b.markDirty()
	}
}

// refresh recomputes head/tail centers, body corners, and the bounding
// region from the raw parameters. Called lazily by every derived-field
// accessor.
func (b *Bacillus) refresh() {
	direction := geom.Vector{X: math.Cos(b.Rotation), Y: math.Sin(b.Rotation)}
	distance := (b.Length - b.Width) / 2
	displacement := direction.Scale(distance)

	center := b.Position()
	b.headCenter = center.Add(displacement)
	b.tailCenter = center.Sub(displacement)

	side := geom.Vector{X: -math.Sin(b.Rotation), Y: math.Cos(b.Rotation)}
	radius := b.Width / 2

	b.headRight = b.headCenter.Add(side.Scale(radius))
	b.headLeft = b.headCenter.Sub(side.Scale(radius))
	b.tailRight = b.tailCenter.Add(side.Scale(radius))
	b.tailLeft = b.tailCenter.Sub(side.Scale(radius))

	top := math.Min(b.headCenter.Y, b.tailCenter.Y) - radius
	bottom := math.Max(b.headCenter.Y, b.tailCenter.Y) + radius
	left := math.Min(b.headCenter.X, b.tailCenter.X) - radius
	right := math.Max(b.headCenter.X, b.tailCenter.X) + radius
	b.region = geom.NewRectangle(top, left, bottom, right)

	b.dirty = false
}

func (b *Bacillus) ensureFresh() {
	if b.dirty {
		b.refresh()
	}
}

// Region returns the bounding rectangle of the body polygon and two end
// circles, covering every pixel Draw can touch.
func (b *Bacillus) Region() geom.Rectangle {
	b.ensureFresh()
	return b.region
}

// HeadCenter returns the center of the head end-circle.
func (b *Bacillus) HeadCenter() geom.Vector {
	b.ensureFresh()
	return b.headCenter
}

// TailCenter returns the center of the tail end-circle.
func (b *Bacillus) TailCenter() geom.Vector {
	b.ensureFresh()
	return b.tailCenter
}

// HeadLeft returns the head-left body corner.
func (b *Bacillus) HeadLeft() geom.Vector {
	b.ensureFresh()
	return b.headLeft
}

// HeadRight returns the head-right body corner.
func (b *Bacillus) HeadRight() geom.Vector {
	b.ensureFresh()
	return b.headRight
}

// TailLeft returns the tail-left body corner.
func (b *Bacillus) TailLeft() geom.Vector {
	b.ensureFresh()
	return b.tailLeft
}

// TailRight returns the tail-right body corner.
func (b *Bacillus) TailRight() geom.Vector {
	b.ensureFresh()
	return b.tailRight
}
