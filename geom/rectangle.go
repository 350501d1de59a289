package geom

import "math"

// Rectangle is an integer axis-aligned box, half-open on the bottom and
// right edges: it covers rows [Top, Bottom) and columns [Left, Right).
type Rectangle struct {
	Top, Bottom, Left, Right int
}

// NewRectangle constructs the smallest integer Rectangle that fully
// covers the continuous box [left, right] x [top, bottom], rounding the
// minimum corner down and the maximum corner up (with the extra +1 that
// half-open upper bounds require).
func NewRectangle(top, left, bottom, right float64) Rectangle {
	return Rectangle{
		Top:    int(math.Floor(top)),
		Left:   int(math.Floor(left)),
		Bottom: int(math.Ceil(bottom)) + 1,
		Right:  int(math.Ceil(right)) + 1,
	}
}

// Union returns the smallest Rectangle containing both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	return Rectangle{
		Top:    min(r.Top, other.Top),
		Left:   min(r.Left, other.Left),
		Bottom: max(r.Bottom, other.Bottom),
		Right:  max(r.Right, other.Right),
	}
}

// Clamp restricts r to the pixel grid [0, width) x [0, height), returning
// an empty rectangle (Bottom <= Top or Right <= Left) if there is no
// overlap.
func (r Rectangle) Clamp(width, height int) Rectangle {
	return Rectangle{
		Top:    max(r.Top, 0),
		Left:   max(r.Left, 0),
		Bottom: min(r.Bottom, height),
		Right:  min(r.Right, width),
	}
}

// Empty reports whether r covers no pixels.
func (r Rectangle) Empty() bool {
	return r.Bottom <= r.Top || r.Right <= r.Left
}

// Width returns the number of columns covered by r.
func (r Rectangle) Width() int {
	return r.Right - r.Left
}

// Height returns the number of rows covered by r.
func (r Rectangle) Height() int {
	return r.Bottom - r.Top
}
