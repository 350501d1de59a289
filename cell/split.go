package cell

import (
	"math"

	"github.com/cellanneal/cellanneal/geom"
)

// Split divides b along its long axis at fractional position alpha in
// (0, 1): the head half gets length alpha*Length and the tail half gets
// (1-alpha)*Length. Both children inherit Width and Rotation. alpha is
// preserved on each child as SplitAlpha so later structural edits can
// reconstruct this division's geometry.
func (b *Bacillus) Split(alpha float64) (head, tail *Bacillus) {
	direction := geom.Vector{X: math.Cos(b.Rotation), Y: math.Sin(b.Rotation)}
	unit := direction.Scale(b.Length)

	position := b.Position()
	front := position.Add(unit.Scale(0.5))
	back := position.Sub(unit.Scale(0.5))
	center := position.Add(unit.Scale(0.5 - alpha))

	position1 := front.Add(center).Scale(0.5)
	position2 := center.Add(back).Scale(0.5)

	head = New(b.Name+"0", position1.X, position1.Y, b.Width, b.Length*alpha, b.Rotation)
	head.SplitAlpha = alpha
	head.Opacity = b.Opacity

	tail = New(b.Name+"1", position2.X, position2.Y, b.Width, b.Length*(1-alpha), b.Rotation)
	tail.SplitAlpha = alpha
	tail.Opacity = b.Opacity

	return head, tail
}

// Combine reverses a Split: it reconstructs the long-axis direction from
// the center-to-center displacement between b and other, projects each
// cell's far endpoint onto that axis to find the combined front/back,
// and returns a new cell at their midpoint. The new cell's name is b's
// name with its trailing character removed (the inverse of Split's
// naming rule), so Combine should always be called as
// child0.Combine(child1) for two siblings produced by the same Split.
func (b *Bacillus) Combine(other *Bacillus) *Bacillus {
	separation := b.Position().Sub(other.Position())
	norm := math.Sqrt(separation.Dot(separation))
	direction := separation.Div(norm)

	direction1 := geom.Vector{X: math.Cos(b.Rotation), Y: math.Sin(b.Rotation)}
	distance1 := b.Length - b.Width
	var head1 geom.Vector
	if direction1.Dot(direction) >= 0 {
		head1 = b.Position().Add(direction1.Scale(distance1 / 2))
	} else {
		head1 = b.Position().Sub(direction1.Scale(distance1 / 2))
	}
	extent1 := head1.Add(direction.Scale(b.Width / 2))
	front := b.Position().Add(direction.Scale(extent1.Sub(b.Position()).Dot(direction)))

	direction2 := geom.Vector{X: math.Cos(other.Rotation), Y: math.Sin(other.Rotation)}
	distance2 := other.Length - other.Width
	var tail2 geom.Vector
	if direction2.Dot(direction) >= 0 {
		tail2 = other.Position().Sub(direction2.Scale(distance2 / 2))
	} else {
		tail2 = other.Position().Add(direction2.Scale(distance2 / 2))
	}
	extent2 := tail2.Sub(direction.Scale(other.Width / 2))
	back := other.Position().Add(direction.Scale(extent2.Sub(other.Position()).Dot(direction)))

	position := front.Add(back).Scale(0.5)
	rotation := math.Atan2(direction.Y, direction.X)
	width := (b.Width + other.Width) / 2
	diff := front.Sub(back)
	length := math.Sqrt(diff.Dot(diff))

	name := b.Name
	if len(name) > 0 {
		name = name[:len(name)-1]
	}

	combined := New(name, position.X, position.Y, width, length, rotation)
	combined.Opacity = (b.Opacity + other.Opacity) / 2
	return combined
}
