package raster

import "github.com/cellanneal/cellanneal/geom"

// pointInPolygon reports whether the point (x, y) lies inside the
// (possibly non-convex) polygon described by vertices, using the
// standard crossing-number test. Vertices are taken as a closed loop
// (the last vertex implicitly connects back to the first).
func pointInPolygon(vertices []geom.Vector, x, y float64) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > y) != (vj.Y > y) {
			xCross := vj.X + (y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// pointInCircle reports whether (x, y) lies within radius of center
// (inclusive).
func pointInCircle(center geom.Vector, radius, x, y float64) bool {
	dx := x - center.X
	dy := y - center.Y
	return dx*dx+dy*dy <= radius*radius
}

// bodyQuad returns the four corners of the rectangular body in the
// order the original polygon-fill routine uses: head-left, head-right,
// tail-right, tail-left.
func bodyQuad(hl, hr, tr, tl geom.Vector) []geom.Vector {
	return []geom.Vector{hl, hr, tr, tl}
}

// weighted returns the point (a*wa + b*wb) / total, where wa+wb need
// not be 1. Used to build the
// phase-contrast inner bands from corner-weighted averages.
func weighted(a geom.Vector, wa float64, b geom.Vector, wb float64, total float64) geom.Vector {
	return a.Scale(wa).Add(b.Scale(wb)).Div(total)
}
