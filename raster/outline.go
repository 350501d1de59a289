package raster

import (
	"math"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/geom"
)

// RGBImage is a 2-D real-valued RGB buffer, row-major, channel values in
// [0, 1]. Used for the color overlay output (spec.md §6), not the
// grayscale synth image.
type RGBImage struct {
	Pix           []float64 // len == Width*Height*3
	Width, Height int
}

// NewRGBImage allocates a zeroed RGBImage of the given size.
func NewRGBImage(width, height int) *RGBImage {
	return &RGBImage{Pix: make([]float64, width*height*3), Width: width, Height: height}
}

// SetGray sets all three channels of the pixel at (x, y) to v, for
// seeding the overlay from a grayscale real image. Out-of-bounds
// coordinates are ignored.
func (img *RGBImage) SetGray(x, y int, v float64) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 3
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
}

// SetColor sets a pixel's RGB channels directly.
func (img *RGBImage) SetColor(x, y int, r, g, b float64) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 3
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
}

// DrawOutline draws the cell's outline onto img: the two straight side
// lines connecting corresponding body corners, and two end-cap arcs
// whose angle ranges are derived from atan2 of corner offsets from each
// end-center (spec.md §4.B).
func DrawOutline(img *RGBImage, b *cell.Bacillus, r, g, bl float64) {
	drawLine(img, b.TailLeft(), b.HeadLeft(), r, g, bl)
	drawLine(img, b.TailRight(), b.HeadRight(), r, g, bl)

	headCenter := b.HeadCenter()
	r0 := b.HeadRight().Sub(headCenter)
	r1 := b.HeadLeft().Sub(headCenter)
	t1 := math.Atan2(r0.Y, r0.X)
	t0 := math.Atan2(r1.Y, r1.X)
	drawArc(img, headCenter, b.Width/2, t0, t1, r, g, bl)

	tailCenter := b.TailCenter()
	r0 = b.TailRight().Sub(tailCenter)
	r1 = b.TailLeft().Sub(tailCenter)
	t0 = math.Atan2(r0.Y, r0.X)
	t1 = math.Atan2(r1.Y, r1.X)
	drawArc(img, tailCenter, b.Width/2, t0, t1, r, g, bl)
}

// drawLine rasterizes a straight line with Bresenham's algorithm.
func drawLine(img *RGBImage, from, to geom.Vector, r, g, b float64) {
	x0, y0 := int(math.Round(from.X)), int(math.Round(from.Y))
	x1, y1 := int(math.Round(to.X)), int(math.Round(to.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetColor(x0, y0, r, g, b)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawArc rasterizes the arc of the given radius around center, sweeping
// forward (increasing angle) from t0 until reaching t1 (mod 2*pi).
// Construction guarantees this sweep always traces the cap's outward
// half, never the half that overlaps the body.
func drawArc(img *RGBImage, center geom.Vector, radius, t0, t1, r, g, b float64) {
	delta := t1 - t0
	for delta < 0 {
		delta += 2 * math.Pi
	}
	for delta > 2*math.Pi {
		delta -= 2 * math.Pi
	}

	steps := int(math.Ceil(radius * delta))
	if steps < 2 {
		steps = 2
	}
	for i := 0; i <= steps; i++ {
		t := t0 + delta*float64(i)/float64(steps)
		x := center.X + radius*math.Cos(t)
		y := center.Y + radius*math.Sin(t)
		img.SetColor(int(math.Round(x)), int(math.Round(y)), r, g, b)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
