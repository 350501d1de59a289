package raster

import (
	"math"

	"github.com/cellanneal/cellanneal/geom"
)

// applyDiffraction adds (is_cell) or subtracts (is_background) a
// Gaussian-blurred diffraction halo to img, over region expanded by
// floor(2*sigma) pixels on each side, per spec.md §4.B and the
// "Diffraction blur" design note in spec.md §9: the blur is a separable
// 1-D convolution of radius ceil(3*sigma), applied to a scratch tile
// rather than the whole image.
func applyDiffraction(img *Image, cov coverage, region geom.Rectangle, sigma, amplitude float64, polarity Polarity) {
	pad := diffractionPad(sigma)
	tile := expandedRegion(region, pad).Clamp(img.Width, img.Height)
	if tile.Empty() {
		return
	}

	w, h := tile.Width(), tile.Height()
	mask := make([]float64, w*h)
	for y := tile.Top; y < tile.Bottom; y++ {
		for x := tile.Left; x < tile.Right; x++ {
			if cov.contains(float64(x), float64(y)) {
				mask[(y-tile.Top)*w+(x-tile.Left)] = amplitude
			}
		}
	}

	blurred := gaussianBlur2D(mask, w, h, sigma)

	sign := 1.0
	if polarity == IsBackground {
		sign = -1.0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Add(tile.Left+x, tile.Top+y, sign*blurred[y*w+x])
		}
	}
}

// gaussianKernel1D returns a normalized 1-D Gaussian kernel with radius
// ceil(3*sigma).
func gaussianKernel1D(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// convolve1D applies kernel along rows (horizontal=true) or columns
// (horizontal=false) of a w x h grid, with zero-padding at the tile
// boundary.
func convolve1D(data []float64, w, h int, kernel []float64, horizontal bool) []float64 {
	radius := (len(kernel) - 1) / 2
	out := make([]float64, w*h)
	if horizontal {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var acc float64
				for k := -radius; k <= radius; k++ {
					xx := x + k
					if xx < 0 || xx >= w {
						continue
					}
					acc += data[y*w+xx] * kernel[k+radius]
				}
				out[y*w+x] = acc
			}
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var acc float64
				for k := -radius; k <= radius; k++ {
					yy := y + k
					if yy < 0 || yy >= h {
						continue
					}
					acc += data[yy*w+x] * kernel[k+radius]
				}
				out[y*w+x] = acc
			}
		}
	}
	return out
}

// gaussianBlur2D blurs a w x h grid with a separable Gaussian kernel of
// the given standard deviation.
func gaussianBlur2D(data []float64, w, h int, sigma float64) []float64 {
	kernel := gaussianKernel1D(sigma)
	rows := convolve1D(data, w, h, kernel, true)
	return convolve1D(rows, w, h, kernel, false)
}
