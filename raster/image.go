// Package raster rasterizes a cell.Bacillus onto a synthetic grayscale
// image and an overlap-tracking cell map, the way the teacher's
// Rasteriser turns vector paths into pixel coverage — except here the
// shape is always a bacillus (quadrilateral body + two end circles)
// instead of an arbitrary path, so there is no edge list or active-span
// bookkeeping: every draw call walks the cell's own bounding Rectangle
// directly and tests each pixel center for containment.
package raster

import "github.com/cellanneal/cellanneal/geom"

// Image is a 2-D real-valued grayscale buffer, row-major.
type Image struct {
	Pix           []float64
	Width, Height int
}

// NewImage allocates a zeroed Image of the given size.
func NewImage(width, height int) *Image {
	return &Image{Pix: make([]float64, width*height), Width: width, Height: height}
}

// NewImageFilled allocates an Image of the given size filled with value.
func NewImageFilled(width, height int, value float64) *Image {
	img := NewImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// At returns the pixel value at (x, y); out-of-bounds reads return 0.
func (img *Image) At(x, y int) float64 {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return 0
	}
	return img.Pix[y*img.Width+x]
}

// Set writes the pixel value at (x, y); out-of-bounds writes are
// silently dropped, per spec.md §4.B.
func (img *Image) Set(x, y int, v float64) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	img.Pix[y*img.Width+x] = v
}

// Add adds v to the pixel at (x, y); out-of-bounds writes are silently
// dropped.
func (img *Image) Add(x, y int, v float64) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	img.Pix[y*img.Width+x] += v
}

// Clone returns an independent copy of img.
func (img *Image) Clone() *Image {
	clone := &Image{Pix: make([]float64, len(img.Pix)), Width: img.Width, Height: img.Height}
	copy(clone.Pix, img.Pix)
	return clone
}

// CopyFrom overwrites img's pixels in place with other's. Both images
// must have the same dimensions.
func (img *Image) CopyFrom(other *Image) {
	copy(img.Pix, other.Pix)
}

// CellMap is a per-pixel count of cells whose coverage includes that
// pixel, used for the overlap penalty in score.Objective.
type CellMap struct {
	Pix           []int
	Width, Height int
}

// NewCellMap allocates a zeroed CellMap of the given size.
func NewCellMap(width, height int) *CellMap {
	return &CellMap{Pix: make([]int, width*height), Width: width, Height: height}
}

// At returns the cell count at (x, y); out-of-bounds reads return 0.
func (m *CellMap) At(x, y int) int {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Add adds delta to the count at (x, y); out-of-bounds writes are
// silently dropped.
func (m *CellMap) Add(x, y int, delta int) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] += delta
}

// Clone returns an independent copy of m.
func (m *CellMap) Clone() *CellMap {
	clone := &CellMap{Pix: make([]int, len(m.Pix)), Width: m.Width, Height: m.Height}
	copy(clone.Pix, m.Pix)
	return clone
}

// CopyFrom overwrites m's pixels in place with other's. Both cell maps
// must have the same dimensions.
func (m *CellMap) CopyFrom(other *CellMap) {
	copy(m.Pix, other.Pix)
}

// clampRegion clamps r to the pixel grid of an image/cellmap of the
// given size.
func clampRegion(r geom.Rectangle, width, height int) geom.Rectangle {
	return r.Clamp(width, height)
}
