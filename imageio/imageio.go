// Package imageio decodes 8-bit grayscale images into the [0,1]
// row-major float arrays the rest of this module operates on, and
// encodes float arrays and RGB overlay buffers back to disk.
package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/cellanneal/cellanneal/raster"
)

// LoadGray decodes the image at path (format chosen by extension, via
// imaging.Open) into a row-major [0,1] float64 array. Color or
// non-8-bit sources are converted to grayscale with
// golang.org/x/image/draw, the same "compose between differently
// typed images" idiom the dicomforge generator uses for its text/image
// overlay pass.
func LoadGray(path string) (pix []float64, width, height int, err error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("imageio: open %s: %w", path, err)
	}

	bounds := src.Bounds()
	width, height = bounds.Dx(), bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)

	pix = make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = float64(gray.GrayAt(x, y).Y) / 255
		}
	}
	return pix, width, height, nil
}

// SaveGray encodes a row-major [0,1] float64 array as an 8-bit
// grayscale image, format chosen by path's extension (imaging.Save's
// save-by-extension convention).
func SaveGray(path string, pix []float64, width, height int) error {
	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.SetGray(x, y, color.Gray{Y: clampByte(pix[y*width+x])})
		}
	}
	if err := imaging.Save(gray, path); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	return nil
}

// SaveRGB encodes a raster.RGBImage (the overlay/outline buffer) as an
// 8-bit RGB image, format chosen by path's extension.
func SaveRGB(path string, img *raster.RGBImage) error {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := (y*img.Width + x) * 3
			out.SetRGBA(x, y, color.RGBA{
				R: clampByte(img.Pix[i]),
				G: clampByte(img.Pix[i+1]),
				B: clampByte(img.Pix[i+2]),
				A: 255,
			})
		}
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	return nil
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
