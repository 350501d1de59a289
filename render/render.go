// Package render implements the three per-frame output sinks spec.md
// §6 names: the best-fit synth-image PNG, the real-image-plus-outline
// overlay PNG, and the optional blue-white-red residual heatmap PNG.
// Writer implements anneal.FrameWriter so the driver can call it
// directly as each frame leaves the trailing edge of the sliding
// window.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/cellanneal/cellanneal/imageio"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
)

// Config bundles the paths and data a Writer needs beyond the lineage
// itself. ResidualDir == "" disables residual output (spec.md §6
// marks it optional).
type Config struct {
	BestfitDir  string
	OverlayDir  string
	ResidualDir string

	ImageNames []string // one per frame, used as the output file's base name
	Real       [][]float64
	Width      int
	Height     int

	ResidualVmin float64
	ResidualVmax float64
}

// Writer writes bestfit/overlay/residual PNGs for each frame handed
// to it, in the directories named by its Config.
type Writer struct {
	cfg Config
}

// NewWriter creates the configured output directories and returns a
// Writer targeting them.
func NewWriter(cfg Config) (*Writer, error) {
	dirs := []string{cfg.BestfitDir, cfg.OverlayDir}
	if cfg.ResidualDir != "" {
		dirs = append(dirs, cfg.ResidualDir)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("render: create output dir %s: %w", d, err)
		}
	}
	return &Writer{cfg: cfg}, nil
}

// WriteFrame satisfies anneal.FrameWriter: it writes the bestfit,
// overlay, and (if enabled) residual images for frameIndex.
func (w *Writer) WriteFrame(l *lineage.Lineage, frameIndex int) error {
	if frameIndex < 0 || frameIndex >= len(w.cfg.ImageNames) {
		return fmt.Errorf("render: frame index %d out of range for %d image names", frameIndex, len(w.cfg.ImageNames))
	}
	name := w.cfg.ImageNames[frameIndex]
	frame := l.Frame(frameIndex)

	log.Infof("render: writing frame %d (%s)", frameIndex, name)

	bestfitPath := filepath.Join(w.cfg.BestfitDir, name)
	if err := imageio.SaveGray(bestfitPath, frame.SynthImage.Pix, w.cfg.Width, w.cfg.Height); err != nil {
		return fmt.Errorf("render: bestfit: %w", err)
	}

	overlay := w.buildOverlay(l, frameIndex)
	overlayPath := filepath.Join(w.cfg.OverlayDir, name)
	if err := imageio.SaveRGB(overlayPath, overlay); err != nil {
		return fmt.Errorf("render: overlay: %w", err)
	}

	if w.cfg.ResidualDir != "" {
		residual := w.buildResidual(frame.SynthImage, w.cfg.Real[frameIndex])
		residualPath := filepath.Join(w.cfg.ResidualDir, name)
		if err := imageio.SaveRGB(residualPath, residual); err != nil {
			return fmt.Errorf("render: residual: %w", err)
		}
	}

	return nil
}

// buildOverlay seeds an RGBImage from the real grayscale frame and
// draws every live cell's outline in red (spec.md §6).
func (w *Writer) buildOverlay(l *lineage.Lineage, frameIndex int) *raster.RGBImage {
	img := raster.NewRGBImage(w.cfg.Width, w.cfg.Height)
	real := w.cfg.Real[frameIndex]
	for y := 0; y < w.cfg.Height; y++ {
		for x := 0; x < w.cfg.Width; x++ {
			img.SetGray(x, y, real[y*w.cfg.Width+x])
		}
	}
	for _, c := range l.LiveCells(frameIndex) {
		raster.DrawOutline(img, c, 1, 0, 0)
	}
	return img
}

// buildResidual computes real-synth clipped to [vmin, vmax] and maps
// it through the diverging colormap (spec.md §6).
func (w *Writer) buildResidual(synth *raster.Image, real []float64) *raster.RGBImage {
	img := raster.NewRGBImage(w.cfg.Width, w.cfg.Height)
	vmin, vmax := w.cfg.ResidualVmin, w.cfg.ResidualVmax
	span := vmax - vmin
	for y := 0; y < w.cfg.Height; y++ {
		for x := 0; x < w.cfg.Width; x++ {
			diff := real[y*w.cfg.Width+x] - synth.At(x, y)
			if diff < vmin {
				diff = vmin
			}
			if diff > vmax {
				diff = vmax
			}
			t := 0.0
			if span != 0 {
				t = 2*(diff-vmin)/span - 1 // map [vmin, vmax] onto [-1, 1]
			}
			r, g, b := diverging(t)
			img.SetColor(x, y, r, g, b)
		}
	}
	return img
}
