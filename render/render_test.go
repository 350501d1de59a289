package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/imageio"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
	"github.com/cellanneal/cellanneal/simconfig"
)

func TestDivergingColormapEndpointsAndMidpoint(t *testing.T) {
	r, g, b := diverging(-1)
	assert.InDelta(t, 0.0, r, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 1.0, b, 1e-9)

	r, g, b = diverging(1)
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 0.0, b, 1e-9)

	r, g, b = diverging(0)
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 1.0, g, 1e-9)
	assert.InDelta(t, 1.0, b, 1e-9)
}

func TestDivergingColormapClipsOutOfRange(t *testing.T) {
	r, g, b := diverging(-5)
	assert.InDelta(t, 0.0, r, 1e-9)
	assert.InDelta(t, 1.0, b, 1e-9)
	_ = g
}

func newTestLineage(width, height int) *lineage.Lineage {
	l := lineage.New([]*cell.Bacillus{
		cell.New("a", float64(width)/2, float64(height)/2, 10, 20, 0),
	}, simconfig.Config{ImageType: simconfig.Binary})
	f := l.Frame(0)
	cells := l.LiveCells(0)
	synth, cellmap := raster.RenderFrame(width, height, cells, f.SimConfig)
	f.SynthImage = synth
	f.CellMap = cellmap
	return l
}

func TestWriteFrameProducesBestfitOverlayAndResidual(t *testing.T) {
	width, height := 20, 16
	l := newTestLineage(width, height)

	real := make([]float64, width*height)
	for i := range real {
		real[i] = 0.5
	}

	dir := t.TempDir()
	w, err := NewWriter(Config{
		BestfitDir:   filepath.Join(dir, "bestfit"),
		OverlayDir:   filepath.Join(dir, "overlay"),
		ResidualDir:  filepath.Join(dir, "residual"),
		ImageNames:   []string{"frame0.png"},
		Real:         [][]float64{real},
		Width:        width,
		Height:       height,
		ResidualVmin: -1,
		ResidualVmax: 1,
	})
	require.NoError(t, err)

	require.NoError(t, w.WriteFrame(l, 0))

	for _, sub := range []string{"bestfit", "overlay", "residual"} {
		path := filepath.Join(dir, sub, "frame0.png")
		_, _, _, err := imageio.LoadGray(path)
		assert.NoError(t, err, "expected %s to be a readable PNG", path)
	}
}

func TestWriteFrameSkipsResidualWhenDirEmpty(t *testing.T) {
	width, height := 8, 8
	l := newTestLineage(width, height)
	real := make([]float64, width*height)

	dir := t.TempDir()
	w, err := NewWriter(Config{
		BestfitDir: filepath.Join(dir, "bestfit"),
		OverlayDir: filepath.Join(dir, "overlay"),
		ImageNames: []string{"frame0.png"},
		Real:       [][]float64{real},
		Width:      width,
		Height:     height,
	})
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(l, 0))

	_, err = imageio.LoadGray(filepath.Join(dir, "residual", "frame0.png"))
	assert.Error(t, err, "residual dir was never created")
}

func TestWriteFrameRejectsOutOfRangeIndex(t *testing.T) {
	width, height := 8, 8
	l := newTestLineage(width, height)
	real := make([]float64, width*height)

	dir := t.TempDir()
	w, err := NewWriter(Config{
		BestfitDir: filepath.Join(dir, "bestfit"),
		OverlayDir: filepath.Join(dir, "overlay"),
		ImageNames: []string{"frame0.png"},
		Real:       [][]float64{real},
		Width:      width,
		Height:     height,
	})
	require.NoError(t, err)
	assert.Error(t, w.WriteFrame(l, 5))
}
