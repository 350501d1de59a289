package change

import (
	"math/rand"
	"testing"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
	"github.com/cellanneal/cellanneal/score"
	"github.com/cellanneal/cellanneal/simconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 80
	testHeight = 60
)

func testConstraintParams() constraint.Params {
	return constraint.Params{
		ImageWidth: testWidth, ImageHeight: testHeight,
		MinWidth: 2, MaxWidth: 10,
		MinLength: 5, MaxLength: 60,
		MaxSpeed: 20, MaxSpin: 10,
		MinGrowth: -10, MaxGrowth: 10,
		FramesPerSecond: 1,
		ImageType:       simconfig.Binary,
	}
}

// newTestEnv builds a two-frame lineage (frame 0: single cell A; frame
// 1: copy-forward of A) with rendered binary images, ready for change
// construction against frame 1.
func newTestEnv(t *testing.T, seed int64) (*Env, *lineage.Lineage) {
	t.Helper()
	cfg := simconfig.Config{ImageType: simconfig.Binary}
	a := cell.New("A", 30, 25, 6, 20, 0)
	l := lineage.New([]*cell.Bacillus{a}, cfg)

	f0 := l.Frame(0)
	f0.SynthImage, f0.CellMap = raster.RenderFrame(testWidth, testHeight, liveCells(l, f0), cfg)

	l.CopyForward()
	f1 := l.Frame(1)
	f1.SynthImage, f1.CellMap = raster.RenderFrame(testWidth, testHeight, liveCells(l, f1), f1.SimConfig)

	real := make([]float64, testWidth*testHeight)

	env := &Env{
		Lineage:        l,
		FrameIndex:     1,
		Real:           real,
		Width:          testWidth,
		Height:         testHeight,
		OverlapCost:    1,
		CellImportance: 1,
		SplitCost:      0.5,
		Constraint:     testConstraintParams(),
		RNG:            rand.New(rand.NewSource(seed)),
	}
	return env, l
}

func defaultPerturbConfig() PerturbConfig {
	small := AttrConfig{Prob: 0.9, Mu: 0, Sigma: 0.3}
	return PerturbConfig{X: small, Y: small, Width: small, Length: small, Rotation: small}
}

func TestPerturbationProducesValidChangeEventually(t *testing.T) {
	env, l := newTestEnv(t, 7)
	nodeA := l.Node(l.Frame(1).Nodes["A"])

	pt, ok := NewPerturbation(env, nodeA, defaultPerturbConfig())
	require.True(t, ok)
	assert.True(t, pt.IsValid())
	assert.NotEqual(t, nodeA.Cell, pt.replacement)
}

func TestPerturbationCostDiffMatchesFullImageDelta(t *testing.T) {
	env, l := newTestEnv(t, 11)
	nodeA := l.Node(l.Frame(1).Nodes["A"])

	pt, ok := NewPerturbation(env, nodeA, defaultPerturbConfig())
	require.True(t, ok)

	f := env.frame()
	full := score.Full(env.Width, env.Height)
	fullBefore := env.regionCost(f.SynthImage, f.CellMap, f.Distmap, full)
	diff := pt.CostDiff()
	pt.Apply()
	fullAfter := env.regionCost(f.SynthImage, f.CellMap, f.Distmap, full)

	assert.InDelta(t, fullAfter-fullBefore, diff, 1e-7)
}

func TestSplitThenCombineRoundTrip(t *testing.T) {
	env, l := newTestEnv(t, 3)
	nodeA0 := l.Node(l.Frame(0).Nodes["A"])

	sp, ok := NewSplit(env, nodeA0)
	require.True(t, ok, "split should find a valid alpha within a few tries")
	sp.Apply()

	f1 := l.Frame(1)
	assert.NotContains(t, f1.Nodes, "A")
	assert.Contains(t, f1.Nodes, "A0")
	assert.Contains(t, f1.Nodes, "A1")

	cb, ok := NewCombine(env, nodeA0)
	require.True(t, ok)
	cb.Apply()

	assert.Contains(t, f1.Nodes, "A")
	assert.NotContains(t, f1.Nodes, "A0")
	resultCell := l.Node(f1.Nodes["A"]).Cell
	assert.InDelta(t, 30.0, resultCell.X, 1e-6)
	assert.InDelta(t, 25.0, resultCell.Y, 1e-6)
	assert.InDelta(t, 20.0, resultCell.Length, 1e-6)
}

func TestCombineRejectsWrongChildCount(t *testing.T) {
	env, l := newTestEnv(t, 4)
	nodeA0 := l.Node(l.Frame(0).Nodes["A"])
	_, ok := NewCombine(env, nodeA0)
	assert.False(t, ok, "frame 0's node has one child (copy-forward), not two")
}

func TestSplitRejectsWrongChildCount(t *testing.T) {
	env, l := newTestEnv(t, 5)
	nodeA1 := l.Node(l.Frame(1).Nodes["A"])
	_, ok := NewSplit(env, nodeA1)
	assert.False(t, ok, "frame 1's node has no children yet")
}

func TestBackgroundOffsetRejectsNonPositiveColor(t *testing.T) {
	env, l := newTestEnv(t, 9)
	env.frame().SimConfig.ImageType = simconfig.GraySynthetic
	env.frame().SimConfig.BackgroundColor = 0.01
	_ = l

	bo := NewBackgroundOffset(env, -1, 0) // drives color negative deterministically
	assert.False(t, bo.IsValid())
}

func TestBackgroundOffsetAcceptsPositiveColor(t *testing.T) {
	env, l := newTestEnv(t, 9)
	env.frame().SimConfig.ImageType = simconfig.GraySynthetic
	env.frame().SimConfig.BackgroundColor = 0.39
	_ = l

	bo := NewBackgroundOffset(env, 0.01, 0)
	assert.True(t, bo.IsValid())

	bo.Apply()
	assert.InDelta(t, 0.40, env.frame().SimConfig.BackgroundColor, 1e-9)
}
