package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceTransformZeroAtMask(t *testing.T) {
	width, height := 5, 5
	mask := make([]bool, width*height)
	mask[2*width+2] = true // center pixel

	dist := DistanceTransform(mask, width, height)
	assert.InDelta(t, 0, dist[2*width+2], 1e-9)
	assert.InDelta(t, 1, dist[2*width+1], 1e-9)
	assert.InDelta(t, math.Sqrt2, dist[1*width+1], 1e-6)
}

func TestDistanceTransformCorner(t *testing.T) {
	width, height := 3, 3
	mask := make([]bool, width*height)
	mask[0] = true

	dist := DistanceTransform(mask, width, height)
	assert.InDelta(t, 0, dist[0], 1e-9)
	assert.InDelta(t, 2, dist[2], 1e-9)               // (2,0)
	assert.InDelta(t, math.Sqrt(8), dist[8], 1e-6) // (2,2)
}

func TestBuildDistmapOffsetsByOne(t *testing.T) {
	width, height := 4, 4
	real := make([]float64, width*height)
	for i := range real {
		real[i] = 1 // all "bright" (>= 0.5): distance transform of an empty mask
	}

	distmap := BuildDistmap(real, width, height, 1, 1)
	for _, v := range distmap {
		assert.GreaterOrEqual(t, v, 1.0)
	}
}

func TestPlainObjectiveZeroWhenImagesMatch(t *testing.T) {
	width, height := 4, 4
	real := make([]float64, width*height)
	synth := make([]float64, width*height)
	cellmap := make([]int, width*height)

	cost := Plain(real, synth, cellmap, width, Full(width, height), 1, 1)
	assert.Equal(t, 0.0, cost)
}

func TestPlainObjectivePenalizesOverlap(t *testing.T) {
	width, height := 4, 4
	real := make([]float64, width*height)
	synth := make([]float64, width*height)
	cellmap := make([]int, width*height)
	cellmap[0] = 3 // two extra cells covering this pixel

	cost := Plain(real, synth, cellmap, width, Full(width, height), 2, 1)
	assert.InDelta(t, 4.0, cost, 1e-9) // overlapCost(2) * max(3-1,0)(2) * cellImportance(1)
}

func TestDistanceWeightedScalesBySquaredWeight(t *testing.T) {
	width, height := 2, 2
	real := []float64{1, 0, 0, 0}
	synth := []float64{0, 0, 0, 0}
	distmap := []float64{2, 1, 1, 1}
	cellmap := make([]int, 4)

	cost := DistanceWeighted(real, synth, distmap, cellmap, width, Full(width, height), 0, 0)
	assert.InDelta(t, 4.0, cost, 1e-9) // (1*2)^2
}

func TestObjectiveDispatchesOnDistmapPresence(t *testing.T) {
	width, height := 2, 2
	real := make([]float64, 4)
	synth := make([]float64, 4)
	cellmap := make([]int, 4)

	plain := Objective(real, synth, nil, cellmap, width, Full(width, height), 0, 0)
	weighted := Objective(real, synth, []float64{1, 1, 1, 1}, cellmap, width, Full(width, height), 0, 0)
	assert.Equal(t, 0.0, plain)
	assert.Equal(t, 0.0, weighted)
}

func TestCostLocalityMatchesFullImage(t *testing.T) {
	width, height := 6, 6
	real := make([]float64, width*height)
	synth := make([]float64, width*height)
	cellmap := make([]int, width*height)
	for i := range real {
		real[i] = float64(i%3) * 0.1
		synth[i] = float64(i%5) * 0.05
	}

	full := Full(width, height)
	sub := Region{Top: 1, Bottom: 3, Left: 1, Right: 4}

	before := Objective(real, synth, nil, cellmap, width, full, 1.5, 2)
	subBefore := Objective(real, synth, nil, cellmap, width, sub, 1.5, 2)

	// mutate only within sub
	for y := sub.Top; y < sub.Bottom; y++ {
		for x := sub.Left; x < sub.Right; x++ {
			synth[y*width+x] += 0.2
		}
	}

	subAfter := Objective(real, synth, nil, cellmap, width, sub, 1.5, 2)

	after := Objective(real, synth, nil, cellmap, width, full, 1.5, 2)
	assert.NotEqual(t, before, after)
	assert.InDelta(t, after-before, subAfter-subBefore, 1e-9)
}
