package anneal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGerpInvariants(t *testing.T) {
	assert.InDelta(t, 3.0, gerp(3, 3, 0.37), 1e-12, "gerp(a,a,t) = a")
	assert.InDelta(t, 2.0, gerp(2, 50, 0), 1e-12, "gerp(a,b,0) = a")
	assert.InDelta(t, 50.0, gerp(2, 50, 1), 1e-9, "gerp(a,b,1) = b")
}

func TestGerpMonotonicDecay(t *testing.T) {
	// Between a and b, gerp should be strictly monotonic in t.
	a, b := 100.0, 1.0
	prev := gerp(a, b, 0)
	for _, tVal := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
		cur := gerp(a, b, tVal)
		assert.Less(t, cur, prev)
		prev = cur
	}
}

func TestSplitProbaOutsideRangeIsZero(t *testing.T) {
	assert.Equal(t, 0.0, splitProba(13.9))
	assert.Equal(t, 0.0, splitProba(45.1))
}

func TestSplitProbaInsideRangeIsPositive(t *testing.T) {
	got := splitProba(20)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}
