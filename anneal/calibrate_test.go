package anneal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCalibrateConvergesToTargetBand reproduces spec.md §8 scenario 6:
// each trial driver is rebuilt with the same seed, so AutoTempPbad is
// a deterministic function of temperature alone, and the loop's own
// exit conditions guarantee the assertions below without needing to
// predict the exact numeric value.
func TestCalibrateConvergesToTargetBand(t *testing.T) {
	newDriver := newDriverFactory(99, 3, nil)

	startTemp, endTemp := Calibrate(newDriver, 20)

	require := assert.New(t)
	require.Greater(startTemp, 0.0)
	require.Greater(endTemp, 0.0)
	require.LessOrEqual(endTemp, startTemp)

	pbadAtStart := newDriver().AutoTempPbad(20, startTemp)
	require.GreaterOrEqual(pbadAtStart, targetPbad)

	pbadAtEnd := newDriver().AutoTempPbad(20, endTemp)
	require.Less(pbadAtEnd, minEndPbad)
}
