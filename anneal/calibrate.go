package anneal

import (
	log "github.com/sirupsen/logrus"
)

// targetPbad is the bad-move acceptance probability the three-stage
// bracket search converges start temperature toward (spec.md §4.I).
const targetPbad = 0.40

// minEndPbad is the floor the fine-step end-temperature search
// descends to.
const minEndPbad = 1e-10

// Calibrate performs spec.md §4.I's auto-temperature search: a
// three-stage bracket (×10, ÷10, ×1.1) converging on the smallest
// temperature with pbad >= 0.40 within 10% precision, then a ÷10
// fine-step descent from there to the end temperature. newDriver must
// return a fresh Driver (fresh lineage, fresh images) on every call,
// since AutoTempPbad mutates the lineage it runs against and a single
// Driver cannot be reused across trials.
func Calibrate(newDriver func() *Driver, iterationsPerCell float64) (startTemp, endTemp float64) {
	temp := 1.0

	for newDriver().AutoTempPbad(iterationsPerCell, temp) < targetPbad {
		temp *= 10
		log.Debugf("auto-temp: bracket up, temp=%g", temp)
	}
	for newDriver().AutoTempPbad(iterationsPerCell, temp) > targetPbad {
		temp /= 10
		log.Debugf("auto-temp: bracket down, temp=%g", temp)
	}
	for newDriver().AutoTempPbad(iterationsPerCell, temp) < targetPbad {
		temp *= 1.1
		log.Debugf("auto-temp: fine step, temp=%g", temp)
	}
	startTemp = temp
	log.Infof("auto-temp: start temperature %g", startTemp)

	endTemp = startTemp
	for newDriver().AutoTempPbad(iterationsPerCell, endTemp) > minEndPbad {
		endTemp /= 10
		log.Debugf("auto-temp: end-temp descent, temp=%g", endTemp)
	}
	log.Infof("auto-temp: end temperature %g", endTemp)

	return startTemp, endTemp
}
