// Package anneal implements the sliding-window simulated-annealing
// driver (spec.md §4.H) and its auto-temperature calibration (§4.I).
// It wires together lineage, change, and score: picking a random node
// each iteration, proposing one of the four change.Change kinds, and
// accepting or rejecting it by a Metropolis criterion.
package anneal

import (
	"math"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/cellanneal/cellanneal/change"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/raster"
	"github.com/cellanneal/cellanneal/score"
	"github.com/cellanneal/cellanneal/simconfig"
)

// ChangeProbs is the categorical distribution driver step 4 samples a
// change kind from. The four entries are checked in this order
// (split, perturbation, combine, backgroundOffset) and should sum to
// 1 (spec.md §6's prob.{split,perturbation,combine} and
// perturbation.prob.background_offset).
type ChangeProbs struct {
	Split            float64
	Perturbation     float64
	Combine          float64
	BackgroundOffset float64
}

// FrameWriter receives a frame's best-fit/overlay/residual output once
// it leaves the trailing edge of the sliding window (spec.md §4.H
// step 8's "emit" obligation). render.Writer implements it; a nil
// FrameWriter is a valid no-op.
type FrameWriter interface {
	WriteFrame(l *lineage.Lineage, frameIndex int) error
}

// Config bundles everything the driver's loop needs besides the
// lineage and the real images themselves.
type Config struct {
	WindowSize        int
	IterationsPerCell float64

	StartTemp float64
	EndTemp   float64

	ChangeProbs ChangeProbs
	Perturb     change.PerturbConfig

	BackgroundOffsetMu    float64
	BackgroundOffsetSigma float64

	UseDistanceObjective bool
	OverlapCost          float64
	CellImportance       float64
	SplitCost            float64
	DistanceCostDivisor  float64
	PixelsPerMicron      float64

	Constraint constraint.Params
}

// Driver runs the sliding-window loop against a Lineage it extends
// frame by frame as the window advances.
type Driver struct {
	cfg    Config
	l      *lineage.Lineage
	real   [][]float64
	width  int
	height int
	rng    *rand.Rand
	writer FrameWriter
}

// NewDriver builds a Driver over an already-seeded lineage (frame 0
// populated) and one pre-decoded real image per eventual frame. writer
// may be nil.
func NewDriver(l *lineage.Lineage, real [][]float64, width, height int, cfg Config, rng *rand.Rand, writer FrameWriter) *Driver {
	return &Driver{cfg: cfg, l: l, real: real, width: width, height: height, rng: rng, writer: writer}
}

// Lineage returns the lineage the driver is building, for callers that
// need it once Run has returned (writing a lineage CSV, computing a
// final cost for dispatch comparison).
func (d *Driver) Lineage() *lineage.Lineage {
	return d.l
}

// Run executes the full sliding-window schedule over every real image,
// writing each frame's output once it has left the trailing edge of
// the window.
func (d *Driver) Run() error {
	n := len(d.real)
	w := d.cfg.WindowSize

	for windowStart := 1 - w; windowStart < n; windowStart++ {
		windowEnd := windowStart + w
		log.Infof("anneal: window [%d, %d)", windowStart, windowEnd)

		if windowEnd <= n {
			d.extendWindow(windowEnd)
		}

		d.runIterations(windowStart, windowEnd, d.cfg.IterationsPerCell, false, 0)

		if windowStart >= 0 && d.writer != nil {
			if err := d.writer.WriteFrame(d.l, windowStart); err != nil {
				return err
			}
		}
	}
	return nil
}

// extendWindow appends a new frame (by copy-forward of the tail, or
// the existing frame 0 on the very first call) and renders its synth
// image, cell map, and (if enabled) distance map.
func (d *Driver) extendWindow(windowEnd int) {
	if windowEnd > 1 {
		d.l.CopyForward()
	}
	frameIndex := windowEnd - 1
	f := d.l.Frame(frameIndex)

	cells := d.l.LiveCells(frameIndex)
	synth, cellmap := raster.RenderFrame(d.width, d.height, cells, f.SimConfig)
	f.SynthImage = synth
	f.CellMap = cellmap

	if d.cfg.UseDistanceObjective {
		f.Distmap = score.BuildDistmap(d.real[frameIndex], d.width, d.height, d.cfg.DistanceCostDivisor, d.cfg.PixelsPerMicron)
	}
}

// runIterations executes run_count proposals against frames in
// [windowStart, windowEnd), returning the accumulated bad-move
// acceptance probability and the count of bad moves (for auto-temp
// feedback). When constTemp is true, every iteration uses fixedTemp
// instead of the gerp schedule.
func (d *Driver) runIterations(windowStart, windowEnd int, iterationsPerCell float64, constTemp bool, fixedTemp float64) (pbadTotal float64, badCount int) {
	cellCount := d.l.CountCellsIn(windowStart, windowEnd)
	if cellCount == 0 {
		return 0, 0
	}

	runCount := int(math.Ceil(iterationsPerCell * float64(cellCount) / float64(d.cfg.WindowSize)))
	if runCount < 1 {
		runCount = 1
	}
	log.Debugf("anneal: run_count=%d over %d cells", runCount, cellCount)

	for iteration := 0; iteration < runCount; iteration++ {
		frameIndex, err := d.l.ChooseRandomFrameIndex(d.rng, windowStart, windowEnd)
		if err != nil {
			log.Warnf("anneal: %v", err)
			continue
		}

		temperature := fixedTemp
		if !constTemp {
			temperature = d.frameTemperature(frameIndex, windowStart, iteration, runCount)
		}

		node, err := d.l.ChooseRandomNode(d.rng, frameIndex)
		if err != nil {
			log.Warnf("anneal: %v", err)
			continue
		}

		ch := d.proposeChange(frameIndex, node)
		if ch == nil || !ch.IsValid() {
			continue
		}

		costdiff := ch.CostDiff()
		acceptance := 1.0
		if costdiff > 0 {
			badCount++
			acceptance = math.Exp(-costdiff / temperature)
			pbadTotal += acceptance
		}

		if acceptance > d.rng.Float64() {
			ch.Apply()
		}
	}
	return pbadTotal, badCount
}

// frameTemperature computes the per-iteration temperature: the
// frame's own start/end temperatures are gerps of the global
// start/end temperature over the frame's offset within the window,
// and the iteration's temperature decays geometrically from the
// frame's start temperature to its end temperature as the iteration
// advances (spec.md §4.H step 2; the original_source driver, not the
// literal argument order printed in spec.md's formula, is followed
// here — see DESIGN.md).
func (d *Driver) frameTemperature(frameIndex, windowStart, iteration, runCount int) float64 {
	w := float64(d.cfg.WindowSize)
	offset := float64(frameIndex - windowStart)

	frameStartTemp := gerp(d.cfg.EndTemp, d.cfg.StartTemp, (offset+1)/w)
	frameEndTemp := gerp(d.cfg.EndTemp, d.cfg.StartTemp, offset/w)

	t := 0.0
	if runCount > 1 {
		t = float64(iteration) / float64(runCount-1)
	}
	return gerp(frameStartTemp, frameEndTemp, t)
}

type changeKind int

const (
	kindSplit changeKind = iota
	kindPerturbation
	kindCombine
	kindBackgroundOffset
)

func (d *Driver) sampleChangeKind() changeKind {
	p := d.cfg.ChangeProbs
	r := d.rng.Float64()

	if r < p.Split {
		return kindSplit
	}
	r -= p.Split
	if r < p.Perturbation {
		return kindPerturbation
	}
	r -= p.Perturbation
	if r < p.Combine {
		return kindCombine
	}
	return kindBackgroundOffset
}

// proposeChange builds the Env for frameIndex and constructs the
// sampled change kind against node (or its parent, for the two
// structural kinds — spec.md §4.H step 3's node is the one chosen at
// random, but Split/Combine operate on *its parent*, grounded on
// original_source/global_optimization.py's `node.parent` argument).
// Returns nil when the kind's enable condition fails or construction
// rejects the candidate.
func (d *Driver) proposeChange(frameIndex int, node *lineage.CellNode) change.Change {
	env := &change.Env{
		Lineage:              d.l,
		FrameIndex:           frameIndex,
		Real:                 d.real[frameIndex],
		Width:                d.width,
		Height:               d.height,
		OverlapCost:          d.cfg.OverlapCost,
		CellImportance:       d.cfg.CellImportance,
		SplitCost:            d.cfg.SplitCost,
		Constraint:           d.cfg.Constraint,
		UseDistanceObjective: d.cfg.UseDistanceObjective,
		RNG:                  d.rng,
	}

	switch d.sampleChangeKind() {
	case kindSplit:
		if frameIndex == 0 || !node.HasParent() {
			return nil
		}
		if d.rng.Float64() >= splitProba(node.Cell.Length) {
			return nil
		}
		c, ok := change.NewSplit(env, d.l.ParentNode(node))
		if !ok {
			return nil
		}
		return c

	case kindPerturbation:
		c, ok := change.NewPerturbation(env, node, d.cfg.Perturb)
		if !ok {
			return nil
		}
		return c

	case kindCombine:
		if frameIndex == 0 || !node.HasParent() {
			return nil
		}
		c, ok := change.NewCombine(env, d.l.ParentNode(node))
		if !ok {
			return nil
		}
		return c

	case kindBackgroundOffset:
		if frameIndex == 0 {
			return nil
		}
		if d.l.Frame(frameIndex).SimConfig.ImageType != simconfig.GraySynthetic {
			return nil
		}
		return change.NewBackgroundOffset(env, d.cfg.BackgroundOffsetMu, d.cfg.BackgroundOffsetSigma)
	}
	return nil
}

// AutoTempPbad runs a single leading window (window_start = 1-W,
// window_end = 1) at a constant temperature with a small iteration
// budget, returning the mean bad-move acceptance probability. Calling
// it more than once on the same Driver is invalid: extending the
// window is not idempotent. Calibrate works around this by
// constructing a fresh Driver per trial.
func (d *Driver) AutoTempPbad(iterationsPerCell, constTemp float64) float64 {
	w := d.cfg.WindowSize
	windowStart := 1 - w
	windowEnd := windowStart + w

	if windowEnd <= len(d.real) {
		d.extendWindow(windowEnd)
	}

	pbadTotal, badCount := d.runIterations(windowStart, windowEnd, iterationsPerCell, true, constTemp)
	if badCount == 0 {
		return 0
	}
	return pbadTotal / float64(badCount)
}
