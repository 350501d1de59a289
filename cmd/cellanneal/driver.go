package main

import (
	"math/rand"

	"github.com/cellanneal/cellanneal/anneal"
	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/lineage"
)

// cloneColony deep-copies the initial colony so each fresh lineage
// (one per calibration trial, one per dispatch worker) owns its own
// Bacillus instances rather than aliasing a shared slice.
func cloneColony(initial []*cell.Bacillus) []*cell.Bacillus {
	clones := make([]*cell.Bacillus, len(initial))
	for i, c := range initial {
		clones[i] = c.Clone()
	}
	return clones
}

// buildDriver constructs a fresh Lineage from in's initial colony and
// wraps it in a Driver under driverCfg. writer may be nil for a
// headless run (dispatch workers, calibration trials).
func buildDriver(in *runInputs, driverCfg anneal.Config, rng *rand.Rand, writer anneal.FrameWriter) *anneal.Driver {
	l := lineage.New(cloneColony(in.initial), in.cfg.SimConfig())
	return anneal.NewDriver(l, in.real, in.width, in.height, driverCfg, rng, writer)
}
