// Package dispatch implements the outer, frame-optimization-granularity
// parallel model of spec.md §5: independent colonies, each with its own
// cloned lineage and images, advanced through one frame by independent
// workers sharing no mutable state, gathered by a dispatcher that keeps
// the best survivors under a selection strategy.
package dispatch

import (
	"sort"
	"sync"

	"github.com/cellanneal/cellanneal/lineage"
)

// WorkerFunc advances one independent colony through a frame (running
// an anneal.Driver, typically) and returns the resulting lineage and
// its final objective cost.
type WorkerFunc func() (*lineage.Lineage, float64)

// Result pairs a worker's outcome with the index of the WorkerFunc
// that produced it, so callers can trace a survivor back to its
// originating colony even though goroutines complete out of order.
type Result struct {
	Index   int
	Lineage *lineage.Lineage
	Cost    float64
}

// Strategy selects which gathered Results survive after a dispatch
// round (spec.md §5's "keep" selection).
type Strategy int

const (
	// BestWins keeps the keep results with the lowest cost.
	BestWins Strategy = iota
	// WorstWins keeps the keep results with the highest cost.
	WorstWins
	// ExtremeWins keeps results alternating from the low and high
	// ends of the cost ordering, favoring diversity over pure fitness.
	ExtremeWins
)

// Run advances len(workers) independent colonies using at most
// maxConcurrency goroutines at a time (workers pull tasks off a shared
// channel, grounded on the dicomforge generator's task/result-channel
// fan-out), then returns the keep survivors chosen by strategy.
// maxConcurrency <= 0 means "one goroutine per worker".
func Run(workers []WorkerFunc, maxConcurrency int, strategy Strategy, keep int) []Result {
	if len(workers) == 0 {
		return nil
	}
	if maxConcurrency <= 0 || maxConcurrency > len(workers) {
		maxConcurrency = len(workers)
	}

	taskChan := make(chan int, len(workers))
	resultChan := make(chan Result, len(workers))

	var wg sync.WaitGroup
	for w := 0; w < maxConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range taskChan {
				l, cost := workers[idx]()
				resultChan <- Result{Index: idx, Lineage: l, Cost: cost}
			}
		}()
	}

	for i := range workers {
		taskChan <- i
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(workers))
	for r := range resultChan {
		results = append(results, r)
	}

	return Select(results, strategy, keep)
}

// Select orders results by ascending cost and keeps the top keep
// under strategy, without mutating the input slice. keep <= 0 or
// keep >= len(results) returns every result, sorted.
func Select(results []Result, strategy Strategy, keep int) []Result {
	sorted := append([]Result(nil), results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cost < sorted[j].Cost })

	if keep <= 0 || keep >= len(sorted) {
		return sorted
	}

	switch strategy {
	case WorstWins:
		return sorted[len(sorted)-keep:]
	case ExtremeWins:
		return extremeSelect(sorted, keep)
	default:
		return sorted[:keep]
	}
}

// extremeSelect alternates between the lowest and highest remaining
// cost, so the kept set spans both ends of the distribution rather
// than clustering at one extreme.
func extremeSelect(sorted []Result, keep int) []Result {
	lo, hi := 0, len(sorted)-1
	out := make([]Result, 0, keep)
	fromLow := true
	for len(out) < keep && lo <= hi {
		if fromLow {
			out = append(out, sorted[lo])
			lo++
		} else {
			out = append(out, sorted[hi])
			hi--
		}
		fromLow = !fromLow
	}
	return out
}
