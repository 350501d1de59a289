// Command cellanneal reconstructs bacillus cell lineages from a
// time-ordered series of grayscale micrographs by simulated annealing
// (spec.md §1). See `cellanneal --help` for the command tree.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("cellanneal: %v", err)
		os.Exit(1)
	}
}
