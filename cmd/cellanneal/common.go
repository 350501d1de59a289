package main

import (
	"fmt"
	"path/filepath"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/config"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/imageio"
)

// runInputs bundles everything loaded from disk before an anneal.Driver
// can be constructed: the validated config, the decoded real images
// (one per input path, in argument order), their base names (used as
// output file names), the common image shape, and the initial colony.
type runInputs struct {
	cfg        *config.Config
	real       [][]float64
	imageNames []string
	width      int
	height     int
	initial    []*cell.Bacillus
}

func loadRunInputs(imagePaths []string, configPath, initialColonyPath string) (*runInputs, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if len(imagePaths) == 0 {
		return nil, fmt.Errorf("no input images given")
	}

	real := make([][]float64, len(imagePaths))
	names := make([]string, len(imagePaths))
	var width, height int
	for i, path := range imagePaths {
		pix, w, h, err := imageio.LoadGray(path)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", path, err)
		}
		if i == 0 {
			width, height = w, h
		} else if w != width || h != height {
			return nil, fmt.Errorf("image %s is %dx%d, expected %dx%d (same as %s)", path, w, h, width, height, imagePaths[0])
		}
		real[i] = pix
		names[i] = filepath.Base(path)
	}

	initial, err := loadInitialColony(initialColonyPath)
	if err != nil {
		return nil, err
	}
	if !constraint.Check(initial, nil, cfg.ConstraintParams(width, height)) {
		return nil, fmt.Errorf("initial colony %s violates the cell constraints", initialColonyPath)
	}

	return &runInputs{
		cfg:        cfg,
		real:       real,
		imageNames: names,
		width:      width,
		height:     height,
		initial:    initial,
	}, nil
}
