// Package config loads and validates the nested simulation
// configuration (spec.md §6) from a YAML file via viper, and converts
// it into the option structs each downstream package expects
// (simconfig.Config, constraint.Params, change.PerturbConfig,
// anneal.Config).
package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"

	"github.com/cellanneal/cellanneal/anneal"
	"github.com/cellanneal/cellanneal/change"
	"github.com/cellanneal/cellanneal/constraint"
	"github.com/cellanneal/cellanneal/simconfig"
)

// GlobalConfig is the global.* section.
type GlobalConfig struct {
	FramesPerSecond float64 `mapstructure:"framesPerSecond"`
	PixelsPerMicron float64 `mapstructure:"pixelsPerMicron"`
	CellType        string  `mapstructure:"cellType"`
}

// BacilliConfig is the bacilli.* section.
type BacilliConfig struct {
	MaxSpeed            float64 `mapstructure:"maxSpeed"`
	MaxSpin             float64 `mapstructure:"maxSpin"`
	MinGrowth           float64 `mapstructure:"minGrowth"`
	MaxGrowth           float64 `mapstructure:"maxGrowth"`
	MinWidth            float64 `mapstructure:"minWidth"`
	MaxWidth            float64 `mapstructure:"maxWidth"`
	MinLength           float64 `mapstructure:"minLength"`
	MaxLength           float64 `mapstructure:"maxLength"`
	DistanceCostDivisor float64 `mapstructure:"distanceCostDivisor"`
}

// SimulationImageConfig is simulation.image.*.
type SimulationImageConfig struct {
	Type string `mapstructure:"type"`
}

// SimulationBackgroundConfig is simulation.background.*.
type SimulationBackgroundConfig struct {
	Color float64 `mapstructure:"color"`
}

// SimulationConfig is the simulation.* section.
type SimulationConfig struct {
	Image      SimulationImageConfig      `mapstructure:"image"`
	Background SimulationBackgroundConfig `mapstructure:"background"`
}

// ProbConfig is the prob.* section: the categorical distribution over
// change kinds, minus background_offset (which lives under
// perturbation.prob.background_offset for historical reasons — see
// DESIGN.md).
type ProbConfig struct {
	Perturbation float64 `mapstructure:"perturbation"`
	Combine      float64 `mapstructure:"combine"`
	Split        float64 `mapstructure:"split"`
}

// AttrProbConfig is perturbation.prob.*: the per-attribute draw
// probabilities within a Perturbation, plus background_offset's own
// entry in the change-kind distribution.
type AttrProbConfig struct {
	X                float64 `mapstructure:"x"`
	Y                float64 `mapstructure:"y"`
	Width            float64 `mapstructure:"width"`
	Length           float64 `mapstructure:"length"`
	Rotation         float64 `mapstructure:"rotation"`
	Opacity          float64 `mapstructure:"opacity"`
	BackgroundOffset float64 `mapstructure:"background_offset"`
}

// ModAttrConfig is one perturbation.modification.<attr> entry.
type ModAttrConfig struct {
	Mu    float64 `mapstructure:"mu"`
	Sigma float64 `mapstructure:"sigma"`
}

// ModificationConfig is perturbation.modification.*.
type ModificationConfig struct {
	X                ModAttrConfig `mapstructure:"x"`
	Y                ModAttrConfig `mapstructure:"y"`
	Width            ModAttrConfig `mapstructure:"width"`
	Length           ModAttrConfig `mapstructure:"length"`
	Rotation         ModAttrConfig `mapstructure:"rotation"`
	Opacity          ModAttrConfig `mapstructure:"opacity"`
	BackgroundOffset ModAttrConfig `mapstructure:"background_offset"`
}

// PerturbationConfig is the perturbation.* section.
type PerturbationConfig struct {
	Prob         AttrProbConfig     `mapstructure:"prob"`
	Modification ModificationConfig `mapstructure:"modification"`
}

// ResidualConfig is the residual.* section.
type ResidualConfig struct {
	Vmin float64 `mapstructure:"vmin"`
	Vmax float64 `mapstructure:"vmax"`
}

// GlobalOptimizerConfig is the global_optimizer.* section.
type GlobalOptimizerConfig struct {
	WindowSize int `mapstructure:"window_size"`
}

// Config is the full nested mapping spec.md §6 describes.
type Config struct {
	Global     GlobalConfig     `mapstructure:"global"`
	Bacilli    BacilliConfig    `mapstructure:"bacilli"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Overlap    struct {
		Cost float64 `mapstructure:"cost"`
	} `mapstructure:"overlap"`
	Cell struct {
		Importance float64 `mapstructure:"importance"`
	} `mapstructure:"cell"`
	Split struct {
		Cost float64 `mapstructure:"cost"`
	} `mapstructure:"split"`
	GlobalOptimizer GlobalOptimizerConfig `mapstructure:"global_optimizer"`
	Prob            ProbConfig            `mapstructure:"prob"`
	Perturbation    PerturbationConfig    `mapstructure:"perturbation"`
	Residual        ResidualConfig        `mapstructure:"residual"`
}

// Load reads and validates the YAML config file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// changeProbTolerance is the slack allowed when checking that the
// change-kind categorical distribution sums to 1.
const changeProbTolerance = 1e-6

// Validate checks the cross-field invariants spec.md §6 states as
// part of the config's shape: the change-kind distribution must sum
// to 1, the image type must be one of the three recognized names, and
// the window size must be positive.
func (c *Config) Validate() error {
	sum := c.Prob.Split + c.Prob.Perturbation + c.Prob.Combine + c.Perturbation.Prob.BackgroundOffset
	if math.Abs(sum-1) > changeProbTolerance {
		return fmt.Errorf("config: prob.split+prob.perturbation+prob.combine+perturbation.prob.background_offset must sum to 1, got %g", sum)
	}

	if _, err := simconfig.ParseImageType(c.Simulation.Image.Type); err != nil {
		return fmt.Errorf("config: simulation.image.type: %w", err)
	}

	if c.GlobalOptimizer.WindowSize < 1 {
		return fmt.Errorf("config: global_optimizer.window_size must be >= 1, got %d", c.GlobalOptimizer.WindowSize)
	}

	return nil
}

// SimConfig builds the per-frame rendering config frame 0 starts with.
func (c *Config) SimConfig() simconfig.Config {
	imageType, _ := simconfig.ParseImageType(c.Simulation.Image.Type) // validated by Load
	return simconfig.Config{
		ImageType:       imageType,
		BackgroundColor: c.Simulation.Background.Color,
	}
}

// ConstraintParams builds the biological-feasibility bounds for an
// image of the given shape.
func (c *Config) ConstraintParams(imageWidth, imageHeight int) constraint.Params {
	imageType, _ := simconfig.ParseImageType(c.Simulation.Image.Type)
	return constraint.Params{
		ImageWidth:      imageWidth,
		ImageHeight:     imageHeight,
		MinWidth:        c.Bacilli.MinWidth,
		MaxWidth:        c.Bacilli.MaxWidth,
		MinLength:       c.Bacilli.MinLength,
		MaxLength:       c.Bacilli.MaxLength,
		MaxSpeed:        c.Bacilli.MaxSpeed,
		MaxSpin:         c.Bacilli.MaxSpin,
		MinGrowth:       c.Bacilli.MinGrowth,
		MaxGrowth:       c.Bacilli.MaxGrowth,
		FramesPerSecond: c.Global.FramesPerSecond,
		ImageType:       imageType,
	}
}

// PerturbConfig builds the per-attribute draw config a change.
// Perturbation samples from.
func (c *Config) PerturbConfig() change.PerturbConfig {
	mod := c.Perturbation.Modification
	prob := c.Perturbation.Prob
	attr := func(p float64, m ModAttrConfig) change.AttrConfig {
		return change.AttrConfig{Prob: p, Mu: m.Mu, Sigma: m.Sigma}
	}
	return change.PerturbConfig{
		X:        attr(prob.X, mod.X),
		Y:        attr(prob.Y, mod.Y),
		Width:    attr(prob.Width, mod.Width),
		Length:   attr(prob.Length, mod.Length),
		Rotation: attr(prob.Rotation, mod.Rotation),
		Opacity:  attr(prob.Opacity, mod.Opacity),
	}
}

// DriverConfig builds the anneal package's Config from the parts this
// config knows about; the caller still supplies start/end temperature
// and the distance-objective flag, which come from CLI args rather
// than the config file (spec.md §6).
func (c *Config) DriverConfig(imageWidth, imageHeight int, useDistanceObjective bool, startTemp, endTemp float64) anneal.Config {
	return anneal.Config{
		WindowSize:        c.GlobalOptimizer.WindowSize,
		IterationsPerCell: 2000,
		StartTemp:         startTemp,
		EndTemp:           endTemp,
		ChangeProbs: anneal.ChangeProbs{
			Split:            c.Prob.Split,
			Perturbation:     c.Prob.Perturbation,
			Combine:          c.Prob.Combine,
			BackgroundOffset: c.Perturbation.Prob.BackgroundOffset,
		},
		Perturb:               c.PerturbConfig(),
		BackgroundOffsetMu:    c.Perturbation.Modification.BackgroundOffset.Mu,
		BackgroundOffsetSigma: c.Perturbation.Modification.BackgroundOffset.Sigma,
		UseDistanceObjective:  useDistanceObjective,
		OverlapCost:           c.Overlap.Cost,
		CellImportance:        c.Cell.Importance,
		SplitCost:             c.Split.Cost,
		DistanceCostDivisor:   c.Bacilli.DistanceCostDivisor,
		PixelsPerMicron:       c.Global.PixelsPerMicron,
		Constraint:            c.ConstraintParams(imageWidth, imageHeight),
	}
}
