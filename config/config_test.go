package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
global:
  framesPerSecond: 1
  pixelsPerMicron: 0.0837
  cellType: bacilli

bacilli:
  maxSpeed: 20
  maxSpin: 3
  minGrowth: -2
  maxGrowth: 3
  minWidth: 10
  maxWidth: 25
  minLength: 14
  maxLength: 45
  distanceCostDivisor: 10

simulation:
  image:
    type: graySynthetic
  background:
    color: 0.39

overlap:
  cost: 1.2

cell:
  importance: 1.5

split:
  cost: 0.8

global_optimizer:
  window_size: 5

prob:
  split: 0.2
  perturbation: 0.6
  combine: 0.19

perturbation:
  prob:
    x: 0.2
    y: 0.2
    width: 0.15
    length: 0.15
    rotation: 0.15
    opacity: 0.05
    background_offset: 0.01
  modification:
    x:
      mu: 0
      sigma: 0.5
    y:
      mu: 0
      sigma: 0.5
    width:
      mu: 0
      sigma: 0.1
    length:
      mu: 0
      sigma: 0.3
    rotation:
      mu: 0
      sigma: 0.05
    opacity:
      mu: 0
      sigma: 0.02
    background_offset:
      mu: 0
      sigma: 0.01

residual:
  vmin: -1
  vmax: 1
`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeFixture(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Global.FramesPerSecond)
	assert.Equal(t, "graySynthetic", cfg.Simulation.Image.Type)
	assert.Equal(t, 5, cfg.GlobalOptimizer.WindowSize)
	assert.InDelta(t, 0.5, cfg.Perturbation.Modification.X.Sigma, 1e-9)
}

func TestLoadRejectsBadProbSum(t *testing.T) {
	path := writeFixture(t, strings.Replace(validYAML, "  combine: 0.19", "  combine: 0.9", 1))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownImageType(t *testing.T) {
	path := writeFixture(t, strings.Replace(validYAML, "type: graySynthetic", "type: rainbow", 1))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsZeroWindowSize(t *testing.T) {
	path := writeFixture(t, strings.Replace(validYAML, "window_size: 5", "window_size: 0", 1))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConstraintParamsCarriesBacilliBounds(t *testing.T) {
	path := writeFixture(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.ConstraintParams(512, 512)
	assert.Equal(t, 512, p.ImageWidth)
	assert.Equal(t, cfg.Bacilli.MinWidth, p.MinWidth)
	assert.Equal(t, cfg.Bacilli.MaxSpeed, p.MaxSpeed)
}

func TestPerturbConfigCarriesProbAndModification(t *testing.T) {
	path := writeFixture(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	pc := cfg.PerturbConfig()
	assert.InDelta(t, 0.2, pc.X.Prob, 1e-9)
	assert.InDelta(t, 0.5, pc.X.Sigma, 1e-9)
	assert.InDelta(t, 0.05, pc.Opacity.Prob, 1e-9)
}

func TestDriverConfigWiresWindowAndCosts(t *testing.T) {
	path := writeFixture(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	dc := cfg.DriverConfig(256, 256, true, 1.0, 1e-6)
	assert.Equal(t, cfg.GlobalOptimizer.WindowSize, dc.WindowSize)
	assert.True(t, dc.UseDistanceObjective)
	assert.InDelta(t, cfg.Overlap.Cost, dc.OverlapCost, 1e-9)
	assert.Equal(t, 256, dc.Constraint.ImageWidth)
}
