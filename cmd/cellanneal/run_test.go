package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellanneal/cellanneal/imageio"
)

const testConfigYAML = `
global:
  framesPerSecond: 1
  pixelsPerMicron: 0.0837
  cellType: bacilli

bacilli:
  maxSpeed: 100
  maxSpin: 10
  minGrowth: -10
  maxGrowth: 10
  minWidth: 2
  maxWidth: 40
  minLength: 1
  maxLength: 80
  distanceCostDivisor: 10

simulation:
  image:
    type: binary
  background:
    color: 0

overlap:
  cost: 1.0

cell:
  importance: 1.0

split:
  cost: 0.5

global_optimizer:
  window_size: 2

prob:
  split: 0.1
  perturbation: 0.8
  combine: 0.09

perturbation:
  prob:
    x: 0.3
    y: 0.3
    width: 0.1
    length: 0.1
    rotation: 0.1
    opacity: 0.05
    background_offset: 0.01
  modification:
    x:
      mu: 0
      sigma: 1
    y:
      mu: 0
      sigma: 1
    width:
      mu: 0
      sigma: 0.5
    length:
      mu: 0
      sigma: 0.5
    rotation:
      mu: 0
      sigma: 0.1
    opacity:
      mu: 0
      sigma: 0.1
    background_offset:
      mu: 0
      sigma: 0.05

residual:
  vmin: -1
  vmax: 1
`

const testColonyYAML = `
- name: a
  x: 10
  y: 8
  width: 6
  length: 14
  rotation: 0
`

func writeTestFixtures(t *testing.T, width, height, frames int) (configPath, colonyPath string, imagePaths []string) {
	t.Helper()
	dir := t.TempDir()

	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigYAML), 0o644))

	colonyPath = filepath.Join(dir, "colony.yaml")
	require.NoError(t, os.WriteFile(colonyPath, []byte(testColonyYAML), 0o644))

	pix := make([]float64, width*height)
	for i := range pix {
		pix[i] = 0.2
	}
	for i := 0; i < frames; i++ {
		path := filepath.Join(dir, "frame"+string(rune('0'+i))+".png")
		require.NoError(t, imageio.SaveGray(path, pix, width, height))
		imagePaths = append(imagePaths, path)
	}
	return configPath, colonyPath, imagePaths
}

func TestLoadRunInputsBuildsCommonShape(t *testing.T) {
	configPath, colonyPath, images := writeTestFixtures(t, 32, 24, 3)

	in, err := loadRunInputs(images, configPath, colonyPath)
	require.NoError(t, err)
	assert.Equal(t, 32, in.width)
	assert.Equal(t, 24, in.height)
	require.Len(t, in.real, 3)
	require.Len(t, in.initial, 1)
	assert.Equal(t, "a", in.initial[0].Name)
}

func TestLoadRunInputsRejectsMismatchedImageSizes(t *testing.T) {
	configPath, colonyPath, images := writeTestFixtures(t, 32, 24, 1)

	oddPath := filepath.Join(t.TempDir(), "odd.png")
	pix := make([]float64, 16*16)
	require.NoError(t, imageio.SaveGray(oddPath, pix, 16, 16))

	_, err := loadRunInputs(append(images, oddPath), configPath, colonyPath)
	assert.Error(t, err)
}

func TestRunCommandEndToEndProducesOutputsAndCSV(t *testing.T) {
	configPath, colonyPath, images := writeTestFixtures(t, 24, 20, 2)
	dir := filepath.Dir(configPath)

	outputDir := filepath.Join(dir, "output")
	bestfitDir := filepath.Join(dir, "bestfit")
	csvPath := filepath.Join(dir, "lineage.csv")

	root := newRootCmd()
	args := append([]string{
		"run",
		"--config", configPath,
		"--initial-colony", colonyPath,
		"--start-temp", "1",
		"--end-temp", "0.01",
		"--output", outputDir,
		"--bestfit", bestfitDir,
		"--lineage-csv", csvPath,
		"--seed", "7",
	}, images...)
	root.SetArgs(args)

	require.NoError(t, root.Execute())

	for _, img := range images {
		name := filepath.Base(img)
		_, _, _, err := imageio.LoadGray(filepath.Join(bestfitDir, name))
		assert.NoError(t, err)
		_, _, _, err = imageio.LoadGray(filepath.Join(outputDir, name))
		assert.NoError(t, err)
	}

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "image_name,cell_name,x,y,width,length,rotation")
}
