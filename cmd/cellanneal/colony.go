package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cellanneal/cellanneal/cell"
)

// initialCellYAML is one entry of the initial-colony YAML file: the
// "list of Bacillus parameters seeding frame 0" spec.md §6 names.
type initialCellYAML struct {
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Length   float64 `yaml:"length"`
	Rotation float64 `yaml:"rotation"`
}

// loadInitialColony reads the YAML list of starting cells and builds
// the frame-0 Bacillus slice lineage.New expects.
func loadInitialColony(path string) ([]*cell.Bacillus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("initial colony: read %s: %w", path, err)
	}

	var entries []initialCellYAML
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("initial colony: parse %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("initial colony: %s defines no cells", path)
	}

	cells := make([]*cell.Bacillus, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("initial colony: %s has an entry with no name", path)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("initial colony: %s names %q more than once", path, e.Name)
		}
		seen[e.Name] = true
		cells = append(cells, cell.New(e.Name, e.X, e.Y, e.Width, e.Length, e.Rotation))
	}
	return cells, nil
}
