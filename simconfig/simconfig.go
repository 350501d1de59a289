// Package simconfig defines the per-frame rendering configuration shared
// by the raster and lineage packages: which image type to render, the
// background color, and the diffraction-blur constants. It is split out
// from lineage so that raster does not need to import the lineage forest
// just to draw a cell.
package simconfig

import "fmt"

// ImageType selects the per-frame rendering mode (spec.md §3,
// SimulationConfig.image.type).
type ImageType int

const (
	// Binary images accumulate +1/-1 per covered pixel; no diffraction.
	Binary ImageType = iota
	// GraySynthetic images hard-overwrite covered pixels to fixed gray
	// levels, with an optional Gaussian-blurred diffraction halo.
	GraySynthetic
	// PhaseContrast images render multi-ring intensity bands; no
	// diffraction.
	PhaseContrast
)

func (t ImageType) String() string {
	switch t {
	case Binary:
		return "binary"
	case GraySynthetic:
		return "graySynthetic"
	case PhaseContrast:
		return "phaseContrast"
	default:
		return "unknown"
	}
}

// ParseImageType maps the config key simulation.image.type's string
// values ("binary", "graySynthetic", "phaseContrast") onto ImageType.
func ParseImageType(s string) (ImageType, error) {
	switch s {
	case "binary":
		return Binary, nil
	case "graySynthetic":
		return GraySynthetic, nil
	case "phaseContrast":
		return PhaseContrast, nil
	default:
		return 0, fmt.Errorf("simconfig: unrecognized image type %q", s)
	}
}

// Config is the mutable per-frame rendering configuration. Only
// BackgroundColor is meant to drift during optimization (via
// change.BackgroundOffset); the rest is fixed at startup from the
// global config.
type Config struct {
	ImageType             ImageType
	BackgroundColor        float64
	DiffractionSigma       float64
	DiffractionAmplitude   float64
}

// Copy returns an independent copy of c. Config has no pointer fields,
// so a plain value copy suffices; this documents the "copied forward
// each frame advance" contract from spec.md §3.
func (c Config) Copy() Config {
	return c
}
