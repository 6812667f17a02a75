// Package config builds constellation deciders and soft decoders from YAML
// descriptions, for pipelines whose modulation setup is data-driven rather
// than fixed at compile time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jeongseonghan/constel/internal/constellation"
)

// Point is one complex constellation point.
type Point struct {
	Real float64 `yaml:"real"`
	Imag float64 `yaml:"imag"`
}

// Sector holds the parameters of the sector-based strategies. RealSectors,
// ImagSectors and the widths apply to the rect strategy; Sectors applies to
// the psk strategy; Table optionally overrides the computed sector table.
type Sector struct {
	RealSectors int     `yaml:"real_sectors"`
	ImagSectors int     `yaml:"imag_sectors"`
	WidthReal   float64 `yaml:"width_real"`
	WidthImag   float64 `yaml:"width_imag"`
	Sectors     int     `yaml:"sectors"`
	Table       []int   `yaml:"table"`
}

// Soft configures the soft-decision subsystem. A non-zero LUTPrecision
// precomputes the lookup grid at build time.
type Soft struct {
	LUTPrecision int     `yaml:"lut_precision"`
	NoisePower   float64 `yaml:"noise_power"`
}

// Config describes a complete symbol-decision setup. Either Modulation names
// a built-in alphabet (bpsk, qpsk, dqpsk, 8psk) or Points lists a custom one,
// in which case Strategy selects the decider (exhaustive, rect, psk; default
// exhaustive).
type Config struct {
	Modulation         string  `yaml:"modulation"`
	Points             []Point `yaml:"points"`
	PreDiffCode        []int   `yaml:"pre_diff_code"`
	RotationalSymmetry int     `yaml:"rotational_symmetry"`
	Dimensionality     int     `yaml:"dimensionality"`
	Strategy           string  `yaml:"strategy"`
	Sector             Sector  `yaml:"sector"`
	Soft               *Soft   `yaml:"soft_decision"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Dimensionality == 0 {
		cfg.Dimensionality = 1
	}
	return &cfg, nil
}

// Build wires up the configured decider and, when soft decisions are
// configured, its soft decoder.
func (cfg *Config) Build() (constellation.Decider, *constellation.SoftDecoder, error) {
	decider, err := cfg.buildDecider()
	if err != nil {
		return nil, nil, err
	}

	var soft *constellation.SoftDecoder
	if cfg.Soft != nil {
		soft, err = constellation.NewSoftDecoder(decider.Constellation())
		if err != nil {
			return nil, nil, fmt.Errorf("soft decision: %w", err)
		}
		if cfg.Soft.LUTPrecision > 0 {
			npwr := cfg.Soft.NoisePower
			if npwr == 0 {
				npwr = 1
			}
			if err := soft.BuildLUT(cfg.Soft.LUTPrecision, npwr); err != nil {
				return nil, nil, fmt.Errorf("soft decision: %w", err)
			}
		}
	}
	return decider, soft, nil
}

func (cfg *Config) buildDecider() (constellation.Decider, error) {
	if cfg.Modulation != "" {
		if len(cfg.Points) != 0 {
			return nil, fmt.Errorf("%w: both modulation %q and custom points given",
				constellation.ErrInvalidConfig, cfg.Modulation)
		}
		switch cfg.Modulation {
		case "bpsk":
			return constellation.NewBPSK(), nil
		case "qpsk":
			return constellation.NewQPSK(), nil
		case "dqpsk":
			return constellation.NewDQPSK(), nil
		case "8psk":
			return constellation.NewPSK8(), nil
		default:
			return nil, fmt.Errorf("%w: unknown modulation %q",
				constellation.ErrInvalidConfig, cfg.Modulation)
		}
	}

	points := make([]complex128, len(cfg.Points))
	for i, p := range cfg.Points {
		points[i] = complex(p.Real, p.Imag)
	}

	switch cfg.Strategy {
	case "", "exhaustive":
		return constellation.NewExhaustive(points, cfg.PreDiffCode,
			cfg.RotationalSymmetry, cfg.Dimensionality)
	case "rect":
		if len(cfg.Sector.Table) != 0 {
			return constellation.NewExplicitRectDecider(points, cfg.PreDiffCode,
				cfg.RotationalSymmetry, cfg.Sector.RealSectors, cfg.Sector.ImagSectors,
				cfg.Sector.WidthReal, cfg.Sector.WidthImag, cfg.Sector.Table)
		}
		return constellation.NewRectDecider(points, cfg.PreDiffCode,
			cfg.RotationalSymmetry, cfg.Sector.RealSectors, cfg.Sector.ImagSectors,
			cfg.Sector.WidthReal, cfg.Sector.WidthImag)
	case "psk":
		return constellation.NewPSKDecider(points, cfg.PreDiffCode, cfg.Sector.Sectors)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q",
			constellation.ErrInvalidConfig, cfg.Strategy)
	}
}
