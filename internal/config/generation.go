package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brookstalley/worldground/internal/simerrors"
	"github.com/brookstalley/worldground/internal/tile"
)

// GenerationConfig is the YAML-facing mirror of tile.GenerationParams, kept
// as a separate type so the wire/file format can evolve (extra fields like
// Topology, below) without disturbing the in-memory World type.
type GenerationConfig struct {
	Seed                 int64   `yaml:"seed"`
	TileCount            uint32  `yaml:"tile_count"`
	Topology             string  `yaml:"topology"` // "flat_hex" | "geodesic"
	OceanRatio           float64 `yaml:"ocean_ratio"`
	MountainRatio        float64 `yaml:"mountain_ratio"`
	ElevationRoughness   float64 `yaml:"elevation_roughness"`
	ClimateBands         bool    `yaml:"climate_bands"`
	ResourceDensity      float64 `yaml:"resource_density"`
	InitialBiomeMaturity float64 `yaml:"initial_biome_maturity"`
}

// DefaultGenerationConfig returns a reasonable starting set of generation
// parameters for a flat-hex world of modest size.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Seed:                 1,
		TileCount:             2000,
		Topology:             "flat_hex",
		OceanRatio:           0.35,
		MountainRatio:        0.12,
		ElevationRoughness:   0.5,
		ClimateBands:         true,
		ResourceDensity:      0.15,
		InitialBiomeMaturity: 0.0,
	}
}

// GenerationParamsFromFile loads and validates a GenerationConfig from a
// YAML file.
func GenerationParamsFromFile(path string) (GenerationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationConfig{}, &simerrors.ConfigError{Reason: fmt.Sprintf("reading %s: %v", path, err)}
	}
	c := DefaultGenerationConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return GenerationConfig{}, &simerrors.ConfigError{Reason: fmt.Sprintf("parsing yaml: %v", err)}
	}
	if err := c.Validate(); err != nil {
		return GenerationConfig{}, err
	}
	return c, nil
}

// Validate collects every problem with c, mirroring original_source's
// range-checked GenerationParams::validate.
func (c GenerationConfig) Validate() error {
	var problems []string

	if c.TileCount < 12 {
		problems = append(problems, "tile_count must be at least 12 (the minimum geodesic base)")
	}
	if c.OceanRatio < 0 || c.OceanRatio > 1 {
		problems = append(problems, "ocean_ratio must be in [0,1]")
	}
	if c.MountainRatio < 0 || c.MountainRatio > 1 {
		problems = append(problems, "mountain_ratio must be in [0,1]")
	}
	if c.OceanRatio+c.MountainRatio > 1 {
		problems = append(problems, "ocean_ratio + mountain_ratio must not exceed 1")
	}
	if c.ElevationRoughness < 0 || c.ElevationRoughness > 1 {
		problems = append(problems, "elevation_roughness must be in [0,1]")
	}
	if c.ResourceDensity < 0 || c.ResourceDensity > 1 {
		problems = append(problems, "resource_density must be in [0,1]")
	}
	if c.InitialBiomeMaturity < 0 || c.InitialBiomeMaturity > 1 {
		problems = append(problems, "initial_biome_maturity must be in [0,1]")
	}
	switch c.Topology {
	case "flat_hex", "geodesic":
	default:
		problems = append(problems, fmt.Sprintf("topology %q is not one of flat_hex/geodesic", c.Topology))
	}

	if len(problems) > 0 {
		return &simerrors.ConfigError{Reason: strings.Join(problems, "\n")}
	}
	return nil
}

// ToGenerationParams converts the file-facing config into tile.GenerationParams.
func (c GenerationConfig) ToGenerationParams() tile.GenerationParams {
	return tile.GenerationParams{
		Seed:                 c.Seed,
		TileCount:            c.TileCount,
		OceanRatio:           c.OceanRatio,
		MountainRatio:        c.MountainRatio,
		ElevationRoughness:   c.ElevationRoughness,
		ClimateBands:         c.ClimateBands,
		ResourceDensity:      c.ResourceDensity,
		InitialBiomeMaturity: c.InitialBiomeMaturity,
	}
}

// TopologyType reports the tile.TopologyType c.Topology names.
func (c GenerationConfig) TopologyType() tile.TopologyType {
	if c.Topology == "geodesic" {
		return tile.TopologyGeodesic
	}
	return tile.TopologyFlatHex
}
