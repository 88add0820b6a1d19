package config

import (
	"testing"

	"github.com/brookstalley/worldground/internal/tile"
)

func TestDefaultGenerationConfigValidates(t *testing.T) {
	if err := DefaultGenerationConfig().Validate(); err != nil {
		t.Fatalf("DefaultGenerationConfig must validate cleanly, got: %v", err)
	}
}

func TestValidateRejectsOverbudgetRatios(t *testing.T) {
	c := DefaultGenerationConfig()
	c.OceanRatio = 0.7
	c.MountainRatio = 0.5
	if err := c.Validate(); err == nil {
		t.Fatal("expected ocean_ratio + mountain_ratio > 1 to be rejected")
	}
}

func TestValidateRejectsUnknownTopology(t *testing.T) {
	c := DefaultGenerationConfig()
	c.Topology = "hexagonal_prism"
	if err := c.Validate(); err == nil {
		t.Fatal("expected an unrecognized topology string to be rejected")
	}
}

func TestTopologyTypeMapping(t *testing.T) {
	c := DefaultGenerationConfig()
	c.Topology = "geodesic"
	if got := c.TopologyType(); got != tile.TopologyGeodesic {
		t.Fatalf("expected TopologyGeodesic, got %v", got)
	}
	c.Topology = "flat_hex"
	if got := c.TopologyType(); got != tile.TopologyFlatHex {
		t.Fatalf("expected TopologyFlatHex, got %v", got)
	}
}

func TestToGenerationParamsCarriesFieldsThrough(t *testing.T) {
	c := DefaultGenerationConfig()
	c.Seed = 42
	c.TileCount = 5000
	p := c.ToGenerationParams()
	if p.Seed != 42 || p.TileCount != 5000 {
		t.Fatalf("expected ToGenerationParams to carry Seed/TileCount through, got %+v", p)
	}
}
