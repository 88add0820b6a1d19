// Package generate builds a new World from a GenerationConfig: tile graph
// construction (delegated to internal/topology), then a single pass that
// assigns geology, climate, starting biome, and resource deposits. It is
// deliberately simple next to the phase/tick machinery that takes over
// once the world exists — generation runs once, at world creation.
package generate

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/brookstalley/worldground/internal/config"
	"github.com/brookstalley/worldground/internal/tile"
	"github.com/brookstalley/worldground/internal/topology"
	core "github.com/brookstalley/worldground/pkg/core"
)

// Generate builds a new World from cfg.
func Generate(name string, cfg config.GenerationConfig) (*tile.World, error) {
	tiles, err := buildTiles(cfg)
	if err != nil {
		return nil, err
	}

	rng := core.NewRNG(cfg.Seed)
	params := cfg.ToGenerationParams()

	for i := range tiles {
		t := &tiles[i]
		assignGeology(t, rng, cfg)
		assignClimate(t, cfg)
		assignBiome(t, cfg)
		assignResources(t, rng, cfg)
	}

	w := &tile.World{
		ID:           uuid.New(),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
		Season:       tile.SeasonSpring,
		SeasonLength: 90,
		TopologyType: cfg.TopologyType(),
		Generation:   params,
		Tiles:        tiles,
		Macro:        tile.NewMacroWeatherState(uint64(cfg.Seed)),
	}
	return w, nil
}

func buildTiles(cfg config.GenerationConfig) ([]tile.Tile, error) {
	switch cfg.TopologyType() {
	case tile.TopologyGeodesic:
		subdivisions := subdivisionsFor(cfg.TileCount)
		return topology.GenerateGeodesic(subdivisions), nil
	case tile.TopologyFlatHex:
		width, height := topology.GridDimensions(cfg.TileCount)
		return topology.GenerateFlatHex(width, height), nil
	default:
		return nil, fmt.Errorf("unknown topology %v", cfg.TopologyType())
	}
}

// subdivisionsFor picks the smallest icosphere subdivision depth whose
// vertex count (10*4^n + 2) reaches target.
func subdivisionsFor(target uint32) int {
	n := 0
	for {
		count := 10*pow4(n) + 2
		if count >= int(target) || n >= 7 {
			return n
		}
		n++
	}
}

func pow4(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 4
	}
	return v
}

// assignGeology picks terrain/soil/elevation from a smooth noise baseline
// plus the configured ocean/mountain ratios, in the same sine-baseline
// spirit as the ecology sim's tectonic map, now driven by the tile's
// position on the sphere instead of a 2D grid index.
func assignGeology(t *tile.Tile, rng *core.RNG, cfg config.GenerationConfig) {
	baseline := 0.5 + 0.5*math.Sin(t.Position.Lat*math.Pi/90.0)*math.Cos(t.Position.Lon*math.Pi/180.0)
	jitter := (float64(rng.Uint8n(100)) / 100.0 - 0.5) * cfg.ElevationRoughness
	elevation := clamp01(baseline + jitter)

	switch {
	case elevation < cfg.OceanRatio:
		t.Geology.TerrainType = tile.TerrainOcean
		t.Geology.SoilType = tile.SoilSilt
	case elevation < cfg.OceanRatio+0.05:
		t.Geology.TerrainType = tile.TerrainCoast
		t.Geology.SoilType = tile.SoilSand
	case elevation > 1.0-cfg.MountainRatio:
		t.Geology.TerrainType = tile.TerrainMountains
		t.Geology.SoilType = tile.SoilRock
	case elevation > 1.0-cfg.MountainRatio-0.08:
		t.Geology.TerrainType = tile.TerrainHills
		t.Geology.SoilType = tile.SoilClay
	case elevation < cfg.OceanRatio+0.1 && rng.Uint8n(100) < 15:
		t.Geology.TerrainType = tile.TerrainWetlands
		t.Geology.SoilType = tile.SoilSilt
	default:
		t.Geology.TerrainType = tile.TerrainPlains
		t.Geology.SoilType = tile.SoilLoam
	}

	t.Geology.Elevation = elevation
	t.Geology.Drainage = clamp01(1.0 - elevation*0.5)
	t.Geology.TectonicStress = clamp01(math.Abs(math.Sin(t.Position.Lat * math.Pi / 45.0)))
}

// assignClimate derives the tile's climate zone and baselines from
// latitude, optionally banding them into discrete zones.
func assignClimate(t *tile.Tile, cfg config.GenerationConfig) {
	absLat := math.Abs(t.Position.Lat)
	normalizedLat := t.Position.Lat / 90.0

	var zone tile.ClimateZone
	switch {
	case absLat > 75:
		zone = tile.ClimatePolar
	case absLat > 55:
		zone = tile.ClimateSubpolar
	case absLat > 35:
		zone = tile.ClimateTemperate
	case absLat > 15:
		zone = tile.ClimateSubtropical
	default:
		zone = tile.ClimateTropical
	}
	if !cfg.ClimateBands {
		// Smooth continuous approximation instead of discrete bands: pick
		// the zone the latitude is closest to the center of.
		zone = zoneFromContinuous(absLat)
	}

	baseTemp := 303.15 - absLat*0.55
	basePrecip := clamp01(0.9 - absLat/120.0)

	t.Climate.Zone = zone
	t.Climate.BaseTemperature = baseTemp
	t.Climate.BasePrecipitation = basePrecip
	t.Climate.Latitude = normalizedLat

	t.Weather = tile.DefaultWeatherLayer()
	t.Weather.Temperature = baseTemp
	t.Conditions = tile.DefaultConditionsLayer()
	t.Conditions.SoilMoisture = basePrecip
}

func zoneFromContinuous(absLat float64) tile.ClimateZone {
	switch {
	case absLat > 70:
		return tile.ClimatePolar
	case absLat > 50:
		return tile.ClimateSubpolar
	case absLat > 30:
		return tile.ClimateTemperate
	case absLat > 10:
		return tile.ClimateSubtropical
	default:
		return tile.ClimateTropical
	}
}

// assignBiome assigns the starting biome consistent with the tile's
// terrain/climate, and pre-ages it by InitialBiomeMaturity so a freshly
// generated world isn't universally at the transition threshold.
func assignBiome(t *tile.Tile, cfg config.GenerationConfig) {
	t.Biome = tile.DefaultBiomeLayer()

	if t.Geology.TerrainType == tile.TerrainOcean {
		t.Biome.BiomeType = tile.BiomeOcean
		t.Biome.VegetationDensity = 0
		t.Biome.VegetationHealth = 0
		return
	}

	switch t.Climate.Zone {
	case tile.ClimatePolar:
		t.Biome.BiomeType = tile.BiomeIce
		t.Biome.VegetationDensity = 0.05
	case tile.ClimateSubpolar:
		t.Biome.BiomeType = tile.BiomeTundra
		t.Biome.VegetationDensity = 0.2
	case tile.ClimateTemperate:
		if t.Climate.BasePrecipitation > 0.5 {
			t.Biome.BiomeType = tile.BiomeTemperateForest
			t.Biome.VegetationDensity = 0.7
		} else {
			t.Biome.BiomeType = tile.BiomeGrassland
			t.Biome.VegetationDensity = 0.5
		}
	case tile.ClimateSubtropical:
		if t.Climate.BasePrecipitation > 0.4 {
			t.Biome.BiomeType = tile.BiomeSavanna
			t.Biome.VegetationDensity = 0.4
		} else {
			t.Biome.BiomeType = tile.BiomeDesert
			t.Biome.VegetationDensity = 0.1
		}
	default: // Tropical
		if t.Climate.BasePrecipitation > 0.6 {
			t.Biome.BiomeType = tile.BiomeTropicalForest
			t.Biome.VegetationDensity = 0.9
		} else {
			t.Biome.BiomeType = tile.BiomeSavanna
			t.Biome.VegetationDensity = 0.4
		}
	}

	const maxMaturityTicks = 500
	t.Biome.TicksInCurrentBiome = uint32(cfg.InitialBiomeMaturity * maxMaturityTicks)
}

// assignResources seeds deposits in proportion to ResourceDensity, with
// terrain-appropriate resource types.
func assignResources(t *tile.Tile, rng *core.RNG, cfg config.GenerationConfig) {
	if cfg.ResourceDensity <= 0 {
		return
	}
	roll := float64(rng.Uint8n(100)) / 100.0
	if roll > cfg.ResourceDensity {
		return
	}

	resourceType, maxQty, renewal := resourceProfileFor(t.Geology.TerrainType)
	t.Resources.Deposits = []tile.ResourceDeposit{{
		ResourceType: resourceType,
		Quantity:     maxQty * 0.5,
		MaxQuantity:  maxQty,
		RenewalRate:  renewal,
	}}
}

func resourceProfileFor(terrain tile.TerrainType) (resourceType string, maxQty, renewal float64) {
	switch terrain {
	case tile.TerrainMountains:
		return "ore", 1000, 0.01
	case tile.TerrainHills:
		return "stone", 800, 0.02
	case tile.TerrainWetlands:
		return "peat", 400, 0.05
	case tile.TerrainCoast, tile.TerrainOcean:
		return "fish", 500, 0.1
	default:
		return "timber", 600, 0.08
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
