package statistics

import (
	"math"
	"testing"

	"github.com/brookstalley/worldground/internal/tile"
)

func TestShannonDiversityMonocultureIsZero(t *testing.T) {
	dist := map[string]int{"Grassland": 10}
	if got := shannonDiversity(dist, 10); got != 0 {
		t.Fatalf("monoculture must have zero diversity, got %v", got)
	}
}

func TestShannonDiversityEmptyIsZero(t *testing.T) {
	if got := shannonDiversity(map[string]int{}, 0); got != 0 {
		t.Fatalf("empty world must have zero diversity, got %v", got)
	}
}

func TestShannonDiversityEvenSplitIsOne(t *testing.T) {
	dist := map[string]int{"Grassland": 5, "Desert": 5}
	got := shannonDiversity(dist, 10)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("an even two-way split must normalize to diversity 1.0, got %v", got)
	}
}

func TestComputeAggregatesAcrossTiles(t *testing.T) {
	tiles := make([]tile.Tile, 8)
	for i := range tiles {
		tiles[i] = tile.NewDefault(uint32(i), nil, tile.Position{})
		tiles[i].Weather.Temperature = 300
		tiles[i].Conditions.SoilMoisture = 0.5
		tiles[i].Biome.VegetationDensity = 0.25
	}
	tiles[0].Biome.BiomeType = tile.BiomeDesert

	w := &tile.World{Tiles: tiles}
	stats := Compute(w, nil, 12.5)

	if stats.TileCount != 8 {
		t.Fatalf("expected TileCount 8, got %d", stats.TileCount)
	}
	if stats.MeanTemperature != 300 {
		t.Fatalf("expected mean temperature 300, got %v", stats.MeanTemperature)
	}
	if stats.MeanSoilMoisture != 0.5 {
		t.Fatalf("expected mean soil moisture 0.5, got %v", stats.MeanSoilMoisture)
	}
	if stats.BiomeDistribution["Desert"] != 1 || stats.BiomeDistribution["Grassland"] != 7 {
		t.Fatalf("unexpected biome distribution: %+v", stats.BiomeDistribution)
	}
	if stats.BiomeDiversity <= 0 {
		t.Fatalf("a mixed-biome world must report nonzero diversity, got %v", stats.BiomeDiversity)
	}
	if stats.TickDurationMillis != 12.5 {
		t.Fatalf("expected tick duration to pass through unchanged, got %v", stats.TickDurationMillis)
	}
}
