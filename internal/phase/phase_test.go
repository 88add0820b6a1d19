package phase

import (
	"context"
	"testing"

	"github.com/brookstalley/worldground/internal/mutation"
	"github.com/brookstalley/worldground/internal/scripthost"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/tile"
)

func TestClampToRangeClampsOutOfBoundValues(t *testing.T) {
	got, clamped := clampToRange("weather.temperature", 500)
	if !clamped || got != 340 {
		t.Fatalf("expected clamp to 340, got %v (clamped=%v)", got, clamped)
	}
	got, clamped = clampToRange("weather.humidity", -1)
	if !clamped || got != 0 {
		t.Fatalf("expected clamp to 0, got %v (clamped=%v)", got, clamped)
	}
}

func TestClampToRangeWrapsWindDirection(t *testing.T) {
	got, changed := clampToRange("weather.wind_direction", 370)
	if !changed || got != 10 {
		t.Fatalf("expected wind_direction to wrap 370 -> 10, got %v (changed=%v)", got, changed)
	}
	got, changed = clampToRange("weather.wind_direction", -10)
	if !changed || got != 350 {
		t.Fatalf("expected wind_direction to wrap -10 -> 350, got %v (changed=%v)", got, changed)
	}
}

func TestClampToRangeLeavesUnknownFieldsAlone(t *testing.T) {
	got, changed := clampToRange("weather.does_not_exist", 999)
	if changed || got != 999 {
		t.Fatalf("unknown field must pass through unchanged, got %v (changed=%v)", got, changed)
	}
}

func TestApplyRejectsInvalidBiomeTransition(t *testing.T) {
	tl := tile.NewDefault(0, nil, tile.Position{})
	tl.Biome.BiomeType = tile.BiomeOcean // Ocean has no outgoing edges

	var muts mutation.TileMutations
	muts.AddEnum("rule", "biome.biome_type", tile.BiomeDesert.String())

	diags := apply(&tl, simphase.Terrain, muts)
	if tl.Biome.BiomeType != tile.BiomeOcean {
		t.Fatalf("invalid transition must be rejected, biome changed to %v", tl.Biome.BiomeType)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one BiomeTransitionRejected diagnostic, got %d", len(diags))
	}
}

func TestApplyResetsBiomeResidencyOnTransition(t *testing.T) {
	tl := tile.NewDefault(0, nil, tile.Position{})
	tl.Biome.BiomeType = tile.BiomeGrassland
	tl.Biome.TicksInCurrentBiome = 500

	var muts mutation.TileMutations
	muts.AddEnum("rule", "biome.biome_type", tile.BiomeTemperateForest.String())

	apply(&tl, simphase.Terrain, muts)
	if tl.Biome.BiomeType != tile.BiomeTemperateForest {
		t.Fatalf("expected transition to TemperateForest, got %v", tl.Biome.BiomeType)
	}
	if tl.Biome.TicksInCurrentBiome != 0 {
		t.Fatalf("residency counter must reset to 0 on an actual transition, got %d", tl.Biome.TicksInCurrentBiome)
	}
}

func TestApplyIgnoresNonWhitelistedField(t *testing.T) {
	tl := tile.NewDefault(0, nil, tile.Position{})
	before := tl.Biome.VegetationDensity

	var muts mutation.TileMutations
	muts.Add("rule", "biome.vegetation_density", 0.9) // not whitelisted for Weather phase

	apply(&tl, simphase.Weather, muts)
	if tl.Biome.VegetationDensity != before {
		t.Fatalf("a write outside the phase's whitelist must be dropped, vegetation_density changed to %v", tl.Biome.VegetationDensity)
	}
}

func TestDistributeResourceQuantityClampsToMaxQuantity(t *testing.T) {
	tl := tile.NewDefault(0, nil, tile.Position{})
	tl.Resources.Deposits = []tile.ResourceDeposit{
		{ResourceType: "ore", Quantity: 10, MaxQuantity: 20},
	}

	distributeResourceQuantity(&tl, 999)
	if got := tl.Resources.Deposits[0].Quantity; got != 20 {
		t.Fatalf("expected quantity clamped to MaxQuantity 20, got %v", got)
	}

	distributeResourceQuantity(&tl, -50)
	if got := tl.Resources.Deposits[0].Quantity; got != 0 {
		t.Fatalf("expected quantity clamped to 0, got %v", got)
	}
}

type forceBiomeTestRule struct{ to string }

func (forceBiomeTestRule) Name() string { return "force_biome" }
func (r forceBiomeTestRule) Evaluate(c *scripthost.RuleContext) {
	c.SetEnum("biome.biome_type", r.to)
}

func TestRunReportsBiomeChangedOnlyForTilesThatActuallyTransitioned(t *testing.T) {
	w := &tile.World{
		Tiles: []tile.Tile{
			tile.NewDefault(0, nil, tile.Position{}),
			tile.NewDefault(1, nil, tile.Position{}),
		},
	}
	w.Tiles[1].Biome.BiomeType = tile.BiomeOcean // Ocean has no outgoing transitions

	registry := scripthost.NewRegistry()
	registry.Register(simphase.Terrain, forceBiomeTestRule{to: tile.BiomeTemperateForest.String()})
	host := scripthost.NewHost(registry)
	executor := NewExecutor(host, false)

	result, err := executor.Run(context.Background(), w, simphase.Terrain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.BiomeChanged) != 1 || result.BiomeChanged[0] != 0 {
		t.Fatalf("expected only tile 0 to be reported as biome-changed, got %v", result.BiomeChanged)
	}
}

func TestRunReportsNoRuleErrorsForEmptyRegistry(t *testing.T) {
	w := &tile.World{
		Tiles: []tile.Tile{
			tile.NewDefault(0, []uint32{1}, tile.Position{}),
			tile.NewDefault(1, []uint32{0}, tile.Position{}),
		},
	}
	registry := scripthost.NewRegistry()
	host := scripthost.NewHost(registry)
	executor := NewExecutor(host, false)

	result, err := executor.Run(context.Background(), w, simphase.Weather)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.RuleErrors) != 0 {
		t.Fatalf("expected no rule errors with an empty registry, got %v", result.RuleErrors)
	}
}
