package rules

import (
	"testing"

	"github.com/brookstalley/worldground/internal/scripthost"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/tile"
)

func TestRegisterDefaultsOrdersRulesByNameWithinEachPhase(t *testing.T) {
	reg := scripthost.NewRegistry()
	RegisterDefaults(reg)

	weather := reg.Rules(simphase.Weather)
	if len(weather) != 2 {
		t.Fatalf("expected 2 weather rules, got %d", len(weather))
	}
	if weather[0].Name() != "010_local_drift" || weather[1].Name() != "020_humidity_blend" {
		t.Fatalf("expected weather rules sorted by name, got %v, %v", weather[0].Name(), weather[1].Name())
	}

	conditions := reg.Rules(simphase.Conditions)
	if len(conditions) != 3 {
		t.Fatalf("expected 3 conditions rules, got %d", len(conditions))
	}

	terrain := reg.Rules(simphase.Terrain)
	if len(terrain) != 2 {
		t.Fatalf("expected 2 terrain rules, got %d", len(terrain))
	}

	resources := reg.Rules(simphase.Resources)
	if len(resources) != 1 {
		t.Fatalf("expected 1 resources rule, got %d", len(resources))
	}
}

func TestWeatherHumidityBlendCapsMacroWeight(t *testing.T) {
	reg := scripthost.NewRegistry()
	reg.Register(simphase.Weather, rule("020_humidity_blend", weatherHumidityBlend))
	host := scripthost.NewHost(reg)

	tl := tile.NewDefault(0, nil, tile.Position{})
	tl.Weather.MacroHumidity = 1.0 // would push macroWeight past 0.35 without the cap
	tl.Conditions.SoilMoisture = 0.2

	muts, err := host.Evaluate(simphase.Weather, &tl, nil, tile.SeasonSpring, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got float64
	found := false
	for _, m := range muts.Mutations {
		if m.Field == "weather.humidity" {
			got = m.Value
			found = true
		}
	}
	if !found {
		t.Fatal("expected weather.humidity to be set")
	}
	want := 0.35*1.0 + (1-0.35)*0.2
	if got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("expected humidity %v (macroWeight capped at 0.35), got %v", want, got)
	}
}

func TestSuggestBiomeByTemperatureAndMoisture(t *testing.T) {
	cases := []struct {
		name     string
		temp     float64
		moisture float64
		terrain  tile.TerrainType
		want     tile.BiomeType
	}{
		{"ocean always wins", 300, 0.9, tile.TerrainOcean, tile.BiomeOcean},
		{"deep freeze is ice", 250, 0.5, tile.TerrainPlains, tile.BiomeIce},
		{"cold and dry is tundra", 270, 0.1, tile.TerrainPlains, tile.BiomeTundra},
		{"cold and wet is boreal forest", 278, 0.6, tile.TerrainPlains, tile.BiomeBorealForest},
		{"temperate and wet is temperate forest", 290, 0.7, tile.TerrainPlains, tile.BiomeTemperateForest},
		{"temperate and dry is grassland", 290, 0.3, tile.TerrainPlains, tile.BiomeGrassland},
		{"hot and wet is tropical forest", 300, 0.8, tile.TerrainPlains, tile.BiomeTropicalForest},
		{"hot and dry is desert", 300, 0.2, tile.TerrainPlains, tile.BiomeDesert},
		{"hot and arid is barren", 300, 0.05, tile.TerrainPlains, tile.BiomeBarren},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tl := tile.NewDefault(0, nil, tile.Position{})
			tl.Weather.Temperature = c.temp
			tl.Conditions.SoilMoisture = c.moisture
			tl.Geology.TerrainType = c.terrain
			if got := suggestBiome(&tl); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestResourcesRegrowthSkipsDepositsOutsideBiomeWhitelist(t *testing.T) {
	reg := scripthost.NewRegistry()
	reg.Register(simphase.Resources, rule("010_regrowth", resourcesRegrowth))
	host := scripthost.NewHost(reg)

	tl := tile.NewDefault(0, nil, tile.Position{})
	tl.Biome.BiomeType = tile.BiomeDesert
	tl.Resources.Deposits = []tile.ResourceDeposit{
		{ResourceType: "timber", Quantity: 10, MaxQuantity: 100, RenewalRate: 0.5, RequiresBiomes: []tile.BiomeType{tile.BiomeTemperateForest}},
	}

	muts, err := host.Evaluate(simphase.Resources, &tl, nil, tile.SeasonSpring, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got float64
	for _, m := range muts.Mutations {
		if m.Field == "resources.quantity" {
			got = m.Value
		}
	}
	if got != 10 {
		t.Fatalf("a deposit outside its biome whitelist must not grow, expected total 10, got %v", got)
	}
}

func TestBiomeAllowed(t *testing.T) {
	allowed := []tile.BiomeType{tile.BiomeDesert, tile.BiomeBarren}
	if !biomeAllowed(allowed, tile.BiomeDesert) {
		t.Fatal("expected BiomeDesert to be allowed")
	}
	if biomeAllowed(allowed, tile.BiomeOcean) {
		t.Fatal("expected BiomeOcean to be rejected")
	}
}
