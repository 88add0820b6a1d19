package mutation

import (
	"testing"

	"github.com/brookstalley/worldground/internal/simphase"
)

func TestAllowedWhitelist(t *testing.T) {
	cases := []struct {
		phase simphase.Phase
		field string
		want  bool
	}{
		{simphase.Weather, "weather.temperature", true},
		{simphase.Weather, "biome.biome_type", false},
		{simphase.Conditions, "conditions.soil_moisture", true},
		{simphase.Terrain, "biome.biome_type", true},
		{simphase.Resources, "resources.quantity", true},
		{simphase.Resources, "weather.humidity", false},
		{simphase.MacroWeather, "weather.temperature", false},
	}
	for _, c := range cases {
		if got := Allowed(c.phase, c.field); got != c.want {
			t.Errorf("Allowed(%s, %q) = %v, want %v", c.phase, c.field, got, c.want)
		}
	}
}

func TestTileMutationsLastWriteWinsOrder(t *testing.T) {
	var m TileMutations
	m.Add("ruleA", "weather.temperature", 10)
	m.Add("ruleB", "weather.temperature", 20)

	if len(m.Mutations) != 2 {
		t.Fatalf("expected both proposed writes recorded, got %d", len(m.Mutations))
	}
	last := m.Mutations[len(m.Mutations)-1]
	if last.Value != 20 || last.RuleName != "ruleB" {
		t.Fatalf("expected last mutation to be ruleB's write of 20, got %+v", last)
	}
}

func TestAddEnumSetsEnumValue(t *testing.T) {
	var m TileMutations
	m.AddEnum("ruleA", "biome.biome_type", "Desert")
	if len(m.Mutations) != 1 || m.Mutations[0].EnumValue != "Desert" {
		t.Fatalf("expected one enum mutation with EnumValue=Desert, got %+v", m.Mutations)
	}
}
