// Package mutation is the shared vocabulary between rule/native evaluators
// and the phase executor's apply step: a proposed field write, and the
// per-phase whitelist that decides whether it is allowed to land.
package mutation

import "github.com/brookstalley/worldground/internal/simphase"

// Mutation is one proposed write against a tile's layers. Exactly one of
// Value/EnumValue is meaningful, selected by which Field it targets.
type Mutation struct {
	Field    string
	Value    float64
	EnumValue string
	RuleName string
}

// TileMutations accumulates a tile's proposed writes for one phase, in
// rule-name order, so that last-write-wins for a repeated field resolves
// to the last entry for that field.
type TileMutations struct {
	Mutations []Mutation
}

// Add appends a proposed numeric mutation.
func (m *TileMutations) Add(ruleName, field string, value float64) {
	m.Mutations = append(m.Mutations, Mutation{Field: field, Value: value, RuleName: ruleName})
}

// AddEnum appends a proposed string-discriminant mutation (biome type,
// precipitation type, ...).
func (m *TileMutations) AddEnum(ruleName, field, enumValue string) {
	m.Mutations = append(m.Mutations, Mutation{Field: field, EnumValue: enumValue, RuleName: ruleName})
}

// whitelist maps each phase to the set of field paths it is allowed to
// write. A write to any other path is dropped at apply time and counted as
// a rule error, per the spec's mutation-whitelist contract.
var whitelist = map[simphase.Phase]map[string]bool{
	simphase.Weather: {
		"weather.temperature":        true,
		"weather.precipitation":      true,
		"weather.precipitation_type": true,
		"weather.wind_speed":         true,
		"weather.wind_direction":     true,
		"weather.cloud_cover":        true,
		"weather.humidity":           true,
		"weather.storm_intensity":    true,
		"weather.pressure":           true,
	},
	simphase.Conditions: {
		"conditions.soil_moisture": true,
		"conditions.snow_depth":    true,
		"conditions.mud_level":     true,
		"conditions.flood_level":   true,
		"conditions.frost_days":    true,
		"conditions.drought_days":  true,
		"conditions.fire_risk":     true,
	},
	simphase.Terrain: {
		"biome.biome_type":          true,
		"biome.vegetation_density":  true,
		"biome.vegetation_health":   true,
		"biome.transition_pressure": true,
	},
	simphase.Resources: {
		"resources.quantity": true,
	},
}

// Allowed reports whether field may be written during phase p.
func Allowed(p simphase.Phase, field string) bool {
	return whitelist[p][field]
}
