// Package rules is the default rule set: a small collection of registered
// Go-closure rules, one or more per phase, in the style original_source
// shipped as Rhai scripts under its rule directory. These give the repo a
// runnable default without a rule_directory configured, and exercise the
// Set, SetEnum, NeighborAvg and Clamp intrinsics end to end.
package rules

import (
	"github.com/brookstalley/worldground/internal/scripthost"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/tile"
)

// closureRule adapts a plain function to the scripthost.Rule interface.
type closureRule struct {
	name string
	fn   func(ctx *scripthost.RuleContext)
}

func (r closureRule) Name() string                        { return r.name }
func (r closureRule) Evaluate(ctx *scripthost.RuleContext) { r.fn(ctx) }

func rule(name string, fn func(ctx *scripthost.RuleContext)) scripthost.Rule {
	return closureRule{name: name, fn: fn}
}

// RegisterDefaults populates reg with the default rule set across all four
// mutation phases. The Weather rules run only when native_evaluation is
// false; the Conditions, Terrain and Resources rules run on every tick.
func RegisterDefaults(reg *scripthost.Registry) {
	reg.Register(simphase.Weather, rule("010_local_drift", weatherLocalDrift))
	reg.Register(simphase.Weather, rule("020_humidity_blend", weatherHumidityBlend))

	reg.Register(simphase.Conditions, rule("010_soil_moisture", conditionsSoilMoisture))
	reg.Register(simphase.Conditions, rule("020_snow_and_mud", conditionsSnowAndMud))
	reg.Register(simphase.Conditions, rule("030_fire_risk", conditionsFireRisk))

	reg.Register(simphase.Terrain, rule("010_vegetation", terrainVegetation))
	reg.Register(simphase.Terrain, rule("020_biome_transition", terrainBiomeTransition))

	reg.Register(simphase.Resources, rule("010_regrowth", resourcesRegrowth))
}

// weatherLocalDrift is the rule-host fallback for temperature and wind: it
// blends in the neighbour temperature average, relaxes wind speed toward
// the stamped macro speed and sets wind direction to the stamped macro
// direction, for use when native evaluation is disabled.
func weatherLocalDrift(ctx *scripthost.RuleContext) {
	neighborTemp := ctx.NeighborAvg("weather.temperature")
	current := ctx.Tile.Weather.Temperature
	blended := current
	if neighborTemp != 0 {
		blended = current*0.8 + neighborTemp*0.2
	}
	ctx.Set("weather.temperature", blended)

	macroDir := ctx.Tile.Weather.MacroWindDirection
	macroSpeed := ctx.Tile.Weather.MacroWindSpeed
	ctx.Set("weather.wind_speed", ctx.Clamp(ctx.Tile.Weather.WindSpeed*0.6+macroSpeed*0.4, 0, 60))
	ctx.Set("weather.wind_direction", macroDir)
}

// weatherHumidityBlend mirrors the Native Weather Evaluator's blend weights
// for installations that run the rule-host path instead.
func weatherHumidityBlend(ctx *scripthost.RuleContext) {
	macroHumidity := ctx.Tile.Weather.MacroHumidity
	macroWeight := ctx.Clamp(macroHumidity*3.5, 0, 0.35)
	local := ctx.Tile.Conditions.SoilMoisture
	blended := ctx.Clamp(macroWeight*macroHumidity+(1-macroWeight)*local, 0, 1)
	ctx.Set("weather.humidity", blended)
	ctx.Set("weather.cloud_cover", ctx.Clamp(blended*0.9, 0, 1))
}

// conditionsSoilMoisture pushes soil moisture toward precipitation and lets
// it drain according to terrain drainage.
func conditionsSoilMoisture(ctx *scripthost.RuleContext) {
	precip := ctx.Tile.Weather.Precipitation
	drainage := ctx.Tile.Geology.Drainage
	current := ctx.Tile.Conditions.SoilMoisture
	gained := precip * 0.2
	lost := current * drainage * 0.05
	ctx.Set("conditions.soil_moisture", ctx.Clamp(current+gained-lost, 0, 1))
}

// conditionsSnowAndMud accumulates snow below freezing and converts excess
// soil moisture plus recent rain into mud and flood buildup.
func conditionsSnowAndMud(ctx *scripthost.RuleContext) {
	t := ctx.Tile
	if t.Weather.PrecipitationType == tile.PrecipitationSnow {
		ctx.Set("conditions.snow_depth", ctx.Clamp(t.Conditions.SnowDepth+t.Weather.Precipitation*0.1, 0, 5))
	} else if t.Weather.Temperature > 274.15 {
		ctx.Set("conditions.snow_depth", ctx.Clamp(t.Conditions.SnowDepth-0.05, 0, 5))
	}

	mud := 0.0
	if t.Weather.PrecipitationType == tile.PrecipitationRain {
		mud = t.Conditions.SoilMoisture * t.Weather.Precipitation
	}
	ctx.Set("conditions.mud_level", ctx.Clamp(mud, 0, 1))

	flood := ctx.Clamp(t.Conditions.SoilMoisture-0.9, 0, 1) * 5
	ctx.Set("conditions.flood_level", ctx.Clamp(flood, 0, 1))
}

// conditionsFireRisk rises with low soil moisture, high temperature and
// dense dry vegetation.
func conditionsFireRisk(ctx *scripthost.RuleContext) {
	t := ctx.Tile
	dryness := 1 - t.Conditions.SoilMoisture
	heat := ctx.Clamp((t.Weather.Temperature-290)/30, 0, 1)
	risk := dryness * heat * t.Biome.VegetationDensity
	ctx.Set("conditions.fire_risk", ctx.Clamp(risk, 0, 1))
}

// terrainVegetation grows density toward a moisture/temperature-derived
// carrying capacity and lets health track recent moisture stress.
func terrainVegetation(ctx *scripthost.RuleContext) {
	t := ctx.Tile
	capacity := ctx.Clamp(t.Conditions.SoilMoisture*1.2, 0, 1)
	density := t.Biome.VegetationDensity
	ctx.Set("biome.vegetation_density", density+(capacity-density)*0.05)

	stress := ctx.Clamp(1-t.Conditions.FireRisk, 0, 1)
	health := t.Biome.VegetationHealth
	ctx.Set("biome.vegetation_health", health+(stress-health)*0.1)
}

// terrainBiomeTransition accumulates transition pressure from sustained
// moisture/temperature mismatch with the current biome, and proposes a
// biome change once pressure overcomes the residency-scaled resistance.
func terrainBiomeTransition(ctx *scripthost.RuleContext) {
	t := ctx.Tile
	target := suggestBiome(t)
	pressure := t.Biome.TransitionPressure
	if target != t.Biome.BiomeType {
		pressure = ctx.Clamp(pressure+0.02, -1, 1)
	} else {
		pressure = ctx.Clamp(pressure*0.9, -1, 1)
	}
	ctx.Set("biome.transition_pressure", pressure)

	resistance := tile.TransitionResistance(t.Biome.TicksInCurrentBiome)
	if target != t.Biome.BiomeType && pressure > resistance && tile.CanTransition(t.Biome.BiomeType, target) {
		ctx.SetEnum("biome.biome_type", target.String())
	}
}

// suggestBiome derives the biome a tile's current climate/moisture would
// support, independent of its present biome.
func suggestBiome(t *tile.Tile) tile.BiomeType {
	if t.Geology.TerrainType == tile.TerrainOcean {
		return tile.BiomeOcean
	}
	temp := t.Weather.Temperature
	moisture := t.Conditions.SoilMoisture

	switch {
	case temp < 263.15:
		return tile.BiomeIce
	case temp < 273.15:
		return tile.BiomeTundra
	case temp < 283.15:
		if moisture > 0.5 {
			return tile.BiomeBorealForest
		}
		return tile.BiomeTundra
	case temp < 295.15:
		if moisture > 0.6 {
			return tile.BiomeTemperateForest
		}
		return tile.BiomeGrassland
	default:
		switch {
		case moisture > 0.7:
			return tile.BiomeTropicalForest
		case moisture > 0.4:
			return tile.BiomeSavanna
		case moisture > 0.15:
			return tile.BiomeDesert
		default:
			return tile.BiomeBarren
		}
	}
}

// resourcesRegrowth advances every deposit on the tile toward its maximum
// at its configured renewal rate, respecting any biome whitelist.
func resourcesRegrowth(ctx *scripthost.RuleContext) {
	total := 0.0
	for _, d := range ctx.Tile.Resources.Deposits {
		if len(d.RequiresBiomes) > 0 && !biomeAllowed(d.RequiresBiomes, ctx.Tile.Biome.BiomeType) {
			total += d.Quantity
			continue
		}
		grown := d.Quantity + (d.MaxQuantity-d.Quantity)*d.RenewalRate
		total += ctx.Clamp(grown, 0, d.MaxQuantity)
	}
	ctx.Set("resources.quantity", total)
}

func biomeAllowed(allowed []tile.BiomeType, b tile.BiomeType) bool {
	for _, a := range allowed {
		if a == b {
			return true
		}
	}
	return false
}
