// Package nativeweather is the Native Weather Evaluator: a hand-written Go
// replacement for the Weather phase's rule chain, selected when a config's
// native_evaluation flag is set. Where the rule-based path re-reads tile
// state from the phase snapshot between independently scheduled rules (and
// so loses intermediate results within one tick), this package threads a
// single WeatherAccum through four chained steps — wind/temperature,
// humidity, clouds/precipitation, storms — matching original_source's
// native_weather.rs exactly on its confirmed numeric constants.
package nativeweather

import (
	"math"

	"github.com/brookstalley/worldground/internal/mutation"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/tile"
	"github.com/brookstalley/worldground/internal/xrand"
)

// WeatherAccum carries the Weather phase's working values across the four
// chained steps for one tile, within one tick.
type WeatherAccum struct {
	Temperature       float64
	WindSpeed         float64
	WindDirection     float64
	Humidity          float64
	CloudCover        float64
	Precipitation     float64
	PrecipitationType tile.PrecipitationType
	StormIntensity    float64
	Pressure          float64
}

// Evaluate runs the full chain for tile t and returns the resulting Weather
// layer mutations. It never fails: there is no sandbox to exhaust and no
// rule to time out, so the Native Weather Evaluator carries no RuleError
// path of its own — a panic here is a programming bug, not a tile-data
// problem, and is left to propagate.
func Evaluate(t *tile.Tile, neighbors []*tile.Tile, season tile.Season, tick uint64) mutation.TileMutations {
	seed := xrand.Seed(tick, t.ID, simphase.Weather.Offset())
	rng := xrand.New(seed)

	acc := WeatherAccum{
		Temperature:   t.Weather.Temperature,
		WindSpeed:     t.Weather.WindSpeed,
		WindDirection: t.Weather.WindDirection,
		Humidity:      t.Weather.Humidity,
		CloudCover:    t.Weather.CloudCover,
		Pressure:      t.Weather.Pressure,
	}

	windAndTemperature(&acc, t, neighbors, season)
	humidity(&acc, t)
	cloudsAndPrecipitation(&acc, t, rng)
	storms(&acc, t, rng)

	var out mutation.TileMutations
	out.Add("native_weather", "weather.temperature", acc.Temperature)
	out.Add("native_weather", "weather.wind_speed", acc.WindSpeed)
	out.Add("native_weather", "weather.wind_direction", acc.WindDirection)
	out.Add("native_weather", "weather.humidity", acc.Humidity)
	out.Add("native_weather", "weather.cloud_cover", acc.CloudCover)
	out.Add("native_weather", "weather.precipitation", acc.Precipitation)
	out.AddEnum("native_weather", "weather.precipitation_type", acc.PrecipitationType.String())
	out.Add("native_weather", "weather.storm_intensity", acc.StormIntensity)
	out.Add("native_weather", "weather.pressure", acc.Pressure)
	return out
}

// seasonalBias nudges baseline temperature by season, warmest in local
// summer. Northern/southern hemisphere are both folded through latitude's
// sign so the bias always points toward the hemisphere's own summer.
func seasonalBias(season tile.Season, latitude float64) float64 {
	const amplitude = 8.0 // Kelvin
	var phase float64
	switch season {
	case tile.SeasonSpring:
		phase = 0.5
	case tile.SeasonSummer:
		phase = 1.0
	case tile.SeasonAutumn:
		phase = 0.5
	case tile.SeasonWinter:
		phase = 0.0
	}
	hemisphere := 1.0
	if latitude < 0 {
		hemisphere = -1.0
	}
	return amplitude * (phase - 0.5) * 2 * hemisphere
}

// windAndTemperature blends the macro-weather-stamped wind/pressure fields
// with a latitude/season baseline temperature, and lets wind relax toward
// the macro wind direction.
func windAndTemperature(acc *WeatherAccum, t *tile.Tile, neighbors []*tile.Tile, season tile.Season) {
	baseline := t.Climate.BaseTemperature + seasonalBias(season, t.Climate.Latitude)

	elevationCooling := t.Geology.Elevation * 20.0
	acc.Temperature = baseline - elevationCooling

	// Wind relaxes toward the macro field; local terrain adds drag.
	const windRelax = 0.4
	acc.WindSpeed = acc.WindSpeed + (t.Weather.MacroWindSpeed-acc.WindSpeed)*windRelax
	terrainDrag := 1.0
	if t.Geology.TerrainType == tile.TerrainMountains || t.Geology.TerrainType == tile.TerrainHills {
		terrainDrag = 0.7
	}
	acc.WindSpeed *= terrainDrag
	if acc.WindSpeed < 0 {
		acc.WindSpeed = 0
	}

	dirDiff := angularDiff(t.Weather.MacroWindDirection, acc.WindDirection)
	acc.WindDirection = normalizeDeg(acc.WindDirection + dirDiff*windRelax)

	acc.Pressure = t.Weather.Pressure
}

// humidity blends the macro-weather humidity signal with local moisture
// sources, per original_source's confirmed blend weights. Local humidity
// is self-retaining (a tile remembers most of last tick's humidity) plus
// an evapotranspiration term driven by soil moisture and, on vegetated
// land, by vegetation density * vegetation health.
func humidity(acc *WeatherAccum, t *tile.Tile) {
	currentHumidity := acc.Humidity
	macroWeight := math.Min(t.Weather.MacroHumidity*3.5, 0.35)
	localWeight := 1 - macroWeight

	soilMoisture := t.Conditions.SoilMoisture
	var evaporation float64
	if t.Geology.TerrainType == tile.TerrainOcean || t.Geology.TerrainType == tile.TerrainCoast {
		evaporation = 0.15
	} else {
		soilEvap := soilMoisture * 0.04
		transpiration := t.Biome.VegetationDensity * t.Biome.VegetationHealth * 0.08 * math.Sqrt(math.Max(soilMoisture, 0))
		evaporation = math.Min(soilEvap+transpiration, 0.15)
	}
	// Diminishing returns: saturated air absorbs less moisture.
	evaporation *= math.Max(1-currentHumidity, 0)

	localHumidity := currentHumidity*0.75 + soilMoisture*0.20

	acc.Humidity = clamp01(macroWeight*t.Weather.MacroHumidity + localWeight*(localHumidity+evaporation))
}

// cloudsAndPrecipitation derives cloud cover from humidity, fires
// precipitation when the confirmed relative-humidity/cloud thresholds are
// crossed, and consumes humidity as precipitation falls, then decays it.
func cloudsAndPrecipitation(acc *WeatherAccum, t *tile.Tile, rng *xrand.State) {
	acc.CloudCover = clamp01(acc.Humidity*0.9 + rng.Range(-0.05, 0.05))

	if acc.Humidity > 0.70 && acc.CloudCover > 0.35 {
		intensity := clamp01((acc.Humidity - 0.70) / 0.3)
		acc.Precipitation = intensity
		acc.PrecipitationType = precipitationTypeFor(acc.Temperature)

		consumed := intensity * 0.15 * acc.Humidity
		acc.Humidity = clamp01(acc.Humidity - consumed)
	} else {
		acc.Precipitation = 0
		acc.PrecipitationType = tile.PrecipitationNone
	}

	decay := math.Min(0.994+acc.Humidity*0.005, 0.999)
	acc.Humidity = clamp01(acc.Humidity * decay)
}

func precipitationTypeFor(temperature float64) tile.PrecipitationType {
	switch {
	case temperature < 271.15:
		return tile.PrecipitationSnow
	case temperature < 274.15:
		return tile.PrecipitationSleet
	default:
		return tile.PrecipitationRain
	}
}

// storms raises storm intensity when wind and precipitation are both high,
// and feeds the storm back into wind speed, cloud cover and wind direction
// jitter, matching the chain's described storm-feedback step.
func storms(acc *WeatherAccum, t *tile.Tile, rng *xrand.State) {
	instability := clamp01((acc.WindSpeed/30.0)*0.5 + acc.Precipitation*0.5)
	if t.Weather.StormIntensity > 0 {
		acc.StormIntensity = math.Max(0, t.Weather.StormIntensity-0.1)
	}
	if instability > 0.6 {
		acc.StormIntensity = clamp01(math.Max(acc.StormIntensity, instability))
	}

	if acc.StormIntensity > 0 {
		acc.WindSpeed += acc.StormIntensity * 10.0
		acc.CloudCover = clamp01(acc.CloudCover + acc.StormIntensity*0.2)
		acc.WindDirection = normalizeDeg(acc.WindDirection + rng.Range(-15, 15)*acc.StormIntensity)
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

func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// angularDiff returns the signed shortest angular difference a-b in
// degrees, in [-180,180).
func angularDiff(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
