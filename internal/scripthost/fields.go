package scripthost

import "github.com/brookstalley/worldground/internal/tile"

// fieldValue reads one field path ("layer.field") off a tile snapshot as a
// float64, for use by the NeighborAvg/Sum/Max intrinsics. Unknown paths
// read as zero, matching the spec's "missing values treated as zero"
// contract — this also covers enum fields, which aggregate meaninglessly
// and are expected to be read via dedicated rule logic instead.
func fieldValue(t *tile.Tile, path string) (float64, bool) {
	switch path {
	case "geology.elevation":
		return t.Geology.Elevation, true
	case "geology.drainage":
		return t.Geology.Drainage, true
	case "geology.tectonic_stress":
		return t.Geology.TectonicStress, true
	case "climate.base_temperature":
		return t.Climate.BaseTemperature, true
	case "climate.base_precipitation":
		return t.Climate.BasePrecipitation, true
	case "climate.latitude":
		return t.Climate.Latitude, true
	case "weather.temperature":
		return t.Weather.Temperature, true
	case "weather.precipitation":
		return t.Weather.Precipitation, true
	case "weather.wind_speed":
		return t.Weather.WindSpeed, true
	case "weather.wind_direction":
		return t.Weather.WindDirection, true
	case "weather.cloud_cover":
		return t.Weather.CloudCover, true
	case "weather.humidity":
		return t.Weather.Humidity, true
	case "weather.storm_intensity":
		return t.Weather.StormIntensity, true
	case "weather.pressure":
		return t.Weather.Pressure, true
	case "weather.macro_wind_speed":
		return t.Weather.MacroWindSpeed, true
	case "weather.macro_wind_direction":
		return t.Weather.MacroWindDirection, true
	case "weather.macro_humidity":
		return t.Weather.MacroHumidity, true
	case "conditions.soil_moisture":
		return t.Conditions.SoilMoisture, true
	case "conditions.snow_depth":
		return t.Conditions.SnowDepth, true
	case "conditions.mud_level":
		return t.Conditions.MudLevel, true
	case "conditions.flood_level":
		return t.Conditions.FloodLevel, true
	case "conditions.fire_risk":
		return t.Conditions.FireRisk, true
	case "biome.vegetation_density":
		return t.Biome.VegetationDensity, true
	case "biome.vegetation_health":
		return t.Biome.VegetationHealth, true
	case "biome.transition_pressure":
		return t.Biome.TransitionPressure, true
	default:
		return 0, false
	}
}
