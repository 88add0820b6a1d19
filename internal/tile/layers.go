package tile

// GeologyLayer is immutable after generation: terrain, normalized elevation,
// soil, drainage, and tectonic stress.
type GeologyLayer struct {
	TerrainType    TerrainType
	Elevation      float64 // normalized [0,1]
	SoilType       SoilType
	Drainage       float64
	TectonicStress float64
}

// ClimateLayer is immutable after generation: zone, baseline temperature and
// precipitation, and normalized latitude.
type ClimateLayer struct {
	Zone              ClimateZone
	BaseTemperature   float64 // Kelvin
	BasePrecipitation float64 // [0,1]
	Latitude          float64 // normalized [-1,1]
}

// WeatherLayer is owned by the Weather phase (and, once per tick, stamped
// with macro fields by the Macro-Weather Engine before Weather runs).
type WeatherLayer struct {
	Temperature       float64 // Kelvin
	Precipitation     float64 // intensity [0,1]
	PrecipitationType PrecipitationType
	WindSpeed         float64 // >=0
	WindDirection     float64 // degrees [0,360)
	CloudCover        float64 // [0,1]
	Humidity          float64 // [0,1]
	StormIntensity    float64 // [0,1]
	Pressure          float64 // hPa, default 1013.25

	MacroWindSpeed     float64
	MacroWindDirection float64
	MacroHumidity      float64
}

// ConditionsLayer is owned by the Conditions phase.
type ConditionsLayer struct {
	SoilMoisture float64
	SnowDepth    float64
	MudLevel     float64
	FloodLevel   float64
	FrostDays    uint32
	DroughtDays  uint32
	FireRisk     float64
}

// BiomeLayer is owned by the Terrain phase (despite the name — the phase
// that evolves ecology is named Terrain in the tick order, biome is its
// subject).
type BiomeLayer struct {
	BiomeType            BiomeType
	VegetationDensity    float64
	VegetationHealth     float64
	TransitionPressure   float64 // [-1,1]
	TicksInCurrentBiome  uint32
}

// ResourceDeposit is one extractable deposit on a tile.
type ResourceDeposit struct {
	ResourceType    string
	Quantity        float64
	MaxQuantity     float64
	RenewalRate     float64
	RequiresBiomes  []BiomeType // optional whitelist; empty means "any biome"
}

// ResourceLayer is owned by the Resources phase.
type ResourceLayer struct {
	Deposits []ResourceDeposit
}

// DefaultWeatherLayer returns the canonical starting values a freshly
// generated tile carries before any tick runs.
func DefaultWeatherLayer() WeatherLayer {
	return WeatherLayer{
		Temperature:       288.15,
		PrecipitationType: PrecipitationNone,
		CloudCover:        0.3,
		Pressure:          1013.25,
	}
}

// DefaultConditionsLayer returns the canonical starting values.
func DefaultConditionsLayer() ConditionsLayer {
	return ConditionsLayer{SoilMoisture: 0.3}
}

// DefaultBiomeLayer returns the canonical starting values.
func DefaultBiomeLayer() BiomeLayer {
	return BiomeLayer{
		BiomeType:         BiomeGrassland,
		VegetationDensity: 0.5,
		VegetationHealth:  1.0,
	}
}

// DefaultGeologyLayer returns the canonical starting values.
func DefaultGeologyLayer() GeologyLayer {
	return GeologyLayer{
		TerrainType: TerrainPlains,
		SoilType:    SoilLoam,
		Drainage:    0.5,
	}
}

// DefaultClimateLayer returns the canonical starting values.
func DefaultClimateLayer() ClimateLayer {
	return ClimateLayer{
		Zone:              ClimateTemperate,
		BaseTemperature:   288.15,
		BasePrecipitation: 0.5,
	}
}
