package tile

import (
	"time"

	"github.com/google/uuid"
)

// GenerationParams records the parameters a World was procedurally built
// with, stored alongside it for reproducibility (mirrors original_source's
// GenerationParams).
type GenerationParams struct {
	Seed                  int64
	TileCount             uint32
	OceanRatio            float64
	MountainRatio         float64
	ElevationRoughness    float64
	ClimateBands          bool
	ResourceDensity       float64
	InitialBiomeMaturity  float64
}

// World is the authoritative, owned state the tick engine advances. It is
// deliberately plain data: all behaviour lives in internal/phase,
// internal/tick, internal/macroweather, and friends.
type World struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time

	TickCount uint64
	Season    Season

	SeasonLength uint32
	TopologyType TopologyType

	Generation GenerationParams

	Tiles []Tile

	Macro MacroWeatherState
}

// PressureSystem is one macro-weather entity: a moving, aging, decaying
// region of pressure anomaly with a moisture budget.
type PressureSystem struct {
	ID                uint32
	Lat, Lon          float64
	X, Y, Z            float64
	PressureAnomaly    float64 // hPa relative to 1013.25; negative = low
	Radius             float64 // radians
	VelocityEast       float64 // rad/tick
	VelocityNorth      float64 // rad/tick
	Age                uint32
	MaxAge             uint32
	SystemType         PressureSystemType
	Moisture           float64 // [0,1]
}

// MacroWeatherState is the world-level pressure-system population plus the
// deterministic PRNG state driving its spawn decisions.
type MacroWeatherState struct {
	Systems  []PressureSystem
	NextID   uint32
	RNGState uint64
}

// NewMacroWeatherState returns a state seeded for deterministic spawn. A
// zero seed is remapped to 1 to avoid the xorshift64 all-zero fixed point.
func NewMacroWeatherState(seed uint64) MacroWeatherState {
	if seed == 0 {
		seed = 1
	}
	return MacroWeatherState{NextID: 1, RNGState: seed}
}

// TileByID returns a pointer to the tile with the given id. Callers must
// treat the World as append-only/fixed-size after generation (the id space
// never changes), so this is a direct slice index, not a search.
func (w *World) TileByID(id uint32) *Tile {
	return &w.Tiles[id]
}
