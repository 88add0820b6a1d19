// Package macroweather implements the pressure-system layer that stamps
// coarse wind/humidity/pressure onto every tile once per tick, before the
// Weather phase runs. Lifecycle (spawn/move/intensify-decay/merge/remove)
// is grounded on original_source's simulation/macro_weather.rs and
// world/weather_systems.rs; the stamping contract itself follows the
// distilled spec's explicit linear-weight formula rather than that file's
// more elaborate Gaussian/Coriolis elaboration (see DESIGN.md).
package macroweather

import (
	"math"

	"github.com/brookstalley/worldground/internal/spheremath"
	"github.com/brookstalley/worldground/internal/tile"
	"github.com/brookstalley/worldground/internal/xrand"
)

const (
	removalAnomalyFloor = 2.0
	ageDecayFactor      = 0.02
	moistureOceanGain   = 0.012
	moistureLandLoss    = 0.002
)

// Tunables are the spawn/merge constants worldbench sweeps over. Passed
// explicitly rather than held as package state, so concurrent sweep
// candidates never race on a shared global.
type Tunables struct {
	SpawnProbabilityPerTick float64
	MergeDistanceFactor     float64
}

// DefaultTunables returns the production spawn/merge constants.
func DefaultTunables() Tunables {
	return Tunables{SpawnProbabilityPerTick: 0.15, MergeDistanceFactor: 0.5}
}

type spawnRange struct {
	anomalyMin, anomalyMax float64
	radiusMin, radiusMax   float64
	maxAgeMin, maxAgeMax   float64
	moistureMin, moistureMax float64
}

var spawnRanges = map[tile.PressureSystemType]spawnRange{
	tile.MidLatCyclone:    {-20, -8, 0.15, 0.35, 80, 200, 0.4, 0.8},
	tile.SubtropicalHigh:  {8, 18, 0.25, 0.45, 200, 500, 0.1, 0.3},
	tile.TropicalLow:      {-25, -10, 0.1, 0.25, 60, 150, 0.6, 0.95},
	tile.PolarHigh:        {10, 25, 0.2, 0.4, 300, 600, 0.05, 0.2},
	tile.ThermalLow:       {-12, -5, 0.1, 0.2, 40, 100, 0.1, 0.3},
}

// MaxSystems bounds the pressure-system population relative to world size.
func MaxSystems(tileCount uint32) int {
	n := int(tileCount / 100)
	if n < 5 {
		n = 5
	}
	if n > 80 {
		n = 80
	}
	return n
}

// Step advances the macro-weather layer by one tick: move, decay, spawn,
// merge, then stamp. macroEnabled=false skips spawn (used by the
// no-desertification-under-idle-macro-weather scenario).
func Step(w *tile.World, macroEnabled bool) {
	StepWithTunables(w, macroEnabled, DefaultTunables())
}

// StepWithTunables is Step with explicit spawn/merge constants, used by
// worldbench to evaluate candidate parameter sets without touching global
// state.
func StepWithTunables(w *tile.World, macroEnabled bool, params Tunables) {
	decayAndMove(&w.Macro)
	removeDead(&w.Macro)
	if macroEnabled {
		maybeSpawn(w, params)
	}
	mergeSystems(&w.Macro, params)
	stampTiles(w)
}

func decayAndMove(m *tile.MacroWeatherState) {
	for i := range m.Systems {
		s := &m.Systems[i]

		steerEast, steerNorth := steeringFor(s.SystemType, s.Lat)
		velEast := 0.8*s.VelocityEast + 0.2*steerEast
		velNorth := 0.8*s.VelocityNorth + 0.2*steerNorth
		s.VelocityEast, s.VelocityNorth = velEast, velNorth

		newLat, newLon := spheremath.AdvancePosition(s.Lat, s.Lon, velEast, velNorth, 1.0)
		s.Lat, s.Lon = newLat, newLon
		s.X, s.Y, s.Z = tile.LatLonToXYZ(newLat, newLon)

		s.Age++

		ageFactor := 1.0 - (float64(s.Age)/float64(s.MaxAge))*ageDecayFactor
		m.RNGState = xrand.Step(m.RNGState)
		perturb := (xrand.Float64From(m.RNGState)*2 - 1) * 0.5
		s.PressureAnomaly = s.PressureAnomaly*ageFactor + perturb

		overOcean := math.Abs(s.Lat) < 60 // coarse proxy used only for moisture trend
		if overOcean {
			s.Moisture = math.Min(1.0, s.Moisture+moistureOceanGain)
		} else {
			s.Moisture = math.Max(0.0, s.Moisture-moistureLandLoss)
		}
	}
}

func steeringFor(t tile.PressureSystemType, lat float64) (east, north float64) {
	// Prevailing-wind steering, crude but deterministic and
	// latitude-dependent: westerlies in midlatitudes, easterlies in the
	// tropics and near the poles, matching the classic three-cell model.
	abs := math.Abs(lat)
	switch {
	case abs < 30:
		east = -0.01 // easterly (trade winds)
	case abs < 60:
		east = 0.015 // westerly
	default:
		east = -0.008 // polar easterlies
	}
	if lat < 0 {
		north = 0.002
	} else {
		north = -0.002
	}
	_ = t
	return
}

func removeDead(m *tile.MacroWeatherState) {
	alive := m.Systems[:0]
	for _, s := range m.Systems {
		if math.Abs(s.PressureAnomaly) < removalAnomalyFloor || s.Age > s.MaxAge {
			continue
		}
		alive = append(alive, s)
	}
	m.Systems = alive
}

func maybeSpawn(w *tile.World, params Tunables) {
	m := &w.Macro
	maxSystems := MaxSystems(uint32(len(w.Tiles)))
	if len(m.Systems) >= maxSystems {
		return
	}
	m.RNGState = xrand.Step(m.RNGState)
	if xrand.Float64From(m.RNGState) >= params.SpawnProbabilityPerTick {
		return
	}

	m.RNGState = xrand.Step(m.RNGState)
	tileIdx := int(xrand.Float64From(m.RNGState) * float64(len(w.Tiles)))
	if tileIdx >= len(w.Tiles) {
		tileIdx = len(w.Tiles) - 1
	}
	origin := w.Tiles[tileIdx]

	sysType := classifyByLatitude(origin.Position.Lat, w.Season)
	r := spawnRanges[sysType]

	m.RNGState = xrand.Step(m.RNGState)
	anomaly := r.anomalyMin + xrand.Float64From(m.RNGState)*(r.anomalyMax-r.anomalyMin)
	m.RNGState = xrand.Step(m.RNGState)
	radius := r.radiusMin + xrand.Float64From(m.RNGState)*(r.radiusMax-r.radiusMin)
	m.RNGState = xrand.Step(m.RNGState)
	maxAge := r.maxAgeMin + xrand.Float64From(m.RNGState)*(r.maxAgeMax-r.maxAgeMin)
	m.RNGState = xrand.Step(m.RNGState)
	moisture := r.moistureMin + xrand.Float64From(m.RNGState)*(r.moistureMax-r.moistureMin)

	sys := tile.PressureSystem{
		ID:              m.NextID,
		Lat:             origin.Position.Lat,
		Lon:             origin.Position.Lon,
		X:               origin.Position.X,
		Y:               origin.Position.Y,
		Z:               origin.Position.Z,
		PressureAnomaly: anomaly,
		Radius:          radius,
		MaxAge:          uint32(maxAge),
		SystemType:      sysType,
		Moisture:        moisture,
	}
	m.NextID++
	m.Systems = append(m.Systems, sys)
}

// classifyByLatitude picks a spawn type from latitude alone; season is
// accepted but not consulted. ThermalLow is never returned, so no spawn
// path produces thermal lows.
func classifyByLatitude(lat float64, season tile.Season) tile.PressureSystemType {
	abs := math.Abs(lat)
	switch {
	case abs < 15:
		return tile.TropicalLow
	case abs < 35:
		return tile.SubtropicalHigh
	case abs < 60:
		return tile.MidLatCyclone
	default:
		return tile.PolarHigh
	}
}

func mergeSystems(m *tile.MacroWeatherState, params Tunables) {
	for i := 0; i < len(m.Systems); i++ {
		for j := i + 1; j < len(m.Systems); j++ {
			a, b := &m.Systems[i], &m.Systems[j]
			if a.SystemType != b.SystemType {
				continue
			}
			d := spheremath.AngularDistance(a.Lat, a.Lon, b.Lat, b.Lon)
			minRadius := math.Min(a.Radius, b.Radius)
			if d >= minRadius*params.MergeDistanceFactor {
				continue
			}
			// Stronger (larger |anomaly|) survives; absorb the weaker one's
			// moisture and remove it.
			if math.Abs(a.PressureAnomaly) >= math.Abs(b.PressureAnomaly) {
				a.Moisture = math.Min(1.0, a.Moisture+b.Moisture*0.3)
				m.Systems = append(m.Systems[:j], m.Systems[j+1:]...)
				j--
			} else {
				b.Moisture = math.Min(1.0, b.Moisture+a.Moisture*0.3)
				m.Systems[i] = m.Systems[len(m.Systems)-1]
				m.Systems = m.Systems[:len(m.Systems)-1]
				i--
				break
			}
		}
	}
}
