package macroweather

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/brookstalley/worldground/internal/spheremath"
	"github.com/brookstalley/worldground/internal/tile"
)

// stampTiles writes each tile's macro wind speed/direction, macro humidity,
// and pressure from the weighted contribution of every pressure system
// within range. This is the spec's authoritative linear-weight contract:
// weight = max(0, 1 - d/radius) for systems whose great-circle distance to
// the tile is < radius. Read-only over the systems list; safe to run in
// parallel across tiles.
func stampTiles(w *tile.World) {
	systems := w.Macro.Systems
	if len(systems) == 0 {
		for i := range w.Tiles {
			t := &w.Tiles[i]
			t.Weather.MacroWindSpeed = 0
			t.Weather.MacroWindDirection = 0
			t.Weather.MacroHumidity = 0
			t.Weather.Pressure = 1013.25
		}
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range w.Tiles {
		i := i
		g.Go(func() error {
			stampOne(&w.Tiles[i], systems)
			return nil
		})
	}
	_ = g.Wait()
}

func stampOne(t *tile.Tile, systems []tile.PressureSystem) {
	var weightSum, pressureSum, humiditySum, eastSum, northSum float64
	var covered bool

	for _, s := range systems {
		d := spheremath.AngularDistance(t.Position.Lat, t.Position.Lon, s.Lat, s.Lon)
		if d >= s.Radius {
			continue
		}
		weight := 1.0 - d/s.Radius
		if weight <= 0 {
			continue
		}
		covered = true
		weightSum += weight
		pressureSum += weight * (1013.25 + s.PressureAnomaly)
		humiditySum += weight * s.Moisture

		east, north := spheremath.DirectionOnSphere(t.Position.Lat, t.Position.Lon, s.Lat, s.Lon)
		speed := math.Sqrt(s.VelocityEast*s.VelocityEast + s.VelocityNorth*s.VelocityNorth)
		eastSum += weight * east * speed
		northSum += weight * north * speed
	}

	if !covered || weightSum <= 0 {
		t.Weather.MacroWindSpeed = 0
		t.Weather.MacroWindDirection = 0
		t.Weather.MacroHumidity = 0
		t.Weather.Pressure = 1013.25
		return
	}

	avgEast := eastSum / weightSum
	avgNorth := northSum / weightSum
	t.Weather.MacroWindSpeed = math.Sqrt(avgEast*avgEast + avgNorth*avgNorth)
	t.Weather.MacroWindDirection = spheremath.TangentToBearing(avgEast, avgNorth)
	t.Weather.MacroHumidity = clamp01(humiditySum / weightSum)
	t.Weather.Pressure = pressureSum / weightSum
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
