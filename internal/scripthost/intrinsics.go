package scripthost

import (
	"math"

	"github.com/brookstalley/worldground/internal/spheremath"
	"github.com/brookstalley/worldground/internal/tile"
)

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180.0) }
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180.0) }
func sqrtf(v float64) float64    { return math.Sqrt(v) }
func absf(v float64) float64     { return math.Abs(v) }

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// windAlign returns the cosine between the bearing from "from" to "to" and
// windDir (degrees), i.e. how strongly wind blowing toward windDir carries
// from "from" toward "to". 1.0 means directly downwind, -1.0 directly
// upwind. Ported from original_source's wind_align intrinsic.
func windAlign(from, to *tile.Tile, windDir float64) float64 {
	east, north := spheremath.DirectionOnSphere(from.Position.Lat, from.Position.Lon, to.Position.Lat, to.Position.Lon)
	if east == 0 && north == 0 {
		return 0
	}
	bearing := spheremath.TangentToBearing(east, north)
	diff := bearing - windDir
	return cosDeg(diff)
}
