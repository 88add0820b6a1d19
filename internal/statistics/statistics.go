// Package statistics computes the per-tick reduction over a World's tiles:
// biome distribution and its Shannon diversity index, weather coverage,
// and aggregate means. It never writes to the world; every value is a pure
// function of the tiles it reads. Ported from original_source's
// statistics.rs.
package statistics

import (
	"math"
	"runtime"
	"sync"

	"github.com/brookstalley/worldground/internal/simerrors"
	"github.com/brookstalley/worldground/internal/tile"
)

// TickStatistics summarizes one tick's resulting world state.
type TickStatistics struct {
	Tick               uint64
	TileCount          int
	BiomeDistribution  map[string]int
	BiomeDiversity     float64 // Shannon index, normalized to [0,1]
	WeatherCoverage    map[string]int // precipitation type -> tile count
	MeanTemperature    float64
	MeanSoilMoisture   float64
	MeanVegetation     float64
	RuleErrorCount     int
	TickDurationMillis float64
}

// Compute reduces world's current tile state (plus the rule errors
// gathered across the tick's phases) into a TickStatistics. Tiles are
// partitioned across GOMAXPROCS workers, each producing a partial
// accumulator that is merged sequentially — the reduction itself has no
// cross-tile dependency, so no snapshot is required.
func Compute(w *tile.World, ruleErrors []*simerrors.RuleError, tickDurationMillis float64) TickStatistics {
	n := len(w.Tiles)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([]partial, workers)
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for wi := 0; wi < workers; wi++ {
		start := wi * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(idx, start, end int) {
			defer wg.Done()
			partials[idx] = reduceRange(w.Tiles[start:end])
		}(wi, start, end)
	}
	wg.Wait()

	total := mergePartials(partials)

	stats := TickStatistics{
		Tick:              w.TickCount,
		TileCount:         n,
		BiomeDistribution: total.biome,
		WeatherCoverage:   total.weather,
		RuleErrorCount:    len(ruleErrors),
		TickDurationMillis: tickDurationMillis,
	}
	stats.BiomeDiversity = shannonDiversity(total.biome, n)
	if n > 0 {
		stats.MeanTemperature = total.tempSum / float64(n)
		stats.MeanSoilMoisture = total.moistureSum / float64(n)
		stats.MeanVegetation = total.vegetationSum / float64(n)
	}
	return stats
}

type partial struct {
	biome         map[string]int
	weather       map[string]int
	tempSum       float64
	moistureSum   float64
	vegetationSum float64
}

func reduceRange(tiles []tile.Tile) partial {
	p := partial{biome: make(map[string]int), weather: make(map[string]int)}
	for i := range tiles {
		t := &tiles[i]
		p.biome[t.Biome.BiomeType.String()]++
		p.weather[t.Weather.PrecipitationType.String()]++
		p.tempSum += t.Weather.Temperature
		p.moistureSum += t.Conditions.SoilMoisture
		p.vegetationSum += t.Biome.VegetationHealth
	}
	return p
}

func mergePartials(parts []partial) partial {
	out := partial{biome: make(map[string]int), weather: make(map[string]int)}
	for _, p := range parts {
		for k, v := range p.biome {
			out.biome[k] += v
		}
		for k, v := range p.weather {
			out.weather[k] += v
		}
		out.tempSum += p.tempSum
		out.moistureSum += p.moistureSum
		out.vegetationSum += p.vegetationSum
	}
	return out
}

// shannonDiversity returns the normalized Shannon diversity index of
// distribution over total observations, in [0,1]. Returns 0 for an empty
// world or a monoculture (at most one nonzero category), matching
// original_source's shannon_diversity.
func shannonDiversity(distribution map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}
	nonZero := 0
	entropy := 0.0
	for _, count := range distribution {
		if count == 0 {
			continue
		}
		nonZero++
		p := float64(count) / float64(total)
		entropy -= p * math.Log(p)
	}
	if nonZero <= 1 {
		return 0
	}
	maxEntropy := math.Log(float64(nonZero))
	if maxEntropy <= 0 {
		return 0
	}
	return entropy / maxEntropy
}
