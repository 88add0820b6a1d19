// Package worldbench is a coordinate-descent parameter sweep over the
// macro-weather spawn/merge constants, adapted from the ecology sim's
// volcano-tuning sweep: a deterministic scenario is scored, then each
// tunable is perturbed across a candidate list (evaluated concurrently,
// bounded by a worker pool), keeping whichever change improves the score,
// repeating until a pass makes no further improvement.
package worldbench

import (
	"fmt"
	"math"
	"sync"

	"github.com/brookstalley/worldground/internal/config"
	"github.com/brookstalley/worldground/internal/generate"
	"github.com/brookstalley/worldground/internal/macroweather"
	"github.com/brookstalley/worldground/internal/tile"
)

// WeatherCoverageResult captures telemetry from a deterministic macro-
// weather run used for tuning.
type WeatherCoverageResult struct {
	MeanSystemCount   float64 // average live pressure-system count across the run
	MeanStormTiles    float64 // average fraction of tiles under nonzero macro humidity stamping
	SystemCountTarget float64
}

// Score is smaller-is-better: distance from a target mean system count,
// penalizing runs with effectively zero storm coverage (a degenerate,
// spawn-starved configuration).
func (r WeatherCoverageResult) Score() float64 {
	distance := math.Abs(r.MeanSystemCount - r.SystemCountTarget)
	if r.MeanStormTiles < 0.001 {
		distance += 10
	}
	return distance
}

func betterResult(a, b WeatherCoverageResult) bool {
	return a.Score() < b.Score()
}

// RunScenario runs a deterministic generated world for the requested
// number of ticks under the given tunables, and returns coverage
// telemetry. Lives alongside the sweep since it's only ever called from a
// tuning run, never from the main tick loop.
func RunScenario(gen config.GenerationConfig, ticks int, params macroweather.Tunables, target float64) (WeatherCoverageResult, error) {
	w, err := generate.Generate("worldbench-scenario", gen)
	if err != nil {
		return WeatherCoverageResult{}, fmt.Errorf("generating scenario world: %w", err)
	}

	var systemSum, stormSum float64
	for i := 0; i < ticks; i++ {
		macroweather.StepWithTunables(w, true, params)
		systemSum += float64(len(w.Macro.Systems))
		stormSum += stormFraction(w)
	}

	n := float64(ticks)
	if n == 0 {
		n = 1
	}
	return WeatherCoverageResult{
		MeanSystemCount:   systemSum / n,
		MeanStormTiles:    stormSum / n,
		SystemCountTarget: target,
	}, nil
}

func stormFraction(w *tile.World) float64 {
	if len(w.Tiles) == 0 {
		return 0
	}
	count := 0
	for i := range w.Tiles {
		if w.Tiles[i].Weather.MacroHumidity > 0 {
			count++
		}
	}
	return float64(count) / float64(len(w.Tiles))
}

// Record documents one improvement encountered while exploring the tuning
// parameter space.
type Record struct {
	Pass      int
	Parameter string
	Value     string
	Result    WeatherCoverageResult
	Params    macroweather.Tunables
}

type floatSpec struct {
	name   string
	values []float64
	getter func(macroweather.Tunables) float64
	setter func(*macroweather.Tunables, float64)
}

// Sweep performs a coordinate-descent search over the macro-weather spawn
// probability and merge-distance factor, returning the best tunables found
// and an improvement trace.
func Sweep(gen config.GenerationConfig, ticks, passes, workers int, target float64) (macroweather.Tunables, WeatherCoverageResult, []Record, error) {
	if passes <= 0 {
		passes = 3
	}
	if workers <= 0 {
		workers = 1
	}

	current := macroweather.DefaultTunables()
	baseline, err := RunScenario(gen, ticks, current, target)
	if err != nil {
		return current, WeatherCoverageResult{}, nil, err
	}

	records := []Record{{Pass: 0, Parameter: "baseline", Result: baseline, Params: current}}

	specs := []floatSpec{
		{
			name:   "spawn_probability_per_tick",
			values: []float64{0.05, 0.10, 0.15, 0.20, 0.25, 0.30},
			getter: func(t macroweather.Tunables) float64 { return t.SpawnProbabilityPerTick },
			setter: func(t *macroweather.Tunables, v float64) { t.SpawnProbabilityPerTick = v },
		},
		{
			name:   "merge_distance_factor",
			values: []float64{0.3, 0.4, 0.5, 0.6, 0.7},
			getter: func(t macroweather.Tunables) float64 { return t.MergeDistanceFactor },
			setter: func(t *macroweather.Tunables, v float64) { t.MergeDistanceFactor = v },
		},
	}

	for pass := 1; pass <= passes; pass++ {
		improved := false
		for _, spec := range specs {
			bestParams, bestResult, changed, recs, err := evaluateSpec(gen, current, baseline, spec, ticks, workers, pass, target)
			if err != nil {
				return current, baseline, records, err
			}
			if changed {
				current = bestParams
				baseline = bestResult
				records = append(records, recs...)
				improved = true
			}
		}
		if !improved {
			break
		}
	}

	return current, baseline, records, nil
}

func evaluateSpec(gen config.GenerationConfig, params macroweather.Tunables, baseline WeatherCoverageResult, spec floatSpec, ticks, workers, pass int, target float64) (macroweather.Tunables, WeatherCoverageResult, bool, []Record, error) {
	type candidate struct {
		value  float64
		result WeatherCoverageResult
		err    error
		valid  bool
	}

	candidates := make([]candidate, len(spec.values))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, value := range spec.values {
		if almostEqual(value, spec.getter(params)) {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v float64) {
			defer wg.Done()
			defer func() { <-sem }()
			candidateParams := params
			spec.setter(&candidateParams, v)
			res, err := RunScenario(gen, ticks, candidateParams, target)
			candidates[i] = candidate{value: v, result: res, err: err, valid: err == nil}
		}(idx, value)
	}
	wg.Wait()

	bestParams, bestResult, changed := params, baseline, false
	var records []Record
	for idx, value := range spec.values {
		cand := candidates[idx]
		if cand.err != nil {
			return params, baseline, false, nil, cand.err
		}
		if !cand.valid {
			continue
		}
		if betterResult(cand.result, bestResult) {
			candidateParams := params
			spec.setter(&candidateParams, value)
			bestParams = candidateParams
			bestResult = cand.result
			changed = true
			records = append(records, Record{
				Pass: pass, Parameter: spec.name,
				Value: fmt.Sprintf("%.3f", value), Result: cand.result, Params: candidateParams,
			})
		}
	}
	return bestParams, bestResult, changed, records, nil
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	return math.Abs(a-b) <= eps
}
