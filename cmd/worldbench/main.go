// Command worldbench runs a coordinate-descent sweep over the
// macro-weather spawn/merge constants and reports the best parameters
// found, in the same baseline-then-sweep-then-report shape as the
// teacher's volcano tuner.
package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/brookstalley/worldground/internal/config"
	"github.com/brookstalley/worldground/internal/macroweather"
	"github.com/brookstalley/worldground/internal/worldbench"
)

func main() {
	ticks := flag.Int("ticks", 600, "number of ticks to simulate per candidate")
	passes := flag.Int("passes", 3, "coordinate-descent passes to execute")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	tileCount := flag.Uint("tiles", 2000, "tile count for tuning-run worlds")
	seed := flag.Int64("seed", 1337, "seed used for deterministic tuning worlds")
	target := flag.Float64("target", 12.0, "target mean live pressure-system count")
	manualOnly := flag.Bool("manual", false, "skip sweeping and only evaluate the default tunables")
	flag.Parse()

	gen := config.DefaultGenerationConfig()
	gen.Seed = *seed
	gen.TileCount = uint32(*tileCount)

	baseline, err := worldbench.RunScenario(gen, *ticks, macroweather.DefaultTunables(), *target)
	if err != nil {
		fmt.Println("baseline run failed:", err)
		return
	}
	fmt.Printf("Baseline: mean systems %.2f (target %.2f), mean macro-weather coverage %.3f, score %.3f\n",
		baseline.MeanSystemCount, *target, baseline.MeanStormTiles, baseline.Score())

	if *manualOnly {
		fmt.Println("Manual evaluation requested; skipping sweep.")
		return
	}

	params, result, trace, err := worldbench.Sweep(gen, *ticks, *passes, *workers, *target)
	if err != nil {
		fmt.Println("sweep failed:", err)
		return
	}

	fmt.Printf("\nBest found: mean systems %.2f, mean macro-weather coverage %.3f, score %.3f\n",
		result.MeanSystemCount, result.MeanStormTiles, result.Score())
	fmt.Printf("Parameters:\n  spawn_probability_per_tick=%.3f\n  merge_distance_factor=%.3f\n",
		params.SpawnProbabilityPerTick, params.MergeDistanceFactor)

	if len(trace) > 1 {
		fmt.Println("\nImprovements:")
		for _, rec := range trace[1:] {
			fmt.Printf("  pass %d: %s=%s -> meanSystems=%.2f score=%.3f\n",
				rec.Pass, rec.Parameter, rec.Value, rec.Result.MeanSystemCount, rec.Result.Score())
		}
	}
}
