// Package tick is the Tick Engine: it drives one full tick of a World
// through macro-weather, the four mutation phases, biome-residency
// bookkeeping, season advancement, and statistics, at a configurable pace.
package tick

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/brookstalley/worldground/internal/macroweather"
	"github.com/brookstalley/worldground/internal/phase"
	"github.com/brookstalley/worldground/internal/simerrors"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/statistics"
	"github.com/brookstalley/worldground/internal/tile"
)

// PhaseTimings holds per-phase wall-clock duration for one tick, in tick
// order: MacroWeather, Weather, Conditions, Terrain, Resources,
// Statistics.
type PhaseTimings [6]time.Duration

// Event is emitted once per tick, the payload the stream component
// forwards to subscribers.
type Event struct {
	Tick         uint64
	Season       tile.Season
	PhaseTimings PhaseTimings
	ChangedTiles []uint32
	Statistics   statistics.TickStatistics
	Cascade      *simerrors.CascadeWarning
}

// CascadeThreshold is the fraction of tiles that must error in a single
// tick before a CascadeWarning is raised.
const CascadeThreshold = 0.10

// Engine advances a World one tick at a time, paced by a token-bucket
// limiter so headless runs and the debug viewer share one throttling
// mechanism.
type Engine struct {
	Executor         *phase.Executor
	MacroWeatherOn   bool
	limiter          *rate.Limiter
}

// NewEngine returns an Engine that paces ticks at tickRateHz (ticks per
// second). A non-positive rate disables pacing.
func NewEngine(executor *phase.Executor, tickRateHz float64, macroWeatherOn bool) *Engine {
	e := &Engine{Executor: executor, MacroWeatherOn: macroWeatherOn}
	if tickRateHz > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(tickRateHz), 1)
	}
	return e
}

// Tick advances w by exactly one tick and returns the resulting Event.
func (e *Engine) Tick(ctx context.Context, w *tile.World) (Event, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return Event{}, err
		}
	}

	var timings PhaseTimings
	var ruleErrors []*simerrors.RuleError
	changedSet := make(map[uint32]struct{})
	biomeChangedSet := make(map[uint32]struct{})

	t0 := time.Now()
	macroweather.Step(w, e.MacroWeatherOn)
	timings[0] = time.Since(t0)

	for i, ph := range simphase.All() {
		start := time.Now()
		result, err := e.Executor.Run(ctx, w, ph)
		if err != nil {
			return Event{}, err
		}
		timings[i+1] = time.Since(start)
		ruleErrors = append(ruleErrors, result.RuleErrors...)
		for _, re := range result.RuleErrors {
			slog.Debug("rule error", "tick", w.TickCount, "phase", ph.String(), "tile_id", re.TileID, "rule", re.RuleName, "reason", re.Reason)
		}
		for _, id := range result.ChangedTiles {
			changedSet[id] = struct{}{}
		}
		for _, id := range result.BiomeChanged {
			biomeChangedSet[id] = struct{}{}
		}
	}

	advanceBiomeResidency(w, biomeChangedSet)

	statsStart := time.Now()
	stats := statistics.Compute(w, ruleErrors, 0)
	timings[5] = time.Since(statsStart)

	var tickTotal time.Duration
	for _, d := range timings {
		tickTotal += d
	}
	stats.TickDurationMillis = float64(tickTotal) / float64(time.Millisecond)

	w.TickCount++
	if w.SeasonLength > 0 && w.TickCount%uint64(w.SeasonLength) == 0 {
		w.Season = w.Season.Next()
	}

	var cascade *simerrors.CascadeWarning
	if len(w.Tiles) > 0 && float64(len(ruleErrors))/float64(len(w.Tiles)) > CascadeThreshold {
		cascade = &simerrors.CascadeWarning{Tick: w.TickCount, ErrorCount: len(ruleErrors), TileCount: len(w.Tiles)}
	}

	changed := make([]uint32, 0, len(changedSet))
	for id := range changedSet {
		changed = append(changed, id)
	}

	return Event{
		Tick:         w.TickCount,
		Season:       w.Season,
		PhaseTimings: timings,
		ChangedTiles: changed,
		Statistics:   stats,
		Cascade:      cascade,
	}, nil
}

// advanceBiomeResidency increments every tile's current-biome tick count,
// except for tiles whose biome class actually changed this tick: the
// Terrain phase's apply step already reset those to 0, and this tick's
// count must land on 0, not 1.
func advanceBiomeResidency(w *tile.World, biomeChanged map[uint32]struct{}) {
	for i := range w.Tiles {
		if _, changed := biomeChanged[w.Tiles[i].ID]; changed {
			continue
		}
		w.Tiles[i].Biome.TicksInCurrentBiome++
	}
}
