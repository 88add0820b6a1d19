// Package phase is the Phase Executor: for one simphase.Phase, it snapshots
// the world, evaluates every tile's rules/native-evaluator concurrently
// against that frozen snapshot, then applies the resulting mutations
// sequentially — clamping declared ranges, enforcing the mutation
// whitelist and the biome-transition graph, and isolating each tile's
// errors from the rest of the phase.
package phase

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/brookstalley/worldground/internal/mutation"
	"github.com/brookstalley/worldground/internal/nativeweather"
	"github.com/brookstalley/worldground/internal/scripthost"
	"github.com/brookstalley/worldground/internal/simerrors"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/tile"
)

// Executor drives one phase's evaluate-then-apply cycle.
type Executor struct {
	Host                 *scripthost.Host
	NativeWeatherEnabled bool
}

// NewExecutor returns an Executor backed by host. nativeWeatherEnabled
// selects the Native Weather Evaluator for the Weather phase instead of
// host's registered weather rules.
func NewExecutor(host *scripthost.Host, nativeWeatherEnabled bool) *Executor {
	return &Executor{Host: host, NativeWeatherEnabled: nativeWeatherEnabled}
}

// Result summarizes one phase's run against one world.
type Result struct {
	Phase        simphase.Phase
	RuleErrors   []*simerrors.RuleError
	Diagnostics  []error // RangeClamped / BiomeTransitionRejected, non-fatal
	ChangedTiles []uint32
	// BiomeChanged holds the ids of tiles whose biome class actually
	// changed during this phase's apply step (Terrain is the only phase
	// that can ever populate this).
	BiomeChanged []uint32
}

// Run evaluates and applies phase against w, mutating w.Tiles in place.
func (e *Executor) Run(ctx context.Context, w *tile.World, ph simphase.Phase) (Result, error) {
	snap := tile.NewSnapshot(w)
	n := len(snap.Tiles)

	mutations := make([]mutation.TileMutations, n)
	ruleErrs := make([]*simerrors.RuleError, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for id := uint32(0); id < uint32(n); id++ {
		id := id
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			t := snap.Tile(id)
			neighbors := snap.Neighbors(id)

			var muts mutation.TileMutations
			var err error
			if ph == simphase.Weather && e.NativeWeatherEnabled {
				muts = nativeweather.Evaluate(t, neighbors, snap.Season, snap.Tick)
			} else {
				muts, err = e.Host.Evaluate(ph, t, neighbors, snap.Season, snap.Tick)
			}
			if err != nil {
				if re, ok := err.(*simerrors.RuleError); ok {
					ruleErrs[id] = re
				}
				return nil
			}
			mutations[id] = muts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{Phase: ph}, err
	}

	var diagnostics []error
	var changed []uint32
	var biomeChanged []uint32
	for id := uint32(0); id < uint32(n); id++ {
		if ruleErrs[id] != nil {
			continue
		}
		if len(mutations[id].Mutations) == 0 {
			continue
		}
		t := w.TileByID(id)
		before := t.Biome.BiomeType
		diags := apply(t, ph, mutations[id])
		diagnostics = append(diagnostics, diags...)
		changed = append(changed, id)
		if t.Biome.BiomeType != before {
			biomeChanged = append(biomeChanged, id)
		}
	}

	var ruleErrOut []*simerrors.RuleError
	for _, re := range ruleErrs {
		if re != nil {
			ruleErrOut = append(ruleErrOut, re)
		}
	}

	return Result{Phase: ph, RuleErrors: ruleErrOut, Diagnostics: diagnostics, ChangedTiles: changed, BiomeChanged: biomeChanged}, nil
}

// apply writes muts onto t, in order (so a repeated field is last-write-
// wins), clamping to each field's declared range and checking the biome
// adjacency graph for biome.biome_type writes. Unknown fields (should
// already be impossible — the host rejects them) are silently ignored.
func apply(t *tile.Tile, ph simphase.Phase, muts mutation.TileMutations) []error {
	var diagnostics []error
	for _, m := range muts.Mutations {
		if !mutation.Allowed(ph, m.Field) {
			continue
		}
		if m.Field == "biome.biome_type" {
			to, ok := parseBiomeType(m.EnumValue)
			if !ok {
				continue
			}
			if !tile.CanTransition(t.Biome.BiomeType, to) {
				diagnostics = append(diagnostics, &simerrors.BiomeTransitionRejected{
					TileID: t.ID, From: t.Biome.BiomeType.String(), To: m.EnumValue,
				})
				continue
			}
			if to != t.Biome.BiomeType {
				t.Biome.TicksInCurrentBiome = 0
			}
			t.Biome.BiomeType = to
			continue
		}
		if m.Field == "weather.precipitation_type" {
			if pt, ok := parsePrecipitationType(m.EnumValue); ok {
				t.Weather.PrecipitationType = pt
			}
			continue
		}

		want := m.Value
		got, clamped := clampToRange(m.Field, want)
		if clamped {
			diagnostics = append(diagnostics, &simerrors.RangeClamped{TileID: t.ID, Field: m.Field, Wanted: want, Got: got})
		}
		setField(t, m.Field, got)
	}
	return diagnostics
}

func setField(t *tile.Tile, field string, v float64) {
	switch field {
	case "weather.temperature":
		t.Weather.Temperature = v
	case "weather.precipitation":
		t.Weather.Precipitation = v
	case "weather.wind_speed":
		t.Weather.WindSpeed = v
	case "weather.wind_direction":
		t.Weather.WindDirection = v
	case "weather.cloud_cover":
		t.Weather.CloudCover = v
	case "weather.humidity":
		t.Weather.Humidity = v
	case "weather.storm_intensity":
		t.Weather.StormIntensity = v
	case "weather.pressure":
		t.Weather.Pressure = v
	case "conditions.soil_moisture":
		t.Conditions.SoilMoisture = v
	case "conditions.snow_depth":
		t.Conditions.SnowDepth = v
	case "conditions.mud_level":
		t.Conditions.MudLevel = v
	case "conditions.flood_level":
		t.Conditions.FloodLevel = v
	case "conditions.frost_days":
		t.Conditions.FrostDays = uint32(v)
	case "conditions.drought_days":
		t.Conditions.DroughtDays = uint32(v)
	case "conditions.fire_risk":
		t.Conditions.FireRisk = v
	case "biome.vegetation_density":
		t.Biome.VegetationDensity = v
	case "biome.vegetation_health":
		t.Biome.VegetationHealth = v
	case "biome.transition_pressure":
		t.Biome.TransitionPressure = v
	case "resources.quantity":
		distributeResourceQuantity(t, v)
	}
}

// distributeResourceQuantity spreads an aggregate regrowth total back
// across a tile's deposits, in proportion to each deposit's share of the
// previous total (evenly when that total is zero). A tile with no deposits
// ignores the write.
func distributeResourceQuantity(t *tile.Tile, total float64) {
	if len(t.Resources.Deposits) == 0 {
		return
	}
	prevTotal := 0.0
	for _, d := range t.Resources.Deposits {
		prevTotal += d.Quantity
	}
	if prevTotal <= 0 {
		share := total / float64(len(t.Resources.Deposits))
		for i := range t.Resources.Deposits {
			t.Resources.Deposits[i].Quantity = clampDepositQuantity(share, t.Resources.Deposits[i].MaxQuantity)
		}
		return
	}
	for i := range t.Resources.Deposits {
		frac := t.Resources.Deposits[i].Quantity / prevTotal
		t.Resources.Deposits[i].Quantity = clampDepositQuantity(total*frac, t.Resources.Deposits[i].MaxQuantity)
	}
}

// clampDepositQuantity keeps a deposit's quantity within [0, maxQuantity].
func clampDepositQuantity(quantity, maxQuantity float64) float64 {
	if quantity < 0 {
		return 0
	}
	if quantity > maxQuantity {
		return maxQuantity
	}
	return quantity
}

func parseBiomeType(s string) (tile.BiomeType, bool) {
	for b := tile.BiomeOcean; b <= tile.BiomeBarren; b++ {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}

func parsePrecipitationType(s string) (tile.PrecipitationType, bool) {
	for p := tile.PrecipitationNone; p <= tile.PrecipitationSleet; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}
