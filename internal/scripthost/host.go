// Package scripthost is the Script Host component: rules are registered Go
// closures rather than a scripted language, since no embeddable
// scripting/expression engine appears anywhere in the example corpus (see
// DESIGN.md). It preserves original_source's external contract — rules run
// in deterministic name order per phase, each gets a sandboxed operation
// budget and RNG stream, and any single rule's failure discards the whole
// tile's proposed mutations for that phase.
package scripthost

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brookstalley/worldground/internal/mutation"
	"github.com/brookstalley/worldground/internal/simerrors"
	"github.com/brookstalley/worldground/internal/simphase"
	"github.com/brookstalley/worldground/internal/tile"
	"github.com/brookstalley/worldground/internal/xrand"
)

// Rule is one registered, named phase rule.
type Rule interface {
	Name() string
	Evaluate(ctx *RuleContext)
}

// Registry holds the rule set for every phase, sorted by name at
// registration time so execution order is deterministic and stable across
// runs — the Go equivalent of original_source's filename-sorted rule
// directories.
type Registry struct {
	byPhase map[simphase.Phase][]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byPhase: make(map[simphase.Phase][]Rule)}
}

// Register adds rule to phase, re-sorting that phase's rules by name.
func (r *Registry) Register(phase simphase.Phase, rule Rule) {
	r.byPhase[phase] = append(r.byPhase[phase], rule)
	sort.Slice(r.byPhase[phase], func(i, j int) bool {
		return r.byPhase[phase][i].Name() < r.byPhase[phase][j].Name()
	})
}

// Rules returns phase's registered rules in execution order.
func (r *Registry) Rules(phase simphase.Phase) []Rule {
	return r.byPhase[phase]
}

// Host evaluates rules against tiles under a per-rule timeout.
type Host struct {
	Registry *Registry
	Timeout  time.Duration
}

// NewHost returns a Host with the default 10ms per-rule timeout.
func NewHost(registry *Registry) *Host {
	return &Host{Registry: registry, Timeout: 10 * time.Millisecond}
}

// Evaluate runs every registered rule for phase against t, in name order,
// returning the combined mutation set. If any rule fails (panic, timeout,
// or operation-limit exhaustion), the whole tile's mutations for this phase
// are discarded and a *simerrors.RuleError is returned, per the spec's
// per-tile error isolation contract.
func (h *Host) Evaluate(phase simphase.Phase, t *tile.Tile, neighbors []*tile.Tile, season tile.Season, tick uint64) (mutation.TileMutations, error) {
	var combined mutation.TileMutations
	seed := xrand.Seed(tick, t.ID, phase.Offset())

	for _, rule := range h.Registry.Rules(phase) {
		muts, nextSeed, err := h.runOne(rule, t, neighbors, season, tick, phase, seed)
		if err != nil {
			return mutation.TileMutations{}, err
		}
		combined.Mutations = append(combined.Mutations, muts.Mutations...)
		seed = nextSeed
	}
	return combined, nil
}

// runOne evaluates a single rule under a timeout. It returns the RNG
// stream's advanced state alongside the mutations, so the next rule in the
// same phase continues drawing from where this one left off instead of
// restarting an identical stream — mirroring original_source's single
// thread-local RNG shared across a phase's whole rule loop.
func (h *Host) runOne(rule Rule, t *tile.Tile, neighbors []*tile.Tile, season tile.Season, tick uint64, phase simphase.Phase, seed uint64) (mutation.TileMutations, uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), h.Timeout)
	defer cancel()

	type result struct {
		muts     mutation.TileMutations
		nextSeed uint64
		err      error
	}
	done := make(chan result, 1)

	go func() {
		rc := newRuleContext(t, neighbors, season, tick, phase, rule.Name(), seed)
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: &simerrors.RuleError{TileID: t.ID, RuleName: rule.Name(), Reason: fmt.Sprintf("panic: %v", r)}}
				return
			}
			if rc.failed {
				done <- result{err: &simerrors.RuleError{TileID: t.ID, RuleName: rule.Name(), Reason: rc.failErr.Error()}}
				return
			}
			for _, m := range rc.out.Mutations {
				if !mutation.Allowed(phase, m.Field) {
					done <- result{err: &simerrors.RuleError{TileID: t.ID, RuleName: rule.Name(), Reason: fmt.Sprintf("write to %q not permitted in phase %s", m.Field, phase)}}
					return
				}
			}
			done <- result{muts: rc.out, nextSeed: rc.rng.Raw()}
		}()
		rule.Evaluate(rc)
	}()

	select {
	case <-ctx.Done():
		return mutation.TileMutations{}, seed, &simerrors.RuleError{TileID: t.ID, RuleName: rule.Name(), Reason: "timed out"}
	case r := <-done:
		return r.muts, r.nextSeed, r.err
	}
}
