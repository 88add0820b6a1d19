// Package xrand is the deterministic xorshift64 generator the spec mandates
// for per-tile rule evaluation and macro-weather spawn decisions. It is a
// stdlib-only, hand-rolled algorithm by necessity: the formula itself is the
// contract (see DESIGN.md's "Where we stayed on stdlib").
package xrand

// Seed composes the deterministic per-(tick, tile, phase) seed used by both
// the script host and the native weather evaluator, ported verbatim (modulo
// Go's default-wrapping unsigned arithmetic, which matches Rust's
// wrapping_mul/wrapping_add exactly) from original_source's
// phase.rs::compute_rng_seed.
func Seed(tick uint64, tileID uint32, phaseOffset uint64) uint64 {
	return tick*6364136223846793005 + uint64(tileID)*1442695040888963407 + phaseOffset
}

// State is a single xorshift64 generator. The zero value is not usable;
// construct with New.
type State struct {
	s uint64
}

// New returns a generator seeded with s. A zero seed is remapped to 1 to
// avoid xorshift64's all-zero fixed point.
func New(s uint64) *State {
	if s == 0 {
		s = 1
	}
	return &State{s: s}
}

// Raw returns the generator's current internal state, suitable as the seed
// for a later, independently constructed State that should continue the
// same stream (e.g. handing randomness off from one rule invocation to the
// next within a phase).
func (r *State) Raw() uint64 {
	return r.s
}

func (r *State) next() uint64 {
	x := r.s
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.s = x
	return x
}

// Float64 returns a deterministic value in [0,1).
func (r *State) Float64() float64 {
	return float64(r.next()) / float64(^uint64(0))
}

// Range returns a deterministic value in [min,max).
func (r *State) Range(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Bool returns a deterministic coin flip.
func (r *State) Bool() bool {
	return r.next()%2 == 0
}

// Step advances a raw xorshift64 state value by one step without
// allocating a State, used where only the stateless formula is needed (e.g.
// advancing MacroWeatherState.RNGState in place).
func Step(s uint64) uint64 {
	if s == 0 {
		s = 1
	}
	x := s
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// Float64From derives a deterministic float in [0,1) from a raw state
// value without mutating any State.
func Float64From(s uint64) float64 {
	return float64(Step(s)) / float64(^uint64(0))
}
