// Package simerrors implements the five error kinds of the error-handling
// design: callers distinguish them with errors.As, not string matching.
package simerrors

import "fmt"

// ConfigError is a load-time configuration error (missing required phase
// rule set, malformed config, generation input failing schema validation).
// Fatal: the caller must refuse to start.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration error: %s", e.Reason) }

// RuleError is a per-tile rule error (timeout, operation-limit, runtime
// panic, or a write to a field outside the rule's phase whitelist). Local:
// only the offending tile's proposed mutations for the phase are dropped.
type RuleError struct {
	TileID   uint32
	RuleName string
	Reason   string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("tile %d: rule %q: %s", e.TileID, e.RuleName, e.Reason)
}

// CascadeWarning signals that more than 10% of tiles errored on a single
// tick. It is attached to the tick event, not returned as a Go error — the
// tick still commits — but it satisfies the error interface for logging
// convenience.
type CascadeWarning struct {
	Tick        uint64
	ErrorCount  int
	TileCount   int
}

func (e *CascadeWarning) Error() string {
	return fmt.Sprintf("tick %d: cascade warning: %d/%d tiles errored", e.Tick, e.ErrorCount, e.TileCount)
}

// RangeClamped records that a mutation was silently clamped to its field's
// declared range. Not surfaced as an error to callers; kept here so
// internal diagnostics can log it uniformly when verbose logging is on.
type RangeClamped struct {
	TileID uint32
	Field  string
	Wanted float64
	Got    float64
}

func (e *RangeClamped) Error() string {
	return fmt.Sprintf("tile %d: field %s clamped %.4f -> %.4f", e.TileID, e.Field, e.Wanted, e.Got)
}

// BiomeTransitionRejected records that a proposed biome-class mutation was
// rejected because it violates the adjacency graph. Not an error either;
// the mutation is simply dropped.
type BiomeTransitionRejected struct {
	TileID   uint32
	From, To string
}

func (e *BiomeTransitionRejected) Error() string {
	return fmt.Sprintf("tile %d: biome transition %s -> %s rejected", e.TileID, e.From, e.To)
}
