// Package config loads and validates the simulation's YAML configuration,
// in the same DefaultConfig-plus-validate idiom the ecology sim uses,
// generalized to SimulationConfig's fields (ported from original_source's
// config/simulation.rs) and to yaml.v3 for parsing instead of flag-style
// string maps.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brookstalley/worldground/internal/simerrors"
)

// SimulationConfig controls tick pacing, snapshotting, the stream server,
// rule loading, and native-evaluation selection.
type SimulationConfig struct {
	TickRateHz        float64 `yaml:"tick_rate_hz"`
	SnapshotInterval  uint64  `yaml:"snapshot_interval"`
	MaxSnapshots      int     `yaml:"max_snapshots"`
	SnapshotDirectory string  `yaml:"snapshot_directory"`
	WebsocketPort     int     `yaml:"websocket_port"`
	WebsocketBind     string  `yaml:"websocket_bind"`
	RuleDirectory     string  `yaml:"rule_directory"`
	LogLevel          string  `yaml:"log_level"`
	SeasonLength      uint32  `yaml:"season_length"`
	RuleTimeoutMs     uint64  `yaml:"rule_timeout_ms"`
	NativeEvaluation  bool    `yaml:"native_evaluation"`
	MacroWeatherOn    bool    `yaml:"macro_weather_enabled"`
}

// DefaultConfig returns the canonical starting configuration, matching
// original_source's serde field defaults.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		TickRateHz:        1.0,
		SnapshotInterval:  100,
		MaxSnapshots:      10,
		SnapshotDirectory: "./snapshots",
		WebsocketPort:     8118,
		WebsocketBind:     "127.0.0.1",
		RuleDirectory:     "./rules",
		LogLevel:          "info",
		SeasonLength:      90,
		RuleTimeoutMs:     10,
		NativeEvaluation:  true,
		MacroWeatherOn:    true,
	}
}

// FromFile loads a SimulationConfig from a YAML file, starting from
// DefaultConfig so any field the file omits keeps its default.
func FromFile(path string) (SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SimulationConfig{}, &simerrors.ConfigError{Reason: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return FromYAML(data)
}

// FromYAML parses data as YAML into a SimulationConfig and validates it.
func FromYAML(data []byte) (SimulationConfig, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return SimulationConfig{}, &simerrors.ConfigError{Reason: fmt.Sprintf("parsing yaml: %v", err)}
	}
	if err := c.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return c, nil
}

// Validate collects every problem with c rather than stopping at the
// first, matching original_source's validate() contract, then joins them
// into a single ConfigError.
func (c SimulationConfig) Validate() error {
	var problems []string

	if c.TickRateHz <= 0 {
		problems = append(problems, "tick_rate_hz must be positive")
	}
	if c.SnapshotInterval == 0 {
		problems = append(problems, "snapshot_interval must be nonzero")
	}
	if c.MaxSnapshots < 1 {
		problems = append(problems, "max_snapshots must be at least 1")
	}
	if strings.TrimSpace(c.SnapshotDirectory) == "" {
		problems = append(problems, "snapshot_directory must not be empty")
	}
	if c.WebsocketPort < 1 || c.WebsocketPort > 65535 {
		problems = append(problems, "websocket_port must be in [1,65535]")
	}
	if strings.TrimSpace(c.WebsocketBind) == "" {
		problems = append(problems, "websocket_bind must not be empty")
	}
	if c.SeasonLength == 0 {
		problems = append(problems, "season_length must be nonzero")
	}
	if c.RuleTimeoutMs == 0 {
		problems = append(problems, "rule_timeout_ms must be nonzero")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug/info/warn/error", c.LogLevel))
	}

	if len(problems) > 0 {
		return &simerrors.ConfigError{Reason: strings.Join(problems, "\n")}
	}
	return nil
}
