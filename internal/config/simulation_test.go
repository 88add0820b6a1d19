package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig must validate cleanly, got: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	c := SimulationConfig{
		TickRateHz:        0,
		SnapshotInterval:  0,
		MaxSnapshots:      0,
		SnapshotDirectory: "",
		WebsocketPort:     0,
		WebsocketBind:     "",
		SeasonLength:      0,
		RuleTimeoutMs:     0,
		LogLevel:          "verbose",
	}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected Validate to reject an all-invalid config")
	}
	msg := err.Error()
	for _, want := range []string{
		"tick_rate_hz", "snapshot_interval", "max_snapshots",
		"snapshot_directory", "websocket_port", "websocket_bind",
		"season_length", "rule_timeout_ms", "log_level",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected Validate's combined error to mention %q, got: %s", want, msg)
		}
	}
}

func TestFromYAMLOverridesOnlyGivenFields(t *testing.T) {
	c, err := FromYAML([]byte("tick_rate_hz: 5\nlog_level: debug\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TickRateHz != 5 {
		t.Fatalf("expected tick_rate_hz override to 5, got %v", c.TickRateHz)
	}
	if c.LogLevel != "debug" {
		t.Fatalf("expected log_level override to debug, got %v", c.LogLevel)
	}
	if c.SeasonLength != DefaultConfig().SeasonLength {
		t.Fatalf("expected season_length to keep its default, got %v", c.SeasonLength)
	}
}

func TestFromYAMLRejectsInvalidValues(t *testing.T) {
	if _, err := FromYAML([]byte("tick_rate_hz: -1\n")); err == nil {
		t.Fatal("expected a negative tick_rate_hz to fail validation")
	}
}
