package simerrors

import (
	"errors"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Reason: "missing seed"}
	if err.Error() != "configuration error: missing seed" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestRuleErrorMessage(t *testing.T) {
	err := &RuleError{TileID: 5, RuleName: "010_drift", Reason: "timed out"}
	want := `tile 5: rule "010_drift": timed out`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestCascadeWarningMessage(t *testing.T) {
	err := &CascadeWarning{Tick: 10, ErrorCount: 4, TileCount: 20}
	want := "tick 10: cascade warning: 4/20 tiles errored"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestErrorsAsDistinguishesKinds(t *testing.T) {
	var err error = &RuleError{TileID: 1, RuleName: "r", Reason: "boom"}

	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatal("expected errors.As to match *RuleError")
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		t.Fatal("expected errors.As not to match *ConfigError for a *RuleError")
	}
}

func TestBiomeTransitionRejectedMessage(t *testing.T) {
	err := &BiomeTransitionRejected{TileID: 2, From: "Ocean", To: "Desert"}
	want := "tile 2: biome transition Ocean -> Desert rejected"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
