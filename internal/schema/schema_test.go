package schema

import "testing"

func TestValidateGenerationInputAcceptsMinimalValidDocument(t *testing.T) {
	doc := []byte(`{"seed": 1, "tile_count": 100}`)
	if err := ValidateGenerationInput(doc); err != nil {
		t.Fatalf("expected minimal valid document to pass, got: %v", err)
	}
}

func TestValidateGenerationInputRejectsMissingRequiredField(t *testing.T) {
	doc := []byte(`{"seed": 1}`) // missing tile_count
	if err := ValidateGenerationInput(doc); err == nil {
		t.Fatal("expected a document missing tile_count to be rejected")
	}
}

func TestValidateGenerationInputRejectsTileCountBelowMinimum(t *testing.T) {
	doc := []byte(`{"seed": 1, "tile_count": 5}`)
	if err := ValidateGenerationInput(doc); err == nil {
		t.Fatal("expected tile_count below 12 to be rejected")
	}
}

func TestValidateGenerationInputRejectsUnknownTopology(t *testing.T) {
	doc := []byte(`{"seed": 1, "tile_count": 100, "topology": "square"}`)
	if err := ValidateGenerationInput(doc); err == nil {
		t.Fatal("expected an unrecognized topology string to be rejected")
	}
}

func TestValidateGenerationInputRejectsMalformedJSON(t *testing.T) {
	if err := ValidateGenerationInput([]byte(`{not json`)); err == nil {
		t.Fatal("expected malformed JSON to be rejected")
	}
}

func TestValidateRuleManifestAcceptsValidDocument(t *testing.T) {
	doc := []byte(`{"phase": "Weather", "rules": ["010_drift.rhai", "020_blend.rhai"]}`)
	if err := ValidateRuleManifest(doc); err != nil {
		t.Fatalf("expected valid manifest to pass, got: %v", err)
	}
}

func TestValidateRuleManifestRejectsUnknownPhase(t *testing.T) {
	doc := []byte(`{"phase": "Orbital", "rules": []}`)
	if err := ValidateRuleManifest(doc); err == nil {
		t.Fatal("expected an unrecognized phase to be rejected")
	}
}

func TestValidateRuleManifestRejectsEmptyRuleName(t *testing.T) {
	doc := []byte(`{"phase": "Terrain", "rules": [""]}`)
	if err := ValidateRuleManifest(doc); err == nil {
		t.Fatal("expected an empty rule filename to be rejected")
	}
}
