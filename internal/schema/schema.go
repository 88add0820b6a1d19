// Package schema validates JSON generation-input and rule-manifest
// documents against embedded JSON Schemas, reporting malformed input with
// a precise pointer into the offending document. The commands in this
// repository do not call it: generation YAML is checked only by
// config.GenerationConfig.Validate, and no rule manifest is ever loaded.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/brookstalley/worldground/internal/simerrors"
)

const generationSchemaSrc = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["seed", "tile_count"],
	"properties": {
		"seed": {"type": "integer"},
		"tile_count": {"type": "integer", "minimum": 12},
		"topology": {"type": "string", "enum": ["flat_hex", "geodesic"]},
		"ocean_ratio": {"type": "number", "minimum": 0, "maximum": 1},
		"mountain_ratio": {"type": "number", "minimum": 0, "maximum": 1},
		"elevation_roughness": {"type": "number", "minimum": 0, "maximum": 1},
		"climate_bands": {"type": "boolean"},
		"resource_density": {"type": "number", "minimum": 0, "maximum": 1},
		"initial_biome_maturity": {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

const ruleManifestSchemaSrc = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["phase", "rules"],
	"properties": {
		"phase": {"type": "string", "enum": ["Weather", "Conditions", "Terrain", "Resources"]},
		"rules": {
			"type": "array",
			"items": {"type": "string", "minLength": 1}
		}
	}
}`

var (
	generationSchema  *jsonschema.Schema
	ruleManifestSchema *jsonschema.Schema
)

func init() {
	generationSchema = mustCompile("generation.json", generationSchemaSrc)
	ruleManifestSchema = mustCompile("rule_manifest.json", ruleManifestSchemaSrc)
}

func mustCompile(name, src string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader([]byte(src))); err != nil {
		panic(fmt.Sprintf("schema: invalid embedded schema %s: %v", name, err))
	}
	s, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schema: compiling %s: %v", name, err))
	}
	return s
}

// ValidateGenerationInput checks raw YAML-as-JSON-compatible generation
// input bytes against the generation schema.
func ValidateGenerationInput(data []byte) error {
	return validate(generationSchema, data)
}

// ValidateRuleManifest checks a rule directory's manifest document.
func ValidateRuleManifest(data []byte) error {
	return validate(ruleManifestSchema, data)
}

func validate(s *jsonschema.Schema, data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return &simerrors.ConfigError{Reason: fmt.Sprintf("invalid json: %v", err)}
	}
	if err := s.Validate(v); err != nil {
		return &simerrors.ConfigError{Reason: err.Error()}
	}
	return nil
}
