package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ToJSON renders s as JSON, using goccy/go-json in place of
// encoding/json for the same reasons the rest of this module's I/O edges
// do: faster marshal/unmarshal on the shapes typical schemas produce.
func (s *Schema) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal: %w", err)
	}
	return data, nil
}

// ParseJSON decodes a JSON Schema document into a Schema.
func ParseJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: unmarshal: %w", err)
	}
	return &s, nil
}

// ToYAML renders s as YAML, for consumers that prefer a config-file
// friendly encoding over JSON.
func (s *Schema) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal yaml: %w", err)
	}
	return data, nil
}
