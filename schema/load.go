package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseSchemaJSON decodes a schema from JSON and verifies it is well formed.
// Extends cannot be expressed in a schema document; compose loaded schemas
// programmatically.
func ParseSchemaJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema JSON: %w", err)
	}
	if _, err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseSchemaYAML decodes a schema from YAML and verifies it is well formed.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema YAML: %w", err)
	}
	if _, err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DocumentFromJSON decodes a JSON object into the map form Validate accepts.
func DocumentFromJSON(data []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document JSON: %w", err)
	}
	return doc, nil
}

// DocumentFromYAML decodes a YAML mapping into the map form Validate accepts.
func DocumentFromYAML(data []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document YAML: %w", err)
	}
	return doc, nil
}

// JSONFromYAML re-encodes a YAML document as JSON, so YAML files can feed
// JSON-tagged types like the contract documents.
func JSONFromYAML(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode YAML as JSON: %w", err)
	}
	return out, nil
}
