package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ekhoe-pll/pll-contracts/contracts"
)

// Built-in structural schemas for the three contract kinds. Each kind extends
// BaseContractSchema, so validating a contract exercises the union of base
// and kind-specific required fields. Constraints that overlap the rule
// checks below (id charset, name length) live only in the rules, so a defect
// is reported once.
var (
	BaseContractSchema = &Schema{
		Name:     "BaseContract",
		Required: []string{"id", "version", "name"},
		Properties: map[string]*PropertyDef{
			"id":          {Type: "string"},
			"version":     {Type: "string"},
			"name":        {Type: "string"},
			"description": {Type: "string"},
			"metadata":    {Type: "object"},
			"createdAt":   {Type: "string"},
			"updatedAt":   {Type: "string"},
		},
		PropertyOrder: []string{"id", "version", "name", "description", "metadata", "createdAt", "updatedAt"},
	}

	EventContractSchema = &Schema{
		Name:     "EventContract",
		Extends:  BaseContractSchema,
		Required: []string{"eventType"},
		Properties: map[string]*PropertyDef{
			"eventType": {Type: "string"},
			"payload":   {Type: "object"},
		},
		PropertyOrder: []string{"eventType", "payload"},
	}

	APIContractSchema = &Schema{
		Name:     "APIContract",
		Extends:  BaseContractSchema,
		Required: []string{"method", "path"},
		Properties: map[string]*PropertyDef{
			"method": {
				Type: "string",
				Enum: []interface{}{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			},
			"path":           {Type: "string"},
			"requestSchema":  {Type: "object"},
			"responseSchema": {Type: "object"},
			"auth":           {Type: "string"},
		},
		PropertyOrder: []string{"method", "path", "requestSchema", "responseSchema", "auth"},
	}

	// "fields" is deliberately not in Required: the emptiness rule below owns
	// both the absent and the empty case, so a missing map is reported once.
	DataModelContractSchema = &Schema{
		Name:     "DataModelContract",
		Extends:  BaseContractSchema,
		Required: []string{"modelName"},
		Properties: map[string]*PropertyDef{
			"modelName":   {Type: "string"},
			"fields":      {Type: "object"},
			"constraints": {Type: "object"},
		},
		PropertyOrder: []string{"modelName", "fields", "constraints"},
	}
)

// Structural rule patterns for contract fields.
var (
	idPattern        = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	eventTypePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	modelNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// ValidateEventContract checks an event contract structurally: the generic
// schema walk plus the event-specific rules. Every rule is checked even when
// earlier ones fail; the result aggregates all violations.
func ValidateEventContract(c contracts.EventContract) *ValidationResult {
	result := validateAgainst(c, EventContractSchema)
	checkCommonRules(c.ContractFields, result)
	if !eventTypePattern.MatchString(c.EventType) {
		result.add(ValidationError{
			Path:     "eventType",
			Message:  "Event type must contain only letters, digits, dots, underscores, and hyphens",
			Value:    c.EventType,
			Expected: eventTypePattern.String(),
		})
	}
	return result.finalize()
}

// ValidateAPIContract checks an API contract structurally.
func ValidateAPIContract(c contracts.APIContract) *ValidationResult {
	result := validateAgainst(c, APIContractSchema)
	checkCommonRules(c.ContractFields, result)
	if !strings.HasPrefix(c.Path, "/") {
		result.add(ValidationError{
			Path:     "path",
			Message:  "API path must start with '/'",
			Value:    c.Path,
			Expected: "leading '/'",
		})
	}
	return result.finalize()
}

// ValidateDataModelContract checks a data-model contract structurally.
func ValidateDataModelContract(c contracts.DataModelContract) *ValidationResult {
	result := validateAgainst(c, DataModelContractSchema)
	checkCommonRules(c.ContractFields, result)
	if !modelNamePattern.MatchString(c.ModelName) {
		result.add(ValidationError{
			Path:     "modelName",
			Message:  "Model name must be PascalCase",
			Value:    c.ModelName,
			Expected: modelNamePattern.String(),
		})
	}
	if len(c.Fields) == 0 {
		result.add(ValidationError{
			Path:     "fields",
			Message:  "Data model must declare at least one field",
			Expected: "non-empty field map",
		})
	}
	return result.finalize()
}

// ValidateContract dispatches on the contract kind.
func ValidateContract(c contracts.Contract) *ValidationResult {
	switch doc := c.(type) {
	case contracts.EventContract:
		return ValidateEventContract(doc)
	case contracts.APIContract:
		return ValidateAPIContract(doc)
	case contracts.DataModelContract:
		return ValidateDataModelContract(doc)
	default:
		result := newValidationResult()
		result.add(ValidationError{
			Path:     "document",
			Message:  fmt.Sprintf("unknown contract kind %T", c),
			Expected: "event, api, or data-model contract",
		})
		return result.finalize()
	}
}

// checkCommonRules applies the contract-wide field rules shared by all kinds.
// Each rule raises at most one error and runs regardless of earlier failures.
func checkCommonRules(f contracts.ContractFields, result *ValidationResult) {
	if !idPattern.MatchString(f.ID) {
		result.add(ValidationError{
			Path:     "id",
			Message:  "Contract id must contain only letters, digits, underscores, and hyphens",
			Value:    f.ID,
			Expected: idPattern.String(),
		})
	}
	if f.Name == "" {
		result.add(ValidationError{
			Path:     "name",
			Message:  "Contract name must not be empty",
			Expected: "1-100 characters",
		})
	}
	if len(f.Name) > 100 {
		result.add(ValidationError{
			Path:     "name",
			Message:  fmt.Sprintf("Contract name length %d exceeds maximum 100", len(f.Name)),
			Value:    f.Name,
			Expected: "1-100 characters",
		})
	}
	if f.Description != "" && len(f.Description) > 500 {
		result.add(ValidationError{
			Path:     "description",
			Message:  fmt.Sprintf("Contract description length %d exceeds maximum 500", len(f.Description)),
			Expected: "at most 500 characters",
		})
	}
}

// validateAgainst runs the generic walk over the document's JSON shape. The
// built-in schemas are constants verified by tests, so a compile failure here
// is an invariant violation, not a caller error.
func validateAgainst(doc interface{}, s *Schema) *ValidationResult {
	data, err := documentToMap(doc)
	if err != nil {
		result := newValidationResult()
		result.add(ValidationError{
			Path:    "document",
			Message: fmt.Sprintf("failed to convert document to map: %v", err),
		})
		return result
	}
	result, err := Validate(data, s)
	if err != nil {
		panic(fmt.Sprintf("built-in contract schema is malformed: %v", err))
	}
	return result
}

// documentToMap converts a document to its JSON object form for validation.
func documentToMap(doc interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return result, nil
}
