package schema

import (
	"fmt"
	"reflect"
	"regexp"
)

// ValidationResult is the aggregated outcome of validating one document.
// Valid is exactly "Errors is empty"; it is never set independently.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is a single, independently actionable violation.
type ValidationError struct {
	Path     string      `json:"path"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
	Expected string      `json:"expected,omitempty"`
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error at '%s': %s", e.Path, e.Message)
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{Errors: make([]ValidationError, 0)}
}

func (r *ValidationResult) add(err ValidationError) {
	r.Errors = append(r.Errors, err)
}

// finalize derives Valid from the error list and returns r.
func (r *ValidationResult) finalize() *ValidationResult {
	r.Valid = len(r.Errors) == 0
	return r
}

// Validate checks a document against a schema and aggregates every violation.
//
// Required fields are checked first, in declared order: a field that is
// absent or nil yields one error at its own path. Then every field present
// in both the document and the schema's properties is checked against its
// constraints, in the schema's property order; all applicable checks run
// independently, so a single field can contribute more than one error.
//
// Validation never fails for invalid data; the returned error is non-nil
// only when the schema itself is malformed (see ErrMalformedSchema).
func Validate(document map[string]interface{}, s *Schema) (*ValidationResult, error) {
	cs, err := s.compile()
	if err != nil {
		return nil, err
	}

	result := newValidationResult()

	for _, name := range cs.required {
		if value, ok := document[name]; !ok || value == nil {
			result.add(ValidationError{
				Path:     name,
				Message:  fmt.Sprintf("Required field '%s' is missing", name),
				Expected: "defined value",
			})
		}
	}

	for _, name := range cs.order {
		value, ok := document[name]
		if !ok || value == nil {
			continue
		}
		validateProperty(name, value, cs.properties[name], cs.patterns[name], result)
	}

	return result.finalize(), nil
}

// validateProperty runs every applicable constraint for one field. Checks are
// independent: a type mismatch does not suppress the enum check, and so on.
func validateProperty(path string, value interface{}, prop *PropertyDef, pattern *regexp.Regexp, result *ValidationResult) {
	if !typeMatches(value, prop.Type) {
		result.add(ValidationError{
			Path:     path,
			Message:  fmt.Sprintf("expected type %s, got %T", prop.Type, value),
			Value:    value,
			Expected: prop.Type,
		})
	}

	if str, ok := value.(string); ok {
		if prop.MinLength != nil && len(str) < *prop.MinLength {
			result.add(ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("string length %d is less than minimum %d", len(str), *prop.MinLength),
				Value:    str,
				Expected: fmt.Sprintf("at least %d characters", *prop.MinLength),
			})
		}
		if prop.MaxLength != nil && len(str) > *prop.MaxLength {
			result.add(ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("string length %d exceeds maximum %d", len(str), *prop.MaxLength),
				Value:    str,
				Expected: fmt.Sprintf("at most %d characters", *prop.MaxLength),
			})
		}
		if pattern != nil && !pattern.MatchString(str) {
			result.add(ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("value does not match pattern: %s", prop.Pattern),
				Value:    str,
				Expected: prop.Pattern,
			})
		}
	}

	if num, ok := asFloat(value); ok {
		if prop.Minimum != nil && num < *prop.Minimum {
			result.add(ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("value %v is less than minimum %v", num, *prop.Minimum),
				Value:    value,
				Expected: fmt.Sprintf("at least %v", *prop.Minimum),
			})
		}
		if prop.Maximum != nil && num > *prop.Maximum {
			result.add(ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("value %v exceeds maximum %v", num, *prop.Maximum),
				Value:    value,
				Expected: fmt.Sprintf("at most %v", *prop.Maximum),
			})
		}
	}

	if len(prop.Enum) > 0 && !enumContains(prop.Enum, value) {
		result.add(ValidationError{
			Path:     path,
			Message:  fmt.Sprintf("value is not in allowed enum values: %v", prop.Enum),
			Value:    value,
			Expected: fmt.Sprintf("one of %v", prop.Enum),
		})
	}
}

// typeMatches checks a runtime value against a declared primitive type. The
// type set is closed; compile rejects anything outside it.
func typeMatches(value interface{}, declaredType string) bool {
	switch declaredType {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := asFloat(value)
		return ok
	case "integer":
		switch n := value.(type) {
		case int, int64:
			return true
		case float64:
			return n == float64(int64(n))
		default:
			return false
		}
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]interface{})
		return ok
	case "object":
		_, ok := value.(map[string]interface{})
		return ok
	default:
		return false
	}
}

// asFloat widens the numeric shapes JSON and YAML decoding produce.
func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// enumContains reports membership with numeric widening, so an int document
// value matches a float enum entry and vice versa.
func enumContains(enum []interface{}, value interface{}) bool {
	vf, vIsNum := asFloat(value)
	for _, allowed := range enum {
		if reflect.DeepEqual(value, allowed) {
			return true
		}
		if af, ok := asFloat(allowed); ok && vIsNum && af == vf {
			return true
		}
	}
	return false
}
