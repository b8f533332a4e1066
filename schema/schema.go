package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrMalformedSchema marks usage errors in a schema definition, as opposed to
// validation failures in a document. Check with errors.Is.
var ErrMalformedSchema = errors.New("malformed schema")

// Schema declares the expected shape of a document.
//
// Required lists the fields that must be present and non-nil, in the order
// their absence should be reported. Properties maps field names to their
// constraints. PropertyOrder, when set, fixes the order in which per-field
// checks run and errors appear; fields not listed (or when it is empty) are
// checked in sorted name order, so error order is always deterministic.
//
// Extends names a base schema merged in during validation: required fields
// are the union of both, properties are the union with this schema winning on
// collision. Only one level is supported; a base that itself extends another
// schema is rejected as malformed.
type Schema struct {
	Name          string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Version       string                  `json:"version,omitempty" yaml:"version,omitempty"`
	Required      []string                `json:"required,omitempty" yaml:"required,omitempty"`
	Properties    map[string]*PropertyDef `json:"properties,omitempty" yaml:"properties,omitempty"`
	PropertyOrder []string                `json:"propertyOrder,omitempty" yaml:"propertyOrder,omitempty"`
	Extends       *Schema                 `json:"-" yaml:"-"`
}

// PropertyDef declares the constraints on a single field.
//
// Type is mandatory and must be one of "string", "number", "integer",
// "boolean", "array", or "object". Length bounds apply to string values,
// numeric bounds to number/integer values, Enum to any value, and Pattern is
// matched against the whole of a string value.
type PropertyDef struct {
	Type        string        `json:"type" yaml:"type"`
	MinLength   *int          `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int          `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum     *float64      `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64      `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Enum        []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`
	Pattern     string        `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// Int returns a pointer to n, for building length bounds inline.
func Int(n int) *int {
	return &n
}

// Float returns a pointer to f, for building numeric bounds inline.
func Float(f float64) *float64 {
	return &f
}

var validTypes = map[string]struct{}{
	"string":  {},
	"number":  {},
	"integer": {},
	"boolean": {},
	"array":   {},
	"object":  {},
}

// compiledSchema is the flattened, checked form of a schema: base merged in,
// patterns compiled, property order resolved.
type compiledSchema struct {
	required   []string
	order      []string
	properties map[string]*PropertyDef
	patterns   map[string]*regexp.Regexp
}

// compile flattens one level of Extends, verifies the schema is well formed,
// and precompiles patterns. Any defect is a usage error wrapping
// ErrMalformedSchema.
func (s *Schema) compile() (*compiledSchema, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: schema is nil", ErrMalformedSchema)
	}
	if s.Extends != nil && s.Extends.Extends != nil {
		return nil, fmt.Errorf("%w: schema %q extends a schema that itself extends another; only one level of extension is supported", ErrMalformedSchema, s.Name)
	}

	cs := &compiledSchema{
		properties: make(map[string]*PropertyDef),
		patterns:   make(map[string]*regexp.Regexp),
	}

	if s.Extends != nil {
		cs.required = appendMissing(cs.required, s.Extends.Required)
		cs.order = appendMissing(cs.order, s.Extends.propertyOrder())
		for name, prop := range s.Extends.Properties {
			cs.properties[name] = prop
		}
	}
	cs.required = appendMissing(cs.required, s.Required)
	cs.order = appendMissing(cs.order, s.propertyOrder())
	for name, prop := range s.Properties {
		cs.properties[name] = prop
	}

	for _, name := range cs.order {
		prop := cs.properties[name]
		if prop == nil {
			return nil, fmt.Errorf("%w: property %q is nil", ErrMalformedSchema, name)
		}
		if prop.Type == "" {
			return nil, fmt.Errorf("%w: property %q has no type", ErrMalformedSchema, name)
		}
		if _, ok := validTypes[prop.Type]; !ok {
			return nil, fmt.Errorf("%w: property %q has unknown type %q", ErrMalformedSchema, name, prop.Type)
		}
		if prop.MinLength != nil && *prop.MinLength < 0 {
			return nil, fmt.Errorf("%w: property %q has negative minLength", ErrMalformedSchema, name)
		}
		if prop.MinLength != nil && prop.MaxLength != nil && *prop.MinLength > *prop.MaxLength {
			return nil, fmt.Errorf("%w: property %q has minLength greater than maxLength", ErrMalformedSchema, name)
		}
		if prop.Pattern != "" {
			// Patterns match the whole value, not a substring.
			re, err := regexp.Compile(`\A(?:` + prop.Pattern + `)\z`)
			if err != nil {
				return nil, fmt.Errorf("%w: property %q has invalid pattern %q: %v", ErrMalformedSchema, name, prop.Pattern, err)
			}
			cs.patterns[name] = re
		}
	}

	return cs, nil
}

// propertyOrder returns the declared property order for this schema alone:
// PropertyOrder entries that exist as properties, followed by any remaining
// properties in sorted name order.
func (s *Schema) propertyOrder() []string {
	order := make([]string, 0, len(s.Properties))
	listed := make(map[string]struct{}, len(s.PropertyOrder))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; ok {
			order = append(order, name)
			listed[name] = struct{}{}
		}
	}
	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if _, ok := listed[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// appendMissing appends the entries of add that are not already in dst,
// preserving order.
func appendMissing(dst, add []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range add {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			dst = append(dst, s)
		}
	}
	return dst
}
