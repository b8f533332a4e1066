package contracts

import "encoding/json"

// Clone returns a deep copy sharing no mutable sub-structure with the
// original.
func (c EventContract) Clone() Contract {
	clone := c
	clone.Metadata = c.Metadata.Clone()
	clone.Payload = deepCopyMap(c.Payload)
	return clone
}

// Clone returns a deep copy sharing no mutable sub-structure with the
// original.
func (c APIContract) Clone() Contract {
	clone := c
	clone.Metadata = c.Metadata.Clone()
	if c.RequestSchema != nil {
		clone.RequestSchema = append(json.RawMessage(nil), c.RequestSchema...)
	}
	if c.ResponseSchema != nil {
		clone.ResponseSchema = append(json.RawMessage(nil), c.ResponseSchema...)
	}
	return clone
}

// Clone returns a deep copy sharing no mutable sub-structure with the
// original.
func (c DataModelContract) Clone() Contract {
	clone := c
	clone.Metadata = c.Metadata.Clone()
	if c.Fields != nil {
		clone.Fields = make(map[string]FieldDef, len(c.Fields))
		for k, v := range c.Fields {
			clone.Fields[k] = v
		}
	}
	clone.Constraints = deepCopyMap(c.Constraints)
	return clone
}

// deepCopyMap copies a JSON-like string-keyed map recursively. Nested maps
// and slices are copied; scalar values are value types already.
func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(m))
	for k, v := range m {
		copied[k] = deepCopyValue(v)
	}
	return copied
}

func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(val)
	case []interface{}:
		copied := make([]interface{}, len(val))
		for i, item := range val {
			copied[i] = deepCopyValue(item)
		}
		return copied
	default:
		return val
	}
}
