package contracts

import (
	"encoding/json"

	"github.com/ekhoe-pll/pll-contracts/semver"
)

// ContractOption configures the common fields at construction time.
type ContractOption func(*ContractFields)

// WithDescription sets the contract description.
func WithDescription(description string) ContractOption {
	return func(f *ContractFields) {
		f.Description = description
	}
}

// WithMetadata sets the contract metadata.
func WithMetadata(metadata Metadata) ContractOption {
	return func(f *ContractFields) {
		f.Metadata = metadata
	}
}

// newContractFields builds the common field set. An empty id gets a generated
// one prefixed with the contract kind. Construction never fails; documents
// are validated on demand, not on creation.
func newContractFields(kind Kind, id, name string, version semver.Version, opts ...ContractOption) ContractFields {
	if id == "" {
		id = GenerateID(string(kind))
	}
	now := Now()
	fields := ContractFields{
		ID:        id,
		Version:   version,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&fields)
	}
	return fields
}

// NewEventContract creates an event contract with the given identity and
// payload shape. The payload map is copied, not retained.
func NewEventContract(id, name string, version semver.Version, eventType string, payload map[string]interface{}, opts ...ContractOption) EventContract {
	return EventContract{
		ContractFields: newContractFields(KindEvent, id, name, version, opts...),
		EventType:      eventType,
		Payload:        deepCopyMap(payload),
	}
}

// NewAPIContract creates an API contract for the given method and path.
func NewAPIContract(id, name string, version semver.Version, method, path string, opts ...ContractOption) APIContract {
	return APIContract{
		ContractFields: newContractFields(KindAPI, id, name, version, opts...),
		Method:         method,
		Path:           path,
	}
}

// WithRequestSchema attaches a JSON request schema to an API contract,
// returning a copy. The raw bytes are copied.
func (c APIContract) WithRequestSchema(schema json.RawMessage) APIContract {
	c.RequestSchema = append(json.RawMessage(nil), schema...)
	return c
}

// WithResponseSchema attaches a JSON response schema to an API contract,
// returning a copy. The raw bytes are copied.
func (c APIContract) WithResponseSchema(schema json.RawMessage) APIContract {
	c.ResponseSchema = append(json.RawMessage(nil), schema...)
	return c
}

// WithAuth sets the authentication scheme on an API contract, returning a
// copy.
func (c APIContract) WithAuth(auth string) APIContract {
	c.Auth = auth
	return c
}

// NewDataModelContract creates a data-model contract. The fields map is
// copied, not retained.
func NewDataModelContract(id, name string, version semver.Version, modelName string, fields map[string]FieldDef, opts ...ContractOption) DataModelContract {
	var copied map[string]FieldDef
	if fields != nil {
		copied = make(map[string]FieldDef, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
	}
	return DataModelContract{
		ContractFields: newContractFields(KindDataModel, id, name, version, opts...),
		ModelName:      modelName,
		Fields:         copied,
	}
}
