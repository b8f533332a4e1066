package contracts

import (
	"encoding/json"
	"time"

	"github.com/ekhoe-pll/pll-contracts/semver"
)

// Kind discriminates the contract variants.
type Kind string

const (
	KindEvent     Kind = "event"
	KindAPI       Kind = "api"
	KindDataModel Kind = "data-model"
)

// ContractFields carries the fields common to every contract kind. Each kind
// embeds it by value, so field access is static per variant.
type ContractFields struct {
	ID          string         `json:"id" yaml:"id"`
	Version     semver.Version `json:"version" yaml:"version"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Metadata    Metadata       `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" yaml:"updatedAt"`
}

// Contract is the common interface over the three contract kinds.
type Contract interface {
	GetID() string
	GetVersion() semver.Version
	GetName() string
	GetMetadata() Metadata
	Kind() Kind
	Common() ContractFields
	Clone() Contract
}

// GetID returns the contract ID
func (f ContractFields) GetID() string {
	return f.ID
}

// GetVersion returns the contract version
func (f ContractFields) GetVersion() semver.Version {
	return f.Version
}

// GetName returns the contract name
func (f ContractFields) GetName() string {
	return f.Name
}

// GetDescription returns the contract description
func (f ContractFields) GetDescription() string {
	return f.Description
}

// GetMetadata returns the contract metadata
func (f ContractFields) GetMetadata() Metadata {
	return f.Metadata
}

// Common returns the shared field set
func (f ContractFields) Common() ContractFields {
	return f
}

// touched returns a copy with a refreshed UpdatedAt.
func (f ContractFields) touched() ContractFields {
	f.UpdatedAt = Now()
	return f
}

// EventContract describes a published event: its dot-separated event type and
// the expected payload shape.
type EventContract struct {
	ContractFields `yaml:",inline"`

	EventType string                 `json:"eventType" yaml:"eventType"`
	Payload   map[string]interface{} `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Kind returns KindEvent.
func (c EventContract) Kind() Kind {
	return KindEvent
}

// Touch returns a copy with a refreshed UpdatedAt.
func (c EventContract) Touch() EventContract {
	c.ContractFields = c.ContractFields.touched()
	return c
}

// APIContract describes an HTTP endpoint: method, path, optional request and
// response schemas, and the authentication scheme it expects.
type APIContract struct {
	ContractFields `yaml:",inline"`

	Method         string          `json:"method" yaml:"method"`
	Path           string          `json:"path" yaml:"path"`
	RequestSchema  json.RawMessage `json:"requestSchema,omitempty" yaml:"requestSchema,omitempty"`
	ResponseSchema json.RawMessage `json:"responseSchema,omitempty" yaml:"responseSchema,omitempty"`
	Auth           string          `json:"auth,omitempty" yaml:"auth,omitempty"`
}

// Kind returns KindAPI.
func (c APIContract) Kind() Kind {
	return KindAPI
}

// Touch returns a copy with a refreshed UpdatedAt.
func (c APIContract) Touch() APIContract {
	c.ContractFields = c.ContractFields.touched()
	return c
}

// FieldDef describes a single field of a data model.
type FieldDef struct {
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DataModelContract describes a persisted data model: a PascalCase model name
// and its field definitions.
type DataModelContract struct {
	ContractFields `yaml:",inline"`

	ModelName   string                 `json:"modelName" yaml:"modelName"`
	Fields      map[string]FieldDef    `json:"fields" yaml:"fields"`
	Constraints map[string]interface{} `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// Kind returns KindDataModel.
func (c DataModelContract) Kind() Kind {
	return KindDataModel
}

// Touch returns a copy with a refreshed UpdatedAt.
func (c DataModelContract) Touch() DataModelContract {
	c.ContractFields = c.ContractFields.touched()
	return c
}
