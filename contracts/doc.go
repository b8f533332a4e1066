// Package contracts provides the core document types for the pll-contracts
// schema layer.
//
// This package defines the three contract kinds shared across independent
// codebases:
//   - EventContract: the shape of a published event
//   - APIContract: the shape of an HTTP endpoint
//   - DataModelContract: the shape of a persisted data model
//
// Every kind embeds ContractFields (identity, version, metadata, timestamps)
// by value; there is no virtual dispatch between kinds. Documents are plain
// serializable values: construction never fails, validation happens on demand
// through the schema package, and update helpers return new values rather
// than mutating in place.
package contracts
