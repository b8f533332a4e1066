// Package schema provides schema-driven structural validation for contract
// documents.
//
// A Schema declares the expected shape of a document: required fields plus
// per-field type, length, enum, and pattern constraints. Validation walks the
// whole document and aggregates every violation into a ValidationResult with
// a path per error; it never stops at the first problem and never raises for
// invalid data. Only a malformed schema (a property without a type, an
// uncompilable pattern) is reported as an error, since that is a usage bug
// rather than a data problem.
//
// Schemas compose through one level of Extends: validating against a derived
// schema means validating against the union of base and derived required
// fields and properties, with the derived schema winning on collision. There
// is no $ref graph or deeper composition.
//
// Basic usage:
//
//	userSchema := &schema.Schema{
//	    Name:     "User",
//	    Required: []string{"id", "name"},
//	    Properties: map[string]*schema.PropertyDef{
//	        "id":   {Type: "string", Pattern: "[A-Za-z0-9_-]+"},
//	        "name": {Type: "string", MaxLength: schema.Int(100)},
//	    },
//	}
//
//	result, err := schema.Validate(doc, userSchema)
//	if err != nil {
//	    // the schema itself is broken
//	}
//	if !result.Valid {
//	    // result.Errors lists every violation with its path
//	}
//
// The package also ships the built-in schemas and structural rules for the
// three contract kinds (ValidateEventContract, ValidateAPIContract,
// ValidateDataModelContract).
package schema
