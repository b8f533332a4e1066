// Package registry provides lookup operations over contract collections and
// an in-memory contract registry.
//
// The collection operations (FilterByTag, SortByVersionDescending,
// FindLatest) are pure: they never mutate their input and return new slices.
// Registry adds a mutex-guarded in-process store on top, with duplicate
// rejection, latest-version lookup, and wildcard/constraint discovery
// ("order.*" ids, "1.x" or "^1.0.0" versions). Registered contracts are
// cloned on the way in and out, so callers cannot mutate stored documents.
//
// The registry is in-process only; it performs no network I/O and no
// persistence.
package registry
