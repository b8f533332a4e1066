package registry

import (
	"sort"

	"github.com/ekhoe-pll/pll-contracts/contracts"
)

// FilterByTag returns the contracts whose metadata carries the tag, as a new
// slice preserving input order.
func FilterByTag(docs []contracts.Contract, tag string) []contracts.Contract {
	filtered := make([]contracts.Contract, 0)
	for _, doc := range docs {
		if doc.GetMetadata().HasTag(tag) {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// SortByVersionDescending returns a new slice ordered highest version first.
// The sort is stable: contracts whose versions compare equal keep their input
// order. The input slice is not modified.
func SortByVersionDescending(docs []contracts.Contract) []contracts.Contract {
	sorted := make([]contracts.Contract, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetVersion().Compare(sorted[j].GetVersion()) > 0
	})
	return sorted
}

// FindLatest returns the highest-version contract with the given id. The
// second return is false when no contract matches. Among equal versions the
// earliest in input order wins.
func FindLatest(docs []contracts.Contract, id string) (contracts.Contract, bool) {
	var latest contracts.Contract
	found := false
	for _, doc := range docs {
		if doc.GetID() != id {
			continue
		}
		if !found || doc.GetVersion().Compare(latest.GetVersion()) > 0 {
			latest = doc
			found = true
		}
	}
	return latest, found
}
