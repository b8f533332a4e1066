package contracts

import "sort"

// Metadata holds the optional descriptive fields attached to a contract.
//
// Tags is semantically a set: MergeMetadata deduplicates it. Deprecated and
// DeprecationReason are independent fields; a DeprecationReason on a
// non-deprecated contract is allowed and preserved as-is.
type Metadata struct {
	Author            string   `json:"author,omitempty" yaml:"author,omitempty"`
	Tags              []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	DocumentationURL  string   `json:"documentationUrl,omitempty" yaml:"documentationUrl,omitempty"`
	Deprecated        bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	DeprecationReason string   `json:"deprecationReason,omitempty" yaml:"deprecationReason,omitempty"`
}

// Clone returns a copy sharing no mutable state with the original.
func (m Metadata) Clone() Metadata {
	if m.Tags != nil {
		tags := make([]string, len(m.Tags))
		copy(tags, m.Tags)
		m.Tags = tags
	}
	return m
}

// HasTag reports whether the metadata carries the given tag.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MergeMetadata combines two metadata values into a new one, mutating
// neither operand.
//
// String fields take the override value when non-empty, the base value
// otherwise. Deprecated is sticky: the result is deprecated when either
// operand is (a merge cannot clear a deprecation). Tags is the deduplicated
// union of both operands, sorted, so the result is independent of input
// order.
func MergeMetadata(base, override Metadata) Metadata {
	merged := Metadata{
		Author:            base.Author,
		DocumentationURL:  base.DocumentationURL,
		Deprecated:        base.Deprecated || override.Deprecated,
		DeprecationReason: base.DeprecationReason,
	}
	if override.Author != "" {
		merged.Author = override.Author
	}
	if override.DocumentationURL != "" {
		merged.DocumentationURL = override.DocumentationURL
	}
	if override.DeprecationReason != "" {
		merged.DeprecationReason = override.DeprecationReason
	}
	merged.Tags = mergeTags(base.Tags, override.Tags)
	return merged
}

// mergeTags returns the sorted, deduplicated union of both tag sets, or nil
// when both are empty.
func mergeTags(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, tag := range a {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			union = append(union, tag)
		}
	}
	for _, tag := range b {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			union = append(union, tag)
		}
	}
	sort.Strings(union)
	return union
}
