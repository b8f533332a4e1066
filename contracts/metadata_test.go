package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMetadata(t *testing.T) {
	t.Run("override scalars win when set", func(t *testing.T) {
		base := Metadata{Author: "platform-team", DocumentationURL: "https://docs/v1"}
		override := Metadata{Author: "payments-team"}

		merged := MergeMetadata(base, override)

		assert.Equal(t, "payments-team", merged.Author)
		assert.Equal(t, "https://docs/v1", merged.DocumentationURL)
	})

	t.Run("base scalars survive empty override", func(t *testing.T) {
		base := Metadata{Author: "platform-team", DeprecationReason: "superseded"}

		merged := MergeMetadata(base, Metadata{})

		assert.Equal(t, "platform-team", merged.Author)
		assert.Equal(t, "superseded", merged.DeprecationReason)
	})

	t.Run("tags merge to a sorted deduplicated union", func(t *testing.T) {
		merged := MergeMetadata(
			Metadata{Tags: []string{"a", "b"}},
			Metadata{Tags: []string{"b", "c"}},
		)

		assert.Equal(t, []string{"a", "b", "c"}, merged.Tags)
	})

	t.Run("tag union is independent of operand order", func(t *testing.T) {
		x := Metadata{Tags: []string{"b", "a"}}
		y := Metadata{Tags: []string{"c", "b"}}

		assert.Equal(t, MergeMetadata(x, y).Tags, MergeMetadata(y, x).Tags)
	})

	t.Run("empty tag sets merge to nil", func(t *testing.T) {
		merged := MergeMetadata(Metadata{}, Metadata{})

		assert.Nil(t, merged.Tags)
	})

	t.Run("deprecation is sticky", func(t *testing.T) {
		merged := MergeMetadata(Metadata{Deprecated: true}, Metadata{})

		assert.True(t, merged.Deprecated)

		merged = MergeMetadata(Metadata{}, Metadata{Deprecated: true, DeprecationReason: "use v2"})

		assert.True(t, merged.Deprecated)
		assert.Equal(t, "use v2", merged.DeprecationReason)
	})

	t.Run("operands are not mutated", func(t *testing.T) {
		base := Metadata{Tags: []string{"z", "a"}}
		override := Metadata{Tags: []string{"m"}}

		MergeMetadata(base, override)

		assert.Equal(t, []string{"z", "a"}, base.Tags)
		assert.Equal(t, []string{"m"}, override.Tags)
	})

	t.Run("deprecation reason without deprecated flag is preserved", func(t *testing.T) {
		// Accepted inconsistency: the reason is independent of the flag.
		merged := MergeMetadata(Metadata{DeprecationReason: "pending removal"}, Metadata{})

		assert.False(t, merged.Deprecated)
		assert.Equal(t, "pending removal", merged.DeprecationReason)
	})
}

func TestMetadataClone(t *testing.T) {
	t.Run("clone does not share the tag slice", func(t *testing.T) {
		original := Metadata{Tags: []string{"a", "b"}}

		clone := original.Clone()
		clone.Tags[0] = "mutated"

		assert.Equal(t, "a", original.Tags[0])
	})
}

func TestHasTag(t *testing.T) {
	m := Metadata{Tags: []string{"billing", "public"}}

	assert.True(t, m.HasTag("billing"))
	assert.False(t, m.HasTag("internal"))
	assert.False(t, Metadata{}.HasTag("any"))
}
