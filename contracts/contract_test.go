package contracts

import (
	"strings"
	"testing"
	"time"

	"github.com/ekhoe-pll/pll-contracts/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventContract(t *testing.T) {
	t.Run("creates contract with supplied identity", func(t *testing.T) {
		c := NewEventContract("user-created-event", "User Created", semver.MustParse("1.0.0"),
			"user.created", map[string]interface{}{"userId": "string"})

		assert.Equal(t, "user-created-event", c.ID)
		assert.Equal(t, "User Created", c.Name)
		assert.Equal(t, "user.created", c.EventType)
		assert.Equal(t, KindEvent, c.Kind())
		assert.NotZero(t, c.CreatedAt)
		assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	})

	t.Run("generates an id when empty", func(t *testing.T) {
		c := NewEventContract("", "User Created", semver.MustParse("1.0.0"), "user.created", nil)

		assert.True(t, strings.HasPrefix(c.ID, "event-"))
	})

	t.Run("does not retain the payload map", func(t *testing.T) {
		payload := map[string]interface{}{"userId": "string"}

		c := NewEventContract("e1", "E", semver.MustParse("1.0.0"), "user.created", payload)
		payload["userId"] = "mutated"

		assert.Equal(t, "string", c.Payload["userId"])
	})

	t.Run("applies options", func(t *testing.T) {
		meta := Metadata{Author: "platform-team", Tags: []string{"public"}}

		c := NewEventContract("e1", "E", semver.MustParse("1.0.0"), "user.created", nil,
			WithDescription("fired on signup"),
			WithMetadata(meta),
		)

		assert.Equal(t, "fired on signup", c.Description)
		assert.Equal(t, meta, c.Metadata)
	})
}

func TestNewAPIContract(t *testing.T) {
	t.Run("creates contract with method and path", func(t *testing.T) {
		c := NewAPIContract("get-users", "List Users", semver.MustParse("2.1.0"), "GET", "/api/users")

		assert.Equal(t, "GET", c.Method)
		assert.Equal(t, "/api/users", c.Path)
		assert.Equal(t, KindAPI, c.Kind())
	})

	t.Run("schema and auth builders return copies", func(t *testing.T) {
		base := NewAPIContract("get-users", "List Users", semver.MustParse("1.0.0"), "GET", "/api/users")

		withSchema := base.WithRequestSchema([]byte(`{"type":"object"}`)).WithAuth("bearer")

		assert.Nil(t, base.RequestSchema)
		assert.Empty(t, base.Auth)
		assert.JSONEq(t, `{"type":"object"}`, string(withSchema.RequestSchema))
		assert.Equal(t, "bearer", withSchema.Auth)
	})
}

func TestNewDataModelContract(t *testing.T) {
	t.Run("creates contract and copies fields", func(t *testing.T) {
		fields := map[string]FieldDef{"id": {Type: "string", Required: true}}

		c := NewDataModelContract("user-model", "User", semver.MustParse("1.0.0"), "User", fields)
		fields["id"] = FieldDef{Type: "number"}

		assert.Equal(t, KindDataModel, c.Kind())
		assert.Equal(t, "string", c.Fields["id"].Type)
	})
}

func TestContractInterface(t *testing.T) {
	t.Run("all kinds implement Contract", func(t *testing.T) {
		v := semver.MustParse("1.0.0")
		docs := []Contract{
			NewEventContract("e", "E", v, "e.happened", nil),
			NewAPIContract("a", "A", v, "GET", "/a"),
			NewDataModelContract("d", "D", v, "D", map[string]FieldDef{"x": {Type: "string"}}),
		}

		kinds := make([]Kind, 0, len(docs))
		for _, d := range docs {
			kinds = append(kinds, d.Kind())
			assert.Equal(t, v, d.GetVersion())
			assert.NotEmpty(t, d.GetID())
		}
		assert.Equal(t, []Kind{KindEvent, KindAPI, KindDataModel}, kinds)
	})
}

func TestTouch(t *testing.T) {
	t.Run("returns a copy with refreshed UpdatedAt", func(t *testing.T) {
		c := NewEventContract("e1", "E", semver.MustParse("1.0.0"), "e.happened", nil)
		before := c.UpdatedAt

		time.Sleep(2 * time.Millisecond)
		touched := c.Touch()

		assert.Equal(t, before, c.UpdatedAt, "original must be untouched")
		assert.True(t, touched.UpdatedAt.After(before))
		assert.Equal(t, c.CreatedAt, touched.CreatedAt)
	})
}

func TestClone(t *testing.T) {
	t.Run("event clone shares no payload structure", func(t *testing.T) {
		c := NewEventContract("e1", "E", semver.MustParse("1.0.0"), "e.happened", map[string]interface{}{
			"nested": map[string]interface{}{"field": "string"},
			"list":   []interface{}{"a", "b"},
		})

		clone := c.Clone().(EventContract)
		clone.Payload["nested"].(map[string]interface{})["field"] = "mutated"
		clone.Payload["list"].([]interface{})[0] = "mutated"
		clone.Metadata.Tags = append(clone.Metadata.Tags, "new")

		assert.Equal(t, "string", c.Payload["nested"].(map[string]interface{})["field"])
		assert.Equal(t, "a", c.Payload["list"].([]interface{})[0])
		assert.Empty(t, c.Metadata.Tags)
	})

	t.Run("api clone copies schema bytes", func(t *testing.T) {
		c := NewAPIContract("a1", "A", semver.MustParse("1.0.0"), "POST", "/a").
			WithRequestSchema([]byte(`{"type":"object"}`))

		clone := c.Clone().(APIContract)
		clone.RequestSchema[2] = 'X'

		assert.JSONEq(t, `{"type":"object"}`, string(c.RequestSchema))
	})

	t.Run("data model clone copies field map", func(t *testing.T) {
		c := NewDataModelContract("d1", "D", semver.MustParse("1.0.0"), "User",
			map[string]FieldDef{"id": {Type: "string"}})

		clone := c.Clone().(DataModelContract)
		clone.Fields["id"] = FieldDef{Type: "number"}

		assert.Equal(t, "string", c.Fields["id"].Type)
	})
}

func TestGenerateID(t *testing.T) {
	t.Run("applies prefix", func(t *testing.T) {
		id := GenerateID("event")

		assert.True(t, strings.HasPrefix(id, "event-"))
		assert.Greater(t, len(id), len("event-")+8)
	})

	t.Run("omits separator without prefix", func(t *testing.T) {
		id := GenerateID("")

		assert.NotContains(t, id, "-")
		assert.NotEmpty(t, id)
	})

	t.Run("consecutive ids differ", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 100; i++ {
			id := GenerateID("x")
			_, dup := seen[id]
			assert.False(t, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	})
}

func TestTimestamps(t *testing.T) {
	t.Run("format emits millisecond UTC form", func(t *testing.T) {
		ts := time.Date(2025, 3, 14, 9, 26, 53, 589*int(time.Millisecond), time.UTC)

		assert.Equal(t, "2025-03-14T09:26:53.589Z", FormatTimestamp(ts))
	})

	t.Run("parse round-trips format", func(t *testing.T) {
		now := Now()

		parsed, err := ParseTimestamp(FormatTimestamp(now))

		require.NoError(t, err)
		assert.True(t, parsed.Equal(now))
	})

	t.Run("parse accepts whole seconds", func(t *testing.T) {
		parsed, err := ParseTimestamp("2025-03-14T09:26:53Z")

		require.NoError(t, err)
		assert.Equal(t, 0, parsed.Nanosecond())
	})

	t.Run("parse rejects offsets and junk", func(t *testing.T) {
		for _, input := range []string{
			"2025-03-14T09:26:53+02:00",
			"2025-03-14 09:26:53Z",
			"2025-03-14",
			"not-a-time",
		} {
			_, err := ParseTimestamp(input)

			assert.Error(t, err, "input %q", input)
		}
	})
}
