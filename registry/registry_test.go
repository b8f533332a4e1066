package registry

import (
	"sync"
	"testing"

	"github.com/ekhoe-pll/pll-contracts/contracts"
	"github.com/ekhoe-pll/pll-contracts/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	t.Run("registers and retrieves a contract", func(t *testing.T) {
		r := NewRegistry()

		require.NoError(t, r.Register(event("order-created", "1.0.0")))

		got, err := r.Get("order-created", semver.MustParse("1.0.0"))
		require.NoError(t, err)
		assert.Equal(t, "order-created", got.GetID())
	})

	t.Run("rejects nil and empty ids", func(t *testing.T) {
		r := NewRegistry()

		assert.Error(t, r.Register(nil))

		c := event("x", "1.0.0")
		c.ID = ""
		assert.Error(t, r.Register(c))
	})

	t.Run("rejects duplicate id and version", func(t *testing.T) {
		r := NewRegistry()

		require.NoError(t, r.Register(event("x", "1.0.0")))
		err := r.Register(event("x", "1.0.0"))

		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("build-only version differences are duplicates", func(t *testing.T) {
		r := NewRegistry()

		require.NoError(t, r.Register(event("x", "1.0.0+a")))
		err := r.Register(event("x", "1.0.0+b"))

		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("stores a clone, not the caller's value", func(t *testing.T) {
		r := NewRegistry()
		c := contracts.NewEventContract("x", "X", semver.MustParse("1.0.0"), "x.happened",
			map[string]interface{}{"field": "string"})

		require.NoError(t, r.Register(c))
		c.Payload["field"] = "mutated"

		got, err := r.Get("x", semver.MustParse("1.0.0"))
		require.NoError(t, err)
		assert.Equal(t, "string", got.(contracts.EventContract).Payload["field"])
	})
}

func TestRegistryGetLatest(t *testing.T) {
	t.Run("Latest picks the highest version", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(event("x", "1.0.0")))
		require.NoError(t, r.Register(event("x", "1.2.0")))
		require.NoError(t, r.Register(event("x", "2.0.0-rc.1")))
		require.NoError(t, r.Register(event("y", "9.0.0")))

		latest, err := r.Latest("x")

		require.NoError(t, err)
		assert.Equal(t, "2.0.0-rc.1", latest.GetVersion().String())
	})

	t.Run("missing id yields ErrNotFound", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Latest("ghost")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = r.Get("ghost", semver.MustParse("1.0.0"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRegistryUnregister(t *testing.T) {
	t.Run("removes a single revision", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(event("x", "1.0.0")))
		require.NoError(t, r.Register(event("x", "1.1.0")))

		require.NoError(t, r.Unregister("x", semver.MustParse("1.1.0")))

		latest, err := r.Latest("x")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", latest.GetVersion().String())
	})

	t.Run("unknown revision yields ErrNotFound", func(t *testing.T) {
		r := NewRegistry()

		err := r.Unregister("x", semver.MustParse("1.0.0"))

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRegistryListing(t *testing.T) {
	newPopulated := func(t *testing.T) *Registry {
		t.Helper()
		r := NewRegistry()
		require.NoError(t, r.Register(event("order-created", "1.0.0", "public")))
		require.NoError(t, r.Register(event("order-created", "1.1.0", "public")))
		require.NoError(t, r.Register(event("order-shipped", "2.0.0", "internal")))
		require.NoError(t, r.Register(event("user-created", "1.0.0", "public")))
		return r
	}

	t.Run("List orders by id then version descending", func(t *testing.T) {
		r := newPopulated(t)

		listed := r.List()

		require.Len(t, listed, 4)
		assert.Equal(t, "order-created", listed[0].GetID())
		assert.Equal(t, "1.1.0", listed[0].GetVersion().String())
		assert.Equal(t, "1.0.0", listed[1].GetVersion().String())
		assert.Equal(t, "order-shipped", listed[2].GetID())
		assert.Equal(t, "user-created", listed[3].GetID())
	})

	t.Run("ListByTag filters on metadata tags", func(t *testing.T) {
		r := newPopulated(t)

		internal := r.ListByTag("internal")

		require.Len(t, internal, 1)
		assert.Equal(t, "order-shipped", internal[0].GetID())
	})

	t.Run("Discover combines id pattern and version constraint", func(t *testing.T) {
		r := newPopulated(t)

		matches := r.Discover("order.*", "1.x")

		require.Len(t, matches, 2)
		assert.Equal(t, "1.1.0", matches[0].GetVersion().String())
		assert.Equal(t, "1.0.0", matches[1].GetVersion().String())

		matches = r.Discover("", "^2.0.0")
		require.Len(t, matches, 1)
		assert.Equal(t, "order-shipped", matches[0].GetID())
	})

	t.Run("Len counts revisions", func(t *testing.T) {
		assert.Equal(t, 4, newPopulated(t).Len())
	})
}

func TestRegistryAnnouncements(t *testing.T) {
	t.Run("register and unregister announce", func(t *testing.T) {
		var got []Announcement
		r := NewRegistry(WithAnnouncements(func(a Announcement) {
			got = append(got, a)
		}))

		require.NoError(t, r.Register(event("x", "1.0.0")))
		require.NoError(t, r.Unregister("x", semver.MustParse("1.0.0")))

		require.Len(t, got, 2)
		assert.Equal(t, ActionRegistered, got[0].Action)
		assert.Equal(t, ActionUnregistered, got[1].Action)
		assert.Equal(t, "x", got[0].ContractID)
		assert.NotEmpty(t, got[0].ID)
		assert.NotEqual(t, got[0].ID, got[1].ID)
		assert.Equal(t, contracts.KindEvent, got[0].Kind)
	})

	t.Run("failed register does not announce", func(t *testing.T) {
		count := 0
		r := NewRegistry(WithAnnouncements(func(Announcement) { count++ }))

		require.NoError(t, r.Register(event("x", "1.0.0")))
		_ = r.Register(event("x", "1.0.0"))

		assert.Equal(t, 1, count)
	})
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Run("parallel registers and reads are safe", func(t *testing.T) {
		r := NewRegistry()
		versions := []string{"1.0.0", "1.1.0", "1.2.0", "2.0.0", "2.1.0"}

		var wg sync.WaitGroup
		for _, v := range versions {
			wg.Add(1)
			go func(version string) {
				defer wg.Done()
				assert.NoError(t, r.Register(event("x", version)))
			}(v)
		}
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.List()
				_, _ = r.Latest("x")
			}()
		}
		wg.Wait()

		assert.Equal(t, len(versions), r.Len())

		latest, err := r.Latest("x")
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", latest.GetVersion().String())
	})
}
