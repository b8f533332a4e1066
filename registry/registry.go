package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekhoe-pll/pll-contracts/contracts"
	"github.com/ekhoe-pll/pll-contracts/semver"
)

var (
	// ErrNotFound is returned when no contract matches the requested id or
	// id+version pair.
	ErrNotFound = errors.New("contract not found")
	// ErrDuplicate is returned when a contract with the same id and version
	// is already registered.
	ErrDuplicate = errors.New("contract already registered")
)

// Action discriminates registry announcements.
type Action string

const (
	ActionRegistered   Action = "registered"
	ActionUnregistered Action = "unregistered"
)

// Announcement describes one registry change. Announcements are delivered
// synchronously to the configured listener.
type Announcement struct {
	ID         string         `json:"id"`
	Action     Action         `json:"action"`
	ContractID string         `json:"contractId"`
	Version    semver.Version `json:"version"`
	Kind       contracts.Kind `json:"kind"`
	Timestamp  time.Time      `json:"timestamp"`
}

// AnnouncementFunc receives registry change announcements.
type AnnouncementFunc func(Announcement)

// Registry is an in-memory, mutex-guarded contract store. Contracts are
// cloned on registration and on every read, so no caller ever holds a
// reference into the store.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string][]contracts.Contract
	logger   *slog.Logger
	announce AnnouncementFunc
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithAnnouncements sets a listener invoked on every register and unregister.
// The listener runs synchronously under no lock; it must not call back into
// the registry's write methods from another goroutine it blocks on.
func WithAnnouncements(fn AnnouncementFunc) Option {
	return func(r *Registry) {
		r.announce = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[string][]contracts.Contract),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores a clone of the contract. A contract with the same id and
// an ordering-equal version (build metadata ignored) is rejected with
// ErrDuplicate.
func (r *Registry) Register(c contracts.Contract) error {
	if c == nil {
		return fmt.Errorf("contract cannot be nil")
	}
	id := c.GetID()
	if id == "" {
		return fmt.Errorf("contract id cannot be empty")
	}

	r.mu.Lock()
	for _, existing := range r.byID[id] {
		if existing.GetVersion().Equal(c.GetVersion()) {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s@%s", ErrDuplicate, id, c.GetVersion())
		}
	}
	r.byID[id] = append(r.byID[id], c.Clone())
	r.mu.Unlock()

	r.logger.Debug("contract registered",
		"contractId", id,
		"version", c.GetVersion().String(),
		"kind", string(c.Kind()))
	r.publish(ActionRegistered, c)
	return nil
}

// Unregister removes the contract with the given id and version.
func (r *Registry) Unregister(id string, version semver.Version) error {
	r.mu.Lock()
	revisions := r.byID[id]
	idx := -1
	for i, existing := range revisions {
		if existing.GetVersion().Equal(version) {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s@%s", ErrNotFound, id, version)
	}
	removed := revisions[idx]
	revisions = append(revisions[:idx], revisions[idx+1:]...)
	if len(revisions) == 0 {
		delete(r.byID, id)
	} else {
		r.byID[id] = revisions
	}
	r.mu.Unlock()

	r.logger.Debug("contract unregistered", "contractId", id, "version", version.String())
	r.publish(ActionUnregistered, removed)
	return nil
}

// Get returns a clone of the contract with the given id and version.
func (r *Registry) Get(id string, version semver.Version) (contracts.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.byID[id] {
		if existing.GetVersion().Equal(version) {
			return existing.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, id, version)
}

// Latest returns a clone of the highest-version contract with the given id.
func (r *Registry) Latest(id string) (contracts.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest, ok := FindLatest(r.byID[id], id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return latest.Clone(), nil
}

// List returns clones of every registered contract, ordered by id and then
// by descending version.
func (r *Registry) List() []contracts.Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(contracts.Contract) bool { return true })
}

// ListByTag returns clones of the contracts carrying the tag, ordered by id
// and then by descending version.
func (r *Registry) ListByTag(tag string) []contracts.Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c contracts.Contract) bool {
		return c.GetMetadata().HasTag(tag)
	})
}

// Discover returns clones of the contracts whose id matches the pattern and
// whose version satisfies the constraint (see MatchID and MatchVersion).
// Empty pattern or constraint match everything.
func (r *Registry) Discover(idPattern, versionConstraint string) []contracts.Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c contracts.Contract) bool {
		return MatchID(c.GetID(), idPattern) && MatchVersion(c.GetVersion(), versionConstraint)
	})
}

// Len returns the number of registered contract revisions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, revisions := range r.byID {
		n += len(revisions)
	}
	return n
}

// collect gathers clones of matching contracts in deterministic order.
// Callers must hold at least the read lock.
func (r *Registry) collect(match func(contracts.Contract) bool) []contracts.Contract {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]contracts.Contract, 0)
	for _, id := range ids {
		for _, c := range SortByVersionDescending(r.byID[id]) {
			if match(c) {
				out = append(out, c.Clone())
			}
		}
	}
	return out
}

func (r *Registry) publish(action Action, c contracts.Contract) {
	if r.announce == nil {
		return
	}
	r.announce(Announcement{
		ID:         uuid.New().String(),
		Action:     action,
		ContractID: c.GetID(),
		Version:    c.GetVersion(),
		Kind:       c.Kind(),
		Timestamp:  contracts.Now(),
	})
}
