package schema

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
)

// Registry maps keys to schemas. Registration normally happens once while the
// client is built; afterwards the registry is only read. It is safe for
// concurrent use, but Clear must not race with in-flight calls that rely on
// the registered schemas.
type Registry struct {
	mu      sync.RWMutex
	entries map[Key]Schema
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report overwritten entries.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[Key]Schema)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores the entry under its normalized key. An existing entry with
// the same key is replaced; the last registration wins.
func (r *Registry) Register(e Entry) {
	key := e.Key.Normalize()
	r.mu.Lock()
	_, replaced := r.entries[key]
	r.entries[key] = e.Schema
	r.mu.Unlock()

	if replaced && r.logger != nil {
		r.logger.Debug("schema replaced", "key", key.String())
	}
}

// Get returns the schema registered under exactly this key.
func (r *Registry) Get(key Key) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.entries[key.Normalize()]
	return s, ok
}

// Clear removes every entry. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Key]Schema)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns all registered keys ordered by operation, kind, variant and status.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(
			cmp.Compare(a.OperationID, b.OperationID),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Variant, b.Variant),
			cmp.Compare(a.Status, b.Status),
		)
	})
	return keys
}
