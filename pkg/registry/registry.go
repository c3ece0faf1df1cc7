// Package registry is a small thread-safe store of string-keyed metadata.
package registry

import (
	"sort"
	"sync"
)

// Meta represents generic metadata that can be associated with any entity
type Meta struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Active   bool              `json:"active"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Registry is a thread-safe registry of Meta keyed by ID
type Registry struct {
	entities map[string]Meta
	mu       sync.RWMutex
}

// New creates a new empty registry
func New() *Registry {
	return &Registry{
		entities: make(map[string]Meta),
	}
}

// Register adds or updates an entity in the registry
func (r *Registry) Register(id string, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meta.ID = id
	r.entities[id] = meta
}

// Lookup returns the entity registered under id
func (r *Registry) Lookup(id string) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.entities[id]
	return meta, ok
}

// Get returns entity metadata for the given ID.
// Returns an inactive Meta carrying only the ID if the entity is not found.
func (r *Registry) Get(id string) Meta {
	if meta, ok := r.Lookup(id); ok {
		return meta
	}
	return Meta{ID: id, Active: false}
}

// IsRegistered checks if an entity ID is registered
func (r *Registry) IsRegistered(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// ListRegistered returns all registered IDs, sorted
func (r *Registry) ListRegistered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entities))
	for id := range r.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListActive returns all active IDs, sorted
func (r *Registry) ListActive() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entities))
	for id, meta := range r.entities {
		if meta.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Unregister removes an entity from the registry
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[id]; exists {
		delete(r.entities, id)
		return true
	}
	return false
}

// Count returns the total number of registered entities
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}
