package tracker

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new BugTracker instance.
type Factory func() BugTracker

// Registry manages registered tracker backends. Backends register
// themselves at init time and the host looks them up by name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Factory
}

var globalRegistry = &Registry{
	backends: make(map[string]Factory),
}

// Register adds a backend factory to the global registry. Typically
// called from backend init() functions. The name should be lowercase.
func Register(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// List returns the names of all registered backends.
func List() []string {
	return globalRegistry.List()
}

// New creates a new instance of the named backend.
// Returns an error if no backend with that name is registered.
func New(name string) (BugTracker, error) {
	return globalRegistry.New(name)
}

// IsRegistered checks if a backend with the given name is registered
// in the global registry.
func IsRegistered(name string) bool {
	return globalRegistry.IsRegistered(name)
}

// Register adds a backend factory to this registry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = factory
}

// List returns the names of all registered backends, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a new instance of the named backend.
func (r *Registry) New(name string) (BugTracker, error) {
	r.mu.RLock()
	factory := r.backends[name]
	r.mu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("unknown tracker %q (available: %v)", name, r.List())
	}
	return factory(), nil
}

// IsRegistered checks if a backend with the given name is registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.backends[name]
	return ok
}

// Clear removes all registered backends. Used primarily for testing.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends = make(map[string]Factory)
}
