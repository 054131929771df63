// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"runtime"
	"sort"
	"sync"
)

// Options carries the parameters a backend needs to build a surface.
type Options struct {
	Width  int
	Height int

	// Pool is the factory's worker pool. It is nil unless the factory
	// selected a backend that draws in parallel.
	Pool *WorkerPool
}

// BackendFactory creates a new Surface with the given options.
type BackendFactory func(opts Options) (Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 100: offscreen (parallel)
	//   - 10: standard
	Priority int

	// Factory creates surface instances.
	Factory BackendFactory

	// Available reports if the backend is usable on this system.
	Available func() bool

	// Parallel reports whether the backend draws through Options.Pool.
	Parallel bool
}

// Registry manages registered surface backends.
//
// A Factory consults its registry once, at construction, to pick the
// preferred available backend.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// NewDefaultRegistry creates a registry holding the offscreen and standard
// backends. Offscreen is available when more than one CPU can run Go code.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.register(&RegistryEntry{
		Name:     string(KindOffscreen),
		Priority: 100,
		Factory: func(opts Options) (Surface, error) {
			return NewOffscreenSurface(opts.Width, opts.Height, opts.Pool)
		},
		Available: func() bool { return runtime.GOMAXPROCS(0) > 1 },
		Parallel:  true,
	})
	r.register(&RegistryEntry{
		Name:     string(KindStandard),
		Priority: 10,
		Factory: func(opts Options) (Surface, error) {
			return NewStandardSurface(opts.Width, opts.Height)
		},
		Available: func() bool { return true },
	})
	return r
}

// Register adds a backend to this registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func (r *Registry) Register(name string, priority int, factory BackendFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.register(&RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	})
}

func (r *Registry) register(e *RegistryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	r.entries[e.Name] = e
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// NewSurface creates a surface using the best available backend,
// trying lower priorities when a backend fails.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewSurfaceByName creates a surface using a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
