// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "fmt"

// FactoryOption configures a Factory during creation.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	registry *Registry
	backend  string
	workers  int
}

// WithRegistry sets the backend registry. Defaults to NewDefaultRegistry().
func WithRegistry(r *Registry) FactoryOption {
	return func(o *factoryOptions) {
		o.registry = r
	}
}

// WithBackend forces a named backend instead of the best available one.
//
// Example:
//
//	f, err := surface.NewFactory(surface.WithBackend("standard"))
func WithBackend(name string) FactoryOption {
	return func(o *factoryOptions) {
		o.backend = name
	}
}

// WithWorkers sets the worker count for parallel backends.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) FactoryOption {
	return func(o *factoryOptions) {
		o.workers = n
	}
}

// Factory creates surfaces of one backend kind, chosen at construction.
//
// Factory is safe for concurrent use; every call to New returns an
// independent surface.
type Factory struct {
	registry *Registry
	backend  string
	pool     *WorkerPool
}

// NewFactory selects a backend and returns a factory for it.
// Without WithBackend the highest-priority available backend is used.
func NewFactory(opts ...FactoryOption) (*Factory, error) {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewDefaultRegistry()
	}

	name := o.backend
	if name == "" {
		available := o.registry.Available()
		if len(available) == 0 {
			return nil, ErrNoBackendAvailable
		}
		name = available[0]
	}

	entry, ok := o.registry.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	f := &Factory{
		registry: o.registry,
		backend:  name,
	}
	if entry.Parallel {
		f.pool = NewWorkerPool(o.workers)
	}

	logger().Debug("surface: backend selected", "backend", name, "parallel", entry.Parallel)
	return f, nil
}

// Backend returns the name of the selected backend.
func (f *Factory) Backend() string {
	return f.backend
}

// New creates a surface of the given size and returns it with its drawing
// context. The caller owns the surface and must Close it.
//
// Returns an *InvalidDimensionsError for non-positive sizes and
// ErrDrawingContextUnavailable if the backend cannot provide a context.
func (f *Factory) New(width, height int) (Surface, *Context, error) {
	if err := ValidateSize(width, height); err != nil {
		return nil, nil, err
	}

	opts := Options{
		Width:  width,
		Height: height,
		Pool:   f.pool,
	}
	s, err := f.registry.NewSurfaceByName(f.backend, opts)
	if err != nil {
		logger().Warn("surface: backend failed, falling back", "backend", f.backend, "error", err)

		var fallbackErr error
		s, fallbackErr = f.registry.NewSurface(opts)
		if fallbackErr != nil {
			return nil, nil, fmt.Errorf("surface: create %s surface: %w", f.backend, err)
		}
	}

	dc := s.Context()
	if dc == nil {
		_ = s.Close()
		return nil, nil, ErrDrawingContextUnavailable
	}

	logger().Debug("surface: created", "backend", f.backend, "width", width, "height", height)
	return s, dc, nil
}

// Close stops the worker pool of parallel backends.
// Surfaces created afterwards draw on the calling goroutine.
func (f *Factory) Close() error {
	if f.pool != nil {
		f.pool.Close()
	}
	return nil
}
