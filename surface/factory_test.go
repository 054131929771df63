// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"io"
	"math"
	"runtime"
	"testing"

	"github.com/gogpu/imgkit/codec"
)

// contextlessSurface never provides a drawing context.
type contextlessSurface struct {
	closed bool
}

func (s *contextlessSurface) Kind() Kind            { return "contextless" }
func (s *contextlessSurface) Width() int            { return 1 }
func (s *contextlessSurface) Height() int           { return 1 }
func (s *contextlessSurface) Context() *Context     { return nil }
func (s *contextlessSurface) Snapshot() *image.RGBA { return nil }
func (s *contextlessSurface) Close() error          { s.closed = true; return nil }
func (s *contextlessSurface) Encode(io.Writer, codec.Encoder, float64) error {
	return ErrClosed
}

func TestNewFactoryPrefersOffscreen(t *testing.T) {
	if runtime.GOMAXPROCS(0) < 2 {
		t.Skip("offscreen backend needs GOMAXPROCS > 1")
	}

	f, err := NewFactory()
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	defer f.Close()

	if f.Backend() != "offscreen" {
		t.Errorf("Backend() = %s, want offscreen", f.Backend())
	}

	s, _, err := f.New(10, 10)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()
	if s.Kind() != KindOffscreen {
		t.Errorf("Kind() = %s, want %s", s.Kind(), KindOffscreen)
	}
}

func TestNewFactoryFallsBackToStandard(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unregister("offscreen")

	f, err := NewFactory(WithRegistry(r))
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	defer f.Close()

	if f.Backend() != "standard" {
		t.Errorf("Backend() = %s, want standard", f.Backend())
	}
	if f.pool != nil {
		t.Error("standard backend should not start a worker pool")
	}
}

func TestNewFactoryUnknownBackend(t *testing.T) {
	_, err := NewFactory(WithBackend("vulkan"))

	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("NewFactory(vulkan) error = %v, want BackendNotFoundError", err)
	}
}

func TestNewFactoryEmptyRegistry(t *testing.T) {
	_, err := NewFactory(WithRegistry(NewRegistry()))
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("NewFactory(empty) error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestFactoryNewInvalidDimensions(t *testing.T) {
	f, err := NewFactory(WithBackend("standard"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		w, h int
	}{
		{0, 100},
		{100, 0},
		{-1, 10},
		{0, 0},
		{1 << 20, 1 << 20},
		{MaxPixels + 1, 1},
		{math.MaxInt, 2},
	}
	for _, tt := range tests {
		_, _, err := f.New(tt.w, tt.h)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
		}
		var ide *InvalidDimensionsError
		if errors.As(err, &ide) && (ide.Width != tt.w || ide.Height != tt.h) {
			t.Errorf("InvalidDimensionsError = %dx%d, want %dx%d", ide.Width, ide.Height, tt.w, tt.h)
		}
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"one pixel", 1, 1, false},
		{"at limit", MaxPixels / 2, 2, false},
		{"one row over limit", MaxPixels/2 + 1, 2, true},
		{"overflowing product", math.MaxInt / 2, 4, true},
		{"negative", 10, -10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%d, %d) = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("ValidateSize(%d, %d) = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
			}
		})
	}
}

func TestFactoryDrawingContextUnavailable(t *testing.T) {
	stub := &contextlessSurface{}
	r := NewRegistry()
	r.Register("contextless", 10, func(Options) (Surface, error) { return stub, nil }, nil)

	f, err := NewFactory(WithRegistry(r))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _, err = f.New(1, 1)
	if !errors.Is(err, ErrDrawingContextUnavailable) {
		t.Errorf("New() error = %v, want ErrDrawingContextUnavailable", err)
	}
	if !stub.closed {
		t.Error("surface without context should be closed")
	}
}

func TestFactoryNewFallsBackWhenBackendFails(t *testing.T) {
	r := NewRegistry()
	r.Register("flaky", 100, func(Options) (Surface, error) {
		return nil, errors.New("out of buffers")
	}, nil)
	r.Register(string(KindStandard), 10, standardFactory, nil)

	f, err := NewFactory(WithRegistry(r))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if f.Backend() != "flaky" {
		t.Fatalf("Backend() = %s, want flaky", f.Backend())
	}

	s, dc, err := f.New(4, 4)
	if err != nil {
		t.Fatalf("New() error = %v, want fallback surface", err)
	}
	defer s.Close()

	if s.Kind() != KindStandard {
		t.Errorf("Kind() = %s, want %s", s.Kind(), KindStandard)
	}
	dc.DrawImage(solid(4, 4, red), 0, 0)
	if got := s.Snapshot().RGBAAt(1, 1); got != red {
		t.Errorf("pixel = %v, want %v", got, red)
	}
}

func TestFactoryNewAllBackendsFail(t *testing.T) {
	r := NewRegistry()
	r.Register("flaky", 100, func(Options) (Surface, error) {
		return nil, errors.New("out of buffers")
	}, nil)

	f, err := NewFactory(WithRegistry(r))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, _, err := f.New(4, 4); err == nil {
		t.Error("New() should fail when every backend fails")
	}
}

func TestFactoryClosedPoolStillDraws(t *testing.T) {
	f, err := NewFactory(WithBackend("offscreen"), WithWorkers(2))
	if err != nil {
		// Unavailable on single-CPU machines.
		t.Skip(err)
	}
	_ = f.Close()

	s, dc, err := f.New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	dc.DrawImage(solid(4, 4, red), 0, 0)
	if got := s.Snapshot().RGBAAt(2, 2); got != red {
		t.Errorf("pixel = %v, want %v", got, red)
	}
}
