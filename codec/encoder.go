// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"image"
	"io"
	"math"
	"sort"
	"sync"
)

// DefaultLossyQuality is used when a lossy encoder receives a quality
// outside [0, 1].
const DefaultLossyQuality = 0.92

// Encoder encodes an image into one output format.
type Encoder interface {
	// Format returns the output format produced by this encoder.
	Format() Format

	// Encode writes img to w. Quality is in [0, 1]; lossless encoders
	// ignore it.
	Encode(w io.Writer, img image.Image, quality float64) error

	// Available reports whether the encoder can run on this system.
	Available() bool
}

// Registry maps output formats to encoders.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Format]Encoder
}

// NewRegistry creates a registry with the bundled PNG, JPEG and WebP
// encoders.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register(NewPNGEncoder())
	r.Register(NewJPEGEncoder())
	r.Register(NewWebPEncoder())
	return r
}

// NewEmptyRegistry creates a registry with no encoders.
func NewEmptyRegistry() *Registry {
	return &Registry{encoders: make(map[Format]Encoder)}
}

// Register adds an encoder, replacing any encoder for the same format.
func (r *Registry) Register(enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.encoders == nil {
		r.encoders = make(map[Format]Encoder)
	}
	r.encoders[enc.Format()] = enc
}

// Unregister removes the encoder for f.
func (r *Registry) Unregister(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.encoders, f)
}

// Lookup returns the encoder for f.
// Returns an *UnsupportedFormatError if f is unknown, has no encoder, or
// its encoder is unavailable.
func (r *Registry) Lookup(f Format) (Encoder, error) {
	if !f.Known() {
		return nil, &UnsupportedFormatError{Format: f}
	}

	r.mu.RLock()
	enc, ok := r.encoders[f]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnsupportedFormatError{Format: f, Reason: "no encoder registered"}
	}
	if !enc.Available() {
		return nil, &UnsupportedFormatError{Format: f, Reason: "encoder unavailable"}
	}
	return enc, nil
}

// Supported returns the formats with an available encoder, sorted.
func (r *Registry) Supported() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.encoders))
	for f, enc := range r.encoders {
		if enc.Available() {
			formats = append(formats, f)
		}
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// NormalizeQuality returns q, or DefaultLossyQuality when q is outside
// [0, 1] or NaN.
func NormalizeQuality(q float64) float64 {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return DefaultLossyQuality
	}
	return q
}

// percent converts a [0, 1] quality to the 1..100 scale used by most
// encoders.
func percent(q float64) int {
	p := int(math.Round(NormalizeQuality(q) * 100))
	if p < 1 {
		p = 1
	}
	if p > 100 {
		p = 100
	}
	return p
}
