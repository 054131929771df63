// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"io"

	"github.com/gogpu/imgkit/codec"
)

// Kind identifies a surface implementation.
type Kind string

// Surface kinds.
const (
	// KindOffscreen rasterizes across a worker pool.
	KindOffscreen Kind = "offscreen"

	// KindStandard rasterizes on the calling goroutine.
	KindStandard Kind = "standard"
)

// Surface is a writable raster target of fixed pixel dimensions.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine for the duration of one manipulation call.
type Surface interface {
	// Kind reports which implementation backs the surface.
	Kind() Kind

	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Context returns the 2D drawing context bound to the surface, or nil
	// when the surface cannot provide one.
	Context() *Context

	// Snapshot returns a copy of the surface contents.
	Snapshot() *image.RGBA

	// Encode serializes the surface contents with enc.
	Encode(w io.Writer, enc codec.Encoder, quality float64) error

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}
