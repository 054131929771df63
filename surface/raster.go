// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"io"

	"github.com/gogpu/imgkit/codec"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// rasterizer is the drawing primitive a Context drives. Implementations
// resample src into their backing store under s2d (source to device).
type rasterizer interface {
	transform(src image.Image, s2d f64.Aff3, interp draw.Transformer)
}

// raster is the pixel storage shared by both surface kinds.
type raster struct {
	width  int
	height int
	img    *image.RGBA
	closed bool
}

func newRaster(width, height int) raster {
	return raster{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the surface width.
func (r *raster) Width() int {
	return r.width
}

// Height returns the surface height.
func (r *raster) Height() int {
	return r.height
}

// Snapshot returns a copy of the current surface contents.
// Returns nil after Close.
func (r *raster) Snapshot() *image.RGBA {
	if r.closed {
		return nil
	}

	result := image.NewRGBA(r.img.Rect)
	copy(result.Pix, r.img.Pix)
	return result
}

// Encode writes the surface contents with enc at the given quality.
func (r *raster) Encode(w io.Writer, enc codec.Encoder, quality float64) error {
	if r.closed {
		return ErrClosed
	}
	return enc.Encode(w, r.img, quality)
}

// Close releases the pixel buffer. Close is idempotent.
func (r *raster) Close() error {
	r.closed = true
	r.img = nil
	return nil
}
