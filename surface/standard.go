// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// StandardSurface rasterizes every draw on the calling goroutine.
type StandardSurface struct {
	raster
	ctx *Context
}

// NewStandardSurface creates a standard surface.
// Returns an *InvalidDimensionsError for non-positive sizes.
func NewStandardSurface(width, height int) (*StandardSurface, error) {
	if err := ValidateSize(width, height); err != nil {
		return nil, err
	}

	s := &StandardSurface{raster: newRaster(width, height)}
	s.ctx = newContext(width, height, s)
	return s, nil
}

// Kind returns KindStandard.
func (s *StandardSurface) Kind() Kind {
	return KindStandard
}

// Context returns the drawing context, or nil after Close.
func (s *StandardSurface) Context() *Context {
	if s.closed {
		return nil
	}
	return s.ctx
}

func (s *StandardSurface) transform(src image.Image, s2d f64.Aff3, interp draw.Transformer) {
	if s.closed {
		return
	}
	interp.Transform(s.img, s2d, src, src.Bounds(), draw.Over, nil)
}

var (
	_ Surface    = (*StandardSurface)(nil)
	_ rasterizer = (*StandardSurface)(nil)
)
