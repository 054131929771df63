// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// stripsPerWorker controls how finely a draw is split; more strips than
// workers keeps the pool busy when strips cost different amounts.
const stripsPerWorker = 2

// OffscreenSurface rasterizes draws in horizontal strips on a WorkerPool.
//
// Every destination pixel is resampled independently, so axis-aligned
// draws match StandardSurface exactly. Under other rotations each strip
// recomputes its sampling bias and a channel may differ by one.
type OffscreenSurface struct {
	raster
	pool *WorkerPool
	ctx  *Context
}

// NewOffscreenSurface creates an offscreen surface drawing through pool.
func NewOffscreenSurface(width, height int, pool *WorkerPool) (*OffscreenSurface, error) {
	if err := ValidateSize(width, height); err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, errors.New("surface: offscreen surface requires a worker pool")
	}

	s := &OffscreenSurface{
		raster: newRaster(width, height),
		pool:   pool,
	}
	s.ctx = newContext(width, height, s)
	return s, nil
}

// Kind returns KindOffscreen.
func (s *OffscreenSurface) Kind() Kind {
	return KindOffscreen
}

// Context returns the drawing context, or nil after Close.
func (s *OffscreenSurface) Context() *Context {
	if s.closed {
		return nil
	}
	return s.ctx
}

func (s *OffscreenSurface) transform(src image.Image, s2d f64.Aff3, interp draw.Transformer) {
	if s.closed {
		return
	}

	strips := min(s.pool.Workers()*stripsPerWorker, s.height)
	rows := (s.height + strips - 1) / strips
	sr := src.Bounds()

	work := make([]func(), 0, strips)
	for y0 := 0; y0 < s.height; y0 += rows {
		y1 := min(y0+rows, s.height)
		dst := s.img.SubImage(image.Rect(0, y0, s.width, y1)).(*image.RGBA)
		work = append(work, func() {
			interp.Transform(dst, s2d, src, sr, draw.Over, nil)
		})
	}

	s.pool.ExecuteAll(work)
}

var (
	_ Surface    = (*OffscreenSurface)(nil)
	_ rasterizer = (*OffscreenSurface)(nil)
)
