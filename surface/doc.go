// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the call-scoped drawing surfaces used by imgkit.
//
// A Surface is a writable RGBA raster of fixed size together with a 2D
// [Context] that exposes the canvas-style transform and draw operations:
// Translate, Scale, Rotate and DrawImage. Pixels are stored premultiplied,
// matching an HTML canvas backing store.
//
// # Surface kinds
//
// Two kinds share the same capability set:
//
//   - OffscreenSurface: rasterizes draws in horizontal strips across a
//     goroutine [WorkerPool]. Preferred whenever more than one CPU is usable.
//   - StandardSurface: rasterizes on the calling goroutine. Always available.
//
// The kind is chosen once, when a [Factory] is constructed, from the
// highest-priority available backend in its [Registry]. Callers only see the
// Surface and Context interfaces.
//
// # Usage
//
//	f, err := surface.NewFactory()
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	s, dc, err := f.New(800, 600)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	dc.Translate(400, 300)
//	dc.Rotate(math.Pi / 4)
//	dc.DrawImage(img, -float64(w)/2, -float64(h)/2)
//
//	err = s.Encode(out, encoder, 0.9)
//
// # Third-party backends
//
// Backends can be added to a registry and forced by name:
//
//	r := surface.NewDefaultRegistry()
//	r.Register("tracing", 200, tracingFactory, nil)
//	f, _ := surface.NewFactory(surface.WithRegistry(r))
package surface
