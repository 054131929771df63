// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/imgkit/codec"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// halves returns a w x h image whose left half is red and right half blue.
func halves(w, h int) *image.RGBA {
	img := solid(w, h, red)
	for y := range h {
		for x := w / 2; x < w; x++ {
			img.SetRGBA(x, y, blue)
		}
	}
	return img
}

// gradient returns an opaque image with distinct pixels.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) % 256), 255})
		}
	}
	return img
}

func newSurfaces(t *testing.T, w, h int) map[Kind]Surface {
	t.Helper()

	std, err := NewStandardSurface(w, h)
	if err != nil {
		t.Fatal(err)
	}
	pool := NewWorkerPool(3)
	t.Cleanup(pool.Close)
	off, err := NewOffscreenSurface(w, h, pool)
	if err != nil {
		t.Fatal(err)
	}
	return map[Kind]Surface{KindStandard: std, KindOffscreen: off}
}

func TestContextTransformStack(t *testing.T) {
	s, _ := NewStandardSurface(10, 10)
	dc := s.Context()

	dc.Translate(5, 5)
	dc.Push()
	dc.Rotate(math.Pi)
	dc.Scale(2, 2)
	dc.Pop()

	if got := dc.GetTransform(); got != Translate(5, 5) {
		t.Errorf("GetTransform() after Pop = %+v, want translate(5, 5)", got)
	}

	dc.Pop() // unmatched, no-op
	dc.Identity()
	if !dc.GetTransform().IsIdentity() {
		t.Error("Identity() should reset the matrix")
	}
}

func TestContextTransformPoint(t *testing.T) {
	s, _ := NewStandardSurface(100, 50)
	dc := s.Context()

	dc.Translate(50, 25)
	dc.Scale(-1, 1)

	x, y := dc.TransformPoint(10, 5)
	if x != 40 || y != 30 {
		t.Errorf("TransformPoint(10, 5) = (%v, %v), want (40, 30)", x, y)
	}
}

func TestContextRotateAbout(t *testing.T) {
	s, _ := NewStandardSurface(10, 10)
	dc := s.Context()

	dc.RotateAbout(math.Pi, 5, 5)
	x, y := dc.TransformPoint(0, 0)
	if math.Abs(x-10) > eps || math.Abs(y-10) > eps {
		t.Errorf("TransformPoint(0, 0) = (%v, %v), want (10, 10)", x, y)
	}
}

func TestDrawImageIdentity(t *testing.T) {
	src := gradient(8, 6)
	for kind, s := range newSurfaces(t, 8, 6) {
		t.Run(string(kind), func(t *testing.T) {
			defer s.Close()
			s.Context().DrawImage(src, 0, 0)

			if got := s.Snapshot(); !bytes.Equal(got.Pix, src.Pix) {
				t.Error("identity draw does not reproduce the source")
			}
		})
	}
}

func TestDrawImageFlipAboutCenter(t *testing.T) {
	src := halves(4, 2)
	for kind, s := range newSurfaces(t, 4, 2) {
		t.Run(string(kind), func(t *testing.T) {
			defer s.Close()
			dc := s.Context()
			dc.Translate(2, 1)
			dc.Scale(-1, 1)
			dc.DrawImage(src, -2, -1)

			got := s.Snapshot()
			if c := got.RGBAAt(0, 0); c != blue {
				t.Errorf("left pixel = %v, want blue", c)
			}
			if c := got.RGBAAt(3, 1); c != red {
				t.Errorf("right pixel = %v, want red", c)
			}
		})
	}
}

func TestDrawImageCentersSmallerImage(t *testing.T) {
	for kind, s := range newSurfaces(t, 6, 6) {
		t.Run(string(kind), func(t *testing.T) {
			defer s.Close()
			dc := s.Context()
			dc.Translate(3, 3)
			dc.DrawImage(solid(2, 2, red), -1, -1)

			got := s.Snapshot()
			if c := got.RGBAAt(2, 2); c != red {
				t.Errorf("center pixel = %v, want red", c)
			}
			if c := got.RGBAAt(0, 0); c.A != 0 {
				t.Errorf("corner pixel = %v, want transparent", c)
			}
		})
	}
}

func TestDrawImageHonoursSourceOrigin(t *testing.T) {
	full := halves(4, 2)
	// The right half starts at x=2 in the source coordinate space.
	sub := full.SubImage(image.Rect(2, 0, 4, 2))

	s, _ := NewStandardSurface(2, 2)
	s.Context().DrawImage(sub, 0, 0)

	if c := s.Snapshot().RGBAAt(0, 0); c != blue {
		t.Errorf("pixel = %v, want blue", c)
	}
}

func TestDrawImageSkipsDegenerate(t *testing.T) {
	s, _ := NewStandardSurface(4, 4)
	dc := s.Context()

	dc.DrawImage(nil, 0, 0)
	dc.DrawImage(image.NewRGBA(image.Rect(0, 0, 0, 0)), 0, 0)
	dc.Scale(0, 1)
	dc.DrawImage(solid(4, 4, red), 0, 0)

	for _, v := range s.Snapshot().Pix {
		if v != 0 {
			t.Fatal("degenerate draws should leave the surface untouched")
		}
	}
}

func TestOffscreenMatchesStandardRotation(t *testing.T) {
	src := gradient(31, 17)
	surfaces := newSurfaces(t, 40, 40)
	for _, s := range surfaces {
		dc := s.Context()
		dc.Translate(20, 20)
		dc.Rotate(0.6)
		dc.DrawImage(src, -15.5, -8.5)
	}

	a := surfaces[KindStandard].Snapshot()
	b := surfaces[KindOffscreen].Snapshot()
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < -1 || d > 1 {
			t.Fatalf("pixel byte %d differs: standard=%d offscreen=%d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestInterpolationModes(t *testing.T) {
	tests := []struct {
		mode Interpolation
		name string
	}{
		{InterpBilinear, "bilinear"},
		{InterpNearest, "nearest"},
		{InterpCatmullRom, "catmull-rom"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("String() = %s, want %s", got, tt.name)
		}

		s, _ := NewStandardSurface(5, 5)
		dc := s.Context()
		dc.SetInterpolation(tt.mode)
		if dc.Interpolation() != tt.mode {
			t.Errorf("Interpolation() = %v, want %v", dc.Interpolation(), tt.mode)
		}
		dc.DrawImage(solid(5, 5, red), 0, 0)
		if c := s.Snapshot().RGBAAt(2, 2); c != red {
			t.Errorf("%s: pixel = %v, want red", tt.name, c)
		}
	}
}

func TestSurfaceEncodeAndClose(t *testing.T) {
	s, _ := NewStandardSurface(3, 2)
	s.Context().DrawImage(solid(3, 2, blue), 0, 0)

	var buf bytes.Buffer
	if err := s.Encode(&buf, codec.NewPNGEncoder(), 1); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("encoded bounds = %v, want 3x2", b)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if s.Context() != nil {
		t.Error("Context() after Close should be nil")
	}
	if s.Snapshot() != nil {
		t.Error("Snapshot() after Close should be nil")
	}
	if err := s.Encode(&buf, codec.NewPNGEncoder(), 1); err != ErrClosed {
		t.Errorf("Encode() after Close error = %v, want ErrClosed", err)
	}
}

func TestNewOffscreenSurfaceRequiresPool(t *testing.T) {
	if _, err := NewOffscreenSurface(4, 4, nil); err == nil {
		t.Error("NewOffscreenSurface(nil pool) error = nil")
	}
}
