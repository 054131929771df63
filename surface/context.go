// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation selects how source pixels are sampled when drawing images.
type Interpolation uint8

// Interpolation modes.
const (
	// InterpBilinear blends the 4 nearest source pixels. It matches canvas
	// image smoothing and is the default.
	InterpBilinear Interpolation = iota

	// InterpNearest selects the closest source pixel.
	InterpNearest

	// InterpCatmullRom uses a 4x4 cubic kernel. Highest quality, slowest.
	InterpCatmullRom
)

// String returns the mode name.
func (i Interpolation) String() string {
	switch i {
	case InterpNearest:
		return "nearest"
	case InterpCatmullRom:
		return "catmull-rom"
	default:
		return "bilinear"
	}
}

func (i Interpolation) transformer() draw.Transformer {
	switch i {
	case InterpNearest:
		return draw.NearestNeighbor
	case InterpCatmullRom:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

// Context is the 2D drawing context bound to a Surface.
// It keeps the current transformation matrix and a Push/Pop stack.
type Context struct {
	width  int
	height int
	target rasterizer

	matrix Matrix
	stack  []Matrix
	interp Interpolation
}

func newContext(width, height int, target rasterizer) *Context {
	return &Context{
		width:  width,
		height: height,
		target: target,
		matrix: Identity(),
		stack:  make([]Matrix, 0, 4),
	}
}

// Width returns the width of the bound surface.
func (c *Context) Width() int {
	return c.width
}

// Height returns the height of the bound surface.
func (c *Context) Height() int {
	return c.height
}

// Push saves the current transformation matrix.
func (c *Context) Push() {
	c.stack = append(c.stack, c.matrix)
}

// Pop restores the last saved transformation matrix.
// Pop without a matching Push is a no-op.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Identity resets the transformation matrix.
func (c *Context) Identity() {
	c.matrix = Identity()
}

// Translate applies a translation.
func (c *Context) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
}

// Scale applies a scaling transformation.
func (c *Context) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
}

// Rotate applies a rotation (angle in radians).
func (c *Context) Rotate(angle float64) {
	c.matrix = c.matrix.Multiply(Rotate(angle))
}

// RotateAbout rotates around a specific point.
func (c *Context) RotateAbout(angle, x, y float64) {
	c.Translate(x, y)
	c.Rotate(angle)
	c.Translate(-x, -y)
}

// Transform multiplies the current transformation matrix by m.
// This is similar to CanvasRenderingContext2D.transform() in web browsers.
func (c *Context) Transform(m Matrix) {
	c.matrix = c.matrix.Multiply(m)
}

// SetTransform replaces the current transformation matrix.
func (c *Context) SetTransform(m Matrix) {
	c.matrix = m
}

// GetTransform returns a copy of the current transformation matrix.
func (c *Context) GetTransform() Matrix {
	return c.matrix
}

// TransformPoint maps a user-space point to device space.
func (c *Context) TransformPoint(x, y float64) (float64, float64) {
	p := c.matrix.TransformPoint(Point{X: x, Y: y})
	return p.X, p.Y
}

// SetInterpolation sets the sampling mode for subsequent DrawImage calls.
func (c *Context) SetInterpolation(mode Interpolation) {
	c.interp = mode
}

// Interpolation returns the current sampling mode.
func (c *Context) Interpolation() Interpolation {
	return c.interp
}

// DrawImage draws img with its top-left corner at (x, y) in user space.
// The current transformation matrix is applied, and the image is
// composited source-over onto the surface.
//
// Example (pivot about the image center):
//
//	dc.Translate(float64(dc.Width())/2, float64(dc.Height())/2)
//	dc.Rotate(angle)
//	dc.DrawImage(img, -float64(w)/2, -float64(h)/2)
func (c *Context) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	// A collapsed matrix maps the image onto a line; nothing is visible.
	if c.matrix.Determinant() == 0 {
		return
	}

	m := c.matrix.Multiply(Translate(x-float64(b.Min.X), y-float64(b.Min.Y)))
	c.target.transform(img, m.aff3(), c.interp.transformer())
}
