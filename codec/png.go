// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

type pngEncoder struct {
	enc png.Encoder
}

// NewPNGEncoder returns the PNG encoder.
func NewPNGEncoder() Encoder {
	return &pngEncoder{enc: png.Encoder{CompressionLevel: png.DefaultCompression}}
}

func (e *pngEncoder) Format() Format  { return PNG }
func (e *pngEncoder) Available() bool { return true }

func (e *pngEncoder) Encode(w io.Writer, img image.Image, _ float64) error {
	if err := e.enc.Encode(w, img); err != nil {
		return fmt.Errorf("codec: encode PNG: %w", err)
	}
	return nil
}
