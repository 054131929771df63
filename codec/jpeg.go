// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
)

type jpegEncoder struct{}

// NewJPEGEncoder returns the JPEG encoder.
// Transparent pixels of premultiplied sources come out black.
func NewJPEGEncoder() Encoder {
	return jpegEncoder{}
}

func (jpegEncoder) Format() Format  { return JPEG }
func (jpegEncoder) Available() bool { return true }

func (jpegEncoder) Encode(w io.Writer, img image.Image, quality float64) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: percent(quality)}); err != nil {
		return fmt.Errorf("codec: encode JPEG: %w", err)
	}
	return nil
}
