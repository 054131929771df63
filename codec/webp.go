// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
)

type webpEncoder struct{}

// NewWebPEncoder returns the WebP encoder backed by libwebp.
// A quality of exactly 1 selects lossless encoding.
func NewWebPEncoder() Encoder {
	return webpEncoder{}
}

func (webpEncoder) Format() Format  { return WebP }
func (webpEncoder) Available() bool { return true }

func (webpEncoder) Encode(w io.Writer, img image.Image, quality float64) error {
	q := NormalizeQuality(quality)
	opts := &webp.Options{
		Lossless: q == 1,
		Quality:  float32(percent(q)),
	}
	if err := webp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("codec: encode WebP: %w", err)
	}
	return nil
}
