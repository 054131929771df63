// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"fmt"
	"image"
	"io"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder decodes any image format registered with the image package.
type Decoder struct{}

// NewDecoder returns a decoder for PNG, JPEG, GIF, BMP, TIFF and WebP.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes r and returns the image with its codec name.
func (d *Decoder) Decode(r io.Reader) (image.Image, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("codec: decode: %w", err)
	}
	return img, name, nil
}

// SniffType detects the media type of data from its leading bytes.
// Returns "" when the content is not recognized as an image.
func SniffType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	mt := mimetype.Detect(data).String()
	mt, _, _ = strings.Cut(mt, ";")
	if !strings.HasPrefix(mt, "image/") {
		return ""
	}
	return mt
}
