// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import "strings"

// Format is an output image format identified by its MIME type.
type Format string

// Output formats.
const (
	// PNG is lossless; the quality parameter is ignored.
	PNG Format = "image/png"

	// JPEG is lossy and has no alpha channel.
	JPEG Format = "image/jpeg"

	// WebP is lossy when encoded with a quality below 1.
	WebP Format = "image/webp"

	// AVIF is recognized but has no bundled encoder.
	AVIF Format = "image/avif"
)

// String returns the MIME type.
func (f Format) String() string {
	return string(f)
}

// Known reports whether f is one of the recognized output formats.
func (f Format) Known() bool {
	switch f {
	case PNG, JPEG, WebP, AVIF:
		return true
	}
	return false
}

// Lossy reports whether the quality parameter affects encoding.
func (f Format) Lossy() bool {
	return f == JPEG || f == WebP || f == AVIF
}

// Extension returns the conventional file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case WebP:
		return ".webp"
	case AVIF:
		return ".avif"
	}
	return ""
}

// ParseFormat parses a MIME type or short name ("png", "jpg", "webp", ...).
// Returns an *UnsupportedFormatError for anything outside the closed set.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "image/")
	name = strings.TrimPrefix(name, ".")

	switch name {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	case "avif":
		return AVIF, nil
	}
	return "", &UnsupportedFormatError{Format: Format(s)}
}

// FormatFromCodec maps a codec name reported by image.Decode ("png",
// "jpeg", "gif", ...) to a MIME type. The result may lie outside the
// recognized output formats, e.g. "image/gif".
func FormatFromCodec(name string) Format {
	if name == "" {
		return ""
	}
	return Format("image/" + strings.ToLower(name))
}
