// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package codec provides the image codecs used by imgkit surfaces.
//
// Decoding goes through [Decoder], which understands every format registered
// with the standard image package plus WebP, BMP and TIFF from
// golang.org/x/image. Encoding goes through a [Registry] of [Encoder]
// implementations keyed by output [Format].
//
// # Output formats
//
// The set of output formats is closed:
//
//   - [PNG]  image/png (lossless, quality ignored)
//   - [JPEG] image/jpeg
//   - [WebP] image/webp (github.com/chai2010/webp)
//   - [AVIF] image/avif (no bundled encoder)
//
// Requesting a format that has no available encoder fails with an
// [UnsupportedFormatError]; the registry never falls back to PNG.
//
// # Registering encoders
//
// Third-party encoders can be added to a registry:
//
//	r := codec.NewRegistry()
//	r.Register(myAVIFEncoder{})
//
//	enc, err := r.Lookup(codec.AVIF)
package codec
