// Package imgkit converts, resizes, flips and rotates images.
//
// # Overview
//
// Every operation follows the same pipeline: load the source into a
// decoded [Image], draw it onto a freshly sized surface under an affine
// transform, then encode the surface in the requested output format.
// Drawing uses the canvas model: the image is drawn centered on the
// surface, so a target smaller than the image crops and a larger one pads
// with transparency unless [FitStretch] is used.
//
// # Quick Start
//
//	import "github.com/gogpu/imgkit"
//
//	f, _ := imgkit.OpenFile("photo.png")
//	out, err := imgkit.Convert(ctx, f, imgkit.ConvertOptions{
//	    Format:  imgkit.FormatJPEG,
//	    Quality: imgkit.Float(0.8),
//	})
//
// # Sources
//
// A [Source] is a [*Blob], a [*File], an already decoded [*Image] or a
// [URL]. Blobs are decoded through a temporary object URL that is revoked
// before the call returns. URLs are fetched anonymously.
//
// # Surfaces
//
// Surfaces come from the surface package. The offscreen backend draws in
// parallel strips and is preferred when more than one CPU is available;
// the standard backend draws on the calling goroutine. Both produce the
// same pixels for axis-aligned transforms.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, positive turns clockwise on screen
package imgkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
