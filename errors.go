package imgkit

import (
	"errors"
	"fmt"

	"github.com/gogpu/imgkit/codec"
	"github.com/gogpu/imgkit/surface"
)

// Errors. Every failure of a manipulation call matches one of these with
// errors.Is.
var (
	// ErrDecodeFailure means the source could not be turned into a raster
	// image: malformed data, an unsupported codec, or a failed URL load.
	ErrDecodeFailure = errors.New("imgkit: failed to load image")

	// ErrDrawingContextUnavailable means the surface backend could not
	// provide a 2D drawing context.
	ErrDrawingContextUnavailable = surface.ErrDrawingContextUnavailable

	// ErrUnsupportedOutputFormat means no available encoder exists for the
	// requested output format.
	ErrUnsupportedOutputFormat = codec.ErrUnsupportedFormat

	// ErrInvalidDimensions means the target width or height is not positive.
	ErrInvalidDimensions = surface.ErrInvalidDimensions
)

// UnsupportedFormatError names the output format that could not be encoded.
type UnsupportedFormatError = codec.UnsupportedFormatError

// InvalidDimensionsError carries the rejected target size.
type InvalidDimensionsError = surface.InvalidDimensionsError

// DecodeError reports a source that could not be decoded.
type DecodeError struct {
	// Source describes what was being loaded (a URL or object URL).
	Source string

	// Err is the underlying cause.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("imgkit: failed to load image: %v", e.Err)
	}
	return fmt.Sprintf("imgkit: failed to load image from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDecodeFailure.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}
