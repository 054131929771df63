// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrNoBackendAvailable is returned when no surface backends are registered
	// or available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")

	// ErrDrawingContextUnavailable is returned when a backend produced a
	// surface without a 2D drawing context.
	ErrDrawingContextUnavailable = errors.New("surface: failed to create 2D drawing context")

	// ErrInvalidDimensions is matched by every *InvalidDimensionsError.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrClosed is returned when encoding a closed surface.
	ErrClosed = errors.New("surface: closed")
)

// InvalidDimensionsError reports a non-positive surface size.
type InvalidDimensionsError struct {
	Width  int
	Height int
}

func (e *InvalidDimensionsError) Error() string {
	if e.Width > 0 && e.Height > 0 {
		return fmt.Sprintf("surface: invalid dimensions: width=%d, height=%d (more than %d pixels)", e.Width, e.Height, MaxPixels)
	}
	return fmt.Sprintf("surface: invalid dimensions: width=%d, height=%d (both must be > 0)", e.Width, e.Height)
}

// Is reports whether target is ErrInvalidDimensions.
func (e *InvalidDimensionsError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// MaxPixels caps the area of a surface or decoded image. At 4 bytes per
// pixel the largest accepted raster is 512 MiB.
const MaxPixels = 1 << 27

// ValidateSize returns an *InvalidDimensionsError unless both dimensions
// are positive and their product is at most MaxPixels.
func ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxPixels/height {
		return &InvalidDimensionsError{Width: width, Height: height}
	}
	return nil
}
