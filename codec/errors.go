// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is matched by every *UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("codec: unsupported output format")

// UnsupportedFormatError reports an output format that cannot be encoded.
type UnsupportedFormatError struct {
	Format Format

	// Reason optionally explains why the format is unavailable.
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("codec: the %q format is not supported: %s", string(e.Format), e.Reason)
	}
	return fmt.Sprintf("codec: the %q format is not supported", string(e.Format))
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}
