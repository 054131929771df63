// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

// SetLogger configures the logger used by the surface package.
// Pass nil to restore the default silent logger.
// imgkit.SetLogger calls this automatically.
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(l)
}

func logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
