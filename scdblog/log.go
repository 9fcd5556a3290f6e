// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scdblog defines the package-level logger used by scdb. It follows
// the standard decred pattern of a disabled-by-default package logger that
// a caller wires up via UseLogger; nothing in scdb ever depends on a log
// line actually being emitted.
package scdblog

import "github.com/decred/slog"

// log is the package-wide logger used by scdb. It starts out disabled so
// scdb imposes no logging backend on callers that never call UseLogger.
var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}

// DisableLog disables all library log output. Logging output is disabled
// by default until UseLogger is called.
func DisableLog() {
	log = slog.Disabled
}

// Log returns the currently configured package-level logger, for packages
// in this module (principally scdb) that want to emit through it.
func Log() slog.Logger {
	return log
}
