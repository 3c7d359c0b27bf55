// Copyright 2026 The Oauthcore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package oclog provides the logging capability shared by the core packages.
//
// It is a thin shim over [log/slog] with a package-level singleton, mirroring how
// the wider stacklok/toolhive ecosystem centralizes logging configuration: library
// code logs through this package instead of constructing its own handlers, and
// callers embedding this module can redirect output (or silence it) with [Set].
package oclog

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var singleton atomic.Pointer[slog.Logger]

func init() {
	singleton.Store(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Get returns the current singleton logger.
func Get() *slog.Logger {
	return singleton.Load()
}

// Set replaces the singleton logger. Intended for tests that want to capture or
// silence log output; production callers should configure a logger once at startup.
func Set(l *slog.Logger) {
	if l == nil {
		return
	}
	singleton.Store(l)
}

// Debugw logs a debug message with structured key/value pairs.
func Debugw(msg string, kv ...any) {
	Get().Debug(msg, kv...)
}

// Warnw logs a warning message with structured key/value pairs.
func Warnw(msg string, kv ...any) {
	Get().Warn(msg, kv...)
}
