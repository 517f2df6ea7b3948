// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package run

import (
	"log/slog"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/config"
)

// Options represent configuration options for the minver analyzer.
type Options struct {
	// Behavior holds behavioral options.
	Behavior config.Behavior

	// MaxVersion is the highest Go release usages may require without a diagnostic.
	// No diagnostics are reported when empty.
	MaxVersion capability.Version

	// Ignore lists capabilities never reported as diagnostics.
	Ignore []string

	// APIDir is the directory holding the standard library API history.
	// The api directory of GOROOT is used when empty.
	APIDir string

	// Server is the address unit reports are sent to, if any.
	Server string

	// Logger receives debug output. The default logger is used when nil.
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Behavior: config.DefaultBehavior(),
	}
}

func (r *Options) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return slog.Default()
}
