// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

package gclplugin

import "fillmore-labs.com/minver/analyzer"

// Settings are the plugin settings of `.golangci.yaml`.
type Settings struct {
	// MaxVersion is the Go release usages may require without an issue.
	MaxVersion *string `json:"max-version,omitzero"`
	// Ignore lists capabilities never reported.
	Ignore []string `json:"ignore,omitzero"`
	// VersionGuards honors `//go:build go1.N` constraints.
	VersionGuards *bool `json:"version-guards,omitzero"`
	// APIDir is the directory holding the standard library API history.
	APIDir *string `json:"api-dir,omitzero"`
}

// Options converts the settings into analyzer options.
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendOption(opts, s.MaxVersion, analyzer.WithMaxVersion)
	opts = appendOption(opts, s.VersionGuards, analyzer.WithVersionGuards)
	opts = appendOption(opts, s.APIDir, analyzer.WithAPIDir)

	if len(s.Ignore) > 0 {
		opts = append(opts, analyzer.WithIgnore(s.Ignore...))
	}

	return opts
}

func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
