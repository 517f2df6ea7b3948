// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file searched for by [Find].
const FileName = ".minver.toml"

// ErrUnknownKey is returned when a configuration file contains unsupported keys.
var ErrUnknownKey = errors.New("unknown configuration key")

// File is the content of a configuration file.
//
//	max_version = "1.21"
//	ignore = ["range_over_func", "slices.Values"]
//	include_generated = false
//	version_guards = true
//	api_dir = "/usr/local/go/api"
type File struct {
	// MaxVersion is the Go release the module promises to support.
	// Usages of newer capabilities are reported as diagnostics.
	MaxVersion string `toml:"max_version"`

	// Ignore lists capabilities never reported as diagnostics.
	Ignore []string `toml:"ignore"`

	// IncludeGenerated reports diagnostics in generated files.
	IncludeGenerated *bool `toml:"include_generated"`

	// VersionGuards honors `//go:build go1.N` constraints.
	VersionGuards *bool `toml:"version_guards"`

	// APIDir is the directory holding the standard library API history.
	APIDir string `toml:"api_dir"`
}

// Load reads a configuration file.
// Relative API directories are resolved against the directory of the file.
func Load(path string) (*File, error) {
	var f File

	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return nil, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}

	if f.APIDir != "" && !filepath.IsAbs(f.APIDir) {
		f.APIDir = filepath.Join(filepath.Dir(path), f.APIDir)
	}

	return &f, nil
}

// Find returns the configuration file in dir or its closest parent directory,
// or the empty string if there is none.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
