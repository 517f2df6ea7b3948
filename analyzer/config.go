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

package analyzer

import (
	"fmt"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/config"
)

// ConfigFileName is the name of the configuration file searched for by [FindConfig].
const ConfigFileName = config.FileName

// LoadConfig reads a TOML configuration file and returns the [Options] it sets.
//
//	max_version = "1.21"
//	ignore = ["range_over_func", "slices.Values"]
//	include_generated = false
//	version_guards = true
//	api_dir = "/usr/local/go/api"
func LoadConfig(path string) (Options, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var opts Options

	if f.MaxVersion != "" {
		if _, err := capability.ParseVersion(f.MaxVersion); err != nil {
			return nil, fmt.Errorf("config %s: max_version: %w", path, err)
		}

		opts = append(opts, WithMaxVersion(f.MaxVersion))
	}

	if len(f.Ignore) > 0 {
		opts = append(opts, WithIgnore(f.Ignore...))
	}

	if f.IncludeGenerated != nil {
		opts = append(opts, WithGenerated(*f.IncludeGenerated))
	}

	if f.VersionGuards != nil {
		opts = append(opts, WithVersionGuards(*f.VersionGuards))
	}

	if f.APIDir != "" {
		opts = append(opts, WithAPIDir(f.APIDir))
	}

	return opts, nil
}

// FindConfig returns the configuration file in dir or its closest parent directory,
// or the empty string if there is none.
func FindConfig(dir string) string {
	return config.Find(dir)
}
