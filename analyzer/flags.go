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

package analyzer

import (
	"flag"

	"fillmore-labs.com/minver/internal/config"
	"fillmore-labs.com/minver/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	var configPath string

	flags.Var(configValue{r: r, path: &configPath}, "config", "read options from `file`")
	flags.Var(versionValue{&r.MaxVersion}, "max-version", "report usages requiring a Go release newer than `version`")
	flags.Var(listValue{&r.Ignore}, "ignore", "comma-separated `capabilities` never reported")
	flags.Var(NewBehaviorValue(&r.Behavior, config.IncludeGenerated), "generated", "report usages in generated files")
	flags.Var(NewBehaviorValue(&r.Behavior, config.VersionGuards), "version-guards", "honor //go:build go1.N constraints")
	flags.StringVar(&r.APIDir, "api-dir", r.APIDir, "read the standard library API history from `dir`")
	flags.StringVar(&r.Server, "server", r.Server, "send package reports to `address`")
}
