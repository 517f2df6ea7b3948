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

package provenance

import (
	"go/build/constraint"

	"fillmore-labs.com/minver/internal/capability"
)

// GuardVersion returns the minimum Go release implied by a build constraint,
// or the empty version when the constraint does not restrict the release.
//
// A conjunction implies the higher, a disjunction the lower of its operands.
// Negations imply nothing.
func GuardVersion(x constraint.Expr) capability.Version {
	if x == nil {
		return ""
	}

	v, err := capability.ParseVersion(constraint.GoVersion(x))
	if err != nil {
		return ""
	}

	return v
}

// Guards records the version guards of the files in a package.
//
// A file only compiled by Go 1.N and later may use everything introduced up to
// Go 1.N without raising the requirements of the module.
type Guards struct {
	files map[string]capability.Version
}

// Add records that file is only compiled by release v or later.
func (g *Guards) Add(file string, v capability.Version) {
	if !v.Valid() {
		return
	}

	if g.files == nil {
		g.files = make(map[string]capability.Version)
	}

	g.files[file] = g.files[file].Max(v)
}

// Guard returns the version guard of file, if any.
func (g *Guards) Guard(file string) (capability.Version, bool) {
	v, ok := g.files[file]

	return v, ok
}

// Len returns the number of guarded files.
func (g *Guards) Len() int {
	return len(g.files)
}

// Suppressed reports whether every usage of c is allowed by the guard of the
// compiled file it is in.
//
// A capability also used in an unguarded file, or in a file guarded below its
// release, stays in the report. The //go:build line itself is never allowed by
// its own guard, since releases ignoring it compile the file regardless.
func (g *Guards) Suppressed(c capability.Capability, files []string) bool {
	if len(g.files) == 0 || len(files) == 0 || !c.Stable() || c.Name == capability.GoBuildConstraint {
		return false
	}

	for _, file := range files {
		if v, ok := g.files[file]; !ok || c.Since.Compare(v) > 0 {
			return false
		}
	}

	return true
}
