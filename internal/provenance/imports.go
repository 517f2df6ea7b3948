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

import "fillmore-labs.com/minver/internal/capability"

// ImportTable maps the import paths of one package to the stability of the
// imported standard library package. Imports outside the standard library
// are present with a zero [capability.Stability].
type ImportTable map[string]capability.Stability

// Add records an import path and its stability.
func (t ImportTable) Add(path string, s capability.Stability, ok bool) {
	if !ok {
		s = capability.Stability{}
	}

	if _, seen := t[path]; seen && !ok {
		return
	}

	t[path] = s
}

// PackageStability returns the library capability of an imported standard
// library package, if path is in the table and the package is stabilized.
func PackageStability(path string, imports ImportTable) (capability.Capability, bool) {
	s, ok := imports[path]
	if !ok || !s.Since.Valid() {
		return capability.Capability{}, false
	}

	return capability.Library(s), true
}
