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
	"context"
	"fmt"
	"go/token"
	"runtime/trace"
	"slices"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/minver/internal/astutil"
	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/config"
	"fillmore-labs.com/minver/internal/provenance"
	"fillmore-labs.com/minver/internal/usage"
)

// diagnostics reports usages of capabilities newer than the supported release.
type diagnostics struct {
	pass     *analysis.Pass
	catalog  *capability.Catalog
	max      capability.Version
	ignore   []string
	guards   *provenance.Guards
	behavior config.Behavior
}

type siteKey struct {
	name string
	pos  token.Pos
}

// report emits one diagnostic per capability and position.
func (d diagnostics) report(ctx context.Context, sites []usage.Site) {
	defer trace.StartRegion(ctx, "Report").End()

	files := make([]astutil.CurrentFile, 0, len(d.pass.Files))
	for _, f := range d.pass.Files {
		if cf := astutil.NewCurrentFile(d.pass.Fset, f); cf.Valid() {
			files = append(files, cf)
		}
	}

	reported := make(map[siteKey]struct{})

	for _, site := range sites {
		item, ok := d.resolve(site)
		if !ok || item.Since.Compare(d.max) <= 0 || d.ignored(site.Name, item.Name) {
			continue
		}

		// sites are only tracked for the files of the pass
		i := slices.IndexFunc(files, func(f astutil.CurrentFile) bool { return f.Contains(site.Pos) })
		if i < 0 {
			continue
		}

		currentFile := files[i]
		if d.skip(currentFile, site.Pos, item) {
			continue
		}

		key := siteKey{item.Name, site.Pos}
		if _, ok := reported[key]; ok {
			continue
		}

		reported[key] = struct{}{}

		d.pass.Report(analysis.Diagnostic{
			Pos:      site.Pos,
			End:      site.End,
			Category: item.Kind.String(),
			Message:  fmt.Sprintf("%s requires %s", item.Name, item.Since.Go()),
		})
	}
}

// resolve returns the capability a site refers to.
func (d diagnostics) resolve(site usage.Site) (capability.Capability, bool) {
	if site.Since.Valid() {
		return capability.Library(capability.Stability{Feature: site.Name, Since: site.Since}), true
	}

	item, err := d.catalog.Lookup(site.Name)
	if err != nil {
		return capability.Capability{}, false
	}

	return item, true
}

func (d diagnostics) ignored(names ...string) bool {
	for _, name := range names {
		if slices.Contains(d.ignore, name) {
			return true
		}
	}

	return false
}

// skip reports whether the usage at pos must not be reported.
func (d diagnostics) skip(currentFile astutil.CurrentFile, pos token.Pos, item capability.Capability) bool {
	// Skip generated files
	if currentFile.Generated() && !d.behavior.Enabled(config.IncludeGenerated) {
		return true
	}

	// Skip files and lines with nolint comment
	if currentFile.NoLintFile() || currentFile.NoLintComment(pos) {
		return true
	}

	if !d.behavior.Enabled(config.VersionGuards) || item.Name == capability.GoBuildConstraint {
		return false
	}

	guard, ok := d.guards.Guard(currentFile.Name())

	return ok && item.Since.Compare(guard) <= 0
}
