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

// Package usage accumulates the capability usages of one package.
package usage

import (
	"fmt"
	"go/token"
	"maps"
	"slices"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/report"
)

// Collector accumulates capability usages during the analysis of one package.
// It is not safe for concurrent use.
type Collector struct {
	// usages maps capability names to the set of places they are used at.
	usages map[string]map[place]struct{}

	// library holds the stability of recorded library items.
	library map[string]capability.Stability

	// sites are usages in the analyzed files, in observation order.
	sites []Site
}

// Site is a usage in one of the analyzed files.
type Site struct {
	// Name is the capability name as observed, possibly an alias.
	Name string

	// Since is set for library items.
	Since capability.Version

	Pos, End token.Pos
}

// place is a usage location together with the compiled file containing it.
// Both differ for code remapped by //line directives.
type place struct {
	loc  report.SourceLocation
	file string
}

// Suppressor decides whether a capability is allowed without raising the requirements.
//
// files are the compiled files the capability is used in.
type Suppressor interface {
	Suppressed(c capability.Capability, files []string) bool
}

// New creates an empty [Collector].
func New() *Collector {
	return &Collector{
		usages:  make(map[string]map[place]struct{}),
		library: make(map[string]capability.Stability),
	}
}

// Record notes a usage of the named language capability in the compiled file
// named by loc. Recording the same usage twice has no effect.
func (c *Collector) Record(name string, loc report.SourceLocation) {
	c.record(name, place{loc: loc, file: loc.File})
}

// RecordLibrary notes a usage of a standard library item. Items without
// stabilization version are ignored.
func (c *Collector) RecordLibrary(s capability.Stability, loc report.SourceLocation) {
	c.recordLibrary(s, place{loc: loc, file: loc.File})
}

func (c *Collector) record(name string, p place) {
	places, ok := c.usages[name]
	if !ok {
		places = make(map[place]struct{})
		c.usages[name] = places
	}

	places[p] = struct{}{}
}

func (c *Collector) recordLibrary(s capability.Stability, p place) {
	if !s.Since.Valid() {
		return
	}

	c.library[s.Feature] = s
	c.record(s.Feature, p)
}

// Sites returns the usages observed in the analyzed files.
func (c *Collector) Sites() []Site {
	return c.sites
}

// Len returns the number of distinct capability names recorded.
func (c *Collector) Len() int {
	return len(c.usages)
}

// Export resolves the recorded names through catalog and creates the report for unit.
//
// Capabilities for which suppress reports true are left out. suppress may be nil.
// An unknown language capability name results in an error wrapping
// [capability.ErrUnknownCapability].
func (c *Collector) Export(unit string, catalog *capability.Catalog, suppress Suppressor) (report.UnitReport, error) {
	resolved := make(map[capability.Key]capability.Capability, len(c.usages))
	usages := make(map[string]map[report.SourceLocation]struct{}, len(c.usages))
	files := make(map[string]map[string]struct{}, len(c.usages))

	for name, places := range c.usages {
		var item capability.Capability
		if s, ok := c.library[name]; ok {
			item = capability.Library(s)
		} else {
			var err error
			if item, err = catalog.Lookup(name); err != nil {
				return report.UnitReport{}, fmt.Errorf("exporting %s: %w", unit, err)
			}
		}

		resolved[item.Key()] = item

		set, ok := usages[item.Name]
		if !ok {
			set = make(map[report.SourceLocation]struct{}, len(places))
			usages[item.Name] = set
			files[item.Name] = make(map[string]struct{})
		}

		for p := range places {
			set[p.loc] = struct{}{}
			files[item.Name][p.file] = struct{}{}
		}
	}

	r := report.UnitReport{
		Unit:         unit,
		Capabilities: make([]capability.Capability, 0, len(resolved)),
		Usages:       make(map[string][]report.SourceLocation, len(resolved)),
	}

	for _, item := range resolved {
		if suppress != nil && suppress.Suppressed(item, slices.Sorted(maps.Keys(files[item.Name]))) {
			continue
		}

		r.Capabilities = append(r.Capabilities, item)
		r.Usages[item.Name] = report.SortedLocations(usages[item.Name])
	}

	slices.SortFunc(r.Capabilities, capability.Compare)

	return r, nil
}
