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

package report

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/minver/internal/capability"
)

// ErrUnstable is returned when a report contains a capability without stabilization version.
var ErrUnstable = errors.New("capability is not stabilized")

// AllCapabilities returns the union of the capabilities of all units.
//
// The result is sorted newest first, then by name. Capabilities with equal
// name and kind are reported once, with the highest version seen.
func AllCapabilities(units []UnitReport) []capability.Capability {
	seen := make(map[capability.Key]capability.Capability)

	for _, u := range units {
		for _, c := range u.Capabilities {
			if prev, ok := seen[c.Key()]; ok && prev.Since.Compare(c.Since) >= 0 {
				continue
			}

			seen[c.Key()] = c
		}
	}

	all := make([]capability.Capability, 0, len(seen))
	for _, c := range seen {
		all = append(all, c)
	}

	slices.SortFunc(all, capability.Compare)

	return all
}

// UsagesOf returns every location where the named capability is used, sorted and deduplicated.
func UsagesOf(units []UnitReport, name string) []SourceLocation {
	var locs []SourceLocation
	for _, u := range units {
		locs = append(locs, u.Usages[name]...)
	}

	return sortLocations(locs)
}

// MinimumVersion returns the oldest Go release providing every used capability.
//
// When nothing is used the result is [capability.MinimumGo].
func MinimumVersion(units []UnitReport) (capability.Version, error) {
	minimum := capability.MinimumGo

	for _, c := range AllCapabilities(units) {
		if !c.Stable() {
			return "", fmt.Errorf("%w: %s", ErrUnstable, c.Name)
		}

		minimum = minimum.Max(c.Since)
	}

	return minimum, nil
}

// Aggregate is the collection of all unit reports of one run.
type Aggregate struct {
	units []UnitReport
}

// NewAggregate creates an [Aggregate], ordering the units by name.
func NewAggregate(units []UnitReport) *Aggregate {
	units = slices.Clone(units)
	slices.SortStableFunc(units, func(a, b UnitReport) int { return cmp.Compare(a.Unit, b.Unit) })

	return &Aggregate{units: units}
}

// Units returns the collected reports.
func (a *Aggregate) Units() []UnitReport {
	return a.units
}

// Incomplete returns the names of the units lacking standard library usages.
func (a *Aggregate) Incomplete() []string {
	var units []string

	for _, u := range a.units {
		if u.Incomplete {
			units = append(units, u.Unit)
		}
	}

	return units
}

// AllCapabilities returns the deduplicated, version-ranked capabilities of all units.
func (a *Aggregate) AllCapabilities() []capability.Capability {
	return AllCapabilities(a.units)
}

// UsagesOf returns all locations where the named capability is used.
func (a *Aggregate) UsagesOf(name string) []SourceLocation {
	return UsagesOf(a.units, name)
}

// MinimumVersion returns the minimum Go version required by all units.
func (a *Aggregate) MinimumVersion() (capability.Version, error) {
	return MinimumVersion(a.units)
}
