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

// Package report holds the per-package capability reports and merges them
// into a module-wide answer.
package report

import (
	"cmp"
	"fmt"
	"slices"

	"fillmore-labs.com/minver/internal/capability"
)

// SourceLocation is the span a capability usage is charged to.
type SourceLocation struct {
	File      string `json:"file" msgpack:"file"`
	StartLine uint32 `json:"start_line" msgpack:"start_line"`
	StartCol  uint32 `json:"start_col" msgpack:"start_col"`
	EndLine   uint32 `json:"end_line" msgpack:"end_line"`
	EndCol    uint32 `json:"end_col" msgpack:"end_col"`
}

// Compare orders locations by file, then by start and end position.
func (l SourceLocation) Compare(o SourceLocation) int {
	return cmp.Or(
		cmp.Compare(l.File, o.File),
		cmp.Compare(l.StartLine, o.StartLine),
		cmp.Compare(l.StartCol, o.StartCol),
		cmp.Compare(l.EndLine, o.EndLine),
		cmp.Compare(l.EndCol, o.EndCol),
	)
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// UnitReport is the result of analyzing one package.
//
// Capabilities are sorted with [capability.Compare], every usage list is sorted and
// free of duplicates. A report is not modified after it has been exported.
//
// An incomplete report lacks standard library usages, because the API history
// of the toolchain was unavailable.
type UnitReport struct {
	Unit         string                      `msgpack:"unit_name"`
	Capabilities []capability.Capability     `msgpack:"capabilities"`
	Usages       map[string][]SourceLocation `msgpack:"usages"`
	Incomplete   bool                        `msgpack:"incomplete,omitempty"`
}

// Empty reports whether no capability was detected.
func (u *UnitReport) Empty() bool {
	return len(u.Capabilities) == 0
}

// sortLocations sorts and deduplicates locations in place.
func sortLocations(locs []SourceLocation) []SourceLocation {
	slices.SortFunc(locs, SourceLocation.Compare)

	return slices.Compact(locs)
}

// SortedLocations returns the elements of set in sorted order.
func SortedLocations(set map[SourceLocation]struct{}) []SourceLocation {
	locs := make([]SourceLocation, 0, len(set))
	for l := range set {
		locs = append(locs, l)
	}

	return sortLocations(locs)
}
