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

package capability

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a Go release in MAJOR.MINOR.PATCH form, like "1.21.0".
//
// The zero value means the version is absent, which is the case for
// capabilities that are not stabilized.
type Version string

// MinimumGo is the first Go release. Every Go program builds with it
// unless it uses something newer.
const MinimumGo Version = "1.0.0"

// ErrInvalidVersion is returned when a version string can't be parsed.
var ErrInvalidVersion = errors.New("invalid version")

// ParseVersion parses "1.21", "1.21.0", "go1.21" or "v1.21.0" into a [Version].
func ParseVersion(s string) (Version, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "go")
	v = strings.TrimPrefix(v, "v")

	// Go release candidates and betas ("1.21rc1") have no patch level
	if i := strings.IndexAny(v, "rb"); i > 0 {
		v = v[:i]
	}

	canonical := semver.Canonical("v" + v)
	if canonical == "" || semver.Prerelease(canonical) != "" || semver.Build(canonical) != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return Version(canonical[1:]), nil
}

// MustParseVersion is like [ParseVersion] but panics on invalid input.
// It is meant for static tables.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}

	return v
}

// Valid reports whether v is present and well-formed.
func (v Version) Valid() bool {
	return v != "" && semver.IsValid("v"+string(v))
}

// Compare returns -1, 0 or +1 depending on whether v < w, v == w or v > w.
// An absent version sorts before every present one.
func (v Version) Compare(w Version) int {
	switch {
	case v == w:
		return 0
	case v == "":
		return -1
	case w == "":
		return +1
	}

	return semver.Compare("v"+string(v), "v"+string(w))
}

// Max returns the higher of v and w.
func (v Version) Max(w Version) Version {
	if v.Compare(w) < 0 {
		return w
	}

	return v
}

// Go renders the version as a Go toolchain name, like "go1.21".
func (v Version) Go() string {
	if v == "" {
		return "unstable"
	}

	mm := semver.MajorMinor("v" + string(v))
	if mm == "" {
		return "go" + string(v)
	}

	if p := strings.TrimPrefix(string(v), mm[1:]); p != "" && p != ".0" {
		return "go" + string(v)
	}

	return "go" + mm[1:]
}

// String returns the semantic version without prefix.
func (v Version) String() string {
	return string(v)
}
