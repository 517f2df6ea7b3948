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
	"cmp"
	"log/slog"
)

// Kind distinguishes language features from standard library items.
type Kind uint8

const (
	// LanguageSyntax is a feature of the Go language or toolchain directives.
	LanguageSyntax Kind = iota

	// LibraryItem is a standard library package, or an item exported by one.
	LibraryItem
)

func (k Kind) String() string {
	switch k {
	case LanguageSyntax:
		return "lang"
	case LibraryItem:
		return "lib"
	default:
		return "unknown"
	}
}

// Capability is a named language or library feature gated behind the Go release that stabilized it.
type Capability struct {
	Name  string  `msgpack:"identifier"`
	Kind  Kind    `msgpack:"kind"`
	Since Version `msgpack:"since,omitempty"`
}

// Key identifies a [Capability] independent of its version.
type Key struct {
	Name string
	Kind Kind
}

// Key returns the identity of c.
func (c Capability) Key() Key {
	return Key{Name: c.Name, Kind: c.Kind}
}

// Equal reports whether c and o denote the same capability.
// Versions are not compared.
func (c Capability) Equal(o Capability) bool {
	return c.Name == o.Name && c.Kind == o.Kind
}

// Stable reports whether the capability has a stabilization version.
func (c Capability) Stable() bool {
	return c.Since.Valid()
}

// Compare orders capabilities by version, newest first, then by name and kind.
func Compare(a, b Capability) int {
	if c := b.Since.Compare(a.Since); c != 0 {
		return c
	}

	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Kind, b.Kind))
}

// LogValue implements [slog.LogValuer].
func (c Capability) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.Name),
		slog.String("kind", c.Kind.String()),
		slog.String("since", c.Since.String()),
	)
}

// Stability is the stabilization metadata the standard library attaches to an
// individual package or exported item.
type Stability struct {
	// Feature is the qualified item name: "path", "path.Name" or "path.Type.Member".
	Feature string

	// Since is the first release that contains the item.
	Since Version
}

// Library converts the stability metadata of a library item into a [Capability].
func Library(s Stability) Capability {
	return Capability{Name: s.Feature, Kind: LibraryItem, Since: s.Since}
}
