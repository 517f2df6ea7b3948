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
	"maps"
	"slices"
	"sync"
)

// Language feature names emitted by the detectors.
const (
	GoBuildConstraint     = "go_build_constraint"
	GoEmbedDirective      = "go_embed_directive"
	GoDebugDirective      = "go_debug_directive"
	GoWasmImportDirective = "go_wasmimport_directive"
	GoWasmExportDirective = "go_wasmexport_directive"

	BuildTagUnix    = "build_tag_unix"
	BuildTagWasip1  = "build_tag_wasip1"
	BuildTagIOS     = "build_tag_ios"
	BuildTagLoong64 = "build_tag_loong64"

	BinaryIntegerLiterals   = "binary_integer_literals"
	OctalIntegerLiterals    = "octal_integer_literals"
	HexadecimalFloatLiteral = "hexadecimal_float_literals"
	DigitSeparators         = "digit_separators"

	TypeParameters       = "type_parameters"
	TypeSets             = "type_sets"
	TypeAliases          = "type_aliases"
	GenericTypeAliases   = "generic_type_aliases"
	FullSliceExpressions = "full_slice_expressions"
	RangeWithoutVars     = "range_without_variables"

	MinMaxBuiltins             = "min_max_builtins"
	ClearBuiltin               = "clear_builtin"
	PredeclaredAny             = "predeclared_any"
	PredeclaredComparable      = "predeclared_comparable"
	RangeOverInt               = "range_over_int"
	RangeOverFunc              = "range_over_func"
	SliceToArrayPointer        = "slice_to_array_pointer_conversion"
	SliceToArray               = "slice_to_array_conversion"
	SignedShiftCounts          = "signed_shift_counts"
	OverlappingInterfaceEmbeds = "overlapping_interface_embeds"
)

// ErrUnknownCapability is returned for identifiers without a catalog entry.
// Detectors only emit cataloged names, so this indicates a bug.
var ErrUnknownCapability = errors.New("unknown capability")

// Catalog maps language feature identifiers to the release that stabilized them.
//
// A Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	features map[string]Version
	aliases  map[string]string
}

// NewCatalog creates a [Catalog] from a feature table and an alias table mapping
// former identifiers to their current name.
func NewCatalog(features map[string]Version, aliases map[string]string) *Catalog {
	return &Catalog{
		features: maps.Clone(features),
		aliases:  maps.Clone(aliases),
	}
}

// Default returns the process-wide catalog of Go language features.
var Default = sync.OnceValue(func() *Catalog {
	return NewCatalog(languageFeatures(), languageAliases())
})

// Canonical resolves aliases of renamed identifiers to the current identifier.
func (c *Catalog) Canonical(name string) string {
	for range len(c.aliases) + 1 { // bounded, in case of alias loops
		current, ok := c.aliases[name]
		if !ok {
			break
		}

		name = current
	}

	return name
}

// Lookup returns the language feature with the given identifier or alias.
func (c *Catalog) Lookup(name string) (Capability, error) {
	canonical := c.Canonical(name)

	since, ok := c.features[canonical]
	if !ok {
		return Capability{}, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
	}

	return Capability{Name: canonical, Kind: LanguageSyntax, Since: since}, nil
}

// Known reports whether name, or the identifier it is an alias for, is cataloged.
func (c *Catalog) Known(name string) bool {
	_, ok := c.features[c.Canonical(name)]

	return ok
}

// All returns every cataloged feature, newest first.
func (c *Catalog) All() []Capability {
	all := make([]Capability, 0, len(c.features))
	for name, since := range c.features {
		all = append(all, Capability{Name: name, Kind: LanguageSyntax, Since: since})
	}

	slices.SortFunc(all, Compare)

	return all
}

func languageFeatures() map[string]Version {
	table := map[string]string{
		GoBuildConstraint:     "1.17",
		GoEmbedDirective:      "1.16",
		GoDebugDirective:      "1.21",
		GoWasmImportDirective: "1.21",
		GoWasmExportDirective: "1.24",

		BuildTagUnix:    "1.19",
		BuildTagWasip1:  "1.21",
		BuildTagIOS:     "1.16",
		BuildTagLoong64: "1.19",

		BinaryIntegerLiterals:   "1.13",
		OctalIntegerLiterals:    "1.13",
		HexadecimalFloatLiteral: "1.13",
		DigitSeparators:         "1.13",

		TypeParameters:       "1.18",
		TypeSets:             "1.18",
		TypeAliases:          "1.9",
		GenericTypeAliases:   "1.24",
		FullSliceExpressions: "1.2",
		RangeWithoutVars:     "1.4",

		MinMaxBuiltins:             "1.21",
		ClearBuiltin:               "1.21",
		PredeclaredAny:             "1.18",
		PredeclaredComparable:      "1.18",
		RangeOverInt:               "1.22",
		RangeOverFunc:              "1.23",
		SliceToArrayPointer:        "1.17",
		SliceToArray:               "1.20",
		SignedShiftCounts:          "1.13",
		OverlappingInterfaceEmbeds: "1.14",
	}

	features := make(map[string]Version, len(table))
	for name, v := range table {
		features[name] = MustParseVersion(v)
	}

	return features
}

func languageAliases() map[string]string {
	return map[string]string{
		"generics":                TypeParameters,
		"go_build_lines":          GoBuildConstraint,
		"number_literal_prefixes": BinaryIntegerLiterals,
		"iterators":               RangeOverFunc,
		"overlapping_interfaces":  OverlappingInterfaceEmbeds,
	}
}
