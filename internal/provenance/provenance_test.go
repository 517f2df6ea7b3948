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

package provenance_test

import (
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/minver/internal/capability"
	. "fillmore-labs.com/minver/internal/provenance"
	"fillmore-labs.com/minver/internal/report"
)

const (
	srcA = `package p

//line b.go:3:1
var A = 0b1
`
	srcB = `package p
//line tmpl.y:10:1
var B = 1 + 2 + 3
`
	srcC = `package p

var C = 0b1
`
)

func parseFiles(t *testing.T, srcs map[string]string) (*token.FileSet, map[string]*ast.File) {
	t.Helper()

	fset := token.NewFileSet()
	files := make(map[string]*ast.File, len(srcs))

	for name, src := range srcs {
		f, err := parser.ParseFile(fset, name, src, parser.ParseComments|parser.SkipObjectResolution)
		require.NoError(t, err)

		files[name] = f
	}

	return fset, files
}

func literal(f *ast.File) *ast.BasicLit {
	var lit *ast.BasicLit

	ast.Inspect(f, func(n ast.Node) bool {
		if l, ok := n.(*ast.BasicLit); ok && lit == nil {
			lit = l
		}

		return lit == nil
	})

	return lit
}

func TestAttributionPoint(t *testing.T) {
	t.Parallel()

	fset, files := parseFiles(t, map[string]string{"a.go": srcA, "b.go": srcB, "c.go": srcC})
	r := NewResolver(fset, []*ast.File{files["a.go"], files["b.go"], files["c.go"]})

	tests := []struct {
		name      string
		file      string
		want      report.SourceLocation
		expansion bool
	}{
		{
			name:      "chain",
			file:      "a.go",
			want:      report.SourceLocation{File: "tmpl.y", StartLine: 10, StartCol: 9, EndLine: 10, EndCol: 12},
			expansion: true,
		},
		{
			name:      "direct",
			file:      "b.go",
			want:      report.SourceLocation{File: "tmpl.y", StartLine: 10, StartCol: 9, EndLine: 10, EndCol: 10},
			expansion: true,
		},
		{
			name: "unchanged",
			file: "c.go",
			want: report.SourceLocation{File: "c.go", StartLine: 3, StartCol: 9, EndLine: 3, EndCol: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lit := literal(files[tt.file])
			require.NotNil(t, lit)

			assert.Equal(t, tt.want, r.AttributionPoint(lit))
			assert.Equal(t, tt.expansion, r.FromExpansion(lit.Pos()))
		})
	}
}

func TestAttributionPointCycle(t *testing.T) {
	t.Parallel()

	fset, files := parseFiles(t, map[string]string{
		"x.go": "package p\n//line y.go:3:1\nvar X = 0x1p-2\n",
		"y.go": "package p\n//line x.go:3:1\nvar Y = 0x1p-2\n",
	})
	r := NewResolver(fset, []*ast.File{files["x.go"], files["y.go"]})

	got := r.AttributionPoint(literal(files["x.go"]))
	assert.Contains(t, []string{"x.go", "y.go"}, got.File)
}

func TestGuardVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want capability.Version
	}{
		{"//go:build go1.21", "1.21.0"},
		{"//go:build linux && go1.22", "1.22.0"},
		{"//go:build go1.18 && go1.21", "1.21.0"},
		{"//go:build go1.18 || go1.21", "1.18.0"},
		{"//go:build go1.21 || windows", ""},
		{"//go:build !go1.21", ""},
		{"//go:build linux", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			x, err := constraint.Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, GuardVersion(x))
		})
	}
}

func TestSuppressed(t *testing.T) {
	t.Parallel()

	var g Guards
	g.Add("new.go", "1.21.0")
	g.Add("newer.go", "1.22.0")
	g.Add("old.go", "")

	minmax := capability.Capability{Name: capability.MinMaxBuiltins, Since: "1.21.0"}
	rangeInt := capability.Capability{Name: capability.RangeOverInt, Since: "1.22.0"}
	goBuild := capability.Capability{Name: capability.GoBuildConstraint, Since: "1.17.0"}

	assert.True(t, g.Suppressed(minmax, []string{"new.go", "newer.go"}))
	assert.False(t, g.Suppressed(minmax, []string{"new.go", "old.go"}), "also used unguarded")
	assert.False(t, g.Suppressed(rangeInt, []string{"new.go", "newer.go"}), "guarded below its release")
	assert.True(t, g.Suppressed(rangeInt, []string{"newer.go"}))
	assert.False(t, g.Suppressed(goBuild, []string{"newer.go"}), "needed by the guard itself")
	assert.False(t, g.Suppressed(minmax, nil))
	assert.Equal(t, 2, g.Len())
}

func TestCompiledFile(t *testing.T) {
	t.Parallel()

	const src = `package p

//line grammar.y:10
var _ = 0b1
`

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "parser.go", src, parser.SkipObjectResolution)
	require.NoError(t, err)

	r := NewResolver(fset, []*ast.File{f})
	lit := f.Decls[0].(*ast.GenDecl).Specs[0].(*ast.ValueSpec).Values[0]

	assert.Equal(t, "grammar.y", r.AttributionPoint(lit).File)
	assert.Equal(t, "parser.go", r.CompiledFile(lit.Pos()))
	assert.Empty(t, r.CompiledFile(token.NoPos))
}

func TestPackageStability(t *testing.T) {
	t.Parallel()

	imports := make(ImportTable)
	imports.Add("slices", capability.Stability{Feature: "slices", Since: "1.21.0"}, true)
	imports.Add("example.com/x", capability.Stability{}, false)

	got, ok := PackageStability("slices", imports)
	require.True(t, ok)
	assert.Equal(t, capability.Capability{Name: "slices", Kind: capability.LibraryItem, Since: "1.21.0"}, got)

	_, ok = PackageStability("example.com/x", imports)
	assert.False(t, ok)

	_, ok = PackageStability("strings", imports)
	assert.False(t, ok)
}
