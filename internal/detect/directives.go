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

package detect

import (
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"strings"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/provenance"
)

// directives maps //go: directive prefixes to the feature they require.
var directives = [...]struct {
	prefix  string
	feature string
	header  bool
}{
	{"//go:embed ", capability.GoEmbedDirective, false},
	{"//go:debug ", capability.GoDebugDirective, true},
	{"//go:wasmimport ", capability.GoWasmImportDirective, false},
	{"//go:wasmexport ", capability.GoWasmExportDirective, false},
}

// buildTags maps build tags to the feature introducing them.
var buildTags = map[string]string{
	"unix":    capability.BuildTagUnix,
	"wasip1":  capability.BuildTagWasip1,
	"ios":     capability.BuildTagIOS,
	"loong64": capability.BuildTagLoong64,
}

// PreExpansion detects directives and build constraints in the comments of files
// and adds the version guards of the files to guards.
func PreExpansion(fset *token.FileSet, files []*ast.File, sink Sink, guards *provenance.Guards) {
	for _, f := range files {
		tf := fset.File(f.FileStart)
		if tf == nil {
			continue
		}

		preExpansion(f, tf.Name(), sink, guards)
	}
}

func preExpansion(f *ast.File, filename string, sink Sink, guards *provenance.Guards) {
	var (
		goBuild   *ast.Comment
		plusBuild bool
	)

	for _, group := range f.Comments {
		for _, c := range group.List {
			header := c.Pos() < f.Package

			switch {
			case header && constraint.IsGoBuild(c.Text):
				x, err := constraint.Parse(c.Text)
				if err != nil {
					continue
				}

				goBuild = c
				guards.Add(filename, provenance.GuardVersion(x))
				observeTags(x, c, sink)

			case header && constraint.IsPlusBuild(c.Text):
				plusBuild = true

				if x, err := constraint.Parse(c.Text); err == nil {
					observeTags(x, c, sink)
				}

			default:
				observeDirective(c, header, sink)
			}
		}
	}

	if goBuild != nil && !plusBuild {
		// without a // +build line older releases ignore the constraint
		sink.Observe(capability.GoBuildConstraint, goBuild)
	}
}

func observeDirective(c *ast.Comment, header bool, sink Sink) {
	if !strings.HasPrefix(c.Text, "//go:") {
		return
	}

	for _, d := range directives {
		if d.header && !header {
			continue
		}

		if strings.HasPrefix(c.Text, d.prefix) {
			sink.Observe(d.feature, c)

			return
		}
	}
}

func observeTags(x constraint.Expr, c *ast.Comment, sink Sink) {
	switch x := x.(type) {
	case *constraint.TagExpr:
		if feature, ok := buildTags[x.Tag]; ok {
			sink.Observe(feature, c)
		}

	case *constraint.NotExpr:
		observeTags(x.X, c, sink)

	case *constraint.AndExpr:
		observeTags(x.X, c, sink)
		observeTags(x.Y, c, sink)

	case *constraint.OrExpr:
		observeTags(x.X, c, sink)
		observeTags(x.Y, c, sink)
	}
}

// ParseIgnored parses the Go files excluded by the build configuration into a
// separate file set. Files that can't be read are skipped, syntax errors keep
// whatever part of the file could be parsed.
func ParseIgnored(names []string) (*token.FileSet, []*ast.File) {
	fset := token.NewFileSet()

	var files []*ast.File

	for _, name := range names {
		if !strings.HasSuffix(name, ".go") {
			continue
		}

		f, _ := parser.ParseFile(fset, name, nil, parser.ParseComments|parser.SkipObjectResolution)
		if f == nil {
			continue
		}

		files = append(files, f)
	}

	return fset, files
}
