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

// Package provenance determines where a capability usage is charged to.
//
// Code produced by generators (cgo, parser generators, templates) carries
// //line directives mapping it back to its origin. Usages inside such code
// are attributed to the outermost origin, following chains of remapped
// files within the package.
package provenance

import (
	"go/ast"
	"go/token"

	"fortio.org/safecast"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/minver/internal/report"
)

// maxChain bounds the number of remapped files followed.
const maxChain = 16

// Resolver maps positions of one package to their attribution point.
type Resolver struct {
	fset  *token.FileSet
	files map[string]*token.File
}

// NewResolver creates a [Resolver] for the given files of a package.
func NewResolver(fset *token.FileSet, files []*ast.File) *Resolver {
	r := &Resolver{fset: fset, files: make(map[string]*token.File, len(files))}

	for _, f := range files {
		if tf := fset.File(f.FileStart); tf != nil {
			r.files[tf.Name()] = tf
		}
	}

	return r
}

// FromExpansion reports whether pos has been remapped by a //line directive.
func (r *Resolver) FromExpansion(pos token.Pos) bool {
	raw, adjusted := r.fset.PositionFor(pos, false), r.fset.PositionFor(pos, true)

	return raw.Filename != adjusted.Filename || raw.Line != adjusted.Line
}

// CompiledFile returns the name of the file containing pos, ignoring //line directives.
func (r *Resolver) CompiledFile(pos token.Pos) string {
	if tf := r.fset.File(pos); tf != nil {
		return tf.Name()
	}

	return ""
}

// AttributionPoint returns the location rng is charged to.
//
// Positions not remapped are returned unchanged. Otherwise the //line
// targets are followed as long as they point into another file of the
// package, and the last target is returned.
func (r *Resolver) AttributionPoint(rng analysis.Range) report.SourceLocation {
	if !rng.Pos().IsValid() {
		return report.SourceLocation{}
	}

	start := r.origin(r.fset.PositionFor(rng.Pos(), true))

	end := start
	if e := rng.End(); e.IsValid() {
		end = r.origin(r.fset.PositionFor(e, true))
	}

	if end.Filename != start.Filename || end.Line < start.Line {
		// span crosses a remapping boundary
		end = start
	}

	return location(start, end)
}

// origin follows the chain of //line targets within the package.
func (r *Resolver) origin(p token.Position) token.Position {
	for range maxChain {
		tf, ok := r.files[p.Filename]
		if !ok || p.Line < 1 || p.Line > tf.LineCount() {
			return p
		}

		offset := tf.Offset(tf.LineStart(p.Line))
		if p.Column > 1 {
			offset += p.Column - 1
		}

		offset = min(offset, tf.Size())

		next := r.fset.PositionFor(tf.Pos(offset), true)
		if next.Filename == p.Filename && next.Line == p.Line {
			return p // not remapped
		}

		p = next
	}

	return p
}

func location(start, end token.Position) report.SourceLocation {
	// conversion failures leave the field zero
	startLine, _ := safecast.Conv[uint32](start.Line)
	startCol, _ := safecast.Conv[uint32](start.Column)
	endLine, _ := safecast.Conv[uint32](end.Line)
	endCol, _ := safecast.Conv[uint32](end.Column)

	return report.SourceLocation{
		File:      start.Filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}
