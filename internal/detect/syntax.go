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
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/provenance"
	"fillmore-labs.com/minver/internal/stdlib"
)

// PostExpansion detects syntactic features of the files in in and returns the import table
// of the package.
func PostExpansion(in *inspector.Inspector, history *stdlib.History, sink Sink) provenance.ImportTable {
	imports := make(provenance.ImportTable)

	nodes := []ast.Node{
		// keep-sorted start
		(*ast.BasicLit)(nil),
		(*ast.BinaryExpr)(nil),
		(*ast.FuncDecl)(nil),
		(*ast.ImportSpec)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.SliceExpr)(nil),
		(*ast.TypeSpec)(nil),
		(*ast.UnaryExpr)(nil),
		// keep-sorted end
	}

	for c := range in.Root().Preorder(nodes...) {
		switch n := c.Node().(type) {
		// keep-sorted start newline_separated=yes
		case *ast.BasicLit:
			literal(n, sink)

		case *ast.BinaryExpr:
			if n.Op == token.OR && typeElement(c) {
				sink.Observe(capability.TypeSets, n)
			}

		case *ast.FuncDecl:
			if params := n.Type.TypeParams; params != nil && params.NumFields() > 0 {
				sink.Observe(capability.TypeParameters, params)
			}

		case *ast.ImportSpec:
			path, err := strconv.Unquote(n.Path.Value)
			if err != nil {
				break
			}

			s, ok := history.Package(path)
			imports.Add(path, s, ok)

		case *ast.RangeStmt:
			if n.Key == nil && n.Value == nil {
				sink.Observe(capability.RangeWithoutVars, n)
			}

		case *ast.SliceExpr:
			if n.Slice3 {
				sink.Observe(capability.FullSliceExpressions, n)
			}

		case *ast.TypeSpec:
			typeSpec(n, sink)

		case *ast.UnaryExpr:
			if n.Op == token.TILDE {
				sink.Observe(capability.TypeSets, n)
			}

			// keep-sorted end
		}
	}

	return imports
}

func typeSpec(n *ast.TypeSpec, sink Sink) {
	generic := n.TypeParams != nil && n.TypeParams.NumFields() > 0
	if generic {
		sink.Observe(capability.TypeParameters, n.TypeParams)
	}

	if n.Assign.IsValid() {
		sink.Observe(capability.TypeAliases, n)

		if generic {
			sink.Observe(capability.GenericTypeAliases, n)
		}
	}
}

// literal detects the number literal forms added in Go 1.13.
func literal(n *ast.BasicLit, sink Sink) {
	value := n.Value

	switch n.Kind {
	case token.INT, token.FLOAT, token.IMAG:
	default:
		return
	}

	if strings.Contains(value, "_") {
		sink.Observe(capability.DigitSeparators, n)
	}

	if len(value) < 2 || value[0] != '0' {
		return
	}

	switch value[1] {
	case 'b', 'B':
		sink.Observe(capability.BinaryIntegerLiterals, n)

	case 'o', 'O':
		sink.Observe(capability.OctalIntegerLiterals, n)

	case 'x', 'X':
		if n.Kind != token.INT && strings.ContainsAny(value, "pP") {
			sink.Observe(capability.HexadecimalFloatLiteral, n)
		}
	}
}

// typeElement reports whether c is the outermost union of a constraint:
// an interface element or a type parameter constraint.
func typeElement(c inspector.Cursor) bool {
	if kind, _ := c.ParentEdge(); kind != edge.Field_Type {
		return false
	}

	field := c.Parent()
	if kind, _ := field.ParentEdge(); kind != edge.FieldList_List {
		return false
	}

	switch kind, _ := field.Parent().ParentEdge(); kind {
	case edge.InterfaceType_Methods, edge.FuncType_TypeParams, edge.TypeSpec_TypeParams:
		return true

	default:
		return false
	}
}
