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
	"go/types"
	"strconv"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/provenance"
	"fillmore-labs.com/minver/internal/stdlib"
)

// universe maps predeclared identifiers to the feature introducing them.
var universe = map[string]string{
	"any":        capability.PredeclaredAny,
	"clear":      capability.ClearBuiltin,
	"comparable": capability.PredeclaredComparable,
	"max":        capability.MinMaxBuiltins,
	"min":        capability.MinMaxBuiltins,
}

// semantic is the state of the type-aware stage for one package.
type semantic struct {
	pkg     *types.Package
	info    *types.Info
	history *stdlib.History
	imports provenance.ImportTable
	sink    Sink

	// scope is the innermost function or file scope being traversed.
	scope *types.Scope
}

// PostAnalysis detects features requiring type information in the files of in.
//
// Only items declared outside of pkg are considered.
func PostAnalysis(in *inspector.Inspector, pkg *types.Package, info *types.Info,
	history *stdlib.History, imports provenance.ImportTable, sink Sink,
) {
	s := &semantic{
		pkg:     pkg,
		info:    info,
		history: history,
		imports: imports,
		sink:    sink,
	}

	for f := range in.Root().Children() {
		s.inspectFile(f)
	}
}

func (s *semantic) inspectFile(c inspector.Cursor) {
	file, ok := c.Node().(*ast.File)
	if !ok {
		return
	}

	defer s.enterScope(s.info.Scopes[file])()

	for child := range c.Children() {
		s.inspect(child)
	}
}

// inspectFunc traverses a function declaration or literal with its own scope.
func (s *semantic) inspectFunc(c inspector.Cursor, ftype *ast.FuncType) {
	defer s.enterScope(s.info.Scopes[ftype])()

	for child := range c.Children() {
		s.inspect(child)
	}
}

// enterScope makes scope the current one and returns a function restoring the previous scope.
// A missing scope keeps the current one.
func (s *semantic) enterScope(scope *types.Scope) (restore func()) {
	previous := s.scope
	if scope != nil {
		s.scope = scope
	}

	return func() { s.scope = previous }
}

func (s *semantic) inspect(c inspector.Cursor) {
	nodes := []ast.Node{
		// keep-sorted start
		(*ast.AssignStmt)(nil),
		(*ast.BinaryExpr)(nil),
		(*ast.CallExpr)(nil),
		(*ast.CompositeLit)(nil),
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
		(*ast.Ident)(nil),
		(*ast.ImportSpec)(nil),
		(*ast.InterfaceType)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.SelectorExpr)(nil),
		// keep-sorted end
	}

	c.Inspect(nodes, func(i inspector.Cursor) bool {
		switch n := i.Node().(type) {
		// keep-sorted start newline_separated=yes
		case *ast.AssignStmt:
			if (n.Tok == token.SHL_ASSIGN || n.Tok == token.SHR_ASSIGN) && len(n.Rhs) == 1 {
				s.shiftCount(n.Rhs[0])
			}

		case *ast.BinaryExpr:
			if n.Op == token.SHL || n.Op == token.SHR {
				s.shiftCount(n.Y)
			}

		case *ast.CallExpr:
			s.conversion(n)

		case *ast.CompositeLit:
			s.compositeLit(n)

		case *ast.FuncDecl:
			s.inspectFunc(i, n.Type)

			return false // visited with the function scope

		case *ast.FuncLit:
			s.inspectFunc(i, n.Type)

			return false // visited with the function scope

		case *ast.Ident:
			s.ident(n)

		case *ast.ImportSpec:
			s.importSpec(n)

		case *ast.InterfaceType:
			s.interfaceType(n)

		case *ast.RangeStmt:
			s.rangeStmt(n)

		case *ast.SelectorExpr:
			s.selector(n)

			// keep-sorted end
		}

		return true
	})
}

// ident detects predeclared identifiers and package-level objects of the standard library.
func (s *semantic) ident(id *ast.Ident) {
	obj, ok := s.info.Uses[id]
	if !ok || obj == nil {
		return
	}

	if feature, ok := universe[id.Name]; ok {
		if !member(obj) && s.predeclared(id) {
			s.sink.Observe(feature, id)
		}

		return
	}

	if st, ok := s.object(obj); ok {
		s.sink.ObserveLibrary(st, id)
	}
}

// predeclared reports whether id resolves to the universe scope from the current scope.
func (s *semantic) predeclared(id *ast.Ident) bool {
	if s.scope == nil {
		return false
	}

	// Function scopes extend over the body only, signatures resolve from the function scope itself.
	inner := s.scope.Innermost(id.Pos())
	if inner == nil {
		inner = s.scope
	}

	_, found := inner.LookupParent(id.Name, id.Pos())

	return found != nil && found.Parent() == types.Universe
}

// member reports whether obj is a field or method, which never name a predeclared identifier.
func member(obj types.Object) bool {
	switch obj := obj.(type) {
	case *types.Var:
		return obj.IsField()

	case *types.Func:
		return obj.Signature().Recv() != nil

	default:
		return false
	}
}

func (s *semantic) importSpec(n *ast.ImportSpec) {
	if n.Name == nil || (n.Name.Name != "_" && n.Name.Name != ".") {
		return
	}

	path, err := strconv.Unquote(n.Path.Value)
	if err != nil {
		return
	}

	if c, ok := provenance.PackageStability(path, s.imports); ok {
		s.sink.ObserveLibrary(capability.Stability{Feature: c.Name, Since: c.Since}, n)
	}
}

// selector handles qualified identifiers, field and method selections.
func (s *semantic) selector(n *ast.SelectorExpr) {
	if sel, ok := s.info.Selections[n]; ok {
		var (
			st capability.Stability
			ok bool
		)

		switch sel.Kind() {
		case types.FieldVal:
			st, ok = s.field(sel)

		case types.MethodVal, types.MethodExpr:
			if fn, isFunc := sel.Obj().(*types.Func); isFunc {
				st, ok = s.method(fn)
			}
		}

		if ok {
			s.sink.ObserveLibrary(st, n.Sel)
		}

		return
	}

	x, ok := n.X.(*ast.Ident)
	if !ok {
		return
	}

	pkgName, ok := s.info.Uses[x].(*types.PkgName)
	if !ok {
		return
	}

	if c, ok := provenance.PackageStability(pkgName.Imported().Path(), s.imports); ok {
		s.sink.ObserveLibrary(capability.Stability{Feature: c.Name, Since: c.Since}, n)
	}
}

// compositeLit detects keyed fields of standard library struct types.
func (s *semantic) compositeLit(n *ast.CompositeLit) {
	named := namedOf(s.info.TypeOf(n))
	if named == nil {
		return
	}

	obj := named.Origin().Obj()

	pkg := obj.Pkg()
	if pkg == nil || pkg == s.pkg {
		return
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		return
	}

	for _, elt := range n.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}

		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}

		if st, ok := s.history.Lookup(pkg.Path(), obj.Name(), key.Name); ok {
			s.sink.ObserveLibrary(st, key)
		}
	}
}

func (s *semantic) rangeStmt(n *ast.RangeStmt) {
	t := s.info.TypeOf(n.X)
	if t == nil {
		return
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		if u.Info()&types.IsInteger != 0 {
			s.sink.Observe(capability.RangeOverInt, n.X)
		}

	case *types.Signature:
		s.sink.Observe(capability.RangeOverFunc, n.X)
	}
}

// conversion detects conversions from slices to arrays and array pointers.
func (s *semantic) conversion(n *ast.CallExpr) {
	if len(n.Args) != 1 {
		return
	}

	tv, ok := s.info.Types[n.Fun]
	if !ok || !tv.IsType() {
		return
	}

	arg := s.info.TypeOf(n.Args[0])
	if arg == nil {
		return
	}

	if _, ok := arg.Underlying().(*types.Slice); !ok {
		return
	}

	switch target := tv.Type.Underlying().(type) {
	case *types.Array:
		s.sink.Observe(capability.SliceToArray, n)

	case *types.Pointer:
		if _, ok := target.Elem().Underlying().(*types.Array); ok {
			s.sink.Observe(capability.SliceToArrayPointer, n)
		}
	}
}

// shiftCount detects non-constant shift counts of signed integer type.
func (s *semantic) shiftCount(y ast.Expr) {
	tv, ok := s.info.Types[y]
	if !ok || tv.Value != nil || tv.Type == nil {
		return
	}

	b, ok := tv.Type.Underlying().(*types.Basic)
	if !ok {
		return
	}

	if b.Info()&types.IsInteger != 0 && b.Info()&types.IsUnsigned == 0 {
		s.sink.Observe(capability.SignedShiftCounts, y)
	}
}

// interfaceType detects embedded interfaces with overlapping method sets.
func (s *semantic) interfaceType(n *ast.InterfaceType) {
	if n.Methods == nil {
		return
	}

	seen := make(map[string]struct{})

	add := func(name string) bool {
		if _, ok := seen[name]; ok {
			return false
		}

		seen[name] = struct{}{}

		return true
	}

	for _, field := range n.Methods.List {
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				if !add(name.Name) {
					s.sink.Observe(capability.OverlappingInterfaceEmbeds, n)

					return
				}
			}

			continue
		}

		t := s.info.TypeOf(field.Type)
		if t == nil {
			continue
		}

		iface, ok := t.Underlying().(*types.Interface)
		if !ok {
			continue
		}

		for m := range iface.Methods() {
			if !add(m.Name()) {
				s.sink.Observe(capability.OverlappingInterfaceEmbeds, n)

				return
			}
		}
	}
}
