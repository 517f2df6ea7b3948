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
	"go/types"

	"fillmore-labs.com/minver/internal/capability"
)

// object returns the stability of a package-level object declared in another package.
func (s *semantic) object(obj types.Object) (capability.Stability, bool) {
	if fn, ok := obj.(*types.Func); ok {
		obj = fn.Origin()
	}

	pkg := obj.Pkg()
	if pkg == nil || pkg == s.pkg || pkg.Scope().Lookup(obj.Name()) != obj {
		return capability.Stability{}, false
	}

	return s.history.Lookup(pkg.Path(), "", obj.Name())
}

// method returns the stability of a method declared in another package.
// The owner is the named receiver type the method is declared on.
func (s *semantic) method(fn *types.Func) (capability.Stability, bool) {
	fn = fn.Origin()

	pkg := fn.Pkg()
	if pkg == nil || pkg == s.pkg {
		return capability.Stability{}, false
	}

	recv := fn.Signature().Recv()
	if recv == nil {
		return capability.Stability{}, false
	}

	owner := namedOf(recv.Type())
	if owner == nil {
		return capability.Stability{}, false
	}

	return s.history.Lookup(pkg.Path(), owner.Origin().Obj().Name(), fn.Name())
}

// field returns the stability of a selected struct field declared in another package.
// The owner is the named struct type containing the field, following embedded fields.
func (s *semantic) field(sel *types.Selection) (capability.Stability, bool) {
	v, ok := sel.Obj().(*types.Var)
	if !ok {
		return capability.Stability{}, false
	}

	pkg := v.Pkg()
	if pkg == nil || pkg == s.pkg {
		return capability.Stability{}, false
	}

	owner := fieldOwner(sel.Recv(), sel.Index())
	if owner == nil || owner.Obj().Pkg() != pkg {
		return capability.Stability{}, false
	}

	return s.history.Lookup(pkg.Path(), owner.Origin().Obj().Name(), v.Name())
}

// fieldOwner walks the field index path from recv and returns the named type
// of the struct holding the last field.
func fieldOwner(recv types.Type, index []int) *types.Named {
	var owner *types.Named

	t := recv
	for _, i := range index {
		t = deref(t)

		st, ok := t.Underlying().(*types.Struct)
		if !ok || i >= st.NumFields() {
			return nil
		}

		owner, _ = types.Unalias(t).(*types.Named)
		t = st.Field(i).Type()
	}

	return owner
}

// namedOf returns the named type of t or the type t points to.
func namedOf(t types.Type) *types.Named {
	if t == nil {
		return nil
	}

	named, _ := types.Unalias(deref(t)).(*types.Named)

	return named
}

func deref(t types.Type) types.Type {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		return p.Elem()
	}

	return t
}
