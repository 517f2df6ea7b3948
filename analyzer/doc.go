// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package analyzer implements the minver static analysis pass.
//
// # Overview
//
// MinVer determines the oldest Go release able to compile a package. It detects
// language features (generics, range over functions, new literal forms, toolchain
// directives) and standard library packages, functions, types, methods and fields,
// and records for every one of them where it is used.
//
// # Example
//
//	//go:build go1.21
//
//	package example
//
//	func Sum[T int | float64](xs []T) (s T) {
//	    for i := range len(xs) { // range_over_int requires go1.22
//	        s += xs[i]
//	    }
//	    return min(s, 100) // min_max_builtins requires go1.21
//	}
//
// With -max-version=1.21 the range over an integer is reported.
//
// # Results
//
// The analyzer result is the report of the package: the capabilities used,
// newest first, and the source locations of every usage. Locations follow
// //line directives back to the file the code was generated from.
//
// # Version Guards
//
// A file constrained by `//go:build go1.N` is only compiled by Go 1.N and later.
// Capabilities up to Go 1.N used in such a file do not raise the requirements of
// the package. Disable with -version-guards=false.
package analyzer
