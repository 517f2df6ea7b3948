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

package astutil_test

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"

	. "fillmore-labs.com/minver/internal/astutil"
	"fillmore-labs.com/minver/internal/testsource"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"//nolint:minver", true},
		{"// nolint:minver", true},
		{"//nolint:errcheck,minver", true},
		{"//nolint:all", true},
		{"//nolint:errcheck", false},
		{"// minver", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, CommentHasNoLint(&ast.Comment{Text: tt.text}))
		})
	}
}

func TestCurrentFile(t *testing.T) {
	t.Parallel()

	fset, f := testsource.Parse(t, `
var a = min(1, 2) //nolint:minver

var b = max(1, 2)
`)

	cf := NewCurrentFile(fset, f)
	assert.True(t, cf.Valid())
	assert.False(t, cf.Generated())
	assert.False(t, cf.NoLintFile())
	assert.Equal(t, "test.go", cf.Name())

	var specs []*ast.ValueSpec
	ast.Inspect(f, func(n ast.Node) bool {
		if s, ok := n.(*ast.ValueSpec); ok {
			specs = append(specs, s)
		}

		return true
	})

	if assert.Len(t, specs, 2) {
		assert.True(t, cf.Contains(specs[0].Pos()))
		assert.True(t, cf.NoLintComment(specs[0].Values[0].Pos()))
		assert.False(t, cf.NoLintComment(specs[1].Values[0].Pos()))
	}

	assert.False(t, NewCurrentFile(fset, nil).Valid())
}

func TestNoLintFile(t *testing.T) {
	t.Parallel()

	fset, f := testsource.Parse(t, `// Code generated by hand. DO NOT EDIT.

// Package test is excluded.
//
//nolint:minver
package test
`)

	cf := NewCurrentFile(fset, f)
	assert.True(t, cf.Generated())
	assert.True(t, cf.NoLintFile())
}
