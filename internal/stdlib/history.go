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

// Package stdlib provides the stabilization history of the Go standard library API.
//
// The history is read from the API files shipped with every Go distribution
// in $GOROOT/api. Each go1.N.txt file lists the items added in that release.
package stdlib

import (
	"errors"
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fillmore-labs.com/minver/internal/capability"
)

// ErrNoHistory is returned when no API files could be found.
var ErrNoHistory = errors.New("no API history found")

// History records the first release of every standard library package and exported item.
type History struct {
	pkgs map[string]*pkgAPI
}

type pkgAPI struct {
	since   capability.Version
	ids     map[string]capability.Version
	members map[string]map[string]capability.Version
}

// NewHistory creates an empty [History].
func NewHistory() *History {
	return &History{pkgs: make(map[string]*pkgAPI)}
}

// Load reads every go1*.txt file in dir.
func Load(dir string) (*History, error) {
	names, err := filepath.Glob(filepath.Join(dir, "go1*.txt"))
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoHistory, dir)
	}

	h := NewHistory()

	for _, name := range names {
		v, err := fileVersion(filepath.Base(name))
		if err != nil {
			continue // not a release file
		}

		if err := h.parseFile(name, v); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// LoadDefault loads the history of the Go distribution in GOROOT.
// The result is cached for the lifetime of the process.
var LoadDefault = sync.OnceValues(func() (*History, error) {
	goroot := build.Default.GOROOT
	if goroot == "" {
		return nil, fmt.Errorf("%w: GOROOT not set", ErrNoHistory)
	}

	return Load(filepath.Join(goroot, "api"))
})

func (h *History) parseFile(name string, v capability.Version) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := h.Parse(f, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	return nil
}

// fileVersion extracts the release from an API file name: "go1.txt" is 1.0, "go1.21.txt" is 1.21.
func fileVersion(base string) (capability.Version, error) {
	return capability.ParseVersion(strings.TrimSuffix(base, ".txt"))
}

// add records an item, keeping the earliest release.
func (h *History) add(path, typ, name string, v capability.Version) {
	p, ok := h.pkgs[path]
	if !ok {
		p = &pkgAPI{since: v, ids: make(map[string]capability.Version)}
		h.pkgs[path] = p
	}

	if v.Compare(p.since) < 0 {
		p.since = v
	}

	var m map[string]capability.Version
	if typ == "" {
		m = p.ids
	} else {
		if p.members == nil {
			p.members = make(map[string]map[string]capability.Version)
		}

		m = p.members[typ]
		if m == nil {
			m = make(map[string]capability.Version)
			p.members[typ] = m
		}
	}

	if old, ok := m[name]; !ok || v.Compare(old) < 0 {
		m[name] = v
	}
}

// Package returns the stability of a standard library package, which is the
// release of its earliest item.
func (h *History) Package(path string) (capability.Stability, bool) {
	p, ok := h.pkgs[path]
	if !ok {
		return capability.Stability{}, false
	}

	return capability.Stability{Feature: path, Since: p.since}, true
}

// Lookup returns the stability of a package-level item when typ is empty,
// otherwise of the field or method name of type typ.
func (h *History) Lookup(path, typ, name string) (capability.Stability, bool) {
	p, ok := h.pkgs[path]
	if !ok {
		return capability.Stability{}, false
	}

	if typ == "" {
		v, ok := p.ids[name]
		if !ok {
			return capability.Stability{}, false
		}

		return capability.Stability{Feature: path + "." + name, Since: v}, true
	}

	v, ok := p.members[typ][name]
	if !ok {
		return capability.Stability{}, false
	}

	return capability.Stability{Feature: path + "." + typ + "." + name, Since: v}, true
}

// Len returns the number of known packages.
func (h *History) Len() int {
	return len(h.pkgs)
}
