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

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/report"
)

// printer writes an aggregated report.
type printer struct {
	w      io.Writer
	format format

	version, name, kind, location *color.Color
}

func newPrinter(w io.Writer, f format, colors bool) printer {
	p := printer{
		w:        w,
		format:   f,
		version:  color.New(color.FgCyan, color.Bold),
		name:     color.New(color.Bold),
		kind:     color.New(color.Faint),
		location: color.New(color.FgYellow),
	}

	for _, c := range [...]*color.Color{p.version, p.name, p.kind, p.location} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

type jsonCapability struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Since string `json:"since,omitempty"`
}

type jsonReport struct {
	MinimumVersion string                             `json:"minimum_version"`
	Capabilities   []jsonCapability                   `json:"capabilities"`
	Usages         map[string][]report.SourceLocation `json:"usages,omitempty"`
	Incomplete     []string                           `json:"incomplete,omitempty"`
}

// summary prints the minimum version and all capabilities, newest first.
func (p printer) summary(agg *report.Aggregate, withUsages bool) error {
	minimum, err := agg.MinimumVersion()
	if err != nil {
		return err
	}

	all := agg.AllCapabilities()

	if p.format == formatJSON {
		out := jsonReport{
			MinimumVersion: minimum.Go(),
			Capabilities:   make([]jsonCapability, 0, len(all)),
			Incomplete:     agg.Incomplete(),
		}

		if withUsages {
			out.Usages = make(map[string][]report.SourceLocation, len(all))
		}

		for _, c := range all {
			out.Capabilities = append(out.Capabilities, jsonCapability{Name: c.Name, Kind: c.Kind.String(), Since: c.Since.String()})

			if withUsages {
				out.Usages[c.Name] = agg.UsagesOf(c.Name)
			}
		}

		return p.json(out)
	}

	if _, err := fmt.Fprintf(p.w, "Minimum Go version: %s\n", p.version.Sprint(minimum.Go())); err != nil {
		return err
	}

	for _, c := range all {
		if err := p.capability(c); err != nil {
			return err
		}

		if !withUsages {
			continue
		}

		for _, l := range agg.UsagesOf(c.Name) {
			if _, err := fmt.Fprintf(p.w, "        %s\n", p.location.Sprint(l)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p printer) capability(c capability.Capability) error {
	_, err := fmt.Fprintf(p.w, "  %s %s %s\n",
		p.version.Sprintf("%-8s", c.Since.Go()), p.name.Sprint(c.Name), p.kind.Sprintf("(%s)", c.Kind))

	return err
}

// usages prints the locations a single capability, named by its identifier or an alias, is used at.
func (p printer) usages(agg *report.Aggregate, name string) error {
	name = capability.Default().Canonical(name)
	locs := agg.UsagesOf(name)

	if p.format == formatJSON {
		if locs == nil {
			locs = []report.SourceLocation{}
		}

		return p.json(map[string][]report.SourceLocation{name: locs})
	}

	for _, l := range locs {
		if _, err := fmt.Fprintln(p.w, p.location.Sprint(l)); err != nil {
			return err
		}
	}

	return nil
}

func (p printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
