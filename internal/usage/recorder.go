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

package usage

import (
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/provenance"
)

// Recorder feeds node observations into a [Collector], charging each usage to its attribution point.
type Recorder struct {
	collector *Collector
	resolver  *provenance.Resolver
	track     bool
}

// Recorder returns a [Recorder] resolving positions with r.
//
// When track is set, observations are also kept as [Site] values. This must
// only be used for files of the analyzed file set.
func (c *Collector) Recorder(r *provenance.Resolver, track bool) Recorder {
	return Recorder{collector: c, resolver: r, track: track}
}

// Observe records a usage of the named language capability at rng.
func (r Recorder) Observe(name string, rng analysis.Range) {
	r.collector.record(name, r.place(rng))

	if r.track {
		r.collector.sites = append(r.collector.sites, Site{Name: name, Pos: rng.Pos(), End: rng.End()})
	}
}

// ObserveLibrary records a usage of a standard library item at rng.
func (r Recorder) ObserveLibrary(s capability.Stability, rng analysis.Range) {
	if !s.Since.Valid() {
		return
	}

	r.collector.recordLibrary(s, r.place(rng))

	if r.track {
		r.collector.sites = append(r.collector.sites, Site{Name: s.Feature, Since: s.Since, Pos: rng.Pos(), End: rng.End()})
	}
}

func (r Recorder) place(rng analysis.Range) place {
	return place{loc: r.resolver.AttributionPoint(rng), file: r.resolver.CompiledFile(rng.Pos())}
}
