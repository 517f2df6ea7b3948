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

package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"
	"time"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/config"
	"fillmore-labs.com/minver/internal/detect"
	"fillmore-labs.com/minver/internal/ipc"
	"fillmore-labs.com/minver/internal/provenance"
	"fillmore-labs.com/minver/internal/report"
	"fillmore-labs.com/minver/internal/usage"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// sendTimeout bounds the transmission of a unit report.
const sendTimeout = 30 * time.Second

// Run executes the minver analyzer's pipeline and returns the *[report.UnitReport] of the package.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("minver: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "MinVer")
	defer task.End()

	unit := p.Pkg.Path()
	trace.Log(ctx, "package", unit)

	history, complete := r.history()

	collector := usage.New()
	guards := &provenance.Guards{}
	sink := collector.Recorder(provenance.NewResolver(p.Fset, p.Files), true)

	// Stage A: directives and build constraints, including files excluded by the build configuration
	func() {
		defer trace.StartRegion(ctx, "PreExpansion").End()

		detect.PreExpansion(p.Fset, p.Files, sink, guards)

		if len(p.IgnoredFiles) > 0 {
			fset, ignored := detect.ParseIgnored(p.IgnoredFiles)
			detect.PreExpansion(fset, ignored, collector.Recorder(provenance.NewResolver(fset, ignored), false), guards)
		}
	}()

	// Stage B: syntactic features
	imports := func() provenance.ImportTable {
		defer trace.StartRegion(ctx, "PostExpansion").End()

		return detect.PostExpansion(in, history, sink)
	}()

	// Stage C: features requiring type information
	func() {
		defer trace.StartRegion(ctx, "PostAnalysis").End()

		detect.PostAnalysis(in, p.Pkg, p.TypesInfo, history, imports, sink)
	}()

	var suppress usage.Suppressor
	if r.Behavior.Enabled(config.VersionGuards) {
		suppress = guards
	}

	catalog := capability.Default()

	unitReport, err := collector.Export(unit, catalog, suppress)
	if err != nil {
		return nil, fmt.Errorf("minver: %w", err)
	}

	unitReport.Incomplete = !complete

	r.logger().Debug("Package analyzed",
		slog.String("unit", unit),
		slog.Int("capabilities", len(unitReport.Capabilities)),
		slog.Int("guarded_files", guards.Len()))

	if r.Server != "" {
		if err := send(ctx, r.Server, unitReport); err != nil {
			return nil, fmt.Errorf("minver: %w", err)
		}
	}

	if r.MaxVersion.Valid() {
		d := diagnostics{
			pass:     p,
			catalog:  catalog,
			max:      r.MaxVersion,
			ignore:   r.Ignore,
			guards:   guards,
			behavior: r.Behavior,
		}
		d.report(ctx, collector.Sites())
	}

	return &unitReport, nil
}

func send(ctx context.Context, addr string, unitReport report.UnitReport) error {
	defer trace.StartRegion(ctx, "Send").End()

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	return ipc.SendReport(ctx, addr, unitReport)
}
