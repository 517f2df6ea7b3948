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

// Package detect finds usages of versioned language features and standard library items.
//
// Detection runs in three stages over one package:
//
//   - [PreExpansion] reads directives and build constraints from the raw comments
//     of all files, including those excluded by the current build configuration.
//   - [PostExpansion] walks the syntax trees of the selected files without type
//     information and builds the [provenance.ImportTable].
//   - [PostAnalysis] walks the same trees with full type information.
//
// Shapes a stage can't classify are skipped.
package detect

import (
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/minver/internal/capability"
)

// Sink receives the observations of the detection stages.
type Sink interface {
	// Observe records a usage of a language feature from the [capability.Catalog].
	Observe(name string, rng analysis.Range)

	// ObserveLibrary records a usage of a standard library package or item.
	ObserveLibrary(s capability.Stability, rng analysis.Range)
}
