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

// Minver reports the minimum Go release required to compile a set of packages.
//
// Usage:
//
//	minver [--config file] [--format text|json] [--usages name] [packages]
//
// The packages are analyzed by `go vet`, which runs minver again as its vet tool.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"golang.org/x/tools/go/analysis/unitchecker"

	"fillmore-labs.com/minver/internal/driver"
)

func main() {
	if os.Getenv(driver.EnvVettool) != "" {
		vettool()

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "minver: %v\n", err)
		os.Exit(1)
	}
}

// vettool runs the analyzer as a `go vet` tool. It does not return.
func vettool() {
	logger := newLogger(os.Stderr, os.Getenv(driver.EnvDebug) != "")

	a, err := driver.VetAnalyzer(os.Getenv, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minver: %v\n", err)
		os.Exit(1)
	}

	unitchecker.Main(a)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix: "minver",
		Level:  level,
	})

	return slog.New(handler)
}
