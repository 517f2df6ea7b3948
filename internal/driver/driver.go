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

// Package driver runs the analyzer over a set of packages with `go vet` and aggregates the unit reports.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/minver/analyzer"
	"fillmore-labs.com/minver/internal/ipc"
	"fillmore-labs.com/minver/internal/report"
)

// Environment variables passed to the analysis processes.
const (
	// EnvVettool marks a process started by `go vet` on behalf of a [Driver].
	EnvVettool = "MINVER_VETTOOL"

	// EnvServer is the address unit reports are sent to.
	EnvServer = "MINVER_SERVER"

	// EnvConfig is the configuration file applied to the analyzer.
	EnvConfig = "MINVER_CONFIG"

	// EnvDebug enables debug output of the analysis processes.
	EnvDebug = "MINVER_DEBUG"
)

// ErrVetFailed is returned when `go vet` exits unsuccessfully, either because
// packages failed to load or because diagnostics were reported.
var ErrVetFailed = errors.New("go vet failed")

// Driver analyzes packages in a child `go vet` process using the running executable as vet tool.
type Driver struct {
	// Patterns are the package patterns to analyze, "./..." when empty.
	Patterns []string

	// Dir is the working directory of `go vet`.
	Dir string

	// ConfigFile is passed to the analysis processes, if set.
	ConfigFile string

	// Executable is the vet tool, the running executable when empty.
	Executable string

	// Stderr receives the output of `go vet`, [os.Stderr] when nil.
	Stderr io.Writer

	// Verbose enables debug output of the analysis processes.
	Verbose bool

	// Logger receives debug output. The default logger is used when nil.
	Logger *slog.Logger
}

// Run analyzes the packages and returns the aggregate of their reports.
//
// When `go vet` fails after analyzing packages the aggregate of the received
// reports is returned together with an error wrapping [ErrVetFailed].
func (d *Driver) Run(ctx context.Context) (*report.Aggregate, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exe := d.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("locating vet tool: %w", err)
		}
	}

	srv, err := ipc.Start(ctx, logger)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "go", d.Args(exe)...)
	cmd.Dir = d.Dir
	cmd.Env = d.Environ(os.Environ(), srv.Addr())
	cmd.Stdout = d.stderr()
	cmd.Stderr = d.stderr()

	logger.Debug("Running go vet", slog.Any("args", cmd.Args), slog.String("dir", d.Dir))

	vetErr := cmd.Run()

	reports, err := srv.Collect(ctx)
	if err != nil {
		return nil, errors.Join(err, vetErr)
	}

	logger.Debug("Reports collected", slog.Int("units", len(reports)))

	agg := report.NewAggregate(reports)

	if vetErr != nil {
		return agg, fmt.Errorf("%w: %w", ErrVetFailed, vetErr)
	}

	return agg, nil
}

// Args returns the arguments of the `go vet` invocation.
func (d *Driver) Args(exe string) []string {
	patterns := d.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	return slices.Concat([]string{"vet", "-vettool=" + exe}, patterns)
}

// Environ returns env with the variables configuring the analysis processes.
func (d *Driver) Environ(env []string, addr string) []string {
	env = slices.DeleteFunc(slices.Clone(env), func(kv string) bool {
		for _, name := range [...]string{EnvVettool, EnvServer, EnvConfig, EnvDebug} {
			if strings.HasPrefix(kv, name+"=") {
				return true
			}
		}

		return false
	})

	env = append(env, EnvVettool+"=1", EnvServer+"="+addr)

	if d.ConfigFile != "" {
		env = append(env, EnvConfig+"="+d.ConfigFile)
	}

	if d.Verbose {
		env = append(env, EnvDebug+"=1")
	}

	return env
}

func (d *Driver) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}

	return os.Stderr
}

// VetAnalyzer returns the analyzer run by `go vet` inside an analysis process,
// configured from the environment set up by [Driver.Run].
func VetAnalyzer(getenv func(string) string, logger *slog.Logger) (*analysis.Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := analyzer.Options{analyzer.WithLogger(logger)}

	if path := getenv(EnvConfig); path != "" {
		config, err := analyzer.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		opts = append(opts, config)
	}

	if addr := getenv(EnvServer); addr != "" {
		opts = append(opts, analyzer.WithServer(addr))
	}

	logger.Debug("Analysis process configured", slog.Any("options", opts))

	return analyzer.New(opts), nil
}
