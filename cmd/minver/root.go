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
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/minver/analyzer"
	"fillmore-labs.com/minver/internal/driver"
	"fillmore-labs.com/minver/internal/report"
)

type rootFlags struct {
	config  string
	dir     string
	format  format
	usages  string
	all     bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "minver [packages]",
		Short: "Report the minimum Go release required by a set of packages",
		Long: "minver detects the language features and standard library items used by the given packages\n" +
			"and reports the oldest Go release able to compile them.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "configuration `file` (default: "+analyzer.ConfigFileName+" in the package directory or a parent)")
	f.StringVarP(&flags.dir, "dir", "C", "", "run in `directory`")
	f.Var(&flags.format, "format", "output format")
	f.StringVar(&flags.usages, "usages", "", "print the locations a `capability` is used at")
	f.BoolVar(&flags.all, "all-usages", false, "print the locations of every capability")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "print debug output")

	return cmd
}

func (f *rootFlags) run(cmd *cobra.Command, patterns []string) error {
	logger := newLogger(cmd.ErrOrStderr(), f.verbose)

	config := f.config
	if config == "" {
		dir := f.dir
		if dir == "" {
			dir = "."
		}

		config = analyzer.FindConfig(dir)
	}

	if config != "" {
		abs, err := filepath.Abs(config)
		if err != nil {
			return err
		}

		config = abs

		// fail early instead of in every analysis process
		if _, err := analyzer.LoadConfig(config); err != nil {
			return err
		}

		logger.Debug("Using configuration", slog.String("file", config))
	}

	d := driver.Driver{
		Patterns:   patterns,
		Dir:        f.dir,
		ConfigFile: config,
		Stderr:     cmd.ErrOrStderr(),
		Verbose:    f.verbose,
		Logger:     logger,
	}

	agg, runErr := d.Run(cmd.Context())

	p := newPrinter(cmd.OutOrStdout(), f.format, !color.NoColor)

	return f.output(p, logger, agg, runErr)
}

// output prints agg. Nothing is printed when go vet failed without delivering a
// single report, since an empty aggregate would claim the oldest release.
func (f *rootFlags) output(p printer, logger *slog.Logger, agg *report.Aggregate, runErr error) error {
	if agg == nil || (runErr != nil && len(agg.Units()) == 0) {
		return runErr
	}

	if units := agg.Incomplete(); len(units) > 0 {
		logger.Warn("Standard library usages not checked, no API history found",
			slog.Int("packages", len(units)),
			slog.String("hint", "set api_dir in "+analyzer.ConfigFileName))
	}

	var err error
	if f.usages != "" {
		err = p.usages(agg, f.usages)
	} else {
		err = p.summary(agg, f.all)
	}

	return errors.Join(err, runErr)
}
