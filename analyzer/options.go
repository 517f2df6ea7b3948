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

package analyzer

import (
	"log/slog"
	"slices"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/config"
	"fillmore-labs.com/minver/internal/run"
)

// Option configures specific behavior of a [New] minver analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithVersionGuards is an [Option] to configure whether `//go:build go1.N` constraints are honored.
func WithVersionGuards(guards bool) Option { return versionGuardsOption{guards: guards} }

type versionGuardsOption struct{ guards bool }

func (o versionGuardsOption) apply(r *run.Options) {
	r.Behavior.Set(config.VersionGuards, o.guards)
}

func (o versionGuardsOption) LogAttr() slog.Attr {
	return slog.Bool("version-guards", o.guards)
}

// WithMaxVersion is an [Option] to report usages of capabilities newer than the given Go release.
// An empty or malformed version disables diagnostics.
func WithMaxVersion(version string) Option { return maxVersionOption{version: version} }

type maxVersionOption struct{ version string }

func (o maxVersionOption) apply(r *run.Options) {
	v, err := capability.ParseVersion(o.version)
	if err != nil && o.version != "" {
		slog.Warn("Ignoring maximum version", slog.Any("error", err))
	}

	r.MaxVersion = v
}

func (o maxVersionOption) LogAttr() slog.Attr {
	return slog.String("max-version", o.version)
}

// WithIgnore is an [Option] to never report the named capabilities as diagnostics.
func WithIgnore(names ...string) Option { return ignoreOption{names: names} }

type ignoreOption struct{ names []string }

func (o ignoreOption) apply(r *run.Options) {
	for _, name := range o.names {
		if !slices.Contains(r.Ignore, name) {
			r.Ignore = append(r.Ignore, name)
		}
	}
}

func (o ignoreOption) LogAttr() slog.Attr {
	return slog.Any("ignore", o.names)
}

// WithAPIDir is an [Option] to read the standard library API history from dir instead of GOROOT.
func WithAPIDir(dir string) Option { return apiDirOption{dir: dir} }

type apiDirOption struct{ dir string }

func (o apiDirOption) apply(r *run.Options) {
	r.APIDir = o.dir
}

func (o apiDirOption) LogAttr() slog.Attr {
	return slog.String("api-dir", o.dir)
}

// WithServer is an [Option] to send the report of every package to the collecting server at addr.
func WithServer(addr string) Option { return serverOption{addr: addr} }

type serverOption struct{ addr string }

func (o serverOption) apply(r *run.Options) {
	r.Server = o.addr
}

func (o serverOption) LogAttr() slog.Attr {
	return slog.String("server", o.addr)
}

// WithLogger is an [Option] to set the logger receiving debug output.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
