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
	"flag"
	"strconv"
	"strings"

	"fillmore-labs.com/minver/internal/capability"
	"fillmore-labs.com/minver/internal/config"
	"fillmore-labs.com/minver/internal/run"
)

type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// NewBehaviorValue returns a boolean [flag.Getter] toggling value in flags.
func NewBehaviorValue(flags *config.Behavior, value config.Config) flag.Getter {
	return boolValue[config.Config, *config.Behavior]{flags: flags, value: value}
}

// Set implements [flag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return "false"
	}

	return strconv.FormatBool(f.flags.Enabled(f.value))
}

// Get implements [flag.Getter].
func (f boolValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.value)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// parseBool returns the boolean value represented by the string.
func parseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "off", "Off":
		return false, nil
	}

	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// versionValue is a [flag.Value] holding a Go release.
type versionValue struct{ v *capability.Version }

// Set implements [flag.Value].
func (f versionValue) Set(s string) error {
	if s == "" {
		*f.v = ""

		return nil
	}

	v, err := capability.ParseVersion(s)
	if err != nil {
		return err
	}

	*f.v = v

	return nil
}

// String implements [flag.Value].
func (f versionValue) String() string {
	if f.v == nil {
		return ""
	}

	return f.v.String()
}

// listValue is a [flag.Value] accumulating comma-separated names.
type listValue struct{ names *[]string }

// Set implements [flag.Value].
func (f listValue) Set(s string) error {
	for name := range strings.SplitSeq(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*f.names = append(*f.names, name)
		}
	}

	return nil
}

// String implements [flag.Value].
func (f listValue) String() string {
	if f.names == nil {
		return ""
	}

	return strings.Join(*f.names, ",")
}

// configValue is a [flag.Value] applying the options of a configuration file.
//
// Flags following -config on the command line override the file.
type configValue struct {
	r    *run.Options
	path *string
}

// Set implements [flag.Value].
func (f configValue) Set(s string) error {
	opts, err := LoadConfig(s)
	if err != nil {
		return err
	}

	opts.apply(f.r)
	*f.path = s

	return nil
}

// String implements [flag.Value].
func (f configValue) String() string {
	if f.path == nil {
		return ""
	}

	return *f.path
}
