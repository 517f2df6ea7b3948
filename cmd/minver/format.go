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

package main

import (
	"fmt"
	"strings"
)

// format specifies the output format of the report.
type format uint8

const (
	// formatText prints a human readable report.
	formatText format = iota

	// formatJSON prints a machine readable report.
	formatJSON
)

// MarshalText implements [encoding.TextMarshaler].
func (f format) MarshalText() ([]byte, error) {
	switch f {
	case formatText:
		return []byte("text"), nil

	case formatJSON:
		return []byte("json"), nil

	default:
		return nil, fmt.Errorf("unknown format %d", f)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "text":
		*f = formatText

	case "json":
		*f = formatJSON

	default:
		return fmt.Errorf("unknown format %q", string(text))
	}

	return nil
}

// String implements pflag.Value.
func (f format) String() string {
	text, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}

	return string(text)
}

// Set implements pflag.Value.
func (f *format) Set(s string) error {
	return f.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (f format) Type() string {
	return "text|json"
}
