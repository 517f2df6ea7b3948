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

package stdlib

import (
	"bufio"
	"io"
	"strings"

	"fillmore-labs.com/minver/internal/capability"
)

// Parse adds the items of one API file, all introduced in release v.
//
// Lines look like
//
//	pkg net/http, method (*Server) Shutdown(context.Context) error
//	pkg net/http, type Server struct, ReadHeaderTimeout time.Duration
//	pkg syscall (linux-386), const AF_ALG = 38
//
// Lines that can't be interpreted are skipped.
func (h *History) Parse(r io.Reader, v capability.Version) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		path, typ, name, ok := parseLine(sc.Text())
		if !ok {
			continue
		}

		h.add(path, typ, name, v)
	}

	return sc.Err()
}

func parseLine(line string) (path, typ, name string, ok bool) {
	rest, ok := strings.CutPrefix(line, "pkg ")
	if !ok {
		return "", "", "", false
	}

	path, rest, ok = strings.Cut(rest, ", ")
	if !ok {
		return "", "", "", false
	}

	// Drop the platform qualifier: "syscall (linux-386)"
	path, _, _ = strings.Cut(path, " ")

	kind, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return "", "", "", false
	}

	switch kind {
	case "func", "const", "var":
		name, _ = identifier(rest)

		return path, "", name, name != ""

	case "method":
		recv, rest, ok := receiver(rest)
		if !ok {
			return "", "", "", false
		}

		name, _ = identifier(rest)

		return path, recv, name, name != ""

	case "type":
		return typeLine(path, rest)

	default:
		return "", "", "", false
	}
}

// typeLine interprets "Name struct", "Name struct, Field T", "Name interface, M()" and the like.
func typeLine(path, rest string) (string, string, string, bool) {
	typ, rest := identifier(rest)
	if typ == "" {
		return "", "", "", false
	}

	rest = skipBrackets(rest)

	var member string
	if after, ok := strings.CutPrefix(rest, " struct, "); ok {
		member, _ = identifier(after)
		if member == "embedded" {
			return "", "", "", false
		}
	} else if after, ok := strings.CutPrefix(rest, " interface, "); ok {
		if strings.HasPrefix(after, "unexported methods") {
			return "", "", "", false
		}

		member, _ = identifier(after)
	} else {
		return path, "", typ, true
	}

	return path, typ, member, member != ""
}

// receiver parses "(*Pointer[$0]) Load" into "Pointer" and the remaining text.
func receiver(s string) (string, string, bool) {
	inner, rest, ok := strings.Cut(s, ") ")
	if !ok || !strings.HasPrefix(inner, "(") {
		return "", "", false
	}

	inner = strings.TrimPrefix(inner[1:], "*")
	inner, _, _ = strings.Cut(inner, "[")

	return inner, rest, inner != ""
}

// identifier splits a leading Go identifier from s.
func identifier(s string) (string, string) {
	end := strings.IndexAny(s, " ([=,")
	if end < 0 {
		return s, ""
	}

	return s[:end], s[end:]
}

// skipBrackets skips a leading, possibly nested, bracketed type parameter list.
func skipBrackets(s string) string {
	if !strings.HasPrefix(s, "[") {
		return s
	}

	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[i+1:]
			}
		}
	}

	return ""
}
