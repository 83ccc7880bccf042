// Copyright 2025 The Rivaas Authors
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

package version

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Parse parses text as an API version.
//
// Accepted forms, with optional surrounding whitespace:
//
//	1
//	1.0
//	2.0-beta
//	2013-08-06
//	2013-08-06.1.0-rc.1
//
// Parse returns an error wrapping ErrFormat for anything else.
func Parse(text string) (Version, error) {
	v, reason := parse(text)
	if reason != "" {
		return Empty, fmt.Errorf("%w: %q: %s", ErrFormat, text, reason)
	}
	return v, nil
}

// TryParse parses text and reports whether it was a valid API version.
func TryParse(text string) (Version, bool) {
	v, reason := parse(text)
	return v, reason == ""
}

// MustParse is like Parse but panics on error. It simplifies
// initialization of package-level versions and tests.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parse(text string) (Version, string) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Empty, "empty"
	}

	v := Version{kind: kindRegular}
	rest := s

	if looksLikeGroup(rest) {
		t, err := time.Parse(groupLayout, rest[:len(groupLayout)])
		if err != nil {
			return Empty, "invalid group date"
		}
		y, m, d := t.Date()
		v.group = Date{Year: y, Month: m, Day: d}
		rest = rest[len(groupLayout):]
		switch {
		case rest == "":
			return v, ""
		case rest[0] == '.':
			rest = rest[1:]
			if rest == "" || rest[0] == '-' {
				return Empty, "missing major after group"
			}
		case rest[0] == '-':
			// group version with status only
		default:
			return Empty, "unexpected text after group"
		}
	}

	numeric, status, hasStatus := strings.Cut(rest, "-")
	if hasStatus {
		if !validStatus(status) {
			return Empty, "invalid status"
		}
		v.status = status
	}

	if numeric == "" {
		if v.group.IsZero() {
			return Empty, "missing major"
		}
		return v, ""
	}

	majorText, minorText, hasMinor := strings.Cut(numeric, ".")
	major, ok := parseComponent(majorText)
	if !ok {
		return Empty, "invalid major"
	}
	v.major, v.hasMajor = major, true

	if hasMinor {
		minor, ok := parseComponent(minorText)
		if !ok {
			return Empty, "invalid minor"
		}
		v.minor, v.hasMinor = minor, true
	}

	return v, ""
}

// parseComponent accepts a non-empty run of ASCII digits that fits in an int32.
func parseComponent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// looksLikeGroup reports whether s starts with a yyyy-MM-dd shaped prefix.
func looksLikeGroup(s string) bool {
	if len(s) < len(groupLayout) {
		return false
	}
	for i := 0; i < len(groupLayout); i++ {
		c := s[i]
		switch i {
		case 4, 7:
			if c != '-' {
				return false
			}
		default:
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// validStatus accepts letters, digits and interior dots.
func validStatus(s string) bool {
	if s == "" || s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.':
			if s[i-1] == '.' {
				return false
			}
		default:
			return false
		}
	}
	return true
}
