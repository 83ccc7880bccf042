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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is returned by Parse when the text is not a valid API version.
var ErrFormat = errors.New("invalid api version format")

// groupLayout is the layout of the optional group version prefix.
const groupLayout = "2006-01-02"

type kind uint8

const (
	kindEmpty kind = iota
	kindNeutral
	kindRegular
)

// Date is a calendar date used as a group version.
// The zero value means no group version.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Version is an immutable API version identifier of the form
// [group][.]{major}[.{minor}][-{status}].
//
// The zero value is Empty, meaning no version was declared.
// Versions are comparable with ==, which is structural: "1" and "1.0"
// are different values that compare as equal through Compare and Equal.
type Version struct {
	group    Date
	major    int
	minor    int
	status   string
	hasMajor bool
	hasMinor bool
	kind     kind
}

var (
	// Empty represents the absence of a declared version.
	Empty = Version{}

	// Neutral marks an endpoint that ignores API versioning entirely.
	Neutral = Version{kind: kindNeutral}
)

// New returns the version major.minor.
// It panics if major or minor is negative.
func New(major, minor int) Version {
	if major < 0 || minor < 0 {
		panic(fmt.Sprintf("version: negative component in %d.%d", major, minor))
	}
	return Version{major: major, minor: minor, hasMajor: true, hasMinor: true, kind: kindRegular}
}

// NewMajor returns a version with only a major component, formatted as "{major}".
// It panics if major is negative.
func NewMajor(major int) Version {
	if major < 0 {
		panic(fmt.Sprintf("version: negative major %d", major))
	}
	return Version{major: major, hasMajor: true, kind: kindRegular}
}

// NewGroup returns a group version for the calendar date of t.
func NewGroup(t time.Time) Version {
	y, m, d := t.Date()
	return Version{group: Date{Year: y, Month: m, Day: d}, kind: kindRegular}
}

// WithStatus returns a copy of v carrying the given status label.
func (v Version) WithStatus(status string) (Version, error) {
	if v.kind != kindRegular {
		return v, fmt.Errorf("%w: status requires a regular version", ErrFormat)
	}
	if !validStatus(status) {
		return v, fmt.Errorf("%w: status %q", ErrFormat, status)
	}
	v.status = status
	return v, nil
}

// Group returns the group version date, or the zero Date.
func (v Version) Group() Date { return v.group }

// Major returns the major component and whether it was specified.
func (v Version) Major() (int, bool) { return v.major, v.hasMajor }

// Minor returns the minor component and whether it was specified.
// An absent minor compares as 0.
func (v Version) Minor() (int, bool) { return v.minor, v.hasMinor }

// Status returns the status label, e.g. "beta".
func (v Version) Status() string { return v.status }

// IsEmpty reports whether v is Empty.
func (v Version) IsEmpty() bool { return v.kind == kindEmpty }

// IsNeutral reports whether v is Neutral.
func (v Version) IsNeutral() bool { return v.kind == kindNeutral }

// IsRegular reports whether v is neither Empty nor Neutral.
func (v Version) IsRegular() bool { return v.kind == kindRegular }

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to or after o.
//
// Ordering: group date (absent first), major, minor (absent as 0), then status
// compared lexically, byte by byte, with no status sorting after any status.
// Empty sorts before Neutral, which sorts before every regular version.
func (v Version) Compare(o Version) int {
	if v.kind != o.kind {
		return cmpInt(int(v.kind), int(o.kind))
	}
	if v.kind != kindRegular {
		return 0
	}
	if c := v.group.compare(o.group); c != 0 {
		return c
	}
	if c := cmpInt(v.major, o.major); c != 0 {
		return c
	}
	if c := cmpInt(v.minor, o.minor); c != 0 {
		return c
	}
	switch {
	case v.status == "" && o.status == "":
		return 0
	case v.status == "":
		return 1
	case o.status == "":
		return -1
	}
	return strings.Compare(v.status, o.status)
}

// Equal reports whether v and o denote the same version.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// String returns the canonical text of v. Empty formats as "" and
// Neutral as "neutral"; neither is accepted by Parse.
func (v Version) String() string {
	switch v.kind {
	case kindEmpty:
		return ""
	case kindNeutral:
		return "neutral"
	}

	var b strings.Builder
	if !v.group.IsZero() {
		b.WriteString(v.group.String())
	}
	if v.hasMajor {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(v.major))
		if v.hasMinor {
			b.WriteByte('.')
			b.WriteString(strconv.Itoa(v.minor))
		}
	}
	if v.status != "" {
		b.WriteByte('-')
		b.WriteString(v.status)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts everything
// Parse accepts plus "" for Empty and "neutral" for Neutral.
func (v *Version) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch {
	case s == "":
		*v = Empty
		return nil
	case strings.EqualFold(s, "neutral"):
		*v = Neutral
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
