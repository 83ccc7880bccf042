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
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Set is an ascending, duplicate-free list of versions. Duplicates are
// detected by value, so "1" and "1.0" collapse into the first one added.
//
// The zero value is an empty set. Sets are treated as immutable: every
// operation returns a new Set.
type Set []Version

// NewSet returns the set of the given versions. Empty and Neutral are dropped.
func NewSet(versions ...Version) Set {
	regular := lo.Filter(versions, func(v Version, _ int) bool { return v.IsRegular() })
	if len(regular) == 0 {
		return nil
	}
	slices.SortStableFunc(regular, Version.Compare)
	return Set(slices.CompactFunc(regular, Version.Equal))
}

// Len returns the number of versions in s.
func (s Set) Len() int { return len(s) }

// IsEmpty reports whether s has no versions.
func (s Set) IsEmpty() bool { return len(s) == 0 }

// Contains reports whether s holds a version equal to v.
func (s Set) Contains(v Version) bool {
	_, found := slices.BinarySearchFunc(s, v, Version.Compare)
	return found
}

// Union returns the versions in s or o.
func (s Set) Union(o Set) Set {
	if len(o) == 0 {
		return s
	}
	if len(s) == 0 {
		return o
	}
	return NewSet(append(slices.Clone(s), o...)...)
}

// Minus returns the versions in s that are not in o.
func (s Set) Minus(o Set) Set {
	if len(o) == 0 || len(s) == 0 {
		return s
	}
	out := lo.Reject(s, func(v Version, _ int) bool { return o.Contains(v) })
	if len(out) == 0 {
		return nil
	}
	return out
}

// Intersect returns the versions present in both s and o.
func (s Set) Intersect(o Set) Set {
	out := lo.Filter(s, func(v Version, _ int) bool { return o.Contains(v) })
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsSubsetOf reports whether every version of s is in o.
func (s Set) IsSubsetOf(o Set) bool {
	return lo.EveryBy(s, o.Contains)
}

// Max returns the highest version in s.
func (s Set) Max() (Version, bool) {
	if len(s) == 0 {
		return Empty, false
	}
	return s[len(s)-1], true
}

// Min returns the lowest version in s.
func (s Set) Min() (Version, bool) {
	if len(s) == 0 {
		return Empty, false
	}
	return s[0], true
}

// Strings returns the canonical text of each version.
func (s Set) Strings() []string {
	return lo.Map(s, func(v Version, _ int) string { return v.String() })
}

// Join formats s as a list separated by sep, e.g. "1.0, 2.0".
func (s Set) Join(sep string) string {
	return strings.Join(s.Strings(), sep)
}

// String formats s as a comma separated list.
func (s Set) String() string {
	return s.Join(", ")
}
