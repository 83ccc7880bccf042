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

package selector

import (
	"cmp"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

// Candidate is a handler matched by the host router, pending version
// disambiguation.
type Candidate struct {
	// ID is the member identity.
	ID string

	// Group is the identity of the declaring handler group.
	Group string

	// Metadata is the resolved metadata of the member.
	Metadata metadata.Metadata

	// Precedence is the route specificity assigned by the host; higher wins.
	Precedence int

	// Order is the declaration order assigned by the host; lower wins.
	Order int
}

// TieBreaker orders two candidates that tie on versioning grounds. It returns
// a negative number when a should be preferred over b, a positive number
// when b should be preferred and zero when the host cannot decide.
type TieBreaker func(a, b Candidate) int

// DefaultTieBreaker prefers higher precedence, then lower declaration order.
func DefaultTieBreaker(a, b Candidate) int {
	if c := cmp.Compare(b.Precedence, a.Precedence); c != 0 {
		return c
	}

	return cmp.Compare(a.Order, b.Order)
}

// Options configure selection.
type Options struct {
	// AssumeDefault substitutes the default version when a request does not
	// specify one.
	AssumeDefault bool

	// Default is the default version used when DefaultSelector is nil.
	Default version.Version

	// DefaultSelector chooses the default version from the aggregated
	// metadata of the version-aware candidates.
	DefaultSelector DefaultVersionSelector

	// TieBreaker breaks ties after the version filter. DefaultTieBreaker is
	// used when nil.
	TieBreaker TieBreaker

	// StrictNeutral fails invalid and ambiguous requests even on routes
	// whose candidates are all version-neutral. When off, such routes serve
	// a neutral candidate for both outcomes, since a handler that ignores
	// the version cannot be misled by several tokens any more than by one.
	StrictNeutral bool
}

func (o Options) defaultVersion(md metadata.Metadata) version.Version {
	if o.DefaultSelector != nil {
		return o.DefaultSelector.SelectVersion(md)
	}

	return o.Default
}

func (o Options) tieBreaker() TieBreaker {
	if o.TieBreaker != nil {
		return o.TieBreaker
	}

	return DefaultTieBreaker
}

// Result is a successful selection.
type Result struct {
	// Index is the position of the selected candidate in the input slice.
	Index int

	// Candidate is the selected candidate.
	Candidate Candidate

	// Version is the resolved version. It is Empty when a neutral candidate
	// was selected for a request without a usable version.
	Version version.Version

	// Metadata is the aggregated metadata of the winning group.
	Metadata metadata.Metadata

	// Defaulted reports whether Version was substituted for an unspecified one.
	Defaulted bool
}
