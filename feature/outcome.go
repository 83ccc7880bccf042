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

package feature

import (
	"strings"

	"rivaas.dev/apiversioning/version"
)

// Kind classifies the requested version of a request.
type Kind uint8

const (
	// Unspecified means no configured source carried a version.
	Unspecified Kind = iota
	// Valid means exactly one distinct version was found and it parsed.
	Valid
	// Invalid means exactly one distinct token was found and it did not parse.
	Invalid
	// Ambiguous means sources carried conflicting versions.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Unspecified:
		return "unspecified"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// SourceKind identifies where a version token was read from.
type SourceKind uint8

const (
	SourceQuery SourceKind = 1 << iota
	SourceHeader
	SourceMediaType
	SourcePath
	SourceCustom
)

var sourceNames = []struct {
	kind SourceKind
	name string
}{
	{SourceQuery, "query"},
	{SourceHeader, "header"},
	{SourceMediaType, "media-type"},
	{SourcePath, "path"},
	{SourceCustom, "custom"},
}

// Has reports whether s includes every kind in k.
func (s SourceKind) Has(k SourceKind) bool { return s&k == k && k != 0 }

// OnlyPath reports whether the path is the sole contributing source.
func (s SourceKind) OnlyPath() bool { return s == SourcePath }

func (s SourceKind) String() string {
	var names []string
	for _, n := range sourceNames {
		if s&n.kind != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Outcome is the result of reading the requested version from a request.
type Outcome struct {
	Kind    Kind
	Version version.Version // set when Kind is Valid
	Raw     []string        // the distinct raw tokens found, in source order
	Sources SourceKind      // sources that contributed a token
}

// UnspecifiedOutcome is the outcome of a request that carries no version.
var UnspecifiedOutcome = Outcome{Kind: Unspecified}

// Requested returns the raw text of the requested version, joined with ", "
// when ambiguous.
func (o Outcome) Requested() string {
	return strings.Join(o.Raw, ", ")
}
