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

package metadata

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning/version"
)

// Metadata is the resolved, immutable version metadata of a handler group
// or of one of its members.
//
// A neutral Metadata has no versions and maps to every request.
type Metadata struct {
	neutral              bool
	declared             version.Set
	supported            version.Set
	deprecated           version.Set
	advertised           version.Set
	deprecatedAdvertised version.Set
	mapped               version.Set
	explicit             bool
}

// NeutralMetadata returns the metadata of a version-neutral member.
func NeutralMetadata() Metadata {
	return Metadata{neutral: true}
}

// Versioned returns group-level metadata implementing supported and deprecated.
// A version listed in both is reported as supported.
func Versioned(supported, deprecated version.Set) Metadata {
	return Declaration{Supported: supported, Deprecated: deprecated}.Resolve("")
}

// IsNeutral reports whether the member ignores API versioning.
func (m Metadata) IsNeutral() bool { return m.neutral }

// IsZero reports whether m is neither neutral nor declares any version.
func (m Metadata) IsZero() bool {
	return !m.neutral && m.declared.IsEmpty() && m.supported.IsEmpty() && m.deprecated.IsEmpty() &&
		m.advertised.IsEmpty() && m.deprecatedAdvertised.IsEmpty()
}

// Declared returns the versions declared on this exact member.
func (m Metadata) Declared() version.Set { return m.declared }

// Supported returns the supported, non-deprecated versions.
func (m Metadata) Supported() version.Set { return m.supported }

// Deprecated returns the implemented versions that are deprecated.
func (m Metadata) Deprecated() version.Set { return m.deprecated }

// Advertised returns informational versions that are implemented elsewhere.
func (m Metadata) Advertised() version.Set { return m.advertised }

// DeprecatedAdvertised returns informational deprecated versions.
func (m Metadata) DeprecatedAdvertised() version.Set { return m.deprecatedAdvertised }

// Implemented returns every selectable version.
func (m Metadata) Implemented() version.Set { return m.supported.Union(m.deprecated) }

// Mapped returns the explicit member mapping and true, or nil and false when
// the member answers to all implemented versions.
func (m Metadata) Mapped() (version.Set, bool) { return m.mapped, m.explicit }

// MapsTo reports whether a request for v can be served by this member.
func (m Metadata) MapsTo(v version.Version) bool {
	if m.neutral {
		return true
	}
	if m.explicit {
		return m.mapped.Contains(v)
	}
	return m.supported.Contains(v) || m.deprecated.Contains(v)
}

// IsDeprecated reports whether v is an implemented but deprecated version.
func (m Metadata) IsDeprecated(v version.Version) bool {
	return m.deprecated.Contains(v)
}

// ReportedSupported returns the versions reported as supported to clients.
func (m Metadata) ReportedSupported() version.Set { return m.supported.Union(m.advertised) }

// ReportedDeprecated returns the versions reported as deprecated to clients.
func (m Metadata) ReportedDeprecated() version.Set {
	return m.deprecated.Union(m.deprecatedAdvertised)
}

// Aggregate merges the metadata of grouped members, such as overloads under
// one route. Supported and deprecated versions are unioned and a version that
// is supported anywhere is never reported as deprecated. Neutral members do
// not contribute; the result is neutral only when every member is neutral.
func Aggregate(members ...Metadata) Metadata {
	if len(members) == 0 {
		return Metadata{}
	}

	aware, neutral := lo.FilterReject(members, func(m Metadata, _ int) bool { return !m.neutral })
	if len(aware) == 0 && len(neutral) > 0 {
		return NeutralMetadata()
	}

	var out Metadata
	var deprecated, advertised, deprecatedAdvertised version.Set
	for _, m := range aware {
		out.declared = out.declared.Union(m.declared)
		out.supported = out.supported.Union(m.supported)
		deprecated = deprecated.Union(m.deprecated)
		advertised = advertised.Union(m.advertised)
		deprecatedAdvertised = deprecatedAdvertised.Union(m.deprecatedAdvertised)
	}

	out.deprecated = deprecated.Minus(out.supported)
	implemented := out.supported.Union(out.deprecated)
	out.advertised = advertised.Minus(implemented)
	out.deprecatedAdvertised = deprecatedAdvertised.Minus(implemented).Minus(out.advertised)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.SortFunc(keys, cmp.Compare[string])
	return keys
}
