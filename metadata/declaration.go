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
	"fmt"

	"rivaas.dev/apiversioning/version"
)

// Declaration is the version metadata declared for one handler group.
// Conventions and struct tags both produce Declarations.
type Declaration struct {
	Neutral              bool
	Supported            version.Set
	Deprecated           version.Set
	Advertised           version.Set
	DeprecatedAdvertised version.Set

	// Members holds per-member overrides keyed by member identity.
	// Members without an entry answer to every implemented version.
	Members map[string]MemberDeclaration
}

// MemberDeclaration overrides the group metadata for one member.
type MemberDeclaration struct {
	Neutral bool
	Mapped  version.Set
}

// Implemented returns the selectable versions of the group.
func (d Declaration) Implemented() version.Set {
	return d.Supported.Union(d.Deprecated)
}

func (d Declaration) hasVersions() bool {
	return !d.Supported.IsEmpty() || !d.Deprecated.IsEmpty() ||
		!d.Advertised.IsEmpty() || !d.DeprecatedAdvertised.IsEmpty()
}

// Validate checks the declaration of group for contradictions.
func (d Declaration) Validate(group string) error {
	if group == "" {
		return ErrEmptyGroupID
	}
	if d.Neutral && d.hasVersions() {
		return fmt.Errorf("%w: group %q", ErrNeutralConflict, group)
	}

	implemented := d.Implemented()
	if !d.Neutral && implemented.IsEmpty() {
		return fmt.Errorf("%w: group %q", ErrNoVersions, group)
	}
	for _, member := range sortedKeys(d.Members) {
		m := d.Members[member]
		if m.Neutral && !m.Mapped.IsEmpty() {
			return fmt.Errorf("%w: member %q of group %q", ErrNeutralConflict, member, group)
		}
		if d.Neutral && !m.Mapped.IsEmpty() {
			return fmt.Errorf("%w: member %q maps versions in neutral group %q", ErrNeutralConflict, member, group)
		}
		if missing := m.Mapped.Minus(implemented); !missing.IsEmpty() {
			return fmt.Errorf("%w: member %q of group %q maps %s", ErrMappedUndeclared, member, group, missing)
		}
	}

	return nil
}

// Resolve returns the metadata of member within the group. The empty member
// resolves the group itself. Resolve assumes the declaration is valid.
func (d Declaration) Resolve(member string) Metadata {
	m, hasMember := d.Members[member]
	if d.Neutral || (hasMember && m.Neutral) {
		return NeutralMetadata()
	}

	md := Metadata{
		supported:            d.Supported,
		deprecated:           d.Deprecated.Minus(d.Supported),
		advertised:           d.Advertised.Minus(d.Implemented()),
		deprecatedAdvertised: d.DeprecatedAdvertised.Minus(d.Implemented()).Minus(d.Advertised),
	}
	if hasMember && !m.Mapped.IsEmpty() {
		md.mapped = m.Mapped
		md.explicit = true
		md.declared = m.Mapped
	} else {
		md.declared = md.supported.Union(md.deprecated)
	}
	return md
}
