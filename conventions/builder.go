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

package conventions

import (
	"errors"
	"fmt"
	"slices"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

// ErrInvalidVersion is returned when a convention declares the empty or the
// neutral version as a regular version.
var ErrInvalidVersion = errors.New("conventions: only regular versions can be declared")

// Builder collects conventions for handler groups.
type Builder struct {
	groups map[string]*GroupConvention
	errs   []error
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{groups: make(map[string]*GroupConvention)}
}

// Group returns the convention of the group with the given identity,
// creating it on first use.
func (b *Builder) Group(id string) *GroupConvention {
	g, ok := b.groups[id]
	if !ok {
		g = &GroupConvention{id: id, builder: b, members: make(map[string]*MemberConvention)}
		b.groups[id] = g
	}

	return g
}

func (b *Builder) fail(err error) {
	b.errs = append(b.errs, err)
}

// Declarations implements metadata.Source.
func (b *Builder) Declarations() (map[string]metadata.Declaration, error) {
	errs := slices.Clone(b.errs)
	out := make(map[string]metadata.Declaration, len(b.groups))

	ids := make([]string, 0, len(b.groups))
	for id := range b.groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		d := b.groups[id].declaration()
		if err := d.Validate(id); err != nil {
			errs = append(errs, err)
			continue
		}
		out[id] = d
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return out, nil
}

// GroupConvention declares the versions of one handler group.
type GroupConvention struct {
	id      string
	builder *Builder

	neutral              bool
	supported            []version.Version
	deprecated           []version.Version
	advertised           []version.Version
	deprecatedAdvertised []version.Version

	members map[string]*MemberConvention
}

// ID returns the group identity.
func (g *GroupConvention) ID() string { return g.id }

// HasAPIVersion declares supported versions.
func (g *GroupConvention) HasAPIVersion(vs ...version.Version) *GroupConvention {
	g.supported = g.append(g.supported, vs)
	return g
}

// HasDeprecatedAPIVersion declares deprecated versions. A deprecated version
// is still selectable.
func (g *GroupConvention) HasDeprecatedAPIVersion(vs ...version.Version) *GroupConvention {
	g.deprecated = g.append(g.deprecated, vs)
	return g
}

// AdvertisesAPIVersion declares versions implemented elsewhere, for instance
// by another service behind the same gateway. They are reported but never
// selected.
func (g *GroupConvention) AdvertisesAPIVersion(vs ...version.Version) *GroupConvention {
	g.advertised = g.append(g.advertised, vs)
	return g
}

// AdvertisesDeprecatedAPIVersion declares deprecated versions implemented
// elsewhere.
func (g *GroupConvention) AdvertisesDeprecatedAPIVersion(vs ...version.Version) *GroupConvention {
	g.deprecatedAdvertised = g.append(g.deprecatedAdvertised, vs)
	return g
}

// IsAPIVersionNeutral marks the group as ignoring API versions.
func (g *GroupConvention) IsAPIVersionNeutral() *GroupConvention {
	g.neutral = true
	return g
}

// Member returns the convention of a member of the group, creating it on
// first use.
func (g *GroupConvention) Member(id string) *MemberConvention {
	m, ok := g.members[id]
	if !ok {
		m = &MemberConvention{id: id, group: g}
		g.members[id] = m
	}

	return m
}

func (g *GroupConvention) append(dst, vs []version.Version) []version.Version {
	for _, v := range vs {
		if !v.IsRegular() {
			g.builder.fail(fmt.Errorf("%w: group %q", ErrInvalidVersion, g.id))
			continue
		}
		dst = append(dst, v)
	}

	return dst
}

func (g *GroupConvention) declaration() metadata.Declaration {
	d := metadata.Declaration{
		Neutral:              g.neutral,
		Supported:            version.NewSet(g.supported...),
		Deprecated:           version.NewSet(g.deprecated...),
		Advertised:           version.NewSet(g.advertised...),
		DeprecatedAdvertised: version.NewSet(g.deprecatedAdvertised...),
	}
	if len(g.members) > 0 {
		d.Members = make(map[string]metadata.MemberDeclaration, len(g.members))
		for id, m := range g.members {
			d.Members[id] = metadata.MemberDeclaration{
				Neutral: m.neutral,
				Mapped:  version.NewSet(m.mapped...),
			}
		}
	}

	return d
}

// MemberConvention overrides the versions one member of a group answers to.
type MemberConvention struct {
	id    string
	group *GroupConvention

	neutral bool
	mapped  []version.Version
}

// ID returns the member identity.
func (m *MemberConvention) ID() string { return m.id }

// Group returns the group convention of the member.
func (m *MemberConvention) Group() *GroupConvention { return m.group }

// MapToAPIVersion restricts the member to the given versions of its group.
func (m *MemberConvention) MapToAPIVersion(vs ...version.Version) *MemberConvention {
	m.mapped = m.group.append(m.mapped, vs)
	return m
}

// IsAPIVersionNeutral marks the member as ignoring API versions.
func (m *MemberConvention) IsAPIVersionNeutral() *MemberConvention {
	m.neutral = true
	return m
}
