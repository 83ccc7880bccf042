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
	"errors"
	"fmt"
	"sync"

	"rivaas.dev/apiversioning/version"
)

// Source supplies declarations keyed by group identity.
// Conventions and struct tags are the two implementations; a group must be
// declared by exactly one of them.
type Source interface {
	Declarations() (map[string]Declaration, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (map[string]Declaration, error)

// Declarations implements Source.
func (f SourceFunc) Declarations() (map[string]Declaration, error) { return f() }

type entryKey struct {
	group  string
	member string
	whole  bool
}

type entry struct {
	once sync.Once
	md   Metadata
	err  error
}

// Registry holds the declarations of the route table and lazily resolves
// member and group metadata. Resolution happens at most once per key and is
// safe for concurrent first access; entries are never evicted.
type Registry struct {
	decls    map[string]Declaration
	entries  sync.Map // entryKey -> *entry
	versions version.Set
}

// NewRegistry merges and validates the declarations of all sources.
// All contradictions found are returned together, ordered by group identity.
func NewRegistry(sources ...Source) (*Registry, error) {
	decls := make(map[string]Declaration)
	var errs []error

	for _, src := range sources {
		if src == nil {
			continue
		}
		declared, err := src.Declarations()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, group := range sortedKeys(declared) {
			if _, exists := decls[group]; exists {
				errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateGroup, group))
				continue
			}
			decls[group] = declared[group]
		}
	}

	var versions version.Set
	for _, group := range sortedKeys(decls) {
		d := decls[group]
		if err := d.Validate(group); err != nil {
			errs = append(errs, err)
			continue
		}
		versions = versions.Union(d.Implemented())
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Registry{decls: decls, versions: versions}, nil
}

// Has reports whether group is declared.
func (r *Registry) Has(group string) bool {
	_, ok := r.decls[group]
	return ok
}

// Groups returns the declared group identities in ascending order.
func (r *Registry) Groups() []string {
	return sortedKeys(r.decls)
}

// Versions returns the distinct union of implemented versions across all groups.
func (r *Registry) Versions() version.Set {
	return r.versions
}

// Lookup returns the metadata of member within group.
func (r *Registry) Lookup(group, member string) (Metadata, error) {
	return r.load(entryKey{group: group, member: member}, func(d Declaration) Metadata {
		return d.Resolve(member)
	})
}

// Group returns the metadata of group aggregated across its declared members.
func (r *Registry) Group(group string) (Metadata, error) {
	return r.load(entryKey{group: group, whole: true}, func(d Declaration) Metadata {
		members := []Metadata{d.Resolve("")}
		for _, member := range sortedKeys(d.Members) {
			members = append(members, d.Resolve(member))
		}
		return Aggregate(members...)
	})
}

func (r *Registry) load(key entryKey, resolve func(Declaration) Metadata) (Metadata, error) {
	v, _ := r.entries.LoadOrStore(key, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		d, ok := r.decls[key.group]
		if !ok {
			e.err = fmt.Errorf("%w: %q", ErrUnknownGroup, key.group)
			return
		}
		e.md = resolve(d)
	})
	return e.md, e.err
}
