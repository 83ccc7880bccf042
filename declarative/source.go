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

package declarative

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

// Tag names.
const (
	TagVersion              = "apiversion"
	TagDeprecated           = "apiversion-deprecated"
	TagAdvertised           = "apiversion-advertised"
	TagAdvertisedDeprecated = "apiversion-advertised-deprecated"
	TagMapTo                = "mapto"

	neutralValue = "neutral"
)

// Static errors for struct tag parsing.
var (
	ErrNotStruct     = errors.New("declarative: controller must be a struct or a pointer to a struct")
	ErrInvalidTag    = errors.New("declarative: invalid version tag")
	ErrDuplicateType = errors.New("declarative: group registered twice")
)

// Source is a metadata.Source built from struct tags.
type Source struct {
	groups map[string]metadata.Declaration
	order  []string
	errs   []error
}

// New returns an empty Source.
func New() *Source {
	return &Source{groups: make(map[string]metadata.Declaration)}
}

// Register reads the tags of controller and declares them for group id.
// Errors are also retained and returned again by Declarations.
func (s *Source) Register(id string, controller any) error {
	err := s.register(id, controller)
	if err != nil {
		s.errs = append(s.errs, err)
	}

	return err
}

func (s *Source) register(id string, controller any) error {
	if _, exists := s.groups[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, id)
	}

	t := reflect.TypeOf(controller)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: group %q has %T", ErrNotStruct, id, controller)
	}

	d, err := parseStruct(t)
	if err != nil {
		return fmt.Errorf("group %q: %w", id, err)
	}

	s.groups[id] = d
	s.order = append(s.order, id)

	return nil
}

// Groups returns the registered group identities in registration order.
func (s *Source) Groups() []string {
	return slices.Clone(s.order)
}

// Declarations implements metadata.Source.
func (s *Source) Declarations() (map[string]metadata.Declaration, error) {
	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}

	return s.groups, nil
}

func parseStruct(t reflect.Type) (metadata.Declaration, error) {
	var d metadata.Declaration

	for i := range t.NumField() {
		field := t.Field(i)
		if field.Name == "_" {
			if err := parseGroupTags(&d, field.Tag); err != nil {
				return d, err
			}
			continue
		}
		if !field.IsExported() {
			continue
		}

		m, ok, err := parseMemberTags(field)
		if err != nil {
			return d, err
		}
		if !ok {
			continue
		}
		if d.Members == nil {
			d.Members = make(map[string]metadata.MemberDeclaration)
		}
		d.Members[field.Name] = m
	}

	return d, nil
}

func parseGroupTags(d *metadata.Declaration, tag reflect.StructTag) error {
	if raw, ok := tag.Lookup(TagVersion); ok {
		if strings.TrimSpace(raw) == neutralValue {
			d.Neutral = true
		} else {
			set, err := parseList(TagVersion, raw)
			if err != nil {
				return err
			}
			d.Supported = d.Supported.Union(set)
		}
	}

	lists := []struct {
		tag string
		dst *version.Set
	}{
		{TagDeprecated, &d.Deprecated},
		{TagAdvertised, &d.Advertised},
		{TagAdvertisedDeprecated, &d.DeprecatedAdvertised},
	}
	for _, l := range lists {
		raw, ok := tag.Lookup(l.tag)
		if !ok {
			continue
		}
		set, err := parseList(l.tag, raw)
		if err != nil {
			return err
		}
		*l.dst = l.dst.Union(set)
	}

	return nil
}

func parseMemberTags(field reflect.StructField) (metadata.MemberDeclaration, bool, error) {
	var (
		m     metadata.MemberDeclaration
		found bool
	)

	if raw, ok := field.Tag.Lookup(TagVersion); ok {
		if strings.TrimSpace(raw) != neutralValue {
			return m, false, fmt.Errorf("%w: member %s: %s on a member only accepts %q",
				ErrInvalidTag, field.Name, TagVersion, neutralValue)
		}
		m.Neutral = true
		found = true
	}

	if raw, ok := field.Tag.Lookup(TagMapTo); ok {
		set, err := parseList(TagMapTo, raw)
		if err != nil {
			return m, false, fmt.Errorf("member %s: %w", field.Name, err)
		}
		m.Mapped = set
		found = true
	}

	return m, found, nil
}

func parseList(tag, raw string) (version.Set, error) {
	var vs []version.Version
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := version.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", ErrInvalidTag, tag, raw, err)
		}
		vs = append(vs, v)
	}
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidTag, tag)
	}

	return version.NewSet(vs...), nil
}
