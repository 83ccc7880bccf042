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

package constraint

import (
	"net/http"
	"regexp"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/version"
)

// Direction tells a constraint whether it validates an incoming request or a
// URL being generated.
type Direction uint8

const (
	// Incoming validates a value bound from a request path.
	Incoming Direction = iota
	// Generation validates a value supplied for URL generation.
	Generation
)

// Constraint validates the value of one route parameter.
type Constraint interface {
	Match(r *http.Request, param, value string, dir Direction) bool
}

// Name of the API version constraint in route templates.
const Name = "apiVersion"

// Matcher is the API version route constraint.
type Matcher struct{}

// Match reports whether value is acceptable for param.
//
// Incoming values must parse as an API version; the parsed value is stashed
// on the request feature when r carries one. Generated values only need to
// be present.
func (Matcher) Match(r *http.Request, param, value string, dir Direction) bool {
	if dir == Generation {
		return value != ""
	}

	v, ok := version.TryParse(value)
	if !ok {
		return false
	}
	if r != nil {
		if f := feature.FromContext(r.Context()); f != nil {
			f.SetRouteValue(param, value, v)
		}
	}

	return true
}

// ═══════════════════════════════════════════════════════════════════════════════
// Typed Constraints
// ═══════════════════════════════════════════════════════════════════════════════

// ConstraintKind represents the type of constraint applied to a route parameter.
type ConstraintKind uint8

const (
	ConstraintNone ConstraintKind = iota
	ConstraintAPIVersion
	ConstraintInt
	ConstraintUUID
	ConstraintDate // RFC3339 full-date
)

var kindNames = map[string]ConstraintKind{
	Name:   ConstraintAPIVersion,
	"int":  ConstraintInt,
	"uuid": ConstraintUUID,
	"date": ConstraintDate,
}

type regexConstraint struct {
	pattern *regexp.Regexp
}

func (c regexConstraint) Match(_ *http.Request, _, value string, dir Direction) bool {
	if dir == Generation {
		return value != ""
	}

	return c.pattern.MatchString(value)
}

var (
	intConstraint  = regexConstraint{regexp.MustCompile(`^\d+$`)}
	uuidConstraint = regexConstraint{regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)}
	dateConstraint = regexConstraint{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)}
)

// For returns the constraint of kind k, or nil for ConstraintNone.
func For(k ConstraintKind) Constraint {
	switch k {
	case ConstraintAPIVersion:
		return Matcher{}
	case ConstraintInt:
		return intConstraint
	case ConstraintUUID:
		return uuidConstraint
	case ConstraintDate:
		return dateConstraint
	}

	return nil
}
