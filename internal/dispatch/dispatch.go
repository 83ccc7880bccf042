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

// Package dispatch holds the route table shared by the host adapters. It
// groups endpoints by host pattern and negotiates the API version of each
// request among the endpoints of its route.
package dispatch

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/constraint"
	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/selector"
)

// Static errors for route table construction.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	ErrNoGroup    = errors.New("endpoint must declare a group or be version-neutral")
	ErrNilHandler = errors.New("handler cannot be nil")
	ErrBuilt      = errors.New("route table already built")
)

// Registration describes one endpoint being registered.
type Registration struct {
	Group      string
	Member     string
	Neutral    bool
	Precedence int
}

// Option configures an endpoint.
type Option func(*Registration)

// WithGroup sets the handler group whose metadata versions the endpoint.
func WithGroup(id string) Option {
	return func(s *Registration) { s.Group = id }
}

// WithMember sets the member of the group the endpoint implements.
func WithMember(id string) Option {
	return func(s *Registration) { s.Member = id }
}

// WithNeutral marks the endpoint version-neutral.
func WithNeutral() Option {
	return func(s *Registration) { s.Neutral = true }
}

// WithPrecedence sets the route specificity of the endpoint; higher wins ties.
func WithPrecedence(p int) Option {
	return func(s *Registration) { s.Precedence = p }
}

// Endpoint is a registered handler of type H.
type Endpoint[H any] struct {
	Method       string
	Template     *constraint.Template
	Registration Registration
	Handler      H

	order    int
	metadata metadata.Metadata
}

// Candidate returns the selector candidate of e.
func (e *Endpoint[H]) Candidate() selector.Candidate {
	return selector.Candidate{
		ID:         e.id(),
		Group:      e.Registration.Group,
		Metadata:   e.metadata,
		Precedence: e.Registration.Precedence,
		Order:      e.order,
	}
}

func (e *Endpoint[H]) id() string {
	if e.Registration.Member != "" {
		return e.Registration.Member
	}
	if e.Registration.Group != "" {
		return e.Registration.Group
	}

	return e.Method + " " + e.Template.String()
}

// Route is the set of endpoints sharing one host pattern.
type Route[H any] struct {
	Pattern    string
	versioning *apiversioning.Versioning
	endpoints  []*Endpoint[H]
}

// Methods returns the distinct methods of the route in registration order.
func (rt *Route[H]) Methods() []string {
	return lo.Uniq(lo.Map(rt.endpoints, func(e *Endpoint[H], _ int) string { return e.Method }))
}

// Endpoints returns the endpoints of the route.
func (rt *Route[H]) Endpoints() []*Endpoint[H] {
	return rt.endpoints
}

// Table collects endpoints before they are registered with the host router.
type Table[H any] struct {
	versioning *apiversioning.Versioning
	style      constraint.Style
	routes     map[string]*Route[H]
	patterns   []string
	count      int
	errs       []error
	built      bool
}

// New returns an empty table rendering patterns in style.
func New[H any](v *apiversioning.Versioning, style constraint.Style) *Table[H] {
	return &Table[H]{
		versioning: v,
		style:      style,
		routes:     make(map[string]*Route[H]),
	}
}

// Versioning returns the negotiation engine of the table.
func (t *Table[H]) Versioning() *apiversioning.Versioning { return t.versioning }

// Fail records a registration error, returned by Build.
func (t *Table[H]) Fail(err error) {
	t.errs = append(t.errs, err)
}

// Add records an endpoint. Errors are retained and returned by Build.
func (t *Table[H]) Add(method, template string, h H, opts ...Option) {
	if t.built {
		t.errs = append(t.errs, fmt.Errorf("%w: %s %s", ErrBuilt, method, template))
		return
	}

	tpl, err := constraint.ParseTemplate(template)
	if err != nil {
		t.errs = append(t.errs, err)
		return
	}
	pattern, err := tpl.Pattern(t.style)
	if err != nil {
		t.errs = append(t.errs, err)
		return
	}

	var reg Registration
	for _, opt := range opts {
		opt(&reg)
	}

	rt, ok := t.routes[pattern]
	if !ok {
		rt = &Route[H]{Pattern: pattern, versioning: t.versioning}
		t.routes[pattern] = rt
		t.patterns = append(t.patterns, pattern)
	}
	rt.endpoints = append(rt.endpoints, &Endpoint[H]{
		Method:       method,
		Template:     tpl,
		Registration: reg,
		Handler:      h,
		order:        t.count,
	})
	t.count++
}

// Build resolves the metadata of every endpoint and returns the routes in
// registration order. Configuration errors are joined.
func (t *Table[H]) Build() ([]*Route[H], error) {
	if t.built {
		return nil, ErrBuilt
	}

	errs := slices.Clone(t.errs)
	groups := make(map[string][]string)
	var groupOrder []string

	for _, pattern := range t.patterns {
		for _, e := range t.routes[pattern].endpoints {
			switch {
			case e.Registration.Neutral:
				e.metadata = metadata.NeutralMetadata()
			case e.Registration.Group == "":
				errs = append(errs, fmt.Errorf("%w: %s %s", ErrNoGroup, e.Method, e.Template))
				continue
			default:
				c, err := t.versioning.Candidate(e.Registration.Group, e.Registration.Member, e.order)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s %s: %w", e.Method, e.Template, err))
					continue
				}
				e.metadata = c.Metadata
			}

			key := e.Registration.Group
			if _, seen := groups[key]; !seen {
				groupOrder = append(groupOrder, key)
			}
			groups[key] = append(groups[key], e.Method+" "+e.Template.String())
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	t.built = true
	t.logGroups(groupOrder, groups)

	return lo.Map(t.patterns, func(p string, _ int) *Route[H] { return t.routes[p] }), nil
}

func (t *Table[H]) logGroups(order []string, groups map[string][]string) {
	logger := t.versioning.Logger()
	reg := t.versioning.Registry()
	for _, g := range order {
		if g == "" {
			logger.Info("registered version-neutral endpoints", "routes", groups[g])
			continue
		}
		attrs := []any{"group", g, "routes", groups[g]}
		if reg != nil {
			if md, err := reg.Group(g); err == nil {
				if md.IsNeutral() {
					attrs = append(attrs, "neutral", true)
				} else {
					attrs = append(attrs,
						"supported", md.Supported().String(),
						"deprecated", md.Deprecated().String(),
					)
				}
			}
		}
		logger.Info("registered api version group", attrs...)
	}
}

// Dispatch negotiates the endpoint of the route serving r. lookup returns
// the value the host router bound to a path parameter. It returns false when
// a response has already been written; notFound is used when no template of
// the route accepts the path.
func (rt *Route[H]) Dispatch(w http.ResponseWriter, r *http.Request, lookup func(string) string, notFound http.Handler) (H, *http.Request, bool) {
	var zero H
	r, _ = feature.Ensure(r)

	accepted := lo.Filter(rt.endpoints, func(e *Endpoint[H], _ int) bool {
		return e.Template.Accept(r, lookup)
	})
	own, others := lo.FilterReject(accepted, func(e *Endpoint[H], _ int) bool {
		return e.Method == r.Method
	})
	if len(own) == 0 {
		notFound.ServeHTTP(w, r)
		return zero, r, false
	}

	v := rt.versioning
	cands := lo.Map(own, func(e *Endpoint[H], _ int) selector.Candidate { return e.Candidate() })
	r, res, err := v.Select(r, cands)
	if err != nil {
		if allow := allowedMethods(err, others); len(allow) > 0 {
			err = problem.NewMethodNotAllowed(err, allow...)
		}
		v.WriteError(w, r, err)

		return zero, r, false
	}
	if !v.WriteHeaders(w, r, res) {
		return zero, r, false
	}

	return own[res.Index].Handler, r, true
}

// allowedMethods returns the methods of others that would have served the
// version of an unsupported request.
func allowedMethods[H any](err error, others []*Endpoint[H]) []string {
	e, ok := selector.AsError(err)
	if !ok || e.Kind != selector.KindUnsupported {
		return nil
	}

	allow := lo.FilterMap(others, func(o *Endpoint[H], _ int) (string, bool) {
		return o.Method, o.metadata.MapsTo(e.Version)
	})
	allow = lo.Uniq(allow)
	slices.Sort(allow)

	return allow
}
