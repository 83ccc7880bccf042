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

// Package chiversioning registers versioned endpoints on a chi router.
//
// Endpoints sharing a route template are registered with chi once per
// method; each request is then negotiated among the endpoints of its route.
//
//	mux := chi.NewRouter()
//	r := chiversioning.New(mux, versioning)
//	r.HandleFunc(http.MethodGet, "/orders", listV1, chiversioning.Group("orders"), chiversioning.Member("list-v1"))
//	r.HandleFunc(http.MethodGet, "/orders", listV2, chiversioning.Group("orders"), chiversioning.Member("list-v2"))
//	r.HandleFunc(http.MethodGet, "/ping", ping, chiversioning.Neutral())
//	if err := r.Build(); err != nil {
//	    log.Fatal(err)
//	}
package chiversioning

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/constraint"
	"rivaas.dev/apiversioning/internal/dispatch"
)

// Option configures an endpoint.
type Option = dispatch.Option

// Group sets the handler group whose metadata versions the endpoint.
func Group(id string) Option { return dispatch.WithGroup(id) }

// Member sets the member of the group the endpoint implements.
func Member(id string) Option { return dispatch.WithMember(id) }

// Neutral marks the endpoint version-neutral.
func Neutral() Option { return dispatch.WithNeutral() }

// Precedence sets the route specificity of the endpoint; higher wins ties.
func Precedence(p int) Option { return dispatch.WithPrecedence(p) }

// Router registers versioned endpoints on a chi router.
type Router struct {
	mux   chi.Router
	table *dispatch.Table[http.Handler]
}

// New returns a Router registering on mux.
func New(mux chi.Router, v *apiversioning.Versioning) *Router {
	return &Router{
		mux:   mux,
		table: dispatch.New[http.Handler](v, constraint.StyleChi),
	}
}

// Handle records an endpoint for method and template. Registration errors are
// returned by Build.
func (r *Router) Handle(method, template string, h http.Handler, opts ...Option) {
	if h == nil {
		r.table.Fail(fmt.Errorf("%w: %s %s", dispatch.ErrNilHandler, method, template))
		return
	}
	r.table.Add(method, template, h, opts...)
}

// HandleFunc records an endpoint for method and template.
func (r *Router) HandleFunc(method, template string, h http.HandlerFunc, opts ...Option) {
	if h == nil {
		r.table.Fail(fmt.Errorf("%w: %s %s", dispatch.ErrNilHandler, method, template))
		return
	}
	r.table.Add(method, template, h, opts...)
}

// Build registers every route with chi. It returns the joined configuration
// errors of all endpoints, and registers nothing when there are any.
func (r *Router) Build() error {
	routes, err := r.table.Build()
	if err != nil {
		return err
	}

	notFound := http.NotFoundHandler()
	if m, ok := r.mux.(interface{ NotFoundHandler() http.HandlerFunc }); ok {
		notFound = m.NotFoundHandler()
	}

	for _, rt := range routes {
		h := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			lookup := func(param string) string { return chi.URLParam(req, param) }
			handler, req, ok := rt.Dispatch(w, req, lookup, notFound)
			if ok {
				handler.ServeHTTP(w, req)
			}
		})
		for _, method := range rt.Methods() {
			r.mux.Method(method, rt.Pattern, h)
		}
	}

	return nil
}
