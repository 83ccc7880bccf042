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

// Package echoversioning registers versioned endpoints on an echo instance.
//
//	e := echo.New()
//	r := echoversioning.New(e, versioning)
//	r.Add(http.MethodGet, "/orders", listV1, echoversioning.Group("orders"), echoversioning.Member("list-v1"))
//	r.Add(http.MethodGet, "/orders", listV2, echoversioning.Group("orders"), echoversioning.Member("list-v2"))
//	if err := r.Build(); err != nil {
//	    log.Fatal(err)
//	}
//
// Requests whose path fails a route constraint are answered with
// [echo.ErrNotFound], rendered by the HTTP error handler of the instance.
package echoversioning

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/constraint"
	"rivaas.dev/apiversioning/internal/dispatch"
	"rivaas.dev/apiversioning/version"
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

// Registrar is implemented by *echo.Echo and *echo.Group.
type Registrar interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

// Router registers versioned endpoints on an echo instance or group.
type Router struct {
	registrar Registrar
	table     *dispatch.Table[echo.HandlerFunc]
}

// New returns a Router registering on reg.
func New(reg Registrar, v *apiversioning.Versioning) *Router {
	return &Router{
		registrar: reg,
		table:     dispatch.New[echo.HandlerFunc](v, constraint.StyleGin),
	}
}

// Add records an endpoint for method and template. Registration errors are
// returned by Build.
func (r *Router) Add(method, template string, h echo.HandlerFunc, opts ...Option) {
	if h == nil {
		r.table.Fail(fmt.Errorf("%w: %s %s", dispatch.ErrNilHandler, method, template))
		return
	}
	r.table.Add(method, template, h, opts...)
}

// GET records a GET endpoint.
func (r *Router) GET(template string, h echo.HandlerFunc, opts ...Option) {
	r.Add(http.MethodGet, template, h, opts...)
}

// POST records a POST endpoint.
func (r *Router) POST(template string, h echo.HandlerFunc, opts ...Option) {
	r.Add(http.MethodPost, template, h, opts...)
}

// Build registers every route with echo. It returns the joined configuration
// errors of all endpoints, and registers nothing when there are any.
func (r *Router) Build() error {
	routes, err := r.table.Build()
	if err != nil {
		return err
	}

	for _, rt := range routes {
		h := func(c echo.Context) error {
			var missed bool
			notFound := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { missed = true })

			handler, req, ok := rt.Dispatch(c.Response(), c.Request(), c.Param, notFound)
			c.SetRequest(req)
			if missed {
				return echo.ErrNotFound
			}
			if !ok {
				return nil
			}

			return handler(c)
		}
		for _, method := range rt.Methods() {
			r.registrar.Add(method, rt.Pattern, h)
		}
	}

	return nil
}

// Version returns the version resolved for the request of c.
func Version(c echo.Context) (version.Version, bool) {
	return apiversioning.RequestedVersion(c.Request().Context())
}
