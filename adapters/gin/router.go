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

// Package ginversioning registers versioned endpoints on a gin engine.
//
// It mirrors the chi adapter: endpoints sharing a route template are
// registered once per method and negotiated per request.
//
//	engine := gin.New()
//	r := ginversioning.New(engine, versioning)
//	r.Handle(http.MethodGet, "/orders", listV1, ginversioning.Group("orders"), ginversioning.Member("list-v1"))
//	r.Handle(http.MethodGet, "/orders", listV2, ginversioning.Group("orders"), ginversioning.Member("list-v2"))
//	if err := r.Build(); err != nil {
//	    log.Fatal(err)
//	}
//
// Gin parameters must end a path segment, so a template such as
// "/v{version:apiVersion}/orders" is accepted while "/{version}.json" is not.
package ginversioning

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

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

// Router registers versioned endpoints on a gin engine or route group.
type Router struct {
	routes gin.IRoutes
	table  *dispatch.Table[gin.HandlerFunc]
}

// New returns a Router registering on routes, usually a *gin.Engine or
// *gin.RouterGroup.
func New(routes gin.IRoutes, v *apiversioning.Versioning) *Router {
	return &Router{
		routes: routes,
		table:  dispatch.New[gin.HandlerFunc](v, constraint.StyleGin),
	}
}

// Handle records an endpoint for method and template. Registration errors are
// returned by Build.
func (r *Router) Handle(method, template string, h gin.HandlerFunc, opts ...Option) {
	if h == nil {
		r.table.Fail(fmt.Errorf("%w: %s %s", dispatch.ErrNilHandler, method, template))
		return
	}
	r.table.Add(method, template, h, opts...)
}

// GET records a GET endpoint.
func (r *Router) GET(template string, h gin.HandlerFunc, opts ...Option) {
	r.Handle(http.MethodGet, template, h, opts...)
}

// POST records a POST endpoint.
func (r *Router) POST(template string, h gin.HandlerFunc, opts ...Option) {
	r.Handle(http.MethodPost, template, h, opts...)
}

// PUT records a PUT endpoint.
func (r *Router) PUT(template string, h gin.HandlerFunc, opts ...Option) {
	r.Handle(http.MethodPut, template, h, opts...)
}

// DELETE records a DELETE endpoint.
func (r *Router) DELETE(template string, h gin.HandlerFunc, opts ...Option) {
	r.Handle(http.MethodDelete, template, h, opts...)
}

// Build registers every route with gin. It returns the joined configuration
// errors of all endpoints, and registers nothing when there are any.
func (r *Router) Build() error {
	routes, err := r.table.Build()
	if err != nil {
		return err
	}

	for _, rt := range routes {
		h := func(c *gin.Context) {
			notFound := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				c.AbortWithStatus(http.StatusNotFound)
			})
			handler, req, ok := rt.Dispatch(c.Writer, c.Request, c.Param, notFound)
			if !ok {
				c.Abort()
				return
			}
			c.Request = req
			handler(c)
		}
		for _, method := range rt.Methods() {
			r.routes.Handle(method, rt.Pattern, h)
		}
	}

	return nil
}

// Version returns the version resolved for the request of c.
func Version(c *gin.Context) (version.Version, bool) {
	return apiversioning.RequestedVersion(c.Request.Context())
}
