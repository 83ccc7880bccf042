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

package feature

import (
	"context"
	"net/http"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

type contextKey struct{}

// Feature is the API versioning state of one request.
type Feature struct {
	routeValues map[string]string
	routeParsed map[string]version.Version

	outcome    Outcome
	hasOutcome bool

	resolved version.Version
	metadata metadata.Metadata
	selected bool
}

// FromContext returns the Feature stored in ctx, or nil.
func FromContext(ctx context.Context) *Feature {
	f, _ := ctx.Value(contextKey{}).(*Feature)
	return f
}

// NewContext returns a copy of ctx carrying f.
func NewContext(ctx context.Context, f *Feature) context.Context {
	return context.WithValue(ctx, contextKey{}, f)
}

// Ensure returns the Feature of r, attaching a new one when r has none.
// The returned request must be used for the rest of the dispatch.
func Ensure(r *http.Request) (*http.Request, *Feature) {
	if f := FromContext(r.Context()); f != nil {
		return r, f
	}
	f := &Feature{}
	return r.WithContext(NewContext(r.Context(), f)), f
}

// SetRouteValue stashes the version value bound by a route template
// parameter along with its parsed form.
func (f *Feature) SetRouteValue(param, raw string, parsed version.Version) {
	if f.routeValues == nil {
		f.routeValues = make(map[string]string, 1)
		f.routeParsed = make(map[string]version.Version, 1)
	}
	f.routeValues[param] = raw
	f.routeParsed[param] = parsed
	f.hasOutcome = false
}

// RouteValue returns the raw version bound to param by the route.
func (f *Feature) RouteValue(param string) (string, bool) {
	raw, ok := f.routeValues[param]
	return raw, ok
}

// RouteValues returns every route-bound version token.
func (f *Feature) RouteValues() map[string]string {
	return f.routeValues
}

// Outcome returns the cached requested-version outcome.
func (f *Feature) Outcome() (Outcome, bool) {
	return f.outcome, f.hasOutcome
}

// SetOutcome caches the requested-version outcome for the rest of the dispatch.
func (f *Feature) SetOutcome(o Outcome) {
	f.outcome = o
	f.hasOutcome = true
}

// Select records the resolved version and the metadata of the winning group.
// The resolved version is Empty when a neutral member was selected without one.
func (f *Feature) Select(v version.Version, md metadata.Metadata) {
	f.resolved = v
	f.metadata = md
	f.selected = true
}

// Selected reports whether a candidate has been selected.
func (f *Feature) Selected() bool { return f.selected }

// Version returns the resolved API version.
func (f *Feature) Version() (version.Version, bool) {
	if !f.selected || f.resolved.IsEmpty() {
		return version.Empty, false
	}
	return f.resolved, true
}

// Metadata returns the aggregated metadata of the winning group.
func (f *Feature) Metadata() metadata.Metadata { return f.metadata }

// Version returns the resolved API version of the request carried by ctx.
func Version(ctx context.Context) (version.Version, bool) {
	f := FromContext(ctx)
	if f == nil {
		return version.Empty, false
	}
	return f.Version()
}
