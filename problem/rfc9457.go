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

package problem

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/selector"
)

// DefaultBaseURL is the base of the problem type URIs.
const DefaultBaseURL = "https://docs.api-versioning.org/problems"

// ContentType of problem responses.
const ContentType = "application/problem+json; charset=utf-8"

var problemTypes = map[selector.Kind]struct {
	slug  string
	title string
}{
	selector.KindUnsupported: {"unsupported", "Unsupported API version"},
	selector.KindUnspecified: {"unspecified", "Unspecified API version"},
	selector.KindInvalid:     {"invalid", "Invalid API version"},
	selector.KindAmbiguous:   {"ambiguous", "Ambiguous API version"},
}

// ProblemDetail represents an RFC 9457 problem detail.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"` // Marshaled inline
}

// MarshalJSON implements custom JSON marshaling to include extensions inline.
// Extensions cannot override the standard members.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if k != "type" && k != "title" && k != "status" && k != "detail" && k != "instance" {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Reporter formats negotiation failures as RFC 9457 Problem Details.
type Reporter struct {
	// BaseURL is prepended to problem type fragments, e.g.
	// BaseURL + "#unsupported".
	BaseURL string

	// Policy maps failures to HTTP statuses.
	Policy StatusPolicy

	// PathOnly declares that versions can only travel in the URL path.
	PathOnly bool

	// StatusResolver overrides Policy when set.
	StatusResolver func(err error) int

	// ErrorIDGenerator generates unique IDs for error tracking.
	// If nil, uses random hex IDs.
	ErrorIDGenerator func() string

	// DisableErrorID disables automatic error ID generation.
	DisableErrorID bool
}

// NewReporter returns a Reporter with the default status policy.
// An empty baseURL selects DefaultBaseURL.
func NewReporter(baseURL string) *Reporter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Reporter{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Policy:  DefaultStatusPolicy(),
	}
}

// Format converts err into a Problem Details response. Errors that are not
// request-shape failures produce a generic 500 response.
func (rep *Reporter) Format(req *http.Request, err error) Response {
	e, ok := selector.AsError(err)
	if !ok || e.Code() == "" {
		return rep.internal(req, err)
	}

	pt := problemTypes[e.Kind]
	method, isMethod := AsMethodError(err)
	status := rep.status(req, err, e, isMethod)

	p := ProblemDetail{
		Type:       rep.BaseURL + "#" + pt.slug,
		Title:      pt.title,
		Status:     status,
		Detail:     detail(req, e, status == http.StatusMethodNotAllowed),
		Instance:   req.URL.Path,
		Extensions: map[string]any{"code": e.Code()},
	}
	if len(e.Requested) > 0 {
		p.Extensions["requestedVersion"] = strings.Join(e.Requested, ", ")
	} else if e.Kind == selector.KindUnsupported {
		p.Extensions["requestedVersion"] = e.Version.String()
	}
	if e.Kind == selector.KindUnspecified && len(e.Candidates) > 0 {
		p.Extensions["candidates"] = e.Candidates
	}
	rep.addErrorID(&p)

	resp := Response{Status: status, ContentType: ContentType, Body: p}
	if status == http.StatusMethodNotAllowed && isMethod {
		resp.Headers = http.Header{"Allow": {strings.Join(method.Allow, ", ")}}
	}

	return resp
}

// Write formats err and writes the response to w.
func (rep *Reporter) Write(w http.ResponseWriter, req *http.Request, err error) {
	resp := rep.Format(req, err)

	for k, vs := range resp.Headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}

func (rep *Reporter) status(req *http.Request, err error, e *selector.Error, method bool) int {
	if rep.StatusResolver != nil {
		return rep.StatusResolver(err)
	}

	pathOnly := rep.PathOnly
	if !pathOnly && e.Kind == selector.KindUnsupported {
		if f := feature.FromContext(req.Context()); f != nil {
			o, _ := f.Outcome()
			pathOnly = o.Sources.OnlyPath()
		}
	}

	return rep.Policy.Status(e, pathOnly, method)
}

// internal reports failures that are not caused by the request. Only the
// status of errors implementing ErrorType is exposed.
func (rep *Reporter) internal(req *http.Request, err error) Response {
	status := http.StatusInternalServerError
	var typed ErrorType
	if errors.As(err, &typed) {
		status = typed.HTTPStatus()
	}
	p := ProblemDetail{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Instance:   req.URL.Path,
		Extensions: make(map[string]any),
	}
	rep.addErrorID(&p)

	return Response{Status: status, ContentType: ContentType, Body: p}
}

func (rep *Reporter) addErrorID(p *ProblemDetail) {
	if rep.DisableErrorID {
		return
	}
	if rep.ErrorIDGenerator != nil {
		p.Extensions["error_id"] = rep.ErrorIDGenerator()
		return
	}
	p.Extensions["error_id"] = generateErrorID()
}

func detail(req *http.Request, e *selector.Error, method bool) string {
	switch e.Kind {
	case selector.KindUnsupported:
		if method {
			return fmt.Sprintf("The requested resource with API version '%s' does not support HTTP method '%s'.",
				e.Version, req.Method)
		}
		return fmt.Sprintf("The HTTP resource that matches the request URI '%s' does not support the API version '%s'.",
			req.URL.Path, e.Version)
	case selector.KindUnspecified:
		return "An API version is required, but was not specified."
	case selector.KindInvalid:
		return fmt.Sprintf("The HTTP resource that matches the request URI '%s' does not support the API version '%s'.",
			req.URL.Path, strings.Join(e.Requested, ", "))
	case selector.KindAmbiguous:
		return fmt.Sprintf("The following API versions were requested: %s. At most, only a single API version may be specified.",
			strings.Join(e.Requested, ", "))
	}

	return ""
}

// generateErrorID generates a unique error ID for correlation.
// It falls back to a timestamp-based ID if random generation fails.
func generateErrorID() string {
	bytes := make([]byte, 16) //nolint:makezero // crypto/rand.Read requires pre-allocated buffer
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("err-%d", time.Now().UnixNano())
	}

	return "err-" + hex.EncodeToString(bytes)
}
