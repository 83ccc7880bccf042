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
	"errors"
	"net/http"
	"strings"
)

// Response represents a formatted error response.
// It contains all components needed to write an HTTP error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body (marshaled to JSON).
	Body ProblemDetail

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// ErrorType allows errors to declare their own HTTP status code.
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// MethodError marks a failure where another HTTP method of the same route
// supports the requested version.
type MethodError struct {
	Err   error
	Allow []string
}

// NewMethodNotAllowed wraps err with the methods that would have served the
// requested version.
func NewMethodNotAllowed(err error, allow ...string) error {
	return &MethodError{Err: err, Allow: allow}
}

func (e *MethodError) Error() string {
	return e.Err.Error() + " (allowed methods: " + strings.Join(e.Allow, ", ") + ")"
}

func (e *MethodError) Unwrap() error { return e.Err }

// AsMethodError returns the *MethodError in err's chain.
func AsMethodError(err error) (*MethodError, bool) {
	var m *MethodError
	ok := errors.As(err, &m)

	return m, ok
}
