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
	"net/http"

	"rivaas.dev/apiversioning/selector"
)

// StatusPolicy maps selection failures to HTTP status codes.
type StatusPolicy struct {
	// Unspecified, Invalid, Ambiguous and Unsupported are the statuses used
	// when the version travels in the query string, headers or media type.
	Unspecified int
	Invalid     int
	Ambiguous   int
	Unsupported int

	// PathNotFound answers 404 for unsupported and unspecified versions when
	// the version only travels in the URL path.
	PathNotFound bool

	// MethodNotAllowed answers 405 when another method of the route
	// supports the requested version.
	MethodNotAllowed bool
}

// DefaultStatusPolicy returns 400 for every request-shape failure, with the
// path and method variances enabled.
func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{
		Unspecified:      http.StatusBadRequest,
		Invalid:          http.StatusBadRequest,
		Ambiguous:        http.StatusBadRequest,
		Unsupported:      http.StatusBadRequest,
		PathNotFound:     true,
		MethodNotAllowed: true,
	}
}

// Status returns the HTTP status for e. pathOnly reports whether the version
// of the request could only travel in the URL path; method reports whether
// another method of the route would have served it.
func (p StatusPolicy) Status(e *selector.Error, pathOnly, method bool) int {
	switch e.Kind {
	case selector.KindUnsupported:
		if method && p.MethodNotAllowed {
			return http.StatusMethodNotAllowed
		}
		if pathOnly && p.PathNotFound {
			return http.StatusNotFound
		}
		return orDefault(p.Unsupported)
	case selector.KindUnspecified:
		if pathOnly && p.PathNotFound {
			return http.StatusNotFound
		}
		return orDefault(p.Unspecified)
	case selector.KindInvalid:
		return orDefault(p.Invalid)
	case selector.KindAmbiguous:
		return orDefault(p.Ambiguous)
	}

	return http.StatusInternalServerError
}

func orDefault(status int) int {
	if status == 0 {
		return http.StatusBadRequest
	}

	return status
}
