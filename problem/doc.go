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

// Package problem turns API version negotiation failures into RFC 9457
// Problem Details responses.
//
// Every request-shape failure carries a stable machine readable code:
//
//   - UnsupportedApiVersion
//   - ApiVersionUnspecified
//   - InvalidApiVersion
//   - AmbiguousApiVersion
//
// The HTTP status follows a StatusPolicy: 400 by default, 404 when the
// version only travels in the URL path and the route subtree is unreachable
// for the requested version, and 405 when another method of the same route
// supports the version. Failures that are not caused by the request, such
// as ambiguous candidate matches, are reported as 500 without internal
// details.
//
// Example:
//
//	rep := problem.NewReporter()
//	if err != nil {
//	    rep.Write(w, r, err)
//	    return
//	}
package problem
