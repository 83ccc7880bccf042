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

// Package apiversioning negotiates API versions for HTTP services.
//
// A Versioning value combines the pieces of the negotiation pipeline: a
// reader that extracts the requested version, the version metadata of the
// route table, the candidate selector, the problem reporter and the version
// header reporter. Host adapters (see adapters/chi and adapters/gin) hand it
// the candidates their router matched for a request and dispatch to the
// candidate it selects.
//
// # Quick Start
//
//	conv := conventions.New()
//	conv.Group("orders").HasAPIVersion(version.MustParse("1.0"), version.MustParse("2.0"))
//	conv.Group("ping").IsAPIVersionNeutral()
//
//	v, err := apiversioning.New(
//	    apiversioning.WithQueryParam("api-version"),
//	    apiversioning.WithHeader("api-version"),
//	    apiversioning.WithMetadata(conv),
//	)
//
// # Negotiation
//
// Negotiate reads the requested version, selects exactly one candidate or
// writes an RFC 9457 problem response, and on success writes the
// api-supported-versions and api-deprecated-versions headers:
//
//	idx, r, ok := v.Negotiate(w, r, candidates)
//	if !ok {
//	    return
//	}
//	handlers[idx].ServeHTTP(w, r)
//
// Handlers read the resolved version with RequestedVersion.
//
// # Configuration
//
// Options can also be loaded from YAML with LoadConfig or from a map with
// ConfigFromMap.
package apiversioning
