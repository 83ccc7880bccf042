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

// Package reader extracts the requested API version from an HTTP request.
//
// A Reader consults an ordered list of sources: query string parameters,
// headers, media type parameters, vendor media type templates, the version
// already bound by a route template, or a custom function. Every source is
// queried independently, tokens are deduplicated by parsed value and the
// result is classified as a feature.Outcome:
//
//   - no token:                      Unspecified
//   - one distinct token that parses: Valid
//   - one distinct token that fails:  Invalid
//   - several distinct tokens:        Ambiguous
//
// "1" and "1.0" are the same version and never cause ambiguity.
//
// Example:
//
//	rd := reader.New(
//	    reader.Query("api-version"),
//	    reader.Header("api-version"),
//	    reader.Path("version"),
//	)
//	outcome := rd.Read(req)
package reader
