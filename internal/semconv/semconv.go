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

// Package semconv defines the attribute keys shared by span attributes,
// span events and metric labels describing API version negotiation.
//
// Service and HTTP keys follow OpenTelemetry semantic conventions. The
// api.version namespace is specific to this module.
package semconv

// Service metadata keys.
const (
	// ServiceName identifies the service that generated the telemetry data.
	ServiceName = "service.name"

	// ServiceVersion identifies the version of the service that generated the telemetry data.
	ServiceVersion = "service.version"
)

// HTTP keys.
const (
	// HTTPMethod stores the HTTP request method.
	HTTPMethod = "http.request.method"

	// URLPath stores the path requested.
	URLPath = "url.path"

	// HTTPStatusCode stores the HTTP response status code.
	HTTPStatusCode = "http.response.status_code"
)

// Negotiation keys.
const (
	// APIVersion stores the version a request was served with. Requests served
	// by a version-neutral handler carry [NeutralVersion].
	APIVersion = "api.version"

	// APIVersionRequested stores the raw version tokens read from the request.
	APIVersionRequested = "api.version.requested"

	// APIVersionResolved stores the version selected for the request.
	APIVersionResolved = "api.version.resolved"

	// APIVersionError stores the error code of a rejected request.
	APIVersionError = "api.version.error"

	// APIVersionCode stores the error code of a rejection event.
	// Misconfigured routes carry [MisconfiguredCode].
	APIVersionCode = "api.version.code"

	// APIVersionSource stores the kinds of source that carried the version.
	APIVersionSource = "api.version.source"

	// APIVersionDefaulted is true when the version was assumed.
	APIVersionDefaulted = "api.version.defaulted"

	// APIVersionCandidate stores the identity of the selected handler.
	APIVersionCandidate = "api.version.candidate"
)

// Attribute values.
const (
	NeutralVersion    = "neutral"
	MisconfiguredCode = "Misconfigured"
)
