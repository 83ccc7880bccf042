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

// Package feature holds the per-request API versioning state.
//
// A Feature is created once per request, stored on the request context and
// filled in as the request moves through the negotiation pipeline: the route
// constraint stashes the version bound from the URL, the reader caches the
// requested version outcome, and the selector records the resolved version
// together with the metadata of the winning group. Handlers read the current
// API version back with Version.
//
// A Feature belongs to a single request and must not be shared.
package feature
