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

// Package constraint validates route template parameters that carry an API
// version and generates URLs from versioned templates.
//
// A template such as "/v{version:apiVersion}/orders" declares that the
// "version" segment must hold a parsable API version. On incoming requests
// the matcher parses the value and stashes it on the request feature, which
// lets reader.Path pick it up. A value that does not parse makes the route
// not match, so the host router moves on to the next route instead of
// reporting an invalid version. When generating URLs the matcher only
// requires that a value is present.
package constraint
