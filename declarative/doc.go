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

// Package declarative reads API version metadata from struct tags.
//
// A controller is a struct whose blank fields carry the group tags and whose
// named fields are the members of the group:
//
//	type OrdersController struct {
//	    _ struct{} `apiversion:"1.0,2.0" apiversion-deprecated:"1.0"`
//
//	    ListV1 http.HandlerFunc `mapto:"1.0"`
//	    List   http.HandlerFunc
//	    Ping   http.HandlerFunc `apiversion:"neutral"`
//	}
//
// Recognized tags:
//
//   - apiversion: supported versions, or "neutral" for a neutral group or member
//   - apiversion-deprecated: deprecated versions
//   - apiversion-advertised: versions implemented elsewhere
//   - apiversion-advertised-deprecated: deprecated versions implemented elsewhere
//   - mapto: the versions a member answers to
//
// Member identities are the field names. A group declared here must not be
// declared again with the conventions builder.
package declarative
