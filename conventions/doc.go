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

// Package conventions attaches API version metadata to handler groups and
// members with a fluent builder instead of struct tags.
//
// Group identities are the same strings host adapters use when registering
// handlers. Declarations are idempotent: declaring the same version twice is
// a no-op. Contradictions, such as a group that is both version-neutral and
// versioned, are reported by Declarations, always in the same order for the
// same input.
//
// Example:
//
//	b := conventions.New()
//	b.Group("orders").
//	    HasAPIVersion(version.MustParse("1.0")).
//	    HasAPIVersion(version.MustParse("2.0")).
//	    HasDeprecatedAPIVersion(version.MustParse("1.0"))
//	b.Group("orders").Member("list-v1").MapToAPIVersion(version.MustParse("1.0"))
//	b.Group("ping").IsAPIVersionNeutral()
//
//	reg, err := metadata.NewRegistry(b)
//
// A Builder is meant to be used from a single goroutine while the route
// table is built.
package conventions
