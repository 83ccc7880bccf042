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

// Package edm builds one variant of an external model per API version.
//
// The model type and its builder are supplied by the caller, for instance
// an entity data model builder. For every version, Builder creates a fresh
// underlying builder, applies every configuration in registration order
// and finalizes the result. Configurations never observe the state built
// for another version.
//
// Example:
//
//	b := edm.New(newSchemaBuilder, (*schemaBuilder).Build)
//	models, err := b.BuildAll(registry.Versions(),
//	    func(sb *schemaBuilder, v version.Version) {
//	        sb.Entity("Order")
//	        if v.Major() >= 2 {
//	            sb.Property("Order", "Customer")
//	        }
//	    },
//	)
package edm
