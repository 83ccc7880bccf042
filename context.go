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

package apiversioning

import (
	"context"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/version"
)

// RequestedVersion returns the version resolved for the request carried by
// ctx. It returns false when negotiation has not run, or when a neutral
// candidate was selected without a usable version.
//
// Example:
//
//	func getOrders(w http.ResponseWriter, r *http.Request) {
//	    v, _ := apiversioning.RequestedVersion(r.Context())
//	    fmt.Fprintf(w, "orders for %s", v)
//	}
func RequestedVersion(ctx context.Context) (version.Version, bool) {
	return feature.Version(ctx)
}

// RequestedOutcome returns the outcome of reading the version from the
// request carried by ctx.
func RequestedOutcome(ctx context.Context) (feature.Outcome, bool) {
	f := feature.FromContext(ctx)
	if f == nil {
		return feature.Outcome{}, false
	}

	return f.Outcome()
}
