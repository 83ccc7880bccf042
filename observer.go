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

// Event describes one negotiation.
type Event struct {
	// Method and Path of the request.
	Method string
	Path   string

	// Requested is the raw version text sent by the client, comma-joined
	// when several distinct tokens were found.
	Requested string

	// Version is the resolved version. It is Empty for neutral matches and
	// rejected requests.
	Version version.Version

	// Candidate is the ID of the selected candidate.
	Candidate string

	// Code is the problem code of a rejected request.
	Code string

	// Sources are the reader sources the version was found in.
	Sources feature.SourceKind

	// Defaulted reports whether the default version was assumed.
	Defaulted bool
}

// Observer holds callbacks for negotiation events.
// Nil callbacks are skipped.
type Observer struct {
	// OnSelected is called when a candidate is selected.
	OnSelected func(ctx context.Context, e Event)

	// OnRejected is called when negotiation fails.
	OnRejected func(ctx context.Context, e Event)

	// OnDeprecatedUse is called when a deprecated version is served.
	OnDeprecatedUse func(ctx context.Context, e Event)
}

type observers []Observer

func (os observers) selected(ctx context.Context, e Event) {
	for _, o := range os {
		if o.OnSelected != nil {
			o.OnSelected(ctx, e)
		}
	}
}

func (os observers) rejected(ctx context.Context, e Event) {
	for _, o := range os {
		if o.OnRejected != nil {
			o.OnRejected(ctx, e)
		}
	}
}

func (os observers) deprecatedUse(ctx context.Context, e Event) {
	for _, o := range os {
		if o.OnDeprecatedUse != nil {
			o.OnDeprecatedUse(ctx, e)
		}
	}
}
