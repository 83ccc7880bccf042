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

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/internal/semconv"
)

// Span event names.
const (
	EventSelected   = "api_version.selected"
	EventRejected   = "api_version.rejected"
	EventDeprecated = "api_version.deprecated"
)

// Observer returns an [apiversioning.Observer] adding negotiation events to
// the span of the request context. Requests without a recording span are
// ignored.
//
// Example:
//
//	v, err := apiversioning.New(apiversioning.WithObserver(tracer.Observer()))
func (t *Tracer) Observer() apiversioning.Observer {
	return apiversioning.Observer{
		OnSelected: func(ctx context.Context, e apiversioning.Event) {
			addEvent(ctx, EventSelected,
				attribute.String(semconv.APIVersion, versionValue(e)),
				attribute.String(semconv.APIVersionSource, e.Sources.String()),
				attribute.String(semconv.APIVersionCandidate, e.Candidate),
				attribute.Bool(semconv.APIVersionDefaulted, e.Defaulted),
			)
		},
		OnRejected: func(ctx context.Context, e apiversioning.Event) {
			code := e.Code
			if code == "" {
				code = semconv.MisconfiguredCode
			}
			addEvent(ctx, EventRejected,
				attribute.String(semconv.APIVersionCode, code),
				attribute.String(semconv.APIVersionRequested, e.Requested),
			)
		},
		OnDeprecatedUse: func(ctx context.Context, e apiversioning.Event) {
			addEvent(ctx, EventDeprecated, attribute.String(semconv.APIVersion, versionValue(e)))
		},
	}
}

func addEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

func versionValue(e apiversioning.Event) string {
	if e.Version.IsEmpty() {
		return semconv.NeutralVersion
	}

	return e.Version.String()
}
