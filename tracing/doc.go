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

// Package tracing records API version negotiation in OpenTelemetry traces.
//
// A [Tracer] owns a tracer provider (noop, stdout, OTLP gRPC or OTLP HTTP)
// and offers two integration points: [Middleware] starts a server span for
// each request, and [Tracer.Observer] adds negotiation events to the span
// carried by the request context.
//
// Basic usage:
//
//	tracer := tracing.MustNew(
//	    tracing.WithServiceName("orders-api"),
//	    tracing.WithStdout(),
//	)
//	defer tracer.Shutdown(context.Background())
//
//	v, err := apiversioning.New(
//	    apiversioning.WithQueryParam("api-version"),
//	    apiversioning.WithObserver(tracer.Observer()),
//	)
//	...
//	http.ListenAndServe(":8080", tracing.Middleware(tracer)(mux))
//
// OTLP providers connect to their collector in [Tracer.Start]:
//
//	tracer := tracing.MustNew(tracing.WithOTLP("localhost:4317", tracing.OTLPInsecure()))
//	if err := tracer.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Span events:
//   - api_version.selected: a handler was chosen (api.version, api.version.source)
//   - api_version.rejected: negotiation failed (api.version.code)
//   - api_version.deprecated: a deprecated version was served
//
// By default, this package does NOT set the global OpenTelemetry tracer
// provider. Use [WithGlobalTracerProvider] for global registration.
package tracing
