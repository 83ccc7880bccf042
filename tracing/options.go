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
	"log/slog"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Option defines functional options for Tracer configuration.
type Option func(*Tracer)

// WithTracerProvider allows you to provide a custom OpenTelemetry [trace.TracerProvider].
// Provider options ([WithStdout], [WithOTLP], [WithOTLPHTTP]) are ignored and
// the global tracer provider is not set unless [WithGlobalTracerProvider] is used.
//
// Example:
//
//	tp := sdktrace.NewTracerProvider(...)
//	tracer := tracing.MustNew(tracing.WithTracerProvider(tp))
//	defer tp.Shutdown(context.Background())
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(t *Tracer) {
		t.tracerProvider = provider
		t.customTracerProvider = true
	}
}

// WithGlobalTracerProvider registers the tracer provider as the global
// OpenTelemetry tracer provider via otel.SetTracerProvider().
func WithGlobalTracerProvider() Option {
	return func(t *Tracer) {
		t.registerGlobal = true
	}
}

// WithServiceName sets the service name of the trace resource.
func WithServiceName(name string) Option {
	return func(t *Tracer) {
		t.serviceName = name
	}
}

// WithServiceVersion sets the service version of the trace resource.
func WithServiceVersion(version string) Option {
	return func(t *Tracer) {
		t.serviceVersion = version
	}
}

// WithPropagator replaces the default W3C trace context and baggage propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(t *Tracer) {
		t.propagator = p
	}
}

// WithEventHandler sets a custom [EventHandler] for internal operational events.
func WithEventHandler(handler EventHandler) Option {
	return func(t *Tracer) {
		t.eventHandler = handler
	}
}

// WithLogger sets the logger for internal operational events using the default event handler.
func WithLogger(logger *slog.Logger) Option {
	return WithEventHandler(DefaultEventHandler(logger))
}

// WithStdout exports spans to stdout with pretty printing.
func WithStdout() Option {
	return func(t *Tracer) {
		t.provider = StdoutProvider
		t.providerSetCount++
	}
}

// OTLPOption configures an OTLP provider.
type OTLPOption func(*Tracer)

// OTLPInsecure disables TLS for the OTLP connection.
func OTLPInsecure() OTLPOption {
	return func(t *Tracer) {
		t.otlpInsecure = true
	}
}

// WithOTLP exports spans via OTLP gRPC to endpoint, such as "localhost:4317".
func WithOTLP(endpoint string, opts ...OTLPOption) Option {
	return func(t *Tracer) {
		t.provider = OTLPProvider
		t.providerSetCount++
		t.otlpEndpoint = endpoint
		for _, opt := range opts {
			opt(t)
		}
	}
}

// WithOTLPHTTP exports spans via OTLP HTTP to endpoint, such as "localhost:4318".
func WithOTLPHTTP(endpoint string, opts ...OTLPOption) Option {
	return func(t *Tracer) {
		t.provider = OTLPHTTPProvider
		t.providerSetCount++
		t.otlpEndpoint = endpoint
		for _, opt := range opts {
			opt(t)
		}
	}
}
