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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Static errors for tracer configuration.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	ErrConflictingProviders = errors.New("only one of WithStdout, WithOTLP or WithOTLPHTTP can be used")
	ErrEmptyServiceName     = errors.New("service name cannot be empty")
	ErrNilTracerProvider    = errors.New("custom tracer provider is nil")
	ErrRequiresStart        = errors.New("OTLP providers require context; use Start(ctx)")
)

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event (e.g., failed to export spans).
	EventError EventType = iota
	// EventWarning indicates a warning event.
	EventWarning
	// EventInfo indicates an informational event (e.g., tracing initialized).
	EventInfo
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the tracing package.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events from the tracing package.
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the provided slog.Logger.
// If logger is nil, returns a no-op handler that discards all events.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}

	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

const (
	// DefaultServiceName is the default service name used when none is provided.
	DefaultServiceName = "rivaas-service"

	// DefaultServiceVersion is the default service version when none is provided.
	DefaultServiceVersion = "1.0.0"
)

// Provider represents the available tracing providers.
type Provider string

const (
	// NoopProvider records spans without exporting them (default).
	NoopProvider Provider = "noop"
	// StdoutProvider exports traces to stdout (development/testing).
	StdoutProvider Provider = "stdout"
	// OTLPProvider exports traces via OTLP gRPC.
	OTLPProvider Provider = "otlp"
	// OTLPHTTPProvider exports traces via OTLP HTTP.
	OTLPHTTPProvider Provider = "otlp-http"
)

// Tracer starts request spans and records negotiation events.
// All methods are safe for concurrent use.
type Tracer struct {
	tracer         trace.Tracer
	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
	propagator     propagation.TextMapPropagator
	eventHandler   EventHandler

	serviceName    string
	serviceVersion string
	provider       Provider
	otlpEndpoint   string

	shutdownOnce sync.Once
	shutdownErr  error

	providerSetCount     int
	otlpInsecure         bool
	customTracerProvider bool
	registerGlobal       bool
	started              bool
}

// New creates a new [Tracer] with the given options. OTLP providers are
// connected later by [Tracer.Start].
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultServiceVersion,
		provider:       NoopProvider,
		propagator:     propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
	}

	for _, opt := range opts {
		opt(t)
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if t.customTracerProvider || !t.isOTLP() {
		if err := t.initializeProvider(); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		t.started = true
	}

	return t, nil
}

// MustNew creates a new [Tracer] with the given options.
// It panics if the configuration is invalid.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize tracing: %v", err))
	}

	return t
}

func (t *Tracer) validate() error {
	if t.providerSetCount > 1 {
		return ErrConflictingProviders
	}
	if t.serviceName == "" {
		return ErrEmptyServiceName
	}
	if t.customTracerProvider && t.tracerProvider == nil {
		return ErrNilTracerProvider
	}

	return nil
}

func (t *Tracer) isOTLP() bool {
	return t.provider == OTLPProvider || t.provider == OTLPHTTPProvider
}

// Start connects OTLP providers. It is a no-op for the others and when the
// tracer has already started.
func (t *Tracer) Start(ctx context.Context) error {
	if t.started {
		return nil
	}
	if err := t.initializeProviderWithContext(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	t.started = true

	return nil
}

// IsEnabled reports whether the tracer is ready to start spans.
func (t *Tracer) IsEnabled() bool {
	return t.started && t.tracer != nil
}

// Provider returns the configured provider, or "custom" when the tracer
// provider was supplied with [WithTracerProvider].
func (t *Tracer) Provider() Provider {
	if t.customTracerProvider {
		return "custom"
	}

	return t.provider
}

// ServiceName returns the service name.
func (t *Tracer) ServiceName() string {
	return t.serviceName
}

// ExtractTraceContext returns ctx carrying the remote span context of headers.
func (t *Tracer) ExtractTraceContext(ctx context.Context, headers http.Header) context.Context {
	return t.propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// InjectTraceContext writes the span context of ctx into headers.
func (t *Tracer) InjectTraceContext(ctx context.Context, headers http.Header) {
	t.propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// Shutdown flushes pending spans and shuts down the tracer provider.
// Custom tracer providers are left to their owner.
// This method is idempotent.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		if t.customTracerProvider || t.sdkProvider == nil {
			t.emitDebug("Skipping shutdown of tracer provider", "provider", t.Provider())
			return
		}
		if err := t.sdkProvider.Shutdown(ctx); err != nil {
			t.shutdownErr = fmt.Errorf("tracer provider shutdown: %w", err)
			return
		}
		t.emitDebug("Tracer provider shut down successfully")
	})

	return t.shutdownErr
}

// ForceFlush immediately exports any pending spans.
func (t *Tracer) ForceFlush(ctx context.Context) error {
	if t.sdkProvider == nil {
		return nil
	}
	if err := t.sdkProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("tracing force flush: %w", err)
	}

	return nil
}

func (t *Tracer) emitInfo(msg string, args ...any) {
	if t.eventHandler != nil {
		t.eventHandler(Event{Type: EventInfo, Message: msg, Args: args})
	}
}

func (t *Tracer) emitDebug(msg string, args ...any) {
	if t.eventHandler != nil {
		t.eventHandler(Event{Type: EventDebug, Message: msg, Args: args})
	}
}
