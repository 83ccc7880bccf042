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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/apiversioning/internal/semconv"
)

// Static errors for recorder configuration.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	ErrConflictingProviders = errors.New("only one of WithPrometheus, WithPrometheusRegistry, WithOTLP or WithStdout can be used")
	ErrEmptyServiceName     = errors.New("service name cannot be empty")
	ErrNoHandler            = errors.New("handler only available with Prometheus provider")
	ErrNilMeterProvider     = errors.New("custom meter provider is nil")
)

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event (e.g., failed to export metrics).
	EventError EventType = iota
	// EventWarning indicates a warning event.
	EventWarning
	// EventInfo indicates an informational event.
	EventInfo
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the metrics package.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events from the metrics package.
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

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider uses Prometheus exporter for metrics (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider uses OTLP HTTP exporter for metrics.
	OTLPProvider Provider = "otlp"
	// StdoutProvider uses stdout exporter for metrics (development/testing).
	StdoutProvider Provider = "stdout"
)

// Recorder records negotiation metrics.
// All methods are safe for concurrent use.
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusHandler  http.Handler
	prometheusRegistry *promclient.Registry
	eventHandler       EventHandler

	selections metric.Int64Counter
	rejections metric.Int64Counter
	deprecated metric.Int64Counter

	exportInterval time.Duration

	serviceName    string
	serviceVersion string
	otlpEndpoint   string

	serviceNameAttr    attribute.KeyValue
	serviceVersionAttr attribute.KeyValue

	provider            Provider
	providerSetCount    int
	isShuttingDown      atomic.Bool
	customMeterProvider bool
	registerGlobal      bool
}

// New creates a new [Recorder] with the given options.
// Returns an error if the metrics provider fails to initialize.
// For a version that panics on error, use [MustNew].
func New(opts ...Option) (*Recorder, error) {
	recorder := &Recorder{
		serviceName:    "rivaas-service",
		serviceVersion: "1.0.0",
		provider:       PrometheusProvider,
		exportInterval: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(recorder)
	}

	if err := recorder.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	recorder.serviceNameAttr = attribute.String(semconv.ServiceName, recorder.serviceName)
	recorder.serviceVersionAttr = attribute.String(semconv.ServiceVersion, recorder.serviceVersion)

	if err := recorder.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return recorder, nil
}

// MustNew creates a new [Recorder] with the given options.
// It panics if the metrics provider fails to initialize.
func MustNew(opts ...Option) *Recorder {
	recorder, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize metrics: %v", err))
	}

	return recorder
}

// validate checks that the configuration is valid.
func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return ErrConflictingProviders
	}
	if r.serviceName == "" {
		return ErrEmptyServiceName
	}
	if r.exportInterval < time.Second {
		r.emitWarning("Export interval is very low, may cause high CPU usage", "interval", r.exportInterval)
	}
	if r.provider == OTLPProvider && r.otlpEndpoint == "" {
		r.emitWarning("OTLP endpoint not specified, will use default", "default", "http://localhost:4318")
		r.otlpEndpoint = "http://localhost:4318"
	}

	return nil
}

// initializeMetrics creates the negotiation instruments.
func (r *Recorder) initializeMetrics() error {
	var err error

	r.selections, err = r.meter.Int64Counter(
		"api_version_selections_total",
		metric.WithDescription("Total number of requests negotiated to a handler"),
	)
	if err != nil {
		return fmt.Errorf("failed to create selections counter: %w", err)
	}

	r.rejections, err = r.meter.Int64Counter(
		"api_version_rejections_total",
		metric.WithDescription("Total number of requests rejected by version negotiation"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rejections counter: %w", err)
	}

	r.deprecated, err = r.meter.Int64Counter(
		"api_version_deprecated_requests_total",
		metric.WithDescription("Total number of requests served by a deprecated version"),
	)
	if err != nil {
		return fmt.Errorf("failed to create deprecated counter: %w", err)
	}

	return nil
}

// Handler returns the Prometheus metrics [http.Handler].
//
// Example:
//
//	handler, err := recorder.Handler()
//	if err == nil {
//	    http.Handle("/metrics", handler)
//	}
func (r *Recorder) Handler() (http.Handler, error) {
	if r.customMeterProvider || r.provider != PrometheusProvider || r.prometheusHandler == nil {
		return nil, fmt.Errorf("%w, current provider: %s", ErrNoHandler, r.Provider())
	}

	return r.prometheusHandler, nil
}

// Provider returns the current metrics provider, or "custom" when the
// meter provider was supplied with [WithMeterProvider].
func (r *Recorder) Provider() Provider {
	if r.customMeterProvider {
		return "custom"
	}

	return r.provider
}

// ServiceName returns the service name.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// ServiceVersion returns the service version.
func (r *Recorder) ServiceVersion() string {
	return r.serviceVersion
}

// Shutdown flushes pending metrics and shuts down the meter provider.
// Custom meter providers are left to their owner.
// This method is idempotent.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	if r.customMeterProvider {
		r.emitDebug("Skipping shutdown of custom meter provider (managed by user)")
		return nil
	}

	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}
	if err := mp.ForceFlush(ctx); err != nil {
		r.emitWarning("metrics flush warning", "error", err)
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	r.emitDebug("Meter provider shut down successfully")

	return nil
}

// ForceFlush immediately exports any pending metric data.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.isShuttingDown.Load() {
		return nil
	}
	if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok {
		if err := mp.ForceFlush(ctx); err != nil {
			return fmt.Errorf("metrics force flush: %w", err)
		}
	}

	return nil
}

// emitWarning emits a warning event if an event handler is configured.
func (r *Recorder) emitWarning(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventWarning, Message: msg, Args: args})
	}
}

// emitDebug emits a debug event if an event handler is configured.
func (r *Recorder) emitDebug(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventDebug, Message: msg, Args: args})
	}
}
