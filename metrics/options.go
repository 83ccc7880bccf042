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
	"log/slog"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
)

// Option defines functional options for Recorder configuration.
type Option func(*Recorder)

// WithMeterProvider allows you to provide a custom OpenTelemetry [metric.MeterProvider].
// When using this option, the package will NOT set the global otel.SetMeterProvider()
// by default, and provider options ([WithPrometheus], [WithOTLP], [WithStdout])
// are ignored.
//
// Example:
//
//	mp := sdkmetric.NewMeterProvider(...)
//	recorder := metrics.MustNew(metrics.WithMeterProvider(mp))
//	defer mp.Shutdown(context.Background())
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = provider
		r.customMeterProvider = true
	}
}

// WithGlobalMeterProvider registers the meter provider as the global
// OpenTelemetry meter provider via otel.SetMeterProvider().
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) {
		r.registerGlobal = true
	}
}

// WithServiceName sets the service name attribute of every measurement.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceVersion sets the service version attribute of every measurement.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersion = version
	}
}

// WithExportInterval sets the export interval for OTLP and stdout metrics.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithEventHandler sets a custom [EventHandler] for internal operational events.
func WithEventHandler(handler EventHandler) Option {
	return func(r *Recorder) {
		r.eventHandler = handler
	}
}

// WithLogger sets the logger for internal operational events using the default event handler.
func WithLogger(logger *slog.Logger) Option {
	return WithEventHandler(DefaultEventHandler(logger))
}

// WithPrometheus configures the Prometheus provider with a private registry,
// served by [Recorder.Handler].
func WithPrometheus() Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
	}
}

// WithPrometheusRegistry configures the Prometheus provider to register its
// collector with an existing registry.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.MustNew(metrics.WithPrometheusRegistry(reg))
func WithPrometheusRegistry(reg *promclient.Registry) Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
		r.prometheusRegistry = reg
	}
}

// WithOTLP configures OTLP HTTP provider with endpoint.
//
// Example:
//
//	recorder := metrics.MustNew(
//	    metrics.WithOTLP("http://localhost:4318"),
//	    metrics.WithServiceName("orders-api"),
//	)
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.providerSetCount++
		r.otlpEndpoint = endpoint
	}
}

// WithStdout configures stdout provider for development/debugging.
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
		r.providerSetCount++
	}
}
