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
	"fmt"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const scopeName = "rivaas.dev/apiversioning"

// initializeProvider initializes the metrics provider based on configuration.
func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		if r.meterProvider == nil {
			return ErrNilMeterProvider
		}
		r.emitDebug("Using custom user-provided meter provider")
		r.meter = r.meterProvider.Meter(scopeName)
		return r.initializeMetrics()
	}

	var err error
	switch r.provider {
	case PrometheusProvider:
		err = r.initPrometheusProvider()
	case OTLPProvider:
		err = r.initOTLPProvider()
	case StdoutProvider:
		err = r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
	if err != nil {
		return err
	}

	if r.registerGlobal {
		r.emitDebug("Setting global OpenTelemetry meter provider", "provider", r.provider)
		otel.SetMeterProvider(r.meterProvider)
	}

	r.meter = r.meterProvider.Meter(scopeName)

	return r.initializeMetrics()
}

// initPrometheusProvider initializes the Prometheus metrics provider.
func (r *Recorder) initPrometheusProvider() error {
	if r.prometheusRegistry == nil {
		// A private registry avoids conflicts with the global one.
		r.prometheusRegistry = promclient.NewRegistry()
	}

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	return nil
}

// initOTLPProvider initializes the OTLP metrics provider.
func (r *Recorder) initOTLPProvider() error {
	endpoint := r.otlpEndpoint
	isHTTP := strings.HasPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if isHTTP {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	return nil
}

// initStdoutProvider initializes the stdout metrics provider.
func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	return nil
}
