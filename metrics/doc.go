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

// Package metrics records API version negotiation metrics with OpenTelemetry.
// It supports multiple exporters (Prometheus, OTLP, stdout) and plugs into
// negotiation as an [apiversioning.Observer].
//
// # Basic Usage
//
//	recorder := metrics.MustNew(
//	    metrics.WithPrometheus(),
//	    metrics.WithServiceName("orders-api"),
//	)
//	defer recorder.Shutdown(context.Background())
//
//	v, err := apiversioning.New(
//	    apiversioning.WithObserver(recorder.Observer()),
//	)
//
//	handler, _ := recorder.Handler()
//	http.Handle("/metrics", handler)
//
// # Instruments
//
//   - api_version_selections_total: selected requests by version, source and
//     whether the default was assumed
//   - api_version_rejections_total: rejected requests by problem code
//   - api_version_deprecated_requests_total: requests served by a deprecated
//     version
//
// # Global State
//
// By default, this package does NOT set the global OpenTelemetry meter provider.
// Use [WithGlobalMeterProvider] if you want global registration.
package metrics
