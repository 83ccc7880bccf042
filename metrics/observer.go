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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/internal/semconv"
)

// Observer returns negotiation callbacks that record into r.
//
// Example:
//
//	v, err := apiversioning.New(apiversioning.WithObserver(recorder.Observer()))
func (r *Recorder) Observer() apiversioning.Observer {
	return apiversioning.Observer{
		OnSelected:      r.recordSelected,
		OnRejected:      r.recordRejected,
		OnDeprecatedUse: r.recordDeprecated,
	}
}

func (r *Recorder) recordSelected(ctx context.Context, e apiversioning.Event) {
	r.selections.Add(ctx, 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String(semconv.APIVersion, versionLabel(e)),
		attribute.String(semconv.APIVersionSource, e.Sources.String()),
		attribute.Bool(semconv.APIVersionDefaulted, e.Defaulted),
	))
}

func (r *Recorder) recordRejected(ctx context.Context, e apiversioning.Event) {
	code := e.Code
	if code == "" {
		code = semconv.MisconfiguredCode
	}
	r.rejections.Add(ctx, 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String(semconv.APIVersionCode, code),
	))
}

func (r *Recorder) recordDeprecated(ctx context.Context, e apiversioning.Event) {
	r.deprecated.Add(ctx, 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String(semconv.APIVersion, versionLabel(e)),
	))
}

// versionLabel bounds the version attribute to resolved versions; requests
// served by a neutral handler are labelled semconv.NeutralVersion.
func versionLabel(e apiversioning.Event) string {
	if e.Version.IsEmpty() {
		return semconv.NeutralVersion
	}

	return e.Version.String()
}
