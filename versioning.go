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
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiversioning/constraint"
	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/internal/semconv"
	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/reporting"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/version"
)

// Versioning negotiates the API version of requests.
// It is safe for concurrent use once created.
type Versioning struct {
	cfg       *Config
	reader    *reader.Reader
	registry  *metadata.Registry
	problems  *problem.Reporter
	reporting *reporting.Reporter
	observers observers
	logger    *slog.Logger
}

// New creates a Versioning with the given options.
//
// Example:
//
//	conv := conventions.New()
//	conv.Group("orders").HasAPIVersion(version.MustParse("1.0"), version.MustParse("2.0"))
//	v, err := apiversioning.New(
//	    apiversioning.WithQueryParam("api-version"),
//	    apiversioning.WithHeader("api-version"),
//	    apiversioning.WithMetadata(conv),
//	)
func New(opts ...Option) (*Versioning, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	reg := cfg.registry
	if reg == nil && len(cfg.metadataSources) > 0 {
		if reg, err = metadata.NewRegistry(cfg.metadataSources...); err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
	}

	rd := reader.New(cfg.sources...)

	problems := problem.NewReporter(cfg.problemBaseURL)
	problems.Policy = cfg.statusPolicy
	problems.PathOnly = rd.PathOnly()
	problems.DisableErrorID = cfg.disableErrorID

	return &Versioning{
		cfg:       cfg,
		reader:    rd,
		registry:  reg,
		problems:  problems,
		reporting: reporting.New(cfg.reportingOptions()...),
		observers: observers(cfg.observers),
		logger:    cfg.logger,
	}, nil
}

// Config returns the configuration.
func (v *Versioning) Config() *Config { return v.cfg }

// Reader returns the version reader.
func (v *Versioning) Reader() *reader.Reader { return v.reader }

// Registry returns the metadata registry, or nil when no metadata source
// was configured.
func (v *Versioning) Registry() *metadata.Registry { return v.registry }

// Problems returns the problem reporter.
func (v *Versioning) Problems() *problem.Reporter { return v.problems }

// Reporting returns the version header reporter.
func (v *Versioning) Reporting() *reporting.Reporter { return v.reporting }

// Logger returns the logger.
func (v *Versioning) Logger() *slog.Logger { return v.logger }

// Candidate returns a selector candidate for a member of a group, with its
// metadata resolved through the registry.
func (v *Versioning) Candidate(group, member string, order int) (selector.Candidate, error) {
	if v.registry == nil {
		return selector.Candidate{}, ErrNoRegistry
	}
	md, err := v.registry.Lookup(group, member)
	if err != nil {
		return selector.Candidate{}, err
	}

	return selector.Candidate{ID: member, Group: group, Metadata: md, Order: order}, nil
}

// Versions returns every version implemented by the route table.
func (v *Versioning) Versions() version.Set {
	if v.registry == nil {
		return nil
	}

	return v.registry.Versions()
}

// ═══════════════════════════════════════════════════════════════════════════════
// Negotiation
// ═══════════════════════════════════════════════════════════════════════════════

// Select reads the requested version and selects one of cands.
// The returned request carries the request-scoped feature; on success the
// feature records the resolved version and the winning metadata.
func (v *Versioning) Select(r *http.Request, cands []selector.Candidate) (*http.Request, selector.Result, error) {
	r, f := feature.Ensure(r)
	outcome := v.reader.Read(r)
	span := trace.SpanFromContext(r.Context())
	if requested := outcome.Requested(); requested != "" {
		span.SetAttributes(attribute.String(semconv.APIVersionRequested, requested))
	}

	res, err := selector.Select(cands, outcome, v.cfg.selectorOptions())
	if err != nil {
		v.rejected(r, outcome, err)
		return r, selector.Result{}, err
	}

	f.Select(res.Version, res.Metadata)
	if !res.Version.IsEmpty() {
		span.SetAttributes(attribute.String(semconv.APIVersionResolved, res.Version.String()))
	}

	v.observers.selected(r.Context(), v.event(r, outcome, res))

	return r, res, nil
}

// WriteHeaders writes the version headers of a successful selection.
// It returns false when the version is past its enforced sunset date, in
// which case a 410 Gone problem response has been written.
func (v *Versioning) WriteHeaders(w http.ResponseWriter, r *http.Request, res selector.Result) bool {
	if res.Candidate.Metadata.IsNeutral() {
		return true
	}

	h := w.Header()
	v.reporting.Report(h, res.Metadata)
	if v.reporting.Lifecycle(h, res.Version, res.Metadata) {
		v.logger.DebugContext(r.Context(), "api version sunset",
			"version", res.Version.String(),
			"path", r.URL.Path,
		)
		v.problems.Write(w, r, &sunsetError{version: res.Version})

		return false
	}

	if v.reporting.IsDeprecated(res.Version, res.Metadata) {
		outcome, _ := RequestedOutcome(r.Context())
		v.observers.deprecatedUse(r.Context(), v.event(r, outcome, res))
	}

	return true
}

// WriteError writes the problem response of a failed selection. Unsupported
// version responses also report the versions the route does support.
func (v *Versioning) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := selector.AsError(err); ok {
		v.reporting.Report(w.Header(), e.Metadata)
	}
	v.problems.Write(w, r, err)
}

// Negotiate selects one of cands and writes the version headers, or the
// problem response on failure. It returns the index of the selected
// candidate, the request carrying the feature, and false when a response
// has already been written.
//
// Example:
//
//	idx, r, ok := v.Negotiate(w, r, cands)
//	if !ok {
//	    return
//	}
//	handlers[idx].ServeHTTP(w, r)
func (v *Versioning) Negotiate(w http.ResponseWriter, r *http.Request, cands []selector.Candidate) (int, *http.Request, bool) {
	r, res, err := v.Select(r, cands)
	if err != nil {
		v.WriteError(w, r, err)
		return -1, r, false
	}
	if !v.WriteHeaders(w, r, res) {
		return -1, r, false
	}

	return res.Index, r, true
}

// BuildURL fills the parameters of t, using the default version when values
// has no entry for the version parameter.
func (v *Versioning) BuildURL(t *constraint.Template, values map[string]string) (string, error) {
	return t.BuildURL(values, v.cfg.defaultVersion)
}

func (v *Versioning) rejected(r *http.Request, outcome feature.Outcome, err error) {
	ctx := r.Context()
	e, _ := selector.AsError(err)
	code := ""
	if e != nil {
		code = e.Code()
	}

	span := trace.SpanFromContext(ctx)
	if code != "" {
		span.SetAttributes(attribute.String(semconv.APIVersionError, code))
	} else {
		span.SetAttributes(attribute.String(semconv.APIVersionError, err.Error()))
	}

	if e == nil || code == "" {
		v.logger.ErrorContext(ctx, "api version selection misconfigured",
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		v.logger.DebugContext(ctx, "api version rejected",
			"code", code,
			"requested", outcome.Requested(),
			"path", r.URL.Path,
		)
	}

	v.observers.rejected(ctx, Event{
		Method:    r.Method,
		Path:      r.URL.Path,
		Requested: outcome.Requested(),
		Code:      code,
		Sources:   outcome.Sources,
	})
}

func (v *Versioning) event(r *http.Request, outcome feature.Outcome, res selector.Result) Event {
	return Event{
		Method:    r.Method,
		Path:      r.URL.Path,
		Requested: outcome.Requested(),
		Version:   res.Version,
		Candidate: res.Candidate.ID,
		Sources:   outcome.Sources,
		Defaulted: res.Defaulted,
	}
}

// sunsetError reports a version past its enforced sunset date.
type sunsetError struct {
	version version.Version
}

func (e *sunsetError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVersionSunset, e.version)
}

func (e *sunsetError) Unwrap() error { return ErrVersionSunset }

func (e *sunsetError) HTTPStatus() int { return http.StatusGone }

var _ problem.ErrorType = (*sunsetError)(nil)
