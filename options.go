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
	"time"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/reporting"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/version"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Source Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithQueryParam reads the version from a query string parameter.
//
// Example:
//
//	apiversioning.WithQueryParam("api-version")
//	// Client sends: GET /orders?api-version=2.0
func WithQueryParam(name string) Option {
	return func(cfg *Config) error {
		if name == "" {
			return ErrEmptyQueryParam
		}
		cfg.sources = append(cfg.sources, reader.Query(name))

		return nil
	}
}

// WithHeader reads the version from one or more headers.
//
// Example:
//
//	apiversioning.WithHeader("api-version", "x-ms-version")
//	// Client sends: api-version: 2.0
func WithHeader(names ...string) Option {
	return func(cfg *Config) error {
		if len(names) == 0 {
			return ErrEmptyHeaderName
		}
		for _, n := range names {
			if n == "" {
				return ErrEmptyHeaderName
			}
		}
		cfg.sources = append(cfg.sources, reader.Header(names...))

		return nil
	}
}

// WithMediaTypeParam reads the version from a media type parameter of the
// Content-Type or Accept header.
//
// Example:
//
//	apiversioning.WithMediaTypeParam("v")
//	// Client sends: Accept: application/json; v=2.0
func WithMediaTypeParam(name string) Option {
	return func(cfg *Config) error {
		if name == "" {
			return ErrEmptyMediaParam
		}
		cfg.sources = append(cfg.sources, reader.MediaType(name))

		return nil
	}
}

// WithMediaTypeTemplate reads the version embedded in a vendor media type.
//
// Example:
//
//	apiversioning.WithMediaTypeTemplate("application/vnd.acme.v{version}+json")
//	// Client sends: Accept: application/vnd.acme.v2+json
func WithMediaTypeTemplate(pattern string) Option {
	return func(cfg *Config) error {
		if pattern == "" {
			return ErrEmptyMediaTemplate
		}
		src, err := reader.MediaTypeTemplate(pattern)
		if err != nil {
			return err
		}
		cfg.sources = append(cfg.sources, src)

		return nil
	}
}

// WithPathParam reads the version bound by a route template parameter such
// as {version:apiVersion}.
func WithPathParam(name string) Option {
	return func(cfg *Config) error {
		if name == "" {
			return ErrEmptyPathParam
		}
		cfg.sources = append(cfg.sources, reader.Path(name))

		return nil
	}
}

// WithCustomSource reads the version with a custom function.
//
// Example:
//
//	apiversioning.WithCustomSource("tenant", func(r *http.Request) []string {
//	    return []string{tenantVersion(r)}
//	})
func WithCustomSource(name string, fn func(*http.Request) []string) Option {
	return func(cfg *Config) error {
		if fn == nil {
			return ErrNilCustomSource
		}
		cfg.sources = append(cfg.sources, reader.Func(name, fn))

		return nil
	}
}

// WithSource adds a reader source.
func WithSource(src reader.Source) Option {
	return func(cfg *Config) error {
		if src == nil {
			return ErrNilSource
		}
		cfg.sources = append(cfg.sources, src)

		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Selection Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithDefault sets the default version, used for unspecified requests when
// WithAssumeDefault is enabled and for URL generation.
func WithDefault(v version.Version) Option {
	return func(cfg *Config) error {
		if !v.IsRegular() {
			return ErrInvalidDefault
		}
		cfg.defaultVersion = v

		return nil
	}
}

// WithAssumeDefault substitutes the default version for requests that do
// not specify one.
func WithAssumeDefault(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.assumeDefault = enabled
		return nil
	}
}

// WithDefaultSelector chooses the assumed default version per route.
//
// Example:
//
//	apiversioning.WithDefaultSelector(selector.CurrentImplementation(version.MustParse("1.0")))
func WithDefaultSelector(s selector.DefaultVersionSelector) Option {
	return func(cfg *Config) error {
		cfg.defaultSelector = s
		return nil
	}
}

// WithTieBreaker overrides the tie-break applied after the version filter.
func WithTieBreaker(tb selector.TieBreaker) Option {
	return func(cfg *Config) error {
		cfg.tieBreaker = tb
		return nil
	}
}

// WithStrictNeutral fails invalid and ambiguous requests even on routes whose
// handlers are all version-neutral. Without it, both invalid and ambiguous
// versions are ignored on such routes.
func WithStrictNeutral() Option {
	return func(cfg *Config) error {
		cfg.strictNeutral = true
		return nil
	}
}

// WithMetadata builds the version metadata of the route table from sources,
// typically a conventions.Builder or a declarative.Source.
func WithMetadata(sources ...metadata.Source) Option {
	return func(cfg *Config) error {
		cfg.metadataSources = append(cfg.metadataSources, sources...)
		return nil
	}
}

// WithRegistry uses a prebuilt metadata registry.
func WithRegistry(reg *metadata.Registry) Option {
	return func(cfg *Config) error {
		if reg == nil {
			return ErrNoRegistry
		}
		cfg.registry = reg

		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Response Behavior Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithReportAPIVersions enables or disables the api-supported-versions and
// api-deprecated-versions headers. Enabled by default.
func WithReportAPIVersions(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.reportVersions = enabled
		return nil
	}
}

// WithStatusPolicy sets how failures map to HTTP statuses.
func WithStatusPolicy(p problem.StatusPolicy) Option {
	return func(cfg *Config) error {
		cfg.statusPolicy = p
		return nil
	}
}

// WithProblemBaseURL sets the base of the problem type URIs.
func WithProblemBaseURL(url string) Option {
	return func(cfg *Config) error {
		cfg.problemBaseURL = url
		return nil
	}
}

// WithoutErrorID disables the error_id member of problem responses.
func WithoutErrorID() Option {
	return func(cfg *Config) error {
		cfg.disableErrorID = true
		return nil
	}
}

// WithSunsetPolicy sets the lifecycle of a version.
//
// Example:
//
//	apiversioning.WithSunsetPolicy(version.MustParse("1.0"),
//	    reporting.Sunset(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
//	    reporting.MigrationDocs("https://docs.example.com/migrate/v1-to-v2"),
//	)
func WithSunsetPolicy(v version.Version, opts ...reporting.LifecycleOption) Option {
	return func(cfg *Config) error {
		if !v.IsRegular() {
			return fmt.Errorf("%w: sunset policy", ErrInvalidDefault)
		}
		cfg.sunsetPolicies = append(cfg.sunsetPolicies, sunsetPolicy{version: v, opts: opts})

		return nil
	}
}

// WithEnforceSunset answers 410 Gone for versions past their sunset date.
func WithEnforceSunset() Option {
	return func(cfg *Config) error {
		cfg.enforceSunset = true
		return nil
	}
}

// WithWarning299 enables Warning: 299 headers for deprecated versions.
func WithWarning299() Option {
	return func(cfg *Config) error {
		cfg.warning299 = true
		return nil
	}
}

// WithClock sets a custom clock for sunset checks.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) error {
		if now != nil {
			cfg.now = now
		}

		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Observability Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithLogger sets the logger. Negotiation failures are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return ErrNilLogger
		}
		cfg.logger = logger

		return nil
	}
}

// WithObserver registers callbacks for negotiation events. Several observers
// may be registered; they are called in registration order.
func WithObserver(o Observer) Option {
	return func(cfg *Config) error {
		cfg.observers = append(cfg.observers, o)
		return nil
	}
}
