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

package reporting

import (
	"time"

	"rivaas.dev/apiversioning/version"
)

// Default header names.
const (
	SupportedHeader  = "api-supported-versions"
	DeprecatedHeader = "api-deprecated-versions"
)

// Option configures a Reporter.
type Option func(*Reporter)

// WithReportAPIVersions enables or disables the supported and deprecated
// version headers. Reporting is enabled by default.
func WithReportAPIVersions(enabled bool) Option {
	return func(r *Reporter) {
		r.report = enabled
	}
}

// WithHeaderNames overrides the names of the version headers.
func WithHeaderNames(supported, deprecated string) Option {
	return func(r *Reporter) {
		if supported != "" {
			r.supportedHeader = supported
		}
		if deprecated != "" {
			r.deprecatedHeader = deprecated
		}
	}
}

// WithPolicy sets the lifecycle policy of v.
//
// Example:
//
//	reporting.New(
//	    reporting.WithPolicy(version.MustParse("1.0"),
//	        reporting.Sunset(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
//	        reporting.MigrationDocs("https://docs.example.com/migrate/v1-to-v2"),
//	    ),
//	)
func WithPolicy(v version.Version, opts ...LifecycleOption) Option {
	return func(r *Reporter) {
		r.setPolicy(v, ApplyLifecycleOptions(opts...))
	}
}

// WithWarning299 adds a Warning: 299 header to responses of deprecated versions.
func WithWarning299() Option {
	return func(r *Reporter) {
		r.warning299 = true
	}
}

// WithEnforceSunset makes Lifecycle report versions past their sunset date
// as gone.
func WithEnforceSunset() Option {
	return func(r *Reporter) {
		r.enforceSunset = true
	}
}

// WithClock sets the clock used for sunset checks.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// LifecycleOption configures the lifecycle policy of one version.
type LifecycleOption func(*Policy)

// Policy is the lifecycle of one version.
type Policy struct {
	Deprecated      bool
	DeprecatedSince time.Time
	SunsetDate      time.Time
	MigrationURL    string
	Successor       version.Version
}

// Deprecated marks the version as deprecated even when its group still
// declares it supported.
func Deprecated() LifecycleOption {
	return func(p *Policy) {
		p.Deprecated = true
	}
}

// DeprecatedSince marks the version as deprecated since date.
func DeprecatedSince(date time.Time) LifecycleOption {
	return func(p *Policy) {
		p.Deprecated = true
		p.DeprecatedSince = date
	}
}

// Sunset sets when the version will be removed.
func Sunset(date time.Time) LifecycleOption {
	return func(p *Policy) {
		p.SunsetDate = date
	}
}

// MigrationDocs sets the URL for migration documentation, included in Link
// headers with rel=deprecation and rel=sunset.
func MigrationDocs(url string) LifecycleOption {
	return func(p *Policy) {
		p.MigrationURL = url
	}
}

// SuccessorVersion indicates which version clients should migrate to.
func SuccessorVersion(v version.Version) LifecycleOption {
	return func(p *Policy) {
		p.Successor = v
	}
}

// ApplyLifecycleOptions applies lifecycle options to a Policy.
func ApplyLifecycleOptions(opts ...LifecycleOption) Policy {
	var p Policy
	for _, opt := range opts {
		opt(&p)
	}

	return p
}
