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
	"time"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/reporting"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/version"
)

// DefaultQueryParam is the query parameter read when no source is configured.
const DefaultQueryParam = "api-version"

// Config holds the versioning configuration.
// It is configured via functional options passed to New.
type Config struct {
	// Reader sources (checked in order)
	sources []reader.Source

	// Selection
	defaultVersion  version.Version
	assumeDefault   bool
	defaultSelector selector.DefaultVersionSelector
	tieBreaker      selector.TieBreaker
	strictNeutral   bool

	// Metadata
	metadataSources []metadata.Source
	registry        *metadata.Registry

	// Reporting
	reportVersions bool
	statusPolicy   problem.StatusPolicy
	problemBaseURL string
	disableErrorID bool
	sunsetPolicies []sunsetPolicy
	enforceSunset  bool
	warning299     bool

	// Observability
	logger    *slog.Logger
	observers []Observer

	// Clock function for testing
	now func() time.Time
}

type sunsetPolicy struct {
	version version.Version
	opts    []reporting.LifecycleOption
}

// Option configures versioning.
type Option func(*Config) error

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		reportVersions: true,
		statusPolicy:   problem.DefaultStatusPolicy(),
		problemBaseURL: problem.DefaultBaseURL,
		logger:         slog.New(slog.DiscardHandler),
		now:            time.Now,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if len(cfg.sources) == 0 {
		cfg.sources = []reader.Source{reader.Query(DefaultQueryParam)}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate checks the configuration for errors.
func (c *Config) validate() error {
	if c.assumeDefault && !c.defaultVersion.IsRegular() && c.defaultSelector == nil {
		return ErrDefaultRequired
	}

	for _, s := range []int{
		c.statusPolicy.Unspecified, c.statusPolicy.Invalid,
		c.statusPolicy.Ambiguous, c.statusPolicy.Unsupported,
	} {
		if s != 0 && (s < 400 || s > 499) {
			return fmt.Errorf("%w: %d", ErrInvalidStatusPolicy, s)
		}
	}

	return nil
}

// DefaultVersion returns the configured default version.
func (c *Config) DefaultVersion() version.Version {
	return c.defaultVersion
}

// AssumeDefault reports whether unspecified versions are replaced by the default.
func (c *Config) AssumeDefault() bool {
	return c.assumeDefault
}

// Sources returns the configured reader sources.
func (c *Config) Sources() []reader.Source {
	return c.sources
}

// ReportAPIVersions reports whether version headers are written.
func (c *Config) ReportAPIVersions() bool {
	return c.reportVersions
}

// StatusPolicy returns the status policy of problem responses.
func (c *Config) StatusPolicy() problem.StatusPolicy {
	return c.statusPolicy
}

// Now returns the current time (injectable for testing).
func (c *Config) Now() time.Time {
	return c.now()
}

func (c *Config) selectorOptions() selector.Options {
	return selector.Options{
		AssumeDefault:   c.assumeDefault,
		Default:         c.defaultVersion,
		DefaultSelector: c.defaultSelector,
		TieBreaker:      c.tieBreaker,
		StrictNeutral:   c.strictNeutral,
	}
}

func (c *Config) reportingOptions() []reporting.Option {
	opts := []reporting.Option{
		reporting.WithReportAPIVersions(c.reportVersions),
		reporting.WithClock(c.now),
	}
	if c.enforceSunset {
		opts = append(opts, reporting.WithEnforceSunset())
	}
	if c.warning299 {
		opts = append(opts, reporting.WithWarning299())
	}
	for _, p := range c.sunsetPolicies {
		opts = append(opts, reporting.WithPolicy(p.version, p.opts...))
	}

	return opts
}
