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
	"fmt"
	"net/http"
	"strings"
	"time"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

type policyEntry struct {
	version version.Version
	policy  Policy
}

// Reporter writes version headers. It is immutable after New and safe for
// concurrent use.
type Reporter struct {
	report           bool
	supportedHeader  string
	deprecatedHeader string

	policies      []policyEntry
	warning299    bool
	enforceSunset bool

	now func() time.Time
}

// New returns a Reporter with reporting enabled.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		report:           true,
		supportedHeader:  SupportedHeader,
		deprecatedHeader: DeprecatedHeader,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Reporter) setPolicy(v version.Version, p Policy) {
	for i := range r.policies {
		if r.policies[i].version.Equal(v) {
			r.policies[i].policy = p
			return
		}
	}
	r.policies = append(r.policies, policyEntry{version: v, policy: p})
}

// Policy returns the lifecycle policy of v.
func (r *Reporter) Policy(v version.Version) (Policy, bool) {
	for _, e := range r.policies {
		if e.version.Equal(v) {
			return e.policy, true
		}
	}

	return Policy{}, false
}

// Enabled reports whether version headers are written.
func (r *Reporter) Enabled() bool { return r.report }

// Report writes the supported and deprecated versions of md into h. Nothing
// is written for neutral metadata or when reporting is disabled.
func (r *Reporter) Report(h http.Header, md metadata.Metadata) {
	if !r.report || md.IsNeutral() || md.IsZero() {
		return
	}

	if s := md.ReportedSupported(); !s.IsEmpty() {
		h.Set(r.supportedHeader, s.String())
	}
	if d := md.ReportedDeprecated(); !d.IsEmpty() {
		h.Set(r.deprecatedHeader, d.String())
	}
}

// Lifecycle writes the deprecation and sunset headers of v into h.
// It returns true when v is past its sunset date and sunset enforcement is
// enabled; the caller should answer 410 Gone.
func (r *Reporter) Lifecycle(h http.Header, v version.Version, md metadata.Metadata) bool {
	if !v.IsRegular() {
		return false
	}

	p, hasPolicy := r.Policy(v)
	deprecated := md.IsDeprecated(v) || p.Deprecated
	if !hasPolicy && !deprecated {
		return false
	}

	if !p.SunsetDate.IsZero() {
		h.Set("Sunset", p.SunsetDate.UTC().Format(http.TimeFormat))
		if r.enforceSunset && r.now().After(p.SunsetDate) {
			if p.MigrationURL != "" {
				h.Set("Link", fmt.Sprintf("<%s>; rel=\"sunset\"", p.MigrationURL))
			}
			return true
		}
	}

	if deprecated {
		h.Set("Deprecation", "true")
	}

	if p.MigrationURL != "" {
		var links []string
		if deprecated {
			links = append(links, fmt.Sprintf("<%s>; rel=\"deprecation\"", p.MigrationURL))
		}
		if !p.SunsetDate.IsZero() {
			links = append(links, fmt.Sprintf("<%s>; rel=\"sunset\"", p.MigrationURL))
		}
		if len(links) > 0 {
			h.Set("Link", strings.Join(links, ", "))
		}
	}

	if deprecated && r.warning299 {
		msg := fmt.Sprintf("299 - \"API version %s is deprecated", v)
		if !p.SunsetDate.IsZero() {
			msg += " and will be removed on " + p.SunsetDate.UTC().Format(time.RFC3339)
		}
		if p.Successor.IsRegular() {
			msg += ". Please upgrade to version " + p.Successor.String()
		} else {
			msg += ". Please upgrade to a supported version"
		}
		h.Set("Warning", msg+".\"")
	}

	return false
}

// IsDeprecated reports whether v is deprecated by md or by its policy.
func (r *Reporter) IsDeprecated(v version.Version, md metadata.Metadata) bool {
	if md.IsDeprecated(v) {
		return true
	}
	p, _ := r.Policy(v)

	return p.Deprecated
}
