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

//go:build !integration

package reporting

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

func set(vs ...string) version.Set {
	out := make([]version.Version, 0, len(vs))
	for _, s := range vs {
		out = append(out, version.MustParse(s))
	}
	return version.NewSet(out...)
}

func ordersMetadata() metadata.Metadata {
	return metadata.Declaration{
		Supported:            set("2.0", "1.0"),
		Deprecated:           set("0.9"),
		Advertised:           set("3.0"),
		DeprecatedAdvertised: set("0.5"),
	}.Resolve("")
}

func TestReporter_Report(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		opts           []Option
		md             metadata.Metadata
		wantSupported  string
		wantDeprecated string
	}{
		{
			name:           "versioned",
			md:             ordersMetadata(),
			wantSupported:  "1.0, 2.0, 3.0",
			wantDeprecated: "0.5, 0.9",
		},
		{
			name: "neutral",
			md:   metadata.NeutralMetadata(),
		},
		{
			name: "disabled",
			opts: []Option{WithReportAPIVersions(false)},
			md:   ordersMetadata(),
		},
		{
			name:          "no deprecated versions",
			md:            metadata.Versioned(set("1.0"), nil),
			wantSupported: "1.0",
		},
		{
			name: "zero metadata",
			md:   metadata.Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := http.Header{}
			New(tt.opts...).Report(h, tt.md)
			assert.Equal(t, tt.wantSupported, h.Get(SupportedHeader))
			assert.Equal(t, tt.wantDeprecated, h.Get(DeprecatedHeader))
		})
	}
}

func TestReporter_HeaderNames(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	New(WithHeaderNames("x-supported", "")).Report(h, ordersMetadata())
	assert.Equal(t, "1.0, 2.0, 3.0", h.Get("X-Supported"))
	assert.Equal(t, "0.5, 0.9", h.Get(DeprecatedHeader))
	assert.Empty(t, h.Get(SupportedHeader))
}

func TestReporter_Lifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sunset := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	v09 := version.MustParse("0.9")
	v1 := version.MustParse("1.0")
	v2 := version.MustParse("2.0")

	t.Run("deprecated by metadata with sunset policy", func(t *testing.T) {
		t.Parallel()

		r := New(
			WithClock(func() time.Time { return now }),
			WithWarning299(),
			WithPolicy(v09, Sunset(sunset), MigrationDocs("https://docs.example.com/migrate"), SuccessorVersion(v2)),
		)

		h := http.Header{}
		gone := r.Lifecycle(h, v09, ordersMetadata())
		assert.False(t, gone)
		assert.Equal(t, "true", h.Get("Deprecation"))
		assert.Equal(t, "Wed, 31 Dec 2025 00:00:00 GMT", h.Get("Sunset"))
		assert.Equal(t,
			`<https://docs.example.com/migrate>; rel="deprecation", <https://docs.example.com/migrate>; rel="sunset"`,
			h.Get("Link"))
		assert.Contains(t, h.Get("Warning"), `299 - "API version 0.9 is deprecated and will be removed on 2025-12-31T00:00:00Z`)
		assert.Contains(t, h.Get("Warning"), "upgrade to version 2.0")
	})

	t.Run("supported version without policy", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		assert.False(t, New().Lifecycle(h, v1, ordersMetadata()))
		assert.Empty(t, h)
	})

	t.Run("supported version with sunset only", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		r := New(WithPolicy(v1, Sunset(sunset), MigrationDocs("https://docs.example.com/v1")))
		assert.False(t, r.Lifecycle(h, v1, ordersMetadata()))
		assert.Empty(t, h.Get("Deprecation"))
		assert.Equal(t, `<https://docs.example.com/v1>; rel="sunset"`, h.Get("Link"))
	})

	t.Run("deprecated by policy", func(t *testing.T) {
		t.Parallel()

		r := New(WithPolicy(v1, DeprecatedSince(now)))
		h := http.Header{}
		assert.False(t, r.Lifecycle(h, v1, ordersMetadata()))
		assert.Equal(t, "true", h.Get("Deprecation"))
		assert.Empty(t, h.Get("Warning"))
		assert.True(t, r.IsDeprecated(v1, ordersMetadata()))
		assert.False(t, r.IsDeprecated(v2, ordersMetadata()))
	})

	t.Run("past sunset with enforcement", func(t *testing.T) {
		t.Parallel()

		r := New(
			WithClock(func() time.Time { return sunset.Add(time.Hour) }),
			WithEnforceSunset(),
			WithPolicy(v09, Deprecated(), Sunset(sunset), MigrationDocs("https://docs.example.com/migrate")),
		)
		h := http.Header{}
		assert.True(t, r.Lifecycle(h, v09, ordersMetadata()))
		assert.Equal(t, `<https://docs.example.com/migrate>; rel="sunset"`, h.Get("Link"))
		assert.Empty(t, h.Get("Deprecation"))
	})

	t.Run("past sunset without enforcement", func(t *testing.T) {
		t.Parallel()

		r := New(
			WithClock(func() time.Time { return sunset.Add(time.Hour) }),
			WithPolicy(v09, Sunset(sunset)),
		)
		h := http.Header{}
		assert.False(t, r.Lifecycle(h, v09, ordersMetadata()))
		assert.Equal(t, "true", h.Get("Deprecation"))
	})

	t.Run("neutral or empty version", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		assert.False(t, New(WithPolicy(v1, Deprecated())).Lifecycle(h, version.Empty, ordersMetadata()))
		assert.Empty(t, h)
	})
}

func TestReporter_Policy(t *testing.T) {
	t.Parallel()

	v1 := version.MustParse("1")
	r := New(
		WithPolicy(v1, Deprecated()),
		WithPolicy(version.MustParse("1.0"), MigrationDocs("https://docs.example.com")),
	)

	p, ok := r.Policy(version.MustParse("1.0"))
	require.True(t, ok)
	assert.False(t, p.Deprecated, "a later policy for an equal version replaces the earlier one")
	assert.Equal(t, "https://docs.example.com", p.MigrationURL)

	_, ok = r.Policy(version.MustParse("2.0"))
	assert.False(t, ok)
	assert.True(t, r.Enabled())
}
