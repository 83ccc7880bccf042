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

package reader

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/version"
)

func TestSources(t *testing.T) {
	t.Parallel()

	tmpl, err := MediaTypeTemplate("application/vnd.acme.v{version}+json")
	require.NoError(t, err)

	tests := []struct {
		name   string
		source Source
		setup  func(r *http.Request)
		target string
		want   []string
	}{
		{
			name:   "query",
			source: Query("api-version"),
			target: "/orders?api-version=1.0",
			want:   []string{"1.0"},
		},
		{
			name:   "query repeated",
			source: Query("api-version"),
			target: "/orders?api-version=1.0&api-version=2.0",
			want:   []string{"1.0", "2.0"},
		},
		{
			name:   "query similar name is ignored",
			source: Query("version"),
			target: "/orders?api-version=1.0",
		},
		{
			name:   "header",
			source: Header("api-version"),
			setup:  func(r *http.Request) { r.Header.Set("Api-Version", "2.0") },
			want:   []string{"2.0"},
		},
		{
			name:   "header comma separated",
			source: Header("x-ms-version", "api-version"),
			setup: func(r *http.Request) {
				r.Header.Set("api-version", "1.0, 2.0")
				r.Header.Set("x-ms-version", "3.0")
			},
			want: []string{"3.0", "1.0", " 2.0"},
		},
		{
			name:   "media type parameter from content type",
			source: MediaType("v"),
			setup:  func(r *http.Request) { r.Header.Set("Content-Type", "application/json; v=2.0") },
			want:   []string{"2.0"},
		},
		{
			name:   "media type parameter highest quality accept",
			source: MediaType("v"),
			setup: func(r *http.Request) {
				r.Header.Set("Accept", "application/json;v=1.0;q=0.5, application/xml;v=3.0, text/plain")
			},
			want: []string{"3.0"},
		},
		{
			name:   "media type parameter absent",
			source: MediaType("v"),
			setup:  func(r *http.Request) { r.Header.Set("Accept", "application/json") },
		},
		{
			name:   "vendor media type",
			source: tmpl,
			setup:  func(r *http.Request) { r.Header.Set("Accept", "text/html, application/vnd.acme.v2.1+json;q=0.9") },
			want:   []string{"2.1"},
		},
		{
			name:   "vendor media type mismatch",
			source: tmpl,
			setup:  func(r *http.Request) { r.Header.Set("Accept", "application/vnd.other.v2+json") },
		},
		{
			name:   "path from route stash",
			source: Path("version"),
			target: "/v1/orders",
			setup: func(r *http.Request) {
				f := feature.FromContext(r.Context())
				f.SetRouteValue("version", "1", version.MustParse("1"))
			},
			want: []string{"1"},
		},
		{
			name:   "path from path value",
			source: Path("version"),
			setup:  func(r *http.Request) { r.SetPathValue("version", "2.0") },
			want:   []string{"2.0"},
		},
		{
			name:   "custom",
			source: Func("tenant", func(*http.Request) []string { return []string{"3.0"} }),
			want:   []string{"3.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := tt.target
			if target == "" {
				target = "/"
			}
			req, _ := feature.Ensure(httptest.NewRequest(http.MethodGet, target, nil))
			if tt.setup != nil {
				tt.setup(req)
			}

			assert.Equal(t, tt.want, tt.source.Values(req))
		})
	}
}

func TestMediaTypeTemplate_Invalid(t *testing.T) {
	t.Parallel()

	_, err := MediaTypeTemplate("application/json")
	require.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = MediaTypeTemplate("{version}+json")
	require.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	rd := New(
		Query("api-version"),
		Header("api-version"),
		Path("version"),
		nil,
	)

	tests := []struct {
		name     string
		target   string
		header   string
		route    string
		wantKind feature.Kind
		wantRaw  []string
		wantVer  string
		wantSrc  feature.SourceKind
	}{
		{
			name:     "nothing",
			target:   "/orders",
			wantKind: feature.Unspecified,
		},
		{
			name:     "query valid",
			target:   "/orders?api-version=1.0",
			wantKind: feature.Valid,
			wantRaw:  []string{"1.0"},
			wantVer:  "1.0",
			wantSrc:  feature.SourceQuery,
		},
		{
			name:     "blank values are ignored",
			target:   "/orders?api-version=",
			header:   "  ",
			wantKind: feature.Unspecified,
		},
		{
			name:     "invalid",
			target:   "/orders?api-version=abc",
			wantKind: feature.Invalid,
			wantRaw:  []string{"abc"},
			wantSrc:  feature.SourceQuery,
		},
		{
			name:     "same text twice",
			target:   "/orders?api-version=abc",
			header:   "abc",
			wantKind: feature.Invalid,
			wantRaw:  []string{"abc"},
			wantSrc:  feature.SourceQuery | feature.SourceHeader,
		},
		{
			name:     "equal values with different encodings",
			target:   "/orders?api-version=1",
			header:   "1.0",
			wantKind: feature.Valid,
			wantRaw:  []string{"1"},
			wantVer:  "1",
			wantSrc:  feature.SourceQuery | feature.SourceHeader,
		},
		{
			name:     "route and header agree",
			target:   "/v1/orders",
			route:    "1",
			header:   "1.0",
			wantKind: feature.Valid,
			wantRaw:  []string{"1.0"},
			wantVer:  "1.0",
			wantSrc:  feature.SourceHeader | feature.SourcePath,
		},
		{
			name:     "conflict",
			target:   "/orders?api-version=2.0",
			header:   "1.0",
			wantKind: feature.Ambiguous,
			wantRaw:  []string{"2.0", "1.0"},
			wantSrc:  feature.SourceQuery | feature.SourceHeader,
		},
		{
			name:     "valid and invalid conflict",
			target:   "/orders?api-version=2.0",
			header:   "two",
			wantKind: feature.Ambiguous,
			wantRaw:  []string{"2.0", "two"},
			wantSrc:  feature.SourceQuery | feature.SourceHeader,
		},
		{
			name:     "path only",
			target:   "/v2/orders",
			route:    "2",
			wantKind: feature.Valid,
			wantRaw:  []string{"2"},
			wantVer:  "2",
			wantSrc:  feature.SourcePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, f := feature.Ensure(httptest.NewRequest(http.MethodGet, tt.target, nil))
			if tt.header != "" {
				req.Header.Set("api-version", tt.header)
			}
			if tt.route != "" {
				f.SetRouteValue("version", tt.route, version.MustParse(tt.route))
			}

			o := rd.Read(req)
			assert.Equal(t, tt.wantKind, o.Kind)
			assert.Equal(t, tt.wantRaw, o.Raw)
			assert.Equal(t, tt.wantSrc, o.Sources)
			if tt.wantVer != "" {
				assert.Equal(t, tt.wantVer, o.Version.String())
			}

			cached, ok := f.Outcome()
			require.True(t, ok)
			assert.Equal(t, o, cached)
		})
	}
}

func TestReader_ReadUsesCache(t *testing.T) {
	t.Parallel()

	rd := New(Query("api-version"))
	req, f := feature.Ensure(httptest.NewRequest(http.MethodGet, "/?api-version=1.0", nil))

	f.SetOutcome(feature.Outcome{Kind: feature.Valid, Version: version.MustParse("9.0"), Raw: []string{"9.0"}})
	assert.Equal(t, "9.0", rd.Read(req).Version.String())
}

func TestReader_WithoutFeature(t *testing.T) {
	t.Parallel()

	rd := New(Query("api-version"))
	o := rd.Read(httptest.NewRequest(http.MethodGet, "/?api-version=2.0", nil))
	assert.Equal(t, feature.Valid, o.Kind)
}

func TestReader_PathOnly(t *testing.T) {
	t.Parallel()

	assert.True(t, New(Path("version")).PathOnly())
	assert.False(t, New(Path("version"), Query("api-version")).PathOnly())
	assert.False(t, New().PathOnly())
	assert.Len(t, New(Query("a"), Header("b")).Sources(), 2)
	assert.Equal(t, feature.SourceQuery|feature.SourceHeader, New(Query("a"), Header("b")).Kinds())
}
