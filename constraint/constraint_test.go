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

package constraint

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/version"
)

func TestMatcher_Incoming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"1.0", true},
		{"2.0-beta", true},
		{"2024-01-15", true},
		{"abc", false},
		{"", false},
		{"-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			req, f := feature.Ensure(httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, Matcher{}.Match(req, "version", tt.value, Incoming))

			raw, stashed := f.RouteValue("version")
			assert.Equal(t, tt.want, stashed)
			if tt.want {
				assert.Equal(t, tt.value, raw)
			}
		})
	}
}

func TestMatcher_SatisfiesPathReader(t *testing.T) {
	t.Parallel()

	req, _ := feature.Ensure(httptest.NewRequest(http.MethodGet, "/v1/orders", nil))
	require.True(t, Matcher{}.Match(req, "version", "1", Incoming))

	o := reader.New(reader.Path("version")).Read(req)
	assert.Equal(t, feature.Valid, o.Kind)
	assert.Equal(t, "1", o.Version.String())
}

func TestMatcher_Generation(t *testing.T) {
	t.Parallel()

	assert.True(t, Matcher{}.Match(nil, "version", "anything", Generation))
	assert.False(t, Matcher{}.Match(nil, "version", "", Generation))
	assert.True(t, Matcher{}.Match(nil, "version", "1.0", Incoming), "no feature to stash into")
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate("/v{version:apiVersion}/orders/{id:int}")
	require.NoError(t, err)

	param, ok := tmpl.VersionParam()
	require.True(t, ok)
	assert.Equal(t, "version", param)
	assert.Equal(t, []string{"version", "id"}, tmpl.Params())
	assert.Equal(t, "/v{version:apiVersion}/orders/{id:int}", tmpl.String())

	plain := MustParseTemplate("/ping")
	_, ok = plain.VersionParam()
	assert.False(t, ok)
	assert.Nil(t, plain.Params())
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template string
		wantErr  error
	}{
		{"orders", ErrInvalidTemplate},
		{"/v{version", ErrInvalidTemplate},
		{"/v}version", ErrInvalidTemplate},
		{"/{}", ErrInvalidTemplate},
		{"/{a}{b}", ErrInvalidTemplate},
		{"/{a}/{a}", ErrInvalidTemplate},
		{"/{v1:apiVersion}/{v2:apiVersion}", ErrInvalidTemplate},
		{"/{a/b}", ErrInvalidTemplate},
		{"/{version:semver}", ErrUnknownConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTemplate(tt.template)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Panics(t, func() { MustParseTemplate("bad") })
}

func TestTemplate_Pattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template string
		style    Style
		want     string
		wantErr  bool
	}{
		{"/v{version:apiVersion}/orders", StyleChi, "/v{version}/orders", false},
		{"/v{version:apiVersion}/orders", StyleGin, "/v:version/orders", false},
		{"/v{version:apiVersion}/orders", StyleServeMux, "", true},
		{"/{version:apiVersion}/orders", StyleServeMux, "/{version}/orders", false},
		{"/api/{version:apiVersion}", StyleGin, "/api/:version", false},
		{"/files/{name}.json", StyleGin, "", true},
		{"/files/{name}.json", StyleChi, "/files/{name}.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			t.Parallel()

			got, err := MustParseTemplate(tt.template).Pattern(tt.style)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTemplate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplate_Accept(t *testing.T) {
	t.Parallel()

	tmpl := MustParseTemplate("/v{version:apiVersion}/orders/{id:int}")
	values := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	req, f := feature.Ensure(httptest.NewRequest(http.MethodGet, "/v2/orders/7", nil))
	assert.True(t, tmpl.Accept(req, values(map[string]string{"version": "2", "id": "7"})))
	raw, ok := f.RouteValue("version")
	require.True(t, ok)
	assert.Equal(t, "2", raw)

	assert.False(t, tmpl.Accept(req, values(map[string]string{"version": "x", "id": "7"})))
	assert.False(t, tmpl.Accept(req, values(map[string]string{"version": "2", "id": "seven"})))
}

func TestTemplate_BuildURL(t *testing.T) {
	t.Parallel()

	tmpl := MustParseTemplate("/v{version:apiVersion}/orders/{id}")
	def := version.MustParse("1.0")

	got, err := tmpl.BuildURL(map[string]string{"version": "2", "id": "42"}, def)
	require.NoError(t, err)
	assert.Equal(t, "/v2/orders/42", got)

	got, err = tmpl.BuildURL(map[string]string{"id": "a b"}, def)
	require.NoError(t, err)
	assert.Equal(t, "/v1.0/orders/a%20b", got)

	_, err = tmpl.BuildURL(map[string]string{"id": "42"}, version.Empty)
	require.ErrorIs(t, err, ErrMissingValue)

	_, err = tmpl.BuildURL(map[string]string{"version": "2"}, def)
	require.ErrorIs(t, err, ErrMissingValue)
}

func TestFor(t *testing.T) {
	t.Parallel()

	assert.Nil(t, For(ConstraintNone))
	assert.IsType(t, Matcher{}, For(ConstraintAPIVersion))
	assert.True(t, For(ConstraintUUID).Match(nil, "id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", Incoming))
	assert.True(t, For(ConstraintDate).Match(nil, "d", "2024-01-15", Incoming))
	assert.False(t, For(ConstraintInt).Match(nil, "id", "1.5", Incoming))
}
