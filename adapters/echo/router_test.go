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

package echoversioning

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/conventions"
	"rivaas.dev/apiversioning/internal/dispatch"
	"rivaas.dev/apiversioning/version"
)

func respond(id string) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, _ := Version(c)
		return c.String(http.StatusOK, id+" "+v.String())
	}
}

func newEcho(t *testing.T, opts ...apiversioning.Option) *echo.Echo {
	t.Helper()

	b := conventions.New()
	orders := b.Group("orders").HasAPIVersion(version.MustParse("1.0"), version.MustParse("2.0"))
	orders.Member("list-v1").MapToAPIVersion(version.MustParse("1.0"))
	orders.Member("list-v2").MapToAPIVersion(version.MustParse("2.0"))

	opts = append([]apiversioning.Option{apiversioning.WithMetadata(b)}, opts...)
	v, err := apiversioning.New(opts...)
	require.NoError(t, err)

	e := echo.New()
	r := New(e, v)
	r.GET("/orders", respond("list-v1"), Group("orders"), Member("list-v1"))
	r.GET("/orders", respond("list-v2"), Group("orders"), Member("list-v2"))
	r.GET("/v{version:apiVersion}/orders", respond("path-v1"), Group("orders"), Member("list-v1"))
	r.GET("/v{version:apiVersion}/orders", respond("path-v2"), Group("orders"), Member("list-v2"))
	r.POST("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, Neutral())
	require.NoError(t, r.Build())

	return e
}

func TestRouter_Negotiation(t *testing.T) {
	t.Parallel()

	e := newEcho(t, apiversioning.WithPathParam("version"), apiversioning.WithQueryParam("api-version"))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{name: "query v1", method: http.MethodGet, target: "/orders?api-version=1.0", wantStatus: http.StatusOK, wantBody: "list-v1 1.0"},
		{name: "query v2", method: http.MethodGet, target: "/orders?api-version=2.0", wantStatus: http.StatusOK, wantBody: "list-v2 2.0"},
		{name: "path v2", method: http.MethodGet, target: "/v2/orders", wantStatus: http.StatusOK, wantBody: "path-v2 2"},
		{name: "unspecified", method: http.MethodGet, target: "/orders", wantStatus: http.StatusBadRequest, wantCode: "ApiVersionUnspecified"},
		{name: "unsupported", method: http.MethodGet, target: "/orders?api-version=4.0", wantStatus: http.StatusBadRequest, wantCode: "UnsupportedApiVersion"},
		{name: "neutral", method: http.MethodPost, target: "/ping", wantStatus: http.StatusNoContent},
		{name: "constraint rejects", method: http.MethodGet, target: "/vnext/orders", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantCode != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body["code"])
			}
		})
	}
}

func TestRouter_Group(t *testing.T) {
	t.Parallel()

	v, err := apiversioning.New()
	require.NoError(t, err)

	e := echo.New()
	r := New(e.Group("/internal"), v)
	r.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, Neutral())
	require.NoError(t, r.Build())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/health", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_BuildErrors(t *testing.T) {
	t.Parallel()

	v, err := apiversioning.New()
	require.NoError(t, err)

	r := New(echo.New(), v)
	r.GET("/orders", respond("x"))
	r.GET("/nil", nil, Neutral())

	err = r.Build()
	require.ErrorIs(t, err, dispatch.ErrNoGroup)
	require.ErrorIs(t, err, dispatch.ErrNilHandler)
}
