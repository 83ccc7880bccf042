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

package chiversioning

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/constraint"
	"rivaas.dev/apiversioning/conventions"
	"rivaas.dev/apiversioning/internal/dispatch"
	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/version"
)

var (
	v1 = version.MustParse("1.0")
	v2 = version.MustParse("2.0")
)

func ordersConventions() *conventions.Builder {
	b := conventions.New()
	orders := b.Group("orders").HasAPIVersion(v1, v2)
	orders.Member("list-v1").MapToAPIVersion(v1)
	orders.Member("list-v2").MapToAPIVersion(v2)
	orders.Member("create-v2").MapToAPIVersion(v2)

	return b
}

// respond writes the id of the endpoint and the resolved version.
func respond(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, _ := apiversioning.RequestedVersion(r.Context())
		_, _ = io.WriteString(w, id+" "+v.String())
	}
}

func newRouter(t *testing.T, opts ...apiversioning.Option) http.Handler {
	t.Helper()

	opts = append([]apiversioning.Option{apiversioning.WithMetadata(ordersConventions())}, opts...)
	v, err := apiversioning.New(opts...)
	require.NoError(t, err)

	mux := chi.NewRouter()
	r := New(mux, v)
	r.HandleFunc(http.MethodGet, "/orders", respond("list-v1"), Group("orders"), Member("list-v1"))
	r.HandleFunc(http.MethodGet, "/orders", respond("list-v2"), Group("orders"), Member("list-v2"))
	r.HandleFunc(http.MethodPost, "/orders", respond("create-v2"), Group("orders"), Member("create-v2"))
	r.HandleFunc(http.MethodGet, "/v{version:apiVersion}/orders", respond("path-v1"), Group("orders"), Member("list-v1"))
	r.HandleFunc(http.MethodGet, "/v{version:apiVersion}/orders", respond("path-v2"), Group("orders"), Member("list-v2"))
	r.HandleFunc(http.MethodGet, "/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, Neutral())
	require.NoError(t, r.Build())

	return mux
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func problemCode(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body["code"]
}

func TestRouter_QueryVersioning(t *testing.T) {
	t.Parallel()

	h := newRouter(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{name: "v1", method: http.MethodGet, target: "/orders?api-version=1.0", wantStatus: http.StatusOK, wantBody: "list-v1 1.0"},
		{name: "v2", method: http.MethodGet, target: "/orders?api-version=2.0", wantStatus: http.StatusOK, wantBody: "list-v2 2.0"},
		{name: "post v2", method: http.MethodPost, target: "/orders?api-version=2", wantStatus: http.StatusOK, wantBody: "create-v2 2"},
		{name: "unspecified", method: http.MethodGet, target: "/orders", wantStatus: http.StatusBadRequest, wantCode: "ApiVersionUnspecified"},
		{name: "unsupported", method: http.MethodGet, target: "/orders?api-version=3.0", wantStatus: http.StatusBadRequest, wantCode: "UnsupportedApiVersion"},
		{name: "method variance", method: http.MethodPost, target: "/orders?api-version=1.0", wantStatus: http.StatusMethodNotAllowed, wantCode: "UnsupportedApiVersion"},
		{name: "neutral", method: http.MethodGet, target: "/ping?api-version=abc", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(h, tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, problemCode(t, rec))
			}
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := serve(newRouter(t), http.MethodPost, "/orders?api-version=1.0")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
	assert.Equal(t, "1.0, 2.0", rec.Header().Get("api-supported-versions"))
}

func TestRouter_MethodVarianceDisabled(t *testing.T) {
	t.Parallel()

	policy := problem.DefaultStatusPolicy()
	policy.MethodNotAllowed = false
	rec := serve(newRouter(t, apiversioning.WithStatusPolicy(policy)), http.MethodPost, "/orders?api-version=1.0")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Allow"))
}

func TestRouter_PathVersioning(t *testing.T) {
	t.Parallel()

	h := newRouter(t, apiversioning.WithPathParam("version"))

	t.Run("selects by path segment", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, http.MethodGet, "/v2/orders")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "path-v2 2", rec.Body.String())
		assert.Equal(t, "1.0, 2.0", rec.Header().Get("api-supported-versions"))
	})

	t.Run("unsupported version is not found", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, http.MethodGet, "/v3/orders")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "UnsupportedApiVersion", problemCode(t, rec))
	})

	t.Run("malformed segment does not match the route", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, http.MethodGet, "/vabc/orders")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Header().Get("Content-Type"), "problem")
	})
}

func TestRouter_BuildErrors(t *testing.T) {
	t.Parallel()

	v, err := apiversioning.New(apiversioning.WithMetadata(ordersConventions()))
	require.NoError(t, err)

	r := New(chi.NewRouter(), v)
	r.HandleFunc(http.MethodGet, "/orders", respond("x"))
	r.HandleFunc(http.MethodGet, "/users", respond("x"), Group("users"))
	r.HandleFunc(http.MethodGet, "/nil", nil, Neutral())
	r.HandleFunc(http.MethodGet, "orders", respond("x"), Neutral())

	err = r.Build()
	require.Error(t, err)
	require.ErrorIs(t, err, dispatch.ErrNoGroup)
	require.ErrorIs(t, err, metadata.ErrUnknownGroup)
	require.ErrorIs(t, err, dispatch.ErrNilHandler)
	require.ErrorIs(t, err, constraint.ErrInvalidTemplate)
}

func TestRouter_GroupWithoutVersions(t *testing.T) {
	t.Parallel()

	b := conventions.New()
	b.Group("orders").Member("list")

	_, err := apiversioning.New(apiversioning.WithMetadata(b))
	require.ErrorIs(t, err, metadata.ErrNoVersions)
}

func TestRouter_BuildTwice(t *testing.T) {
	t.Parallel()

	v, err := apiversioning.New()
	require.NoError(t, err)

	r := New(chi.NewRouter(), v)
	r.HandleFunc(http.MethodGet, "/ping", respond("ping"), Neutral())
	require.NoError(t, r.Build())
	require.ErrorIs(t, r.Build(), dispatch.ErrBuilt)
}
