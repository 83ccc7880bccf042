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

package chiversioning_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/apiversioning"
	chiversioning "rivaas.dev/apiversioning/adapters/chi"
	"rivaas.dev/apiversioning/declarative"
	"rivaas.dev/apiversioning/version"
)

// OrdersController declares the versions of the orders endpoints.
type OrdersController struct {
	_      struct{} `apiversion:"1.0,2.0"`
	ListV1 struct{} `mapto:"1.0"`
	ListV2 struct{} `mapto:"2.0"`
}

// PingController is version-neutral.
type PingController struct {
	_ struct{} `apiversion:"neutral"`
}

func problemOf(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	ExpectWithOffset(1, json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
	return body
}

var _ = Describe("Negotiation", func() {
	var handler http.Handler

	BeforeEach(func() {
		src := declarative.New()
		Expect(src.Register("orders", OrdersController{})).To(Succeed())
		Expect(src.Register("ping", PingController{})).To(Succeed())

		v, err := apiversioning.New(
			apiversioning.WithQueryParam("api-version"),
			apiversioning.WithHeader("api-version"),
			apiversioning.WithMetadata(src),
		)
		Expect(err).NotTo(HaveOccurred())

		mux := chi.NewRouter()
		r := chiversioning.New(mux, v)
		for _, member := range []string{"ListV1", "ListV2"} {
			r.HandleFunc(http.MethodGet, "/orders", func(w http.ResponseWriter, req *http.Request) {
				resolved, _ := apiversioning.RequestedVersion(req.Context())
				_, _ = io.WriteString(w, member+"@"+resolved.String())
			}, chiversioning.Group("orders"), chiversioning.Member(member))
		}
		r.HandleFunc(http.MethodGet, "/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, chiversioning.Group("ping"))
		Expect(r.Build()).To(Succeed())

		handler = mux
	})

	send := func(target string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec
	}

	Context("when the version is unspecified", func() {
		It("rejects the request with ApiVersionUnspecified", func() {
			rec := send("/orders", nil)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("application/problem+json"))
			body := problemOf(rec)
			Expect(body).To(HaveKeyWithValue("code", "ApiVersionUnspecified"))
			Expect(body).To(HaveKey("candidates"))
		})
	})

	Context("when a supported version is requested", func() {
		It("selects the mapped handler", func() {
			rec := send("/orders?api-version=1.0", nil)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("ListV1@1.0"))
			Expect(rec.Header().Get("api-supported-versions")).To(Equal("1.0, 2.0"))
		})

		It("treats equal encodings from several sources as one version", func() {
			rec := send("/orders?api-version=2", map[string]string{"api-version": "2.0"})

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(HavePrefix("ListV2@"))
		})
	})

	Context("when an unsupported version is requested", func() {
		It("rejects the request with UnsupportedApiVersion", func() {
			rec := send("/orders?api-version=3.0", nil)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(problemOf(rec)).To(HaveKeyWithValue("code", "UnsupportedApiVersion"))
			Expect(rec.Header().Get("api-supported-versions")).To(Equal("1.0, 2.0"))
		})

		It("leaves the candidates intact for later requests", func() {
			Expect(send("/orders?api-version=3.0", nil).Code).To(Equal(http.StatusBadRequest))
			Expect(send("/orders?api-version=2.0", nil).Body.String()).To(Equal("ListV2@2.0"))
		})
	})

	Context("when sources disagree", func() {
		It("rejects the request with AmbiguousApiVersion", func() {
			rec := send("/orders?api-version=2.0", map[string]string{"api-version": "1.0"})

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			body := problemOf(rec)
			Expect(body).To(HaveKeyWithValue("code", "AmbiguousApiVersion"))
			Expect(body).To(HaveKeyWithValue("requestedVersion", ContainSubstring("1.0")))
		})
	})

	Context("when the version is malformed", func() {
		It("rejects the request with InvalidApiVersion", func() {
			rec := send("/orders?api-version=abc", nil)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(problemOf(rec)).To(HaveKeyWithValue("code", "InvalidApiVersion"))
		})
	})

	Context("with a version-neutral endpoint", func() {
		DescribeTable("answers regardless of the version",
			func(target string) {
				rec := send(target, nil)

				Expect(rec.Code).To(Equal(http.StatusNoContent))
				Expect(rec.Header().Get("api-supported-versions")).To(BeEmpty())
			},
			Entry("without a version", "/ping"),
			Entry("with a supported version", "/ping?api-version=1.0"),
			Entry("with an unknown version", "/ping?api-version=9.0"),
			Entry("with a malformed version", "/ping?api-version=abc"),
		)
	})
})

var _ = Describe("Path versioning", func() {
	var handler http.Handler

	BeforeEach(func() {
		src := declarative.New()
		Expect(src.Register("orders", OrdersController{})).To(Succeed())

		v, err := apiversioning.New(
			apiversioning.WithPathParam("version"),
			apiversioning.WithMetadata(src),
			apiversioning.WithDefault(version.MustParse("2.0")),
		)
		Expect(err).NotTo(HaveOccurred())

		mux := chi.NewRouter()
		r := chiversioning.New(mux, v)
		r.HandleFunc(http.MethodGet, "/v{version:apiVersion}/orders", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "v1")
		}, chiversioning.Group("orders"), chiversioning.Member("ListV1"))
		r.HandleFunc(http.MethodGet, "/v{version:apiVersion}/orders", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "v2")
		}, chiversioning.Group("orders"), chiversioning.Member("ListV2"))
		Expect(r.Build()).To(Succeed())

		handler = mux
	})

	It("routes by the version segment", func() {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("v1"))
	})

	It("answers 404 for unsupported versions", func() {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v7/orders", nil))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(problemOf(rec)).To(HaveKeyWithValue("code", "UnsupportedApiVersion"))
	})
})

//nolint:paralleltest // Ginkgo test suite manages its own parallelization
func TestNegotiationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Versioning Negotiation Suite")
}
