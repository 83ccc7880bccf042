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

package reader

import (
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"rivaas.dev/apiversioning/feature"
)

// Source reads raw version tokens from a request.
type Source interface {
	// Values returns the raw tokens carried by the request, in order.
	Values(r *http.Request) []string

	// Kind identifies the source for diagnostics and status mapping.
	Kind() feature.SourceKind

	// Name returns a human readable description such as "query:api-version".
	Name() string
}

// ═══════════════════════════════════════════════════════════════════════════════
// Query Source
// ═══════════════════════════════════════════════════════════════════════════════

type querySource struct {
	param string
}

// Query reads the version from the named query string parameter.
// Every occurrence of the parameter contributes a token.
func Query(param string) Source {
	return &querySource{param: param}
}

func (s *querySource) Values(r *http.Request) []string {
	if r == nil || r.URL == nil || r.URL.RawQuery == "" {
		return nil
	}

	return r.URL.Query()[s.param]
}

func (s *querySource) Kind() feature.SourceKind { return feature.SourceQuery }
func (s *querySource) Name() string             { return "query:" + s.param }

// ═══════════════════════════════════════════════════════════════════════════════
// Header Source
// ═══════════════════════════════════════════════════════════════════════════════

type headerSource struct {
	headers []string
}

// Header reads the version from one or more headers. Comma separated
// values within a header are split into separate tokens.
func Header(names ...string) Source {
	canon := make([]string, 0, len(names))
	for _, n := range names {
		canon = append(canon, http.CanonicalHeaderKey(n))
	}

	return &headerSource{headers: canon}
}

func (s *headerSource) Values(r *http.Request) []string {
	if r == nil {
		return nil
	}

	var out []string
	for _, h := range s.headers {
		for _, v := range r.Header.Values(h) {
			for part := range strings.SplitSeq(v, ",") {
				out = append(out, part)
			}
		}
	}

	return out
}

func (s *headerSource) Kind() feature.SourceKind { return feature.SourceHeader }
func (s *headerSource) Name() string             { return "header:" + strings.Join(s.headers, ",") }

// ═══════════════════════════════════════════════════════════════════════════════
// Media Type Parameter Source
// ═══════════════════════════════════════════════════════════════════════════════

type mediaTypeSource struct {
	param string
}

// MediaType reads the version from a media type parameter such as
// "application/json; v=2.0". The Content-Type header is consulted first,
// then the most preferred Accept media range that carries the parameter.
func MediaType(param string) Source {
	return &mediaTypeSource{param: strings.ToLower(param)}
}

func (s *mediaTypeSource) Values(r *http.Request) []string {
	if r == nil {
		return nil
	}

	var out []string
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			if v, ok := params[s.param]; ok {
				out = append(out, v)
			}
		}
	}

	if v, ok := s.fromAccept(r.Header.Values("Accept")); ok {
		out = append(out, v)
	}

	return out
}

type mediaRange struct {
	value   string
	quality float64
}

func (s *mediaTypeSource) fromAccept(accept []string) (string, bool) {
	var ranges []mediaRange
	for _, header := range accept {
		for part := range strings.SplitSeq(header, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			_, params, err := mime.ParseMediaType(part)
			if err != nil {
				continue
			}
			v, ok := params[s.param]
			if !ok {
				continue
			}
			q := 1.0
			if raw, ok := params["q"]; ok {
				if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
					q = parsed
				}
			}
			ranges = append(ranges, mediaRange{value: v, quality: q})
		}
	}
	if len(ranges) == 0 {
		return "", false
	}

	best := slices.MaxFunc(ranges, func(a, b mediaRange) int {
		switch {
		case a.quality < b.quality:
			return -1
		case a.quality > b.quality:
			return 1
		}
		return 0
	})

	return best.value, true
}

func (s *mediaTypeSource) Kind() feature.SourceKind { return feature.SourceMediaType }
func (s *mediaTypeSource) Name() string             { return "media-type:" + s.param }

// ═══════════════════════════════════════════════════════════════════════════════
// Media Type Template Source
// ═══════════════════════════════════════════════════════════════════════════════

type mediaTypeTemplateSource struct {
	pattern string
	prefix  string // Part before {version}
	suffix  string // Part after {version}
}

// MediaTypeTemplate reads the version embedded in a vendor media type of the
// Accept or Content-Type header, e.g. "application/vnd.acme.v{version}+json".
func MediaTypeTemplate(pattern string) (Source, error) {
	prefix, suffix, ok := strings.Cut(pattern, "{version}")
	if !ok || prefix == "" {
		return nil, errInvalidTemplate(pattern)
	}

	return &mediaTypeTemplateSource{
		pattern: pattern,
		prefix:  strings.ToLower(prefix),
		suffix:  strings.ToLower(suffix),
	}, nil
}

func (s *mediaTypeTemplateSource) Values(r *http.Request) []string {
	if r == nil {
		return nil
	}

	var out []string
	if v, ok := s.extract(r.Header.Get("Content-Type")); ok {
		out = append(out, v)
	}
	for _, accept := range r.Header.Values("Accept") {
		if v, ok := s.extract(accept); ok {
			out = append(out, v)
			break
		}
	}

	return out
}

func (s *mediaTypeTemplateSource) extract(header string) (string, bool) {
	// Handle multiple media types
	for mediaType := range strings.SplitSeq(header, ",") {
		mediaType = strings.TrimSpace(mediaType)

		// Remove parameters if present
		if semi := strings.IndexByte(mediaType, ';'); semi >= 0 {
			mediaType = strings.TrimSpace(mediaType[:semi])
		}

		lower := strings.ToLower(mediaType)
		if len(lower) <= len(s.prefix)+len(s.suffix) {
			continue
		}
		if !strings.HasPrefix(lower, s.prefix) || !strings.HasSuffix(lower, s.suffix) {
			continue
		}

		return mediaType[len(s.prefix) : len(mediaType)-len(s.suffix)], true
	}

	return "", false
}

func (s *mediaTypeTemplateSource) Kind() feature.SourceKind { return feature.SourceMediaType }
func (s *mediaTypeTemplateSource) Name() string             { return "media-type:" + s.pattern }

// ═══════════════════════════════════════════════════════════════════════════════
// Path Source
// ═══════════════════════════════════════════════════════════════════════════════

type pathSource struct {
	param string
}

// Path reads the version already bound by a route template parameter.
// The route constraint stashes the value on the request feature; when no
// value is stashed the source falls back to http.Request.PathValue.
func Path(param string) Source {
	return &pathSource{param: param}
}

func (s *pathSource) Values(r *http.Request) []string {
	if r == nil {
		return nil
	}

	if f := feature.FromContext(r.Context()); f != nil {
		if raw, ok := f.RouteValue(s.param); ok {
			return []string{raw}
		}
	}
	if v := r.PathValue(s.param); v != "" {
		return []string{v}
	}

	return nil
}

func (s *pathSource) Kind() feature.SourceKind { return feature.SourcePath }
func (s *pathSource) Name() string             { return "path:" + s.param }

// ═══════════════════════════════════════════════════════════════════════════════
// Custom Source
// ═══════════════════════════════════════════════════════════════════════════════

type funcSource struct {
	name string
	fn   func(*http.Request) []string
}

// Func reads the version with a custom function.
func Func(name string, fn func(*http.Request) []string) Source {
	return &funcSource{name: name, fn: fn}
}

func (s *funcSource) Values(r *http.Request) []string {
	if s.fn == nil || r == nil {
		return nil
	}

	return s.fn(r)
}

func (s *funcSource) Kind() feature.SourceKind { return feature.SourceCustom }
func (s *funcSource) Name() string             { return "custom:" + s.name }
