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
	"net/http"
	"strings"

	"rivaas.dev/apiversioning/feature"
	"rivaas.dev/apiversioning/version"
)

// Reader reads the requested version from a request using an ordered list
// of sources. A Reader is immutable and safe for concurrent use.
type Reader struct {
	sources []Source
	kinds   feature.SourceKind
}

// New returns a Reader consulting sources in order. Nil sources are skipped.
func New(sources ...Source) *Reader {
	rd := &Reader{sources: make([]Source, 0, len(sources))}
	for _, s := range sources {
		if s == nil {
			continue
		}
		rd.sources = append(rd.sources, s)
		rd.kinds |= s.Kind()
	}

	return rd
}

// Sources returns the configured sources in order.
func (rd *Reader) Sources() []Source {
	return rd.sources
}

// PathOnly reports whether the version can only travel in the URL path.
func (rd *Reader) PathOnly() bool {
	return rd.kinds.OnlyPath()
}

// Kinds returns the union of the configured source kinds.
func (rd *Reader) Kinds() feature.SourceKind {
	return rd.kinds
}

type token struct {
	raw    string
	parsed version.Version
	ok     bool
}

// Read classifies the requested version of r. When r carries a feature with
// a cached outcome that outcome is returned unchanged.
func (rd *Reader) Read(r *http.Request) feature.Outcome {
	f := feature.FromContext(r.Context())
	if f != nil {
		if o, ok := f.Outcome(); ok {
			return o
		}
	}

	o := rd.read(r)
	if f != nil {
		f.SetOutcome(o)
	}

	return o
}

func (rd *Reader) read(r *http.Request) feature.Outcome {
	var (
		tokens  []token
		sources feature.SourceKind
	)

	for _, s := range rd.sources {
		for _, raw := range s.Values(r) {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			sources |= s.Kind()
			tokens = appendDistinct(tokens, raw)
		}
	}

	switch len(tokens) {
	case 0:
		return feature.UnspecifiedOutcome
	case 1:
		t := tokens[0]
		o := feature.Outcome{Raw: []string{t.raw}, Sources: sources}
		if t.ok {
			o.Kind = feature.Valid
			o.Version = t.parsed
		} else {
			o.Kind = feature.Invalid
		}

		return o
	}

	raw := make([]string, len(tokens))
	for i, t := range tokens {
		raw[i] = t.raw
	}

	return feature.Outcome{Kind: feature.Ambiguous, Raw: raw, Sources: sources}
}

// appendDistinct adds raw unless an equal token is already present.
// Parsable tokens compare by value, others by text.
func appendDistinct(tokens []token, raw string) []token {
	parsed, ok := version.TryParse(raw)
	for _, t := range tokens {
		if ok && t.ok && t.parsed.Equal(parsed) {
			return tokens
		}
		if !ok && !t.ok && t.raw == raw {
			return tokens
		}
	}

	return append(tokens, token{raw: raw, parsed: parsed, ok: ok})
}
