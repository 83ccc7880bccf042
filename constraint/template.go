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

package constraint

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"rivaas.dev/apiversioning/version"
)

// Style selects the parameter syntax of a host router.
type Style uint8

const (
	// StyleChi renders parameters as {name}.
	StyleChi Style = iota
	// StyleGin renders parameters as :name.
	StyleGin
	// StyleServeMux renders parameters as {name}, which net/http only
	// accepts as whole path segments.
	StyleServeMux
)

type part struct {
	literal    string
	param      string
	kind       ConstraintKind
	constraint Constraint
}

func (p part) isParam() bool { return p.param != "" }

// Template is a parsed route template. Templates are immutable and safe for
// concurrent use.
type Template struct {
	raw          string
	parts        []part
	versionParam string
}

// ParseTemplate parses a route template such as "/v{version:apiVersion}/orders".
// Parameters are written {name} or {name:constraint}.
func ParseTemplate(template string) (*Template, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, errTemplate(template, "must start with /")
	}

	t := &Template{raw: template}
	seen := make(map[string]bool)
	rest := template

	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, errTemplate(template, "unbalanced }")
			}
			t.parts = append(t.parts, part{literal: rest})
			break
		}
		if open > 0 {
			literal := rest[:open]
			if strings.IndexByte(literal, '}') >= 0 {
				return nil, errTemplate(template, "unbalanced }")
			}
			t.parts = append(t.parts, part{literal: literal})
		} else if n := len(t.parts); n > 0 && t.parts[n-1].isParam() {
			return nil, errTemplate(template, "parameters must be separated by a literal")
		}

		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, errTemplate(template, "unbalanced {")
		}
		body := rest[open+1 : open+closing]
		if strings.ContainsAny(body, "{/") {
			return nil, errTemplate(template, "invalid parameter "+body)
		}

		p, err := parseParam(template, body)
		if err != nil {
			return nil, err
		}
		if seen[p.param] {
			return nil, errTemplate(template, "duplicate parameter "+p.param)
		}
		seen[p.param] = true
		if p.kind == ConstraintAPIVersion {
			if t.versionParam != "" {
				return nil, errTemplate(template, "more than one "+Name+" parameter")
			}
			t.versionParam = p.param
		}
		t.parts = append(t.parts, p)

		rest = rest[open+closing+1:]
	}

	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(template string) *Template {
	t, err := ParseTemplate(template)
	if err != nil {
		panic(err)
	}

	return t
}

func parseParam(template, body string) (part, error) {
	name, constraintName, hasConstraint := strings.Cut(body, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return part{}, errTemplate(template, "empty parameter name")
	}

	p := part{param: name}
	if !hasConstraint {
		return p, nil
	}

	kind, ok := kindNames[strings.TrimSpace(constraintName)]
	if !ok {
		return part{}, fmt.Errorf("%w: %q in template %q", ErrUnknownConstraint, constraintName, template)
	}
	p.kind = kind
	p.constraint = For(kind)

	return p, nil
}

// String returns the template as written.
func (t *Template) String() string { return t.raw }

// VersionParam returns the name of the parameter holding the API version.
func (t *Template) VersionParam() (string, bool) {
	return t.versionParam, t.versionParam != ""
}

// Params returns the parameter names in template order.
func (t *Template) Params() []string {
	var out []string
	for _, p := range t.parts {
		if p.isParam() {
			out = append(out, p.param)
		}
	}

	return out
}

// Pattern renders the template in the syntax of a host router, without
// constraints.
func (t *Template) Pattern(style Style) (string, error) {
	var b strings.Builder
	for i, p := range t.parts {
		if !p.isParam() {
			b.WriteString(p.literal)
			continue
		}

		var next string
		if i+1 < len(t.parts) {
			next = t.parts[i+1].literal
		}
		endsSegment := next == "" || strings.HasPrefix(next, "/")

		switch style {
		case StyleGin:
			if !endsSegment {
				return "", errTemplate(t.raw, "gin parameters must end a path segment")
			}
			b.WriteString(":" + p.param)
		case StyleServeMux:
			prev := ""
			if i > 0 {
				prev = t.parts[i-1].literal
			}
			if !endsSegment || !strings.HasSuffix(prev, "/") {
				return "", errTemplate(t.raw, "net/http parameters must be whole path segments")
			}
			b.WriteString("{" + p.param + "}")
		default:
			b.WriteString("{" + p.param + "}")
		}
	}

	return b.String(), nil
}

// Accept runs the constraints of the template against the route values of an
// incoming request. lookup returns the value bound to a parameter.
func (t *Template) Accept(r *http.Request, lookup func(param string) string) bool {
	for _, p := range t.parts {
		if p.constraint == nil {
			continue
		}
		if !p.constraint.Match(r, p.param, lookup(p.param), Incoming) {
			return false
		}
	}

	return true
}

// BuildURL generates a path from the template. A missing version value is
// filled in with def when def is a regular version.
func (t *Template) BuildURL(values map[string]string, def version.Version) (string, error) {
	var b strings.Builder
	for _, p := range t.parts {
		if !p.isParam() {
			b.WriteString(p.literal)
			continue
		}

		value := values[p.param]
		if value == "" && p.param == t.versionParam && def.IsRegular() {
			value = def.String()
		}
		if value == "" {
			return "", fmt.Errorf("%w: %q in template %q", ErrMissingValue, p.param, t.raw)
		}
		if p.constraint != nil && !p.constraint.Match(nil, p.param, value, Generation) {
			return "", fmt.Errorf("%w: %q=%q", ErrRejectedValue, p.param, value)
		}
		b.WriteString(url.PathEscape(value))
	}

	return b.String(), nil
}
