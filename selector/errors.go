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

package selector

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

// Kind classifies a selection failure.
type Kind uint8

const (
	// KindUnspecified means no version was requested and the route has
	// version-aware candidates.
	KindUnspecified Kind = iota + 1
	// KindInvalid means the requested version could not be parsed.
	KindInvalid
	// KindAmbiguous means the request carried conflicting versions.
	KindAmbiguous
	// KindUnsupported means no candidate implements the requested version.
	KindUnsupported
	// KindAmbiguousMatch means several candidates tie after the version
	// filter and the host tie-break.
	KindAmbiguousMatch
	// KindMisconfigured means the candidate set is inconsistent.
	KindMisconfigured
)

// Stable problem codes.
const (
	CodeUnsupported = "UnsupportedApiVersion"
	CodeUnspecified = "ApiVersionUnspecified"
	CodeInvalid     = "InvalidApiVersion"
	CodeAmbiguous   = "AmbiguousApiVersion"
)

// Sentinel errors matched with errors.Is against an *Error.
var (
	ErrUnspecified    = errors.New("api version unspecified")
	ErrInvalid        = errors.New("invalid api version")
	ErrAmbiguous      = errors.New("ambiguous api version")
	ErrUnsupported    = errors.New("unsupported api version")
	ErrAmbiguousMatch = errors.New("ambiguous candidate match")
	ErrMisconfigured  = errors.New("misconfigured candidates")
	ErrNoCandidates   = errors.New("no candidates")
)

var kindInfo = map[Kind]struct {
	name     string
	code     string
	sentinel error
}{
	KindUnspecified:    {"unspecified", CodeUnspecified, ErrUnspecified},
	KindInvalid:        {"invalid", CodeInvalid, ErrInvalid},
	KindAmbiguous:      {"ambiguous", CodeAmbiguous, ErrAmbiguous},
	KindUnsupported:    {"unsupported", CodeUnsupported, ErrUnsupported},
	KindAmbiguousMatch: {"ambiguous-match", "", ErrAmbiguousMatch},
	KindMisconfigured:  {"misconfigured", "", ErrMisconfigured},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}

	return "unknown"
}

// Error is a typed selection failure.
type Error struct {
	Kind Kind

	// Requested holds the raw requested tokens.
	Requested []string

	// Version is the parsed version for KindUnsupported.
	Version version.Version

	// Candidates lists member identities: the candidates that would have
	// matched a versioned request for KindUnspecified, or the tied candidates
	// for KindAmbiguousMatch.
	Candidates []string

	// Metadata aggregates the version-aware candidates of the route, for
	// reporting supported versions alongside the error.
	Metadata metadata.Metadata

	// Err is the underlying cause for KindMisconfigured.
	Err error
}

// Code returns the stable machine readable code of the failure. Failures
// that are not request-shape errors return an empty string.
func (e *Error) Code() string {
	return kindInfo[e.Kind].code
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(kindInfo[e.Kind].sentinel.Error())

	switch e.Kind {
	case KindUnsupported:
		fmt.Fprintf(&b, " %q", e.Version.String())
	case KindInvalid, KindAmbiguous:
		fmt.Fprintf(&b, " %q", strings.Join(e.Requested, ", "))
	case KindUnspecified, KindAmbiguousMatch:
		if len(e.Candidates) > 0 {
			fmt.Fprintf(&b, " (candidates: %s)", strings.Join(e.Candidates, ", "))
		}
	case KindMisconfigured:
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	}

	return b.String()
}

// Unwrap returns the sentinel of the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{kindInfo[e.Kind].sentinel}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// HTTPStatus returns the default status of the failure when versions travel
// in the query string or headers.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAmbiguousMatch, KindMisconfigured:
		return http.StatusInternalServerError
	}

	return http.StatusBadRequest
}

// AsError returns the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)

	return e, ok
}
