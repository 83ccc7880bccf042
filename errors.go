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

package apiversioning

import "errors"

// Static errors for versioning configuration validation.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// Source errors
	ErrEmptyQueryParam    = errors.New("query parameter name cannot be empty")
	ErrEmptyHeaderName    = errors.New("header name cannot be empty")
	ErrEmptyMediaParam    = errors.New("media type parameter name cannot be empty")
	ErrEmptyPathParam     = errors.New("path parameter name cannot be empty")
	ErrNilSource          = errors.New("version source cannot be nil")
	ErrNilCustomSource    = errors.New("custom source function cannot be nil")
	ErrEmptyMediaTemplate = errors.New("media type template cannot be empty")

	// Configuration errors
	ErrInvalidDefault      = errors.New("default version must be a regular version")
	ErrDefaultRequired     = errors.New("assuming the default version requires a default version or selector")
	ErrUnknownSelector     = errors.New("unknown default version selector")
	ErrNilLogger           = errors.New("logger cannot be nil")
	ErrNoRegistry          = errors.New("no version metadata configured")
	ErrInvalidStatusPolicy = errors.New("status must be a 4xx client error")

	// Request errors
	ErrVersionSunset = errors.New("api version has been sunset")
)
