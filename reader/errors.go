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
	"errors"
	"fmt"
)

// ErrInvalidTemplate is returned for a media type template without a
// {version} placeholder or without a prefix.
var ErrInvalidTemplate = errors.New("reader: invalid media type template")

func errInvalidTemplate(pattern string) error {
	return fmt.Errorf("%w: %q must contain a prefix and {version}", ErrInvalidTemplate, pattern)
}
