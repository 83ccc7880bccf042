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
	"errors"
	"fmt"
)

// Static errors for template parsing and URL generation.
var (
	ErrInvalidTemplate   = errors.New("constraint: invalid route template")
	ErrUnknownConstraint = errors.New("constraint: unknown constraint")
	ErrMissingValue      = errors.New("constraint: missing route value")
	ErrRejectedValue     = errors.New("constraint: route value rejected")
)

func errTemplate(template, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidTemplate, template, reason)
}
