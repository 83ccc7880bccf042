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

package metadata

import "errors"

// Static errors for metadata declaration and lookup.
// These errors are wrapped with fmt.Errorf and %w when context is needed.
var (
	ErrNeutralConflict  = errors.New("version-neutral declaration cannot also declare versions")
	ErrMappedUndeclared = errors.New("mapped version is not implemented by the group")
	ErrNoVersions       = errors.New("versioned group implements no version")
	ErrDuplicateGroup   = errors.New("group is declared by more than one metadata source")
	ErrUnknownGroup     = errors.New("group has no version metadata")
	ErrEmptyGroupID     = errors.New("group identity cannot be empty")
)
