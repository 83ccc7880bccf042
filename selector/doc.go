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

// Package selector picks the handler that serves a request among the
// candidates the host router matched for a path.
//
// Select is a pure function of the candidates, the requested version outcome
// and the options. It runs in the following order:
//
//  1. Candidates are split into version-neutral and version-aware ones.
//  2. Invalid and ambiguous requests fail, unless every candidate is
//     neutral and Options.StrictNeutral is off.
//  3. An unspecified version is replaced by the default version when
//     Options.AssumeDefault is on. Otherwise neutral-only routes select a
//     neutral candidate and every other route fails.
//  4. A valid version keeps the version-aware candidates that map to it plus
//     every neutral candidate. Within one group, a member explicitly mapped
//     to the version hides the members answering it implicitly.
//  5. The matches are ordered by the host precedence, then declaration
//     order, never before the version filter.
//
// Every failure is an *Error with a Kind and a stable Code.
package selector
