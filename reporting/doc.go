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

// Package reporting writes API version information into responses.
//
// Report adds the api-supported-versions and api-deprecated-versions
// headers listing the versions of the group that served the request.
// Neutral handlers do not report versions.
//
// Lifecycle adds deprecation and sunset headers for the resolved version:
//
//	Deprecation: true
//	Sunset: Wed, 31 Dec 2025 00:00:00 GMT
//	Link: <https://docs.example.com/migrate>; rel="deprecation", <https://docs.example.com/migrate>; rel="sunset"
//
// After the sunset date, Lifecycle reports that the version is gone when
// sunset enforcement is enabled so that the caller can answer 410 Gone.
package reporting
