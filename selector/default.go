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
	"slices"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

// DefaultVersionSelector chooses the version assumed for requests that do
// not specify one.
type DefaultVersionSelector interface {
	SelectVersion(md metadata.Metadata) version.Version
}

// DefaultVersionSelectorFunc adapts a function to DefaultVersionSelector.
type DefaultVersionSelectorFunc func(md metadata.Metadata) version.Version

// SelectVersion implements DefaultVersionSelector.
func (f DefaultVersionSelectorFunc) SelectVersion(md metadata.Metadata) version.Version {
	return f(md)
}

// Constant always selects v.
func Constant(v version.Version) DefaultVersionSelector {
	return DefaultVersionSelectorFunc(func(metadata.Metadata) version.Version { return v })
}

// CurrentImplementation selects the highest supported version without a
// status label. It falls back to the highest supported version, then the
// highest implemented one, then fallback.
func CurrentImplementation(fallback version.Version) DefaultVersionSelector {
	return DefaultVersionSelectorFunc(func(md metadata.Metadata) version.Version {
		supported := md.Supported()
		for i := len(supported) - 1; i >= 0; i-- {
			if supported[i].Status() == "" {
				return supported[i]
			}
		}
		if v, ok := supported.Max(); ok {
			return v
		}
		if v, ok := md.Implemented().Max(); ok {
			return v
		}

		return fallback
	})
}

// LowestImplementation selects the lowest supported version, falling back to
// the lowest implemented one, then fallback.
func LowestImplementation(fallback version.Version) DefaultVersionSelector {
	return DefaultVersionSelectorFunc(func(md metadata.Metadata) version.Version {
		if v, ok := md.Supported().Min(); ok {
			return v
		}
		if v, ok := md.Implemented().Min(); ok {
			return v
		}

		return fallback
	})
}

// byName maps configuration names to selector constructors.
var byName = map[string]func(version.Version) DefaultVersionSelector{
	"constant": Constant,
	"current":  CurrentImplementation,
	"lowest":   LowestImplementation,
}

// DefaultSelectorNames returns the names accepted by DefaultSelectorByName.
func DefaultSelectorNames() []string {
	names := lo.Keys(byName)
	slices.Sort(names)

	return names
}

// DefaultSelectorByName returns the selector registered under name, built
// with fallback.
func DefaultSelectorByName(name string, fallback version.Version) (DefaultVersionSelector, bool) {
	ctor, ok := byName[name]
	if !ok {
		return nil, false
	}

	return ctor(fallback), true
}
