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

package edm

import (
	"errors"
	"fmt"
	"iter"

	"rivaas.dev/apiversioning/version"
)

// ErrNoVersions is returned by BuildAll when there is nothing to build.
var ErrNoVersions = errors.New("edm: no versions to build")

// Configuration contributes to the model of one version.
type Configuration[B any] func(b B, v version.Version)

// Builder builds models of type M with underlying builders of type B.
type Builder[B, M any] struct {
	newBuilder func() B
	finalize   func(B, version.Version) (M, error)
}

// New returns a Builder. newBuilder is called once per version;
// finalize turns a configured builder into the model of that version.
func New[B, M any](newBuilder func() B, finalize func(B, version.Version) (M, error)) *Builder[B, M] {
	return &Builder[B, M]{newBuilder: newBuilder, finalize: finalize}
}

// BuildAll builds one model per version in ascending version order.
func (b *Builder[B, M]) BuildAll(versions version.Set, configs ...Configuration[B]) (*Models[M], error) {
	if versions.IsEmpty() {
		return nil, ErrNoVersions
	}

	models := &Models[M]{versions: versions, models: make([]M, 0, versions.Len())}
	for _, v := range versions {
		builder := b.newBuilder()
		for _, config := range configs {
			if config != nil {
				config(builder, v)
			}
		}

		m, err := b.finalize(builder, v)
		if err != nil {
			return nil, fmt.Errorf("edm: build model for version %s: %w", v, err)
		}
		models.models = append(models.models, m)
	}

	return models, nil
}

// Models holds one model per version.
type Models[M any] struct {
	versions version.Set
	models   []M
}

// Versions returns the versions with a model, in ascending order.
func (m *Models[M]) Versions() version.Set { return m.versions }

// Len returns the number of models.
func (m *Models[M]) Len() int { return len(m.models) }

// Get returns the model of v.
func (m *Models[M]) Get(v version.Version) (M, bool) {
	for i, mv := range m.versions {
		if mv.Equal(v) {
			return m.models[i], true
		}
	}

	var zero M
	return zero, false
}

// All iterates over versions and their models in ascending version order.
func (m *Models[M]) All() iter.Seq2[version.Version, M] {
	return func(yield func(version.Version, M) bool) {
		for i, v := range m.versions {
			if !yield(v, m.models[i]) {
				return
			}
		}
	}
}
