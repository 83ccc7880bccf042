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

//go:build !integration

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSet(t *testing.T) {
	t.Parallel()

	s := NewSet(MustParse("2.0"), MustParse("1"), MustParse("1.0"), Neutral, Empty, MustParse("1.5"))

	assert.Equal(t, []string{"1", "1.5", "2.0"}, s.Strings())
	assert.Equal(t, "1, 1.5, 2.0", s.String())
	assert.Nil(t, NewSet(Neutral, Empty))
	assert.Equal(t, []string{"2.0-Beta", "2.0-beta"}, NewSet(MustParse("2.0-beta"), MustParse("2.0-Beta")).Strings())
}

func TestSet_Operations(t *testing.T) {
	t.Parallel()

	a := NewSet(MustParse("1.0"), MustParse("2.0"), MustParse("3.0"))
	b := NewSet(MustParse("2"), MustParse("4.0"))

	assert.True(t, a.Contains(MustParse("1")))
	assert.False(t, a.Contains(MustParse("1.1")))
	assert.Equal(t, "1.0, 2.0, 3.0, 4.0", a.Union(b).String())
	assert.Equal(t, "1.0, 3.0", a.Minus(b).String())
	assert.Equal(t, "2.0", a.Intersect(b).String())
	assert.Nil(t, b.Minus(NewSet(MustParse("2.0"), MustParse("4.0"))))
	assert.True(t, NewSet(MustParse("3")).IsSubsetOf(a))
	assert.False(t, b.IsSubsetOf(a))
	assert.True(t, Set(nil).IsSubsetOf(a))

	highest, ok := a.Max()
	assert.True(t, ok)
	assert.Equal(t, "3.0", highest.String())

	lowest, ok := a.Min()
	assert.True(t, ok)
	assert.Equal(t, "1.0", lowest.String())

	_, ok = Set(nil).Max()
	assert.False(t, ok)
}
