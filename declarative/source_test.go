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

package declarative

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/conventions"
	"rivaas.dev/apiversioning/metadata"
	"rivaas.dev/apiversioning/version"
)

type ordersController struct {
	_ struct{} `apiversion:"2.0" apiversion-deprecated:"1.0"`
	_ struct{} `apiversion-advertised:"3.0" apiversion-advertised-deprecated:"0.9"`

	ListV1 http.HandlerFunc `mapto:"1.0"`
	List   http.HandlerFunc
	Health http.HandlerFunc `apiversion:"neutral"`

	internal http.HandlerFunc `mapto:"9.0"` //nolint:unused // read through reflection only
}

type pingController struct {
	_ struct{} `apiversion:"neutral"`

	Ping http.HandlerFunc
}

func TestSource_Register(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.Register("orders", &ordersController{}))
	require.NoError(t, s.Register("ping", pingController{}))
	assert.Equal(t, []string{"orders", "ping"}, s.Groups())

	decls, err := s.Declarations()
	require.NoError(t, err)

	orders := decls["orders"]
	assert.Equal(t, "2.0", orders.Supported.String())
	assert.Equal(t, "1.0", orders.Deprecated.String())
	assert.Equal(t, "3.0", orders.Advertised.String())
	assert.Equal(t, "0.9", orders.DeprecatedAdvertised.String())
	assert.Len(t, orders.Members, 2)
	assert.Equal(t, "1.0", orders.Members["ListV1"].Mapped.String())
	assert.True(t, orders.Members["Health"].Neutral)

	assert.True(t, decls["ping"].Neutral)
	assert.Empty(t, decls["ping"].Members)
}

func TestSource_RegisterErrors(t *testing.T) {
	t.Parallel()

	type badVersion struct {
		_ struct{} `apiversion:"1.x"`
	}
	type emptyMapping struct {
		_ struct{} `apiversion:"1.0"`

		Get http.HandlerFunc `mapto:""`
	}
	type memberVersion struct {
		Get http.HandlerFunc `apiversion:"1.0"`
	}

	tests := []struct {
		name       string
		controller any
		wantErr    error
	}{
		{name: "not a struct", controller: 42, wantErr: ErrNotStruct},
		{name: "nil", controller: nil, wantErr: ErrNotStruct},
		{name: "bad version", controller: badVersion{}, wantErr: version.ErrFormat},
		{name: "empty mapping", controller: emptyMapping{}, wantErr: ErrInvalidTag},
		{name: "member version", controller: memberVersion{}, wantErr: ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New()
			err := s.Register("group", tt.controller)
			require.ErrorIs(t, err, tt.wantErr)

			_, err = s.Declarations()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSource_DuplicateGroup(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.Register("ping", pingController{}))
	require.ErrorIs(t, s.Register("ping", pingController{}), ErrDuplicateType)
}

func TestSource_MixedWithConventions(t *testing.T) {
	t.Parallel()

	tags := New()
	require.NoError(t, tags.Register("orders", ordersController{}))

	conv := conventions.New()
	conv.Group("orders").HasAPIVersion(version.MustParse("4.0"))
	conv.Group("customers").HasAPIVersion(version.MustParse("1.0"))

	_, err := metadata.NewRegistry(tags, conv)
	require.ErrorIs(t, err, metadata.ErrDuplicateGroup)
}

func TestSource_Registry(t *testing.T) {
	t.Parallel()

	tags := New()
	require.NoError(t, tags.Register("orders", ordersController{}))

	reg, err := metadata.NewRegistry(tags)
	require.NoError(t, err)

	v1, v2 := version.MustParse("1.0"), version.MustParse("2.0")

	md, err := reg.Lookup("orders", "ListV1")
	require.NoError(t, err)
	assert.True(t, md.MapsTo(v1))
	assert.False(t, md.MapsTo(v2))

	md, err = reg.Lookup("orders", "Health")
	require.NoError(t, err)
	assert.True(t, md.IsNeutral())

	group, err := reg.Group("orders")
	require.NoError(t, err)
	assert.Equal(t, "2.0", group.Supported().String())
	assert.Equal(t, "1.0", group.Deprecated().String())
}
