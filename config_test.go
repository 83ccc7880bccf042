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

package apiversioning

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/version"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.True(t, cfg.ReportAPIVersions())
	assert.False(t, cfg.AssumeDefault())
	assert.True(t, cfg.DefaultVersion().IsEmpty())
	assert.Equal(t, problem.DefaultStatusPolicy(), cfg.StatusPolicy())
	require.Len(t, cfg.Sources(), 1)
	assert.Equal(t, "query:"+DefaultQueryParam, cfg.Sources()[0].Name())
	assert.False(t, cfg.Now().IsZero())
}

func TestNewConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "empty query param", opts: []Option{WithQueryParam("")}, wantErr: ErrEmptyQueryParam},
		{name: "no header names", opts: []Option{WithHeader()}, wantErr: ErrEmptyHeaderName},
		{name: "empty header name", opts: []Option{WithHeader("api-version", "")}, wantErr: ErrEmptyHeaderName},
		{name: "empty media param", opts: []Option{WithMediaTypeParam("")}, wantErr: ErrEmptyMediaParam},
		{name: "empty media template", opts: []Option{WithMediaTypeTemplate("")}, wantErr: ErrEmptyMediaTemplate},
		{name: "empty path param", opts: []Option{WithPathParam("")}, wantErr: ErrEmptyPathParam},
		{name: "nil custom source", opts: []Option{WithCustomSource("x", nil)}, wantErr: ErrNilCustomSource},
		{name: "nil source", opts: []Option{WithSource(nil)}, wantErr: ErrNilSource},
		{name: "neutral default", opts: []Option{WithDefault(version.Neutral)}, wantErr: ErrInvalidDefault},
		{name: "neutral sunset policy", opts: []Option{WithSunsetPolicy(version.Neutral)}, wantErr: ErrInvalidDefault},
		{name: "nil logger", opts: []Option{WithLogger(nil)}, wantErr: ErrNilLogger},
		{name: "nil registry", opts: []Option{WithRegistry(nil)}, wantErr: ErrNoRegistry},
		{name: "assume default without default", opts: []Option{WithAssumeDefault(true)}, wantErr: ErrDefaultRequired},
		{
			name:    "server error status",
			opts:    []Option{WithStatusPolicy(problem.StatusPolicy{Invalid: http.StatusInternalServerError})},
			wantErr: ErrInvalidStatusPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConfig(tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewConfig_MediaTypeTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(WithMediaTypeTemplate("application/vnd.acme+json"))
	require.ErrorIs(t, err, reader.ErrInvalidTemplate)

	cfg, err := NewConfig(WithMediaTypeTemplate("application/vnd.acme.v{version}+json"))
	require.NoError(t, err)
	assert.Len(t, cfg.Sources(), 1)
}

func TestNew_InvalidMetadata(t *testing.T) {
	t.Parallel()

	b := ordersConventions()
	b.Group("broken").IsAPIVersionNeutral().HasAPIVersion(v1)

	_, err := New(WithMetadata(b))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid metadata")
}
