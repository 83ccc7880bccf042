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

package apiversioning

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reporting"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/version"
)

// ErrInvalidFileConfig is returned when a file configuration fails validation.
var ErrInvalidFileConfig = errors.New("invalid versioning file configuration")

// FileConfig is the serializable form of the versioning configuration.
// Versions are strings; quote them in YAML so that 1.10 is not read as 1.1.
//
// Example YAML:
//
//	default: "1.0"
//	assume_default: true
//	default_selector: current
//	sources:
//	  query: [api-version]
//	  header: [api-version]
//	sunset:
//	  - version: "1.0"
//	    deprecated: true
//	    sunset: "2025-12-31T00:00:00Z"
//	    migration: https://docs.example.com/migrate/v1-to-v2
//	    successor: "2.0"
type FileConfig struct {
	Default           string         `config:"default"`
	AssumeDefault     bool           `config:"assume_default"`
	DefaultSelector   string         `config:"default_selector" validate:"omitempty,oneof=constant current lowest"`
	StrictNeutral     bool           `config:"strict_neutral"`
	ReportAPIVersions *bool          `config:"report_api_versions"`
	ProblemBaseURL    string         `config:"problem_base_url" validate:"omitempty,url"`
	DisableErrorID    bool           `config:"disable_error_id"`
	EnforceSunset     bool           `config:"enforce_sunset"`
	Warning299        bool           `config:"warning299"`
	Sources           SourcesConfig  `config:"sources"`
	Status            *StatusConfig  `config:"status"`
	Sunset            []SunsetConfig `config:"sunset" validate:"dive"`
}

// SourcesConfig lists the reader sources, read in the order query, header,
// media type, media type template, path.
type SourcesConfig struct {
	Query             []string `config:"query" validate:"dive,required"`
	Header            []string `config:"header" validate:"dive,required"`
	MediaType         []string `config:"media_type" validate:"dive,required"`
	MediaTypeTemplate []string `config:"media_type_template" validate:"dive,required,contains={version}"`
	Path              []string `config:"path" validate:"dive,required"`
}

// StatusConfig overrides the status policy. Zero statuses keep the default.
type StatusConfig struct {
	Unspecified      int   `config:"unspecified" validate:"omitempty,min=400,max=499"`
	Invalid          int   `config:"invalid" validate:"omitempty,min=400,max=499"`
	Ambiguous        int   `config:"ambiguous" validate:"omitempty,min=400,max=499"`
	Unsupported      int   `config:"unsupported" validate:"omitempty,min=400,max=499"`
	PathNotFound     *bool `config:"path_not_found"`
	MethodNotAllowed *bool `config:"method_not_allowed"`
}

// SunsetConfig is the lifecycle of one version.
type SunsetConfig struct {
	Version         string    `config:"version" validate:"required"`
	Deprecated      bool      `config:"deprecated"`
	DeprecatedSince time.Time `config:"deprecated_since"`
	Sunset          time.Time `config:"sunset"`
	Migration       string    `config:"migration" validate:"omitempty,url"`
	Successor       string    `config:"successor"`
}

// Format is the encoding of a configuration document.
type Format string

// Supported configuration formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// LoadConfig decodes a YAML document into a validated FileConfig.
func LoadConfig(data []byte) (*FileConfig, error) {
	return LoadConfigFormat(data, FormatYAML)
}

// LoadConfigFormat decodes a document of the given format into a validated
// FileConfig.
func LoadConfigFormat(data []byte, format Format) (*FileConfig, error) {
	var (
		raw map[string]any
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidFileConfig, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	return ConfigFromMap(raw)
}

// LoadConfigFile reads and decodes the file at path. The format follows the
// file extension: .yaml, .yml, .toml or .json.
func LoadConfigFile(path string) (*FileConfig, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrInvalidFileConfig, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadConfigFormat(data, format)
}

// ConfigFromMap decodes a generic map, as produced by rivaas.dev/config or
// any decoder of nested documents, into a validated FileConfig.
func ConfigFromMap(m map[string]any) (*FileConfig, error) {
	var fc FileConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           &fc,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err = fc.Validate(); err != nil {
		return nil, err
	}

	return &fc, nil
}

// Validate checks the struct tags, then that every version parses.
func (fc *FileConfig) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("config"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	var errs []error
	if err := validate.Struct(fc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalidFileConfig, err)
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%w: %s failed %q", ErrInvalidFileConfig, fieldPath(fe.Namespace()), fe.Tag()))
		}
	}

	check := func(field, text string) {
		if text == "" {
			return
		}
		if _, err := version.Parse(text); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidFileConfig, field, err))
		}
	}
	check("default", fc.Default)
	for i, s := range fc.Sunset {
		check(fmt.Sprintf("sunset[%d].version", i), s.Version)
		check(fmt.Sprintf("sunset[%d].successor", i), s.Successor)
	}

	return errors.Join(errs...)
}

// fieldPath drops the root struct name of a validator namespace.
func fieldPath(ns string) string {
	_, path, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}

	return path
}

// Options converts the file configuration into options.
func (fc *FileConfig) Options() ([]Option, error) {
	if err := fc.Validate(); err != nil {
		return nil, err
	}

	var opts []Option
	for _, q := range fc.Sources.Query {
		opts = append(opts, WithQueryParam(q))
	}
	if len(fc.Sources.Header) > 0 {
		opts = append(opts, WithHeader(fc.Sources.Header...))
	}
	for _, p := range fc.Sources.MediaType {
		opts = append(opts, WithMediaTypeParam(p))
	}
	for _, t := range fc.Sources.MediaTypeTemplate {
		opts = append(opts, WithMediaTypeTemplate(t))
	}
	for _, p := range fc.Sources.Path {
		opts = append(opts, WithPathParam(p))
	}

	var def version.Version
	if fc.Default != "" {
		def = version.MustParse(fc.Default)
		opts = append(opts, WithDefault(def))
	}
	if fc.DefaultSelector != "" {
		s, ok := selector.DefaultSelectorByName(fc.DefaultSelector, def)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, fc.DefaultSelector)
		}
		opts = append(opts, WithDefaultSelector(s))
	}
	opts = append(opts, WithAssumeDefault(fc.AssumeDefault))
	if fc.StrictNeutral {
		opts = append(opts, WithStrictNeutral())
	}

	if fc.ReportAPIVersions != nil {
		opts = append(opts, WithReportAPIVersions(*fc.ReportAPIVersions))
	}
	if fc.ProblemBaseURL != "" {
		opts = append(opts, WithProblemBaseURL(fc.ProblemBaseURL))
	}
	if fc.DisableErrorID {
		opts = append(opts, WithoutErrorID())
	}
	if fc.Status != nil {
		opts = append(opts, WithStatusPolicy(fc.Status.policy()))
	}

	if fc.EnforceSunset {
		opts = append(opts, WithEnforceSunset())
	}
	if fc.Warning299 {
		opts = append(opts, WithWarning299())
	}
	for _, s := range fc.Sunset {
		opts = append(opts, WithSunsetPolicy(version.MustParse(s.Version), s.lifecycle()...))
	}

	return opts, nil
}

// WithFileConfig applies a file configuration.
func WithFileConfig(fc *FileConfig) Option {
	return func(cfg *Config) error {
		opts, err := fc.Options()
		if err != nil {
			return err
		}
		for _, opt := range opts {
			if err = opt(cfg); err != nil {
				return err
			}
		}

		return nil
	}
}

func (sc *StatusConfig) policy() problem.StatusPolicy {
	p := problem.DefaultStatusPolicy()
	p.Unspecified = cmp.Or(sc.Unspecified, p.Unspecified)
	p.Invalid = cmp.Or(sc.Invalid, p.Invalid)
	p.Ambiguous = cmp.Or(sc.Ambiguous, p.Ambiguous)
	p.Unsupported = cmp.Or(sc.Unsupported, p.Unsupported)
	if sc.PathNotFound != nil {
		p.PathNotFound = *sc.PathNotFound
	}
	if sc.MethodNotAllowed != nil {
		p.MethodNotAllowed = *sc.MethodNotAllowed
	}

	return p
}

func (s SunsetConfig) lifecycle() []reporting.LifecycleOption {
	var opts []reporting.LifecycleOption
	if s.Deprecated {
		opts = append(opts, reporting.Deprecated())
	}
	if !s.DeprecatedSince.IsZero() {
		opts = append(opts, reporting.DeprecatedSince(s.DeprecatedSince))
	}
	if !s.Sunset.IsZero() {
		opts = append(opts, reporting.Sunset(s.Sunset))
	}
	if s.Migration != "" {
		opts = append(opts, reporting.MigrationDocs(s.Migration))
	}
	if s.Successor != "" {
		opts = append(opts, reporting.SuccessorVersion(version.MustParse(s.Successor)))
	}

	return opts
}
