/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/cfx/apis"
)

const (
	// DefaultTypeKey is the default configuration key carrying the type override.
	DefaultTypeKey = "type"
	// DefaultRootDefinition is the default name of the root constructible type.
	DefaultRootDefinition = "Configurable"
	// DefaultSchemaDialect is the default schema-dialect identifier.
	DefaultSchemaDialect = "http://json-schema.org/draft-07/schema#"
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure required knobs are valid.
	if cfg.TypeKey == "" {
		cfg.TypeKey = DefaultTypeKey
	}
	if cfg.RootDefinition == "" {
		cfg.RootDefinition = DefaultRootDefinition
	}
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		TypeKey:        DefaultTypeKey,
		RootDefinition: DefaultRootDefinition,
		SchemaDialect:  DefaultSchemaDialect,
		MaxUnwrap:      DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithTypeKey sets the TypeKey option.
// An empty value resets to the default.
func WithTypeKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			c.TypeKey = DefaultTypeKey
			return
		}
		c.TypeKey = key
	}
}

// WithRootDefinition sets the RootDefinition option.
// An empty value resets to the default.
func WithRootDefinition(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			c.RootDefinition = DefaultRootDefinition
			return
		}
		c.RootDefinition = name
	}
}

// WithSchemaDialect sets the SchemaDialect option.
func WithSchemaDialect(uri string) Option {
	return func(c *apis.Config) {
		c.SchemaDialect = uri
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
