// Copyright 2025 Poiesic Systems
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


package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the encoding of a recipe source file.
type Format string

const (
	// FormatJSON is a JSON array of recipe entries.
	FormatJSON Format = "json"

	// FormatYAML is a YAML sequence of recipe entries.
	FormatYAML Format = "yaml"
)

// Config holds configuration for recipe sources.
type Config struct {
	// Path is the location of the source file.
	Path string

	// Format is the file encoding. When empty, it is inferred from the
	// file extension during normalization.
	Format Format
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithFormat sets the source format explicitly, overriding extension detection.
func WithFormat(format Format) ConfigOption {
	return func(c *Config) {
		c.Format = format
	}
}

// NewConfig creates a Config for the given path and applies the provided options.
//
// Example:
//
//	cfg := NewConfig("recipes.yaml")
//
// Example with an explicit format for an unconventional extension:
//
//	cfg := NewConfig("recipes.export", WithFormat(FormatJSON))
func NewConfig(path string, opts ...ConfigOption) *Config {
	cfg := &Config{Path: path}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It lowercases the format, maps the common "yml" spelling to "yaml", and
// infers the format from the file extension when none was given.
func (c *Config) Normalize() {
	format := Format(strings.ToLower(string(c.Format)))
	if format == "" && c.Path != "" {
		format = Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Path)), "."))
	}
	if format == "yml" {
		format = FormatYAML
	}
	c.Format = format
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first so format detection has run
	c.Normalize()

	if c.Path == "" {
		return errors.New("source config: Path is required")
	}
	switch c.Format {
	case FormatJSON, FormatYAML:
		return nil
	case "":
		return fmt.Errorf("%w: none given and none inferable from %q", ErrUnsupportedFormat, c.Path)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
}
