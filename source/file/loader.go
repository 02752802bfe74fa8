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


package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/araddon/dateparse"
	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/source"
	"gopkg.in/yaml.v3"
)

// entry is the on-disk shape of a recipe. Creation dates are free-form
// strings resolved by dateparse, so exports from other tools load as is.
type entry struct {
	Title     string   `json:"title" yaml:"title"`
	Tags      []string `json:"tags" yaml:"tags"`
	ViewCount int64    `json:"viewCount" yaml:"viewCount"`
	CreatedAt string   `json:"createdAt" yaml:"createdAt"`
}

// toRecipe converts a decoded entry into a domain recipe.
// An empty creation date stays zero; the ingestion pipeline stamps it.
func (e entry) toRecipe() (*core.Recipe, error) {
	recipe := &core.Recipe{
		Title:     e.Title,
		Tags:      e.Tags,
		ViewCount: e.ViewCount,
	}

	if e.CreatedAt != "" {
		createdAt, err := dateparse.ParseAny(e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("created date %q: %w", e.CreatedAt, err)
		}
		recipe.CreatedAt = createdAt.UTC()
	}

	return recipe, nil
}

// Loader implements source.Loader for JSON and YAML recipe files.
type Loader struct {
	config *source.Config
	logger *slog.Logger
}

// NewLoader creates a loader for the configured file.
// The config is validated and normalized before use.
//
// Returns source.Loader interface (not *Loader) to enforce abstraction
// and prevent coupling to file-specific implementation details.
func NewLoader(config *source.Config) (source.Loader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Loader{
		config: config,
		logger: slog.Default().With("component", "file-loader"),
	}, nil
}

// Load reads the whole file and converts every entry into a recipe.
// The first malformed entry aborts the load.
func (l *Loader) Load(ctx context.Context) ([]*core.Recipe, error) {
	data, err := os.ReadFile(l.config.Path)
	if err != nil {
		return nil, err
	}

	var entries []entry
	switch l.config.Format {
	case source.FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.config.Path, err)
	}

	l.logger.Debug("decoded source entries", "path", l.config.Path, "entries", len(entries))

	recipes := make([]*core.Recipe, 0, len(entries))
	for i, e := range entries {
		recipe, err := e.toRecipe()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %w", source.ErrMalformedEntry, i, e.Title, err)
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// Close releases resources held by the loader.
// Currently a no-op as the file is read on demand.
func (l *Loader) Close() error {
	l.logger.Debug("closing file loader")
	return nil
}
