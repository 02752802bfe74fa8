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


package recipit

import (
	"io"
	"log/slog"

	"github.com/poiesic/recipit/ingestion"
	"github.com/poiesic/recipit/rebuild"
	"github.com/poiesic/recipit/search"
	"github.com/poiesic/recipit/storage"
	"github.com/poiesic/recipit/storage/badger"
)

type Database struct {
	backend        *badger.Backend
	recipeRepo     storage.RecipeRepository
	tagRepo        storage.TagRepository
	checkpointRepo storage.CheckpointRepository
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory keeps the whole database in memory and ignores filePath.
// Useful for tests and throwaway imports.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create recipe repository
	recipeRepo, err := badger.NewRecipeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create tag repository
	tagRepo, err := badger.NewTagRepository(backend)
	if err != nil {
		recipeRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create checkpoint repository
	checkpointRepo := badger.NewCheckpointRepository(backend)

	return &Database{
		backend:        backend,
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		checkpointRepo: checkpointRepo,
		logger:         slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close repositories
	if err := db.tagRepo.Close(); err != nil {
		db.logger.Error("error closing tag repository", "err", err)
		return err
	}
	if err := db.recipeRepo.Close(); err != nil {
		db.logger.Error("error closing recipe repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) RecipeRepository() storage.RecipeRepository {
	return db.recipeRepo
}

func (db *Database) TagRepository() storage.TagRepository {
	return db.tagRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.recipeRepo, db.tagRepo, db.checkpointRepo, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.recipeRepo, opts...)
}

func (db *Database) NewRebuilder(config *rebuild.Config, progress io.Writer) *rebuild.Rebuilder {
	return rebuild.NewRebuilder(db.recipeRepo, db.tagRepo, db.checkpointRepo, config, progress)
}
