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


package rebuild

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
	"github.com/schollz/progressbar/v3"
)

// rebuildProcessorType names the checkpoint row recording the last full rebuild.
const rebuildProcessorType = "rebuild"

// Config holds configuration for the rebuild operation.
type Config struct {
	// BatchSize is the number of recipes to process in each batch
	BatchSize int

	// MaxRetries is the maximum number of attempts for failed batch writes
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:  100,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Rebuilder orchestrates relinking tags for every recipe in a database.
type Rebuilder struct {
	recipeRepository     storage.RecipeRepository
	checkpointRepository storage.CheckpointRepository
	config               *Config
	progress             io.Writer
	processor            *BatchProcessor
	iterator             *RecipeIterator
}

// NewRebuilder creates a new rebuilder.
// progress: where to write progress output (typically os.Stderr)
func NewRebuilder(recipeRepository storage.RecipeRepository, tagRepository storage.TagRepository, checkpointRepository storage.CheckpointRepository, config *Config, progress io.Writer) *Rebuilder {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	processor := NewBatchProcessor(recipeRepository, tagRepository, config.MaxRetries, config.RetryDelay)
	iterator := NewRecipeIterator(recipeRepository, config.BatchSize)

	return &Rebuilder{
		recipeRepository:     recipeRepository,
		checkpointRepository: checkpointRepository,
		config:               config,
		progress:             progress,
		processor:            processor,
		iterator:             iterator,
	}
}

// Run executes the rebuild.
// Every recipe in the database gets its tag links re-derived from its
// authored tag names, and a checkpoint records the highest recipe ID
// touched. Progress is reported to the configured writer.
func (r *Rebuilder) Run(ctx context.Context) error {
	allRecipes, err := r.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}

	totalRecipes := len(allRecipes)
	if totalRecipes == 0 {
		fmt.Fprintf(r.progress, "No recipes found in database\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Rebuilding tags for %d recipes (batch size: %d)\n",
		totalRecipes, r.config.BatchSize)

	bar := progressbar.NewOptions(totalRecipes,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionSetDescription("relinking"),
		progressbar.OptionShowCount(),
	)

	startTime := time.Now()
	var highestID core.ID

	err = r.iterator.ForEach(ctx, func(recipes []*core.Recipe) error {
		if err := r.processor.Process(ctx, recipes); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		for _, recipe := range recipes {
			if recipe.Id > highestID {
				highestID = recipe.Id
			}
		}

		bar.Add(len(recipes))
		return nil
	})

	if err != nil {
		return err
	}

	bar.Finish()
	fmt.Fprintln(r.progress)

	err = r.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType:   rebuildProcessorType,
		LastProcessedId: highestID,
	})
	if err != nil {
		return fmt.Errorf("failed to save rebuild checkpoint: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(r.progress, "Rebuild complete. Relinked %d recipes in %v (%.1f recipes/sec)\n",
		totalRecipes, elapsed.Round(time.Second), float64(totalRecipes)/elapsed.Seconds())

	return nil
}
