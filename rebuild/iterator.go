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

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

const (
	// DefaultBatchSize is the default number of recipes handed to the
	// callback on each iteration
	DefaultBatchSize = 100
)

// RecipeIterator iterates over all stored recipes in batches.
type RecipeIterator struct {
	recipeRepository storage.RecipeRepository
	batchSize        int
}

// NewRecipeIterator creates a new recipe iterator.
// batchSize: number of recipes per callback invocation (must be > 0)
func NewRecipeIterator(recipeRepository storage.RecipeRepository, batchSize int) *RecipeIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RecipeIterator{
		recipeRepository: recipeRepository,
		batchSize:        batchSize,
	}
}

// ForEach iterates over all recipes, calling fn for each batch.
// Iteration stops on the first error from fn or when all recipes have been
// handed out. Context cancellation is checked between batches.
func (it *RecipeIterator) ForEach(ctx context.Context, fn func([]*core.Recipe) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	recipes, err := it.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return err
	}

	if len(recipes) == 0 {
		return nil
	}

	for i := 0; i < len(recipes); i += it.batchSize {
		end := i + it.batchSize
		if end > len(recipes) {
			end = len(recipes)
		}

		if err := fn(recipes[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
