package rebuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

// BatchProcessor relinks tags for batches of recipes.
type BatchProcessor struct {
	recipeRepository storage.RecipeRepository
	tagRepository    storage.TagRepository
	maxRetries       int
	retryBaseDelay   time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for the batch write
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(recipeRepository storage.RecipeRepository, tagRepository storage.TagRepository, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		recipeRepository: recipeRepository,
		tagRepository:    tagRepository,
		maxRetries:       maxRetries,
		retryBaseDelay:   retryBaseDelay,
	}
}

// Process re-derives tag links for a batch of recipes from their authored
// tag names and writes the recipes back. The write is retried with backoff
// so a transient storage conflict does not abort a long rebuild.
func (bp *BatchProcessor) Process(ctx context.Context, recipes []*core.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	for _, recipe := range recipes {
		tagIds, err := bp.resolveTags(ctx, recipe)
		if err != nil {
			return fmt.Errorf("failed to resolve tags for recipe %d: %w", recipe.Id, err)
		}
		recipe.TagIds = tagIds
	}

	err := RetryWithBackoff(ctx, func() error {
		_, err := bp.recipeRepository.UpdateRecipes(ctx, recipes...)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to update recipes after %d attempts: %w", bp.maxRetries, err)
	}

	return nil
}

// resolveTags applies the same linking rules as ingestion: names that
// slugify to nothing are dropped, and duplicate names collapse to a
// single link.
func (bp *BatchProcessor) resolveTags(ctx context.Context, recipe *core.Recipe) ([]core.ID, error) {
	tagIds := make([]core.ID, 0, len(recipe.Tags))
	seen := make(map[core.ID]bool, len(recipe.Tags))

	for _, name := range recipe.Tags {
		tag, err := bp.tagRepository.GetOrCreateTag(ctx, name)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidQuery) {
				slog.Debug("skipping tag with no usable characters", "recipe", recipe.Id, "tag", name)
				continue
			}
			return nil, err
		}
		if seen[tag.Id] {
			continue
		}
		seen[tag.Id] = true
		tagIds = append(tagIds, tag.Id)
	}

	return tagIds, nil
}
