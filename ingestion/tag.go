package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

// tagProcessorType names the checkpoint row for tag linking progress.
const tagProcessorType = "tags"

// tagProcessor links stored recipes to normalized tag entities.
type tagProcessor struct {
	recipeRepository     storage.RecipeRepository
	tagRepository        storage.TagRepository
	checkpointRepository storage.CheckpointRepository
	lastID               core.ID
	logger               *slog.Logger
}

var _ processor = (*tagProcessor)(nil)

// newTagProcessor creates a new tag processor.
func newTagProcessor(
	recipeRepository storage.RecipeRepository,
	tagRepository storage.TagRepository,
	checkpointRepository storage.CheckpointRepository,
	logger *slog.Logger,
) (processor, error) {
	if recipeRepository == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	if tagRepository == nil {
		return nil, fmt.Errorf("tag repository required")
	}
	if checkpointRepository == nil {
		return nil, fmt.Errorf("checkpoint repository required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tagProcessor{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		checkpointRepository: checkpointRepository,
		logger:               logger.With("processor", "tags"),
	}, nil
}

// process resolves the authored tags of the identified recipes to normalized
// tag entities and rewrites each recipe with the resolved links.
func (tp *tagProcessor) process(ctx context.Context, ids ...core.ID) error {
	tp.logger.Info("processing recipes for tags", "recipes", len(ids))

	// Sort first so checkpointing works correctly
	slices.Sort(ids)

	recipes, err := tp.recipeRepository.GetRecipes(ctx, ids...)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return nil
	}

	var resolutionErrors []error

	for recipeIdx, recipe := range recipes {
		tagIds, err := tp.resolveTags(ctx, recipe.Tags)
		if err != nil {
			resolutionErrors = append(resolutionErrors, fmt.Errorf("recipe %d tag resolution failed: %w", recipeIdx, err))
			continue
		}
		recipe.TagIds = tagIds
	}

	updated, updateErr := tp.recipeRepository.UpdateRecipes(ctx, recipes...)
	if updateErr != nil {
		resolutionErrors = append(resolutionErrors, fmt.Errorf("update recipes failed: %w", updateErr))
	} else if len(updated) > 0 {
		highestID := updated[len(updated)-1].Id
		if highestID > tp.lastID {
			tp.lastID = highestID
		}
	}

	if len(resolutionErrors) > 0 {
		return errors.Join(resolutionErrors...)
	}

	return nil
}

// resolveTags maps authored tag names to normalized tag IDs, creating tags
// on first sight. Names that slugify to nothing are dropped, and duplicate
// names collapse to a single link.
func (tp *tagProcessor) resolveTags(ctx context.Context, names []string) ([]core.ID, error) {
	tagIds := make([]core.ID, 0, len(names))
	seen := make(map[core.ID]bool, len(names))

	for _, name := range names {
		tag, err := tp.tagRepository.GetOrCreateTag(ctx, name)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidQuery) {
				tp.logger.Debug("skipping tag with no usable characters", "tag", name)
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

// checkpoint persists the highest recipe ID linked so far.
func (tp *tagProcessor) checkpoint(ctx context.Context) error {
	if tp.lastID == 0 {
		return nil
	}
	return tp.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType:   tagProcessorType,
		LastProcessedId: tp.lastID,
	})
}
