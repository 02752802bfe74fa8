package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

// Pipeline orchestrates the ingestion and processing of recipes.
// It manages concurrent tag linking for newly stored records.
type Pipeline struct {
	recipeRepository     storage.RecipeRepository
	tagRepository        storage.TagRepository
	checkpointRepository storage.CheckpointRepository
	tagPool              *ants.Pool
	tagProc              processor
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.tagPool != nil {
			p.tagPool.Release()
		}

		tagPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.tagPool = tagPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	recipeRepository storage.RecipeRepository,
	tagRepository storage.TagRepository,
	checkpointRepository storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if recipeRepository == nil {
		return nil, ErrRecipeRepositoryRequired
	}
	if tagRepository == nil {
		return nil, ErrTagRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	tagPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		checkpointRepository: checkpointRepository,
		tagPool:              tagPool,
		logger:               slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied (so it gets the final logger)
	tagProc, err := newTagProcessor(recipeRepository, tagRepository, checkpointRepository, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.tagProc = tagProc

	return p, nil
}

// Ingest validates and stores recipes, then links their tags asynchronously.
// Recipes without a creation time are stamped with the current time. Errors
// during async processing are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
	for _, recipe := range recipes {
		if recipe != nil && recipe.CreatedAt.IsZero() {
			recipe.CreatedAt = time.Now().UTC()
		}
		if err := core.ValidateRecipe(recipe); err != nil {
			return nil, err
		}
	}

	added, err := p.recipeRepository.AddRecipes(ctx, recipes...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	// Extract IDs
	ids := make([]core.ID, len(added))
	for i, recipe := range added {
		ids[i] = recipe.Id
	}

	// Submit for async processing
	p.tagPool.Submit(func() {
		if err := p.tagProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error linking tags", "err", err)
			return
		}
		if err := p.tagProc.checkpoint(context.Background()); err != nil {
			p.logger.Error("error applying tag checkpoint", "err", err)
		}
	})

	return added, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.tagPool != nil {
		p.tagPool.Release()
	}
}

// ReleaseTimeout releases the worker pool like Release, but waits up to
// timeout for in-flight tag linking to finish first.
func (p *Pipeline) ReleaseTimeout(timeout time.Duration) error {
	if p.tagPool == nil {
		return nil
	}
	return p.tagPool.ReleaseTimeout(timeout)
}
