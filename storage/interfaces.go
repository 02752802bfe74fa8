package storage

import (
	"context"
	"time"

	"github.com/poiesic/recipit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecipeRepository provides operations for managing recipes.
type RecipeRepository interface {
	Repository
	// AddRecipes adds one or more recipes to storage.
	// For recipes with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the recipes with generated IDs and timestamps populated.
	AddRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error)

	// UpdateRecipes updates existing recipes.
	// Updates the UpdatedAt timestamp automatically and keeps the
	// tag index in sync with each recipe's TagIds.
	// Returns ErrNotFound if any recipe doesn't exist.
	UpdateRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error)

	// DeleteRecipes removes recipes by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any recipe doesn't exist.
	DeleteRecipes(ctx context.Context, ids ...core.ID) error

	// GetRecipe retrieves a single recipe by ID.
	// Returns ErrNotFound if the recipe doesn't exist.
	GetRecipe(ctx context.Context, id core.ID) (*core.Recipe, error)

	// GetRecipes retrieves multiple recipes by their IDs.
	// Returns only the recipes that exist (no error for missing recipes).
	GetRecipes(ctx context.Context, ids ...core.ID) ([]*core.Recipe, error)

	// GetRecipesByDateRange retrieves recipes within a time range.
	// Returns recipes where start <= CreatedAt < end, ordered by creation time.
	GetRecipesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Recipe, error)

	// GetRecentRecipes retrieves the N most recently created recipes.
	// Returns up to limit recipes, with the most recent first.
	GetRecentRecipes(ctx context.Context, limit int) ([]*core.Recipe, error)

	// GetRecipeIdsByTag retrieves IDs of recipes associated with a tag.
	// Returns only recipe IDs, not full recipes.
	GetRecipeIdsByTag(ctx context.Context, tagID core.ID) ([]core.ID, error)

	// GetTagsByDateRange retrieves the distinct tags referenced by
	// recipes created within a time range.
	GetTagsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Tag, error)

	// GetAllRecipes retrieves every stored recipe in no particular order.
	// Callers that need an ordering sort the result themselves.
	GetAllRecipes(ctx context.Context) ([]*core.Recipe, error)
}

// TagRepository provides operations for managing tags.
type TagRepository interface {
	Repository
	// AddTags adds one or more tags to storage.
	// Uses content-based IDs (IDFromContent of the tag slug).
	// Sets InsertedAt timestamp if not already set.
	// Returns the tags with timestamps populated.
	AddTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error)

	// UpdateTags updates existing tags.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any tag doesn't exist.
	UpdateTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error)

	// DeleteTags removes tags by their IDs.
	// Returns ErrNotFound if any tag doesn't exist.
	DeleteTags(ctx context.Context, ids ...core.ID) error

	// GetTag retrieves a single tag by ID.
	// Returns ErrNotFound if the tag doesn't exist.
	GetTag(ctx context.Context, id core.ID) (*core.Tag, error)

	// GetTags retrieves multiple tags by their IDs.
	// Returns only the tags that exist (no error for missing tags).
	GetTags(ctx context.Context, ids ...core.ID) ([]*core.Tag, error)

	// FindTagBySlug finds a tag by its slug.
	// Returns ErrNotFound if no matching tag exists.
	FindTagBySlug(ctx context.Context, slug string) (*core.Tag, error)

	// GetOrCreateTag finds or creates a tag from a display name.
	// The name is slugified to determine identity, so "Comfort Food"
	// and "comfort food" resolve to the same tag.
	// Thread-safe: handles concurrent creation attempts.
	GetOrCreateTag(ctx context.Context, name string) (*core.Tag, error)

	// GetAllTags retrieves every stored tag, ordered by slug.
	GetAllTags(ctx context.Context) ([]*core.Tag, error)
}

// CheckpointRepository provides operations for processor checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type,
	// overwriting any previous checkpoint for that type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
