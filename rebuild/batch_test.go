package rebuild

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRecipeRepository wraps a real repository so tests can interfere
// with writes.
type flakyRecipeRepository struct {
	storage.RecipeRepository
	updateFunc func(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error)
	updates    int
}

func (f *flakyRecipeRepository) UpdateRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
	f.updates++
	if f.updateFunc != nil {
		return f.updateFunc(ctx, recipes...)
	}
	return f.RecipeRepository.UpdateRecipes(ctx, recipes...)
}

func TestBatchProcessor_Process(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	ctx := context.Background()

	recipes := []*core.Recipe{
		{Title: "Chocolate Cake", Tags: []string{"Dessert", "Baking"}, CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
		{Title: "Apple Pie", Tags: []string{"Dessert"}, CreatedAt: time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)},
	}
	added, err := recipeRepo.AddRecipes(ctx, recipes...)
	require.NoError(t, err)

	processor := NewBatchProcessor(recipeRepo, tagRepo, 3, 10*time.Millisecond)

	err = processor.Process(ctx, added)
	require.NoError(t, err)

	// Both recipes should link to the same dessert tag
	dessert, err := tagRepo.FindTagBySlug(ctx, "dessert")
	require.NoError(t, err)

	updated, err := recipeRepo.GetRecipes(ctx, added[0].Id, added[1].Id)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	assert.Len(t, updated[0].TagIds, 2)
	assert.Len(t, updated[1].TagIds, 1)
	assert.Contains(t, updated[0].TagIds, dessert.Id)
	assert.Contains(t, updated[1].TagIds, dessert.Id)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	processor := NewBatchProcessor(recipeRepo, tagRepo, 3, 10*time.Millisecond)

	err := processor.Process(context.Background(), []*core.Recipe{})
	require.NoError(t, err, "empty batch should not error")
}

func TestBatchProcessor_TagNameNormalization(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	ctx := context.Background()

	// Duplicate casings collapse and unusable names are dropped
	recipes := []*core.Recipe{
		{Title: "Beef Tacos", Tags: []string{"Dinner", "dinner", "DINNER", "!!!"}, CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
	}
	added, err := recipeRepo.AddRecipes(ctx, recipes...)
	require.NoError(t, err)

	processor := NewBatchProcessor(recipeRepo, tagRepo, 3, 10*time.Millisecond)

	err = processor.Process(ctx, added)
	require.NoError(t, err)

	updated, err := recipeRepo.GetRecipes(ctx, added[0].Id)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Len(t, updated[0].TagIds, 1, "casing variants and unusable names should collapse to one link")
}

func TestBatchProcessor_RepairsDriftedLinks(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	ctx := context.Background()

	recipes := []*core.Recipe{
		{Title: "Banana Bread", Tags: []string{"Baking"}, CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
	}
	added, err := recipeRepo.AddRecipes(ctx, recipes...)
	require.NoError(t, err)

	// Corrupt the link to point at a tag that does not exist
	added[0].TagIds = []core.ID{999999}
	_, err = recipeRepo.UpdateRecipes(ctx, added...)
	require.NoError(t, err)

	processor := NewBatchProcessor(recipeRepo, tagRepo, 3, 10*time.Millisecond)
	err = processor.Process(ctx, added)
	require.NoError(t, err)

	baking, err := tagRepo.FindTagBySlug(ctx, "baking")
	require.NoError(t, err)

	updated, err := recipeRepo.GetRecipes(ctx, added[0].Id)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, []core.ID{baking.Id}, updated[0].TagIds)

	// The bogus index entry should be gone after the rewrite
	stale, err := recipeRepo.GetRecipeIdsByTag(ctx, 999999)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestBatchProcessor_RetriesFailedWrites(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	ctx := context.Background()
	added := seedRecipes(t, recipeRepo, 1, "Dinner")

	flaky := &flakyRecipeRepository{RecipeRepository: recipeRepo}
	flaky.updateFunc = func(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
		if flaky.updates < 2 {
			return nil, errors.New("transient write conflict")
		}
		return recipeRepo.UpdateRecipes(ctx, recipes...)
	}

	processor := NewBatchProcessor(flaky, tagRepo, 3, 10*time.Millisecond)

	err := processor.Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 2, flaky.updates, "should retry on failure")

	updated, err := recipeRepo.GetRecipes(ctx, added[0].Id)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.NotEmpty(t, updated[0].TagIds)
}

func TestBatchProcessor_WriteErrorAfterRetries(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	ctx := context.Background()
	added := seedRecipes(t, recipeRepo, 1, "Dinner")

	flaky := &flakyRecipeRepository{RecipeRepository: recipeRepo}
	flaky.updateFunc = func(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
		return nil, errors.New("persistent error")
	}

	processor := NewBatchProcessor(flaky, tagRepo, 2, 10*time.Millisecond)

	err := processor.Process(ctx, added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistent error")
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, flaky.updates, "should stop after maxRetries attempts")
}

func TestBatchProcessor_ContextCancellation(t *testing.T) {
	recipeRepo, tagRepo, _, cleanup := setupRebuildRepositories(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	added := seedRecipes(t, recipeRepo, 1, "Dinner")

	flaky := &flakyRecipeRepository{RecipeRepository: recipeRepo}
	flaky.updateFunc = func(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
		cancel() // Cancel during the write
		return nil, errors.New("error")
	}

	processor := NewBatchProcessor(flaky, tagRepo, 3, 10*time.Millisecond)

	err := processor.Process(ctx, added)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
