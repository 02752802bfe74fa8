package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

// RecipeRepository implements storage.RecipeRepository for BadgerDB.
type RecipeRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(backend *Backend) (*RecipeRepository, error) {
	idSeq, err := backend.GetSequence(recipeIDSeq)
	if err != nil {
		return nil, err
	}

	return &RecipeRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RecipeRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RecipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRecipes adds one or more recipes to storage.
func (r *RecipeRepository) AddRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Generate IDs and set timestamps
		for _, recipe := range recipes {
			if recipe.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				recipe.Id = core.ID(nextID)
			}

			recipe.InsertedAt = time.Now().UTC()
			recipe.UpdatedAt = recipe.InsertedAt

			// Store primary record
			key := makeRecipeKey(recipe.Id)
			value := storage.MarshalRecipe(recipe)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeRecipeDateKey(recipe.CreatedAt, recipe.Id)
			if err := tx.Set(dateKey, storage.MarshalID(recipe.Id)); err != nil {
				return err
			}

			// Update tag index
			if err := r.updateTagIndex(tx, recipe); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return recipes, err
}

// UpdateRecipes updates existing recipes.
func (r *RecipeRepository) UpdateRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, recipe := range recipes {
			key := makeRecipeKey(recipe.Id)

			// Read old recipe to detect changes
			old, err := r.readRecipe(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			recipe.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalRecipe(recipe)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index if creation time changed
			if !old.CreatedAt.Equal(recipe.CreatedAt) {
				oldDateKey := makeRecipeDateKey(old.CreatedAt, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeRecipeDateKey(recipe.CreatedAt, recipe.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(recipe.Id)); err != nil {
					return err
				}
			}

			// Update tag index if tag assignments changed
			if !slices.Equal(old.TagIds, recipe.TagIds) {
				if err := r.deleteTagIndex(tx, old); err != nil {
					return err
				}
				if err := r.updateTagIndex(tx, recipe); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return recipes, err
}

// DeleteRecipes removes recipes by their IDs.
func (r *RecipeRepository) DeleteRecipes(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecipeKey(id)

			// Read recipe to get metadata for index cleanup
			recipe, err := r.readRecipe(tx, key)
			if err != nil {
				return err
			}
			if recipe == nil {
				return storage.ErrNotFound
			}

			// Delete from date index
			dateKey := makeRecipeDateKey(recipe.CreatedAt, recipe.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			// Delete from tag index
			if err := r.deleteTagIndex(tx, recipe); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecipe retrieves a single recipe by ID.
func (r *RecipeRepository) GetRecipe(ctx context.Context, id core.ID) (*core.Recipe, error) {
	var result *core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecipeKey(id)
		var err error
		result, err = r.readRecipe(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRecipes retrieves multiple recipes by their IDs.
func (r *RecipeRepository) GetRecipes(ctx context.Context, ids ...core.ID) ([]*core.Recipe, error) {
	var result []*core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecipeKey(id)
			recipe, err := r.readRecipe(tx, key)
			if err != nil {
				return err
			}
			if recipe != nil {
				result = append(result, recipe)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetRecipesByDateRange retrieves recipes created within a time range.
func (r *RecipeRepository) GetRecipesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Recipe, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRecipeDateKey(start)
		endKey := makePartialRecipeDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var recipeID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recipeID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full recipe
			recipeKey := makeRecipeKey(recipeID)
			recipe, err := r.readRecipe(tx, recipeKey)
			if err != nil {
				return err
			}
			if recipe != nil {
				results = append(results, recipe)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentRecipes retrieves the N most recently created recipes, newest first.
func (r *RecipeRepository) GetRecentRecipes(ctx context.Context, limit int) ([]*core.Recipe, error) {
	var results []*core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get the newest entries first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialRecipeDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		// Prefix for recipe date index keys
		prefix := []byte(recipeDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var recipeID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recipeID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full recipe
			recipeKey := makeRecipeKey(recipeID)
			recipe, err := r.readRecipe(tx, recipeKey)
			if err != nil {
				return err
			}
			if recipe != nil {
				results = append(results, recipe)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecipeIdsByTag retrieves IDs of recipes associated with a tag.
func (r *RecipeRepository) GetRecipeIdsByTag(ctx context.Context, tagID core.ID) ([]core.ID, error) {
	var recipeIDs []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRecipeTagKey(tagID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our tagID prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the recipeID from the value
			var recipeID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				recipeID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}
			recipeIDs = append(recipeIDs, recipeID)
		}
		return nil
	}, false)

	return recipeIDs, err
}

// GetTagsByDateRange returns the distinct tags referenced by recipes created within a date range.
func (r *RecipeRepository) GetTagsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Tag, error) {
	recipes, err := r.GetRecipesByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	ids := make(map[core.ID]bool)
	for _, recipe := range recipes {
		for _, tagID := range recipe.TagIds {
			ids[tagID] = true
		}
	}
	var result []*core.Tag
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for id := range ids {
			key := makeTagKey(id)
			tag, readErr := readTag(tx, key)
			if readErr != nil {
				return readErr
			}
			if tag != nil {
				result = append(result, tag)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllRecipes retrieves every stored recipe.
func (r *RecipeRepository) GetAllRecipes(ctx context.Context) ([]*core.Recipe, error) {
	var results []*core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// The trailing colon keeps date, tag, and sequence keys out of the scan
		prefix := []byte(recipeRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			if !hasPrefix(key, prefix) {
				break
			}

			var recipe *core.Recipe
			err := item.Value(func(val []byte) error {
				var err error
				recipe, err = storage.UnmarshalRecipe(val)
				return err
			})
			if err != nil {
				return err
			}

			if recipe != nil {
				results = append(results, recipe)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// readRecipe reads a recipe from the transaction.
func (r *RecipeRepository) readRecipe(tx *badger.Txn, key []byte) (*core.Recipe, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var recipe *core.Recipe
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		recipe, unmarshalErr = storage.UnmarshalRecipe(val)
		return unmarshalErr
	})
	return recipe, err
}

// updateTagIndex adds tag index entries for a recipe.
func (r *RecipeRepository) updateTagIndex(tx *badger.Txn, recipe *core.Recipe) error {
	if len(recipe.TagIds) == 0 {
		return nil
	}
	for _, tagID := range recipe.TagIds {
		key := makeRecipeTagKey(tagID, recipe.Id)
		value := storage.MarshalID(recipe.Id)
		if err := tx.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// deleteTagIndex removes tag index entries for a recipe.
func (r *RecipeRepository) deleteTagIndex(tx *badger.Txn, recipe *core.Recipe) error {
	if len(recipe.TagIds) == 0 {
		return nil
	}
	for _, tagID := range recipe.TagIds {
		key := makeRecipeTagKey(tagID, recipe.Id)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
