package badger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB.
type TagRepository struct {
	backend *Backend
}

var _ storage.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new TagRepository.
func NewTagRepository(backend *Backend) (*TagRepository, error) {
	return &TagRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TagRepository has no resources to release.
func (r *TagRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TagRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTags adds one or more tags to storage.
func (r *TagRepository) AddTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tag := range tags {
			// Use content-based ID if not set
			if tag.Id == 0 {
				tag.Id = core.IDFromContent(tag.Key())
			}

			// Set timestamps
			tag.InsertedAt = time.Now().UTC()
			tag.UpdatedAt = tag.InsertedAt

			// Store primary record
			key := makeTagKey(tag.Id)
			value := storage.MarshalTag(tag)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store slug index
			slugKey := makeTagSlugKey(tag.Slug)
			if err := tx.Set(slugKey, storage.MarshalID(tag.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return tags, err
}

// UpdateTags updates existing tags.
func (r *TagRepository) UpdateTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tag := range tags {
			key := makeTagKey(tag.Id)

			// Read old tag to detect changes
			old, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			tag.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalTag(tag)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update slug index if the slug changed
			if old.Slug != tag.Slug {
				oldSlugKey := makeTagSlugKey(old.Slug)
				if err := tx.Delete(oldSlugKey); err != nil {
					return err
				}
				newSlugKey := makeTagSlugKey(tag.Slug)
				if err := tx.Set(newSlugKey, storage.MarshalID(tag.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return tags, err
}

// DeleteTags removes tags by their IDs.
func (r *TagRepository) DeleteTags(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTagKey(id)

			// Read tag to get metadata for index cleanup
			tag, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if tag == nil {
				return storage.ErrNotFound
			}

			// Delete from slug index
			slugKey := makeTagSlugKey(tag.Slug)
			if err := tx.Delete(slugKey); err != nil {
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

// GetTag retrieves a single tag by ID.
func (r *TagRepository) GetTag(ctx context.Context, id core.ID) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTagKey(id)
		var err error
		result, err = readTag(tx, key)
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

// GetTags retrieves multiple tags by their IDs.
func (r *TagRepository) GetTags(ctx context.Context, ids ...core.ID) ([]*core.Tag, error) {
	var result []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTagKey(id)
			tag, err := readTag(tx, key)
			if err != nil {
				return err
			}
			if tag != nil {
				result = append(result, tag)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindTagBySlug finds a tag by its slug.
func (r *TagRepository) FindTagBySlug(ctx context.Context, slug string) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from slug index
		slugKey := makeTagSlugKey(slug)
		item, err := tx.Get(slugKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var tagID core.ID
		err = item.Value(func(val []byte) error {
			tagID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		// Look up full tag
		tagKey := makeTagKey(tagID)
		result, err = readTag(tx, tagKey)
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

// GetOrCreateTag finds or creates a tag from a display name.
// The name is slugified to determine identity, so "Comfort Food" and
// "comfort food" resolve to the same tag.
func (r *TagRepository) GetOrCreateTag(ctx context.Context, name string) (*core.Tag, error) {
	slug := core.SlugifyTag(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: tag name %q has no usable characters", storage.ErrInvalidQuery, name)
	}

	// Try to find an existing tag
	tag, err := r.FindTagBySlug(ctx, slug)
	if err == nil {
		return tag, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	// Create a new tag
	newTag := &core.Tag{
		Id:   core.IDFromContent(slug),
		Name: strings.TrimSpace(name),
		Slug: slug,
	}

	// Try to add it (may fail due to race condition)
	added, err := r.AddTags(ctx, newTag)
	if err != nil {
		// If add failed, try to find it again (someone else may have created it)
		tag, findErr := r.FindTagBySlug(ctx, slug)
		if findErr == nil {
			return tag, nil
		}
		return nil, err
	}

	return added[0], nil
}

// GetAllTags retrieves all tags from storage, ordered by slug.
func (r *TagRepository) GetAllTags(ctx context.Context) ([]*core.Tag, error) {
	var results []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(tagRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Stop if we've moved past tag keys
			if !hasPrefix(key, prefix) {
				break
			}

			var tag *core.Tag
			err := item.Value(func(val []byte) error {
				var err error
				tag, err = storage.UnmarshalTag(val)
				return err
			})
			if err != nil {
				return err
			}

			if tag != nil {
				results = append(results, tag)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Primary keys are ordered by numeric ID, not slug
	slices.SortFunc(results, func(a, b *core.Tag) int {
		return strings.Compare(a.Slug, b.Slug)
	})

	return results, nil
}

// Helper methods

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}

// readTag reads a tag from the transaction.
func readTag(tx *badger.Txn, key []byte) (*core.Tag, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var tag *core.Tag
	err = item.Value(func(val []byte) error {
		var err error
		tag, err = storage.UnmarshalTag(val)
		return err
	})
	return tag, err
}
