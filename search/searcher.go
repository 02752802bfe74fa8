package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/storage"
)

// Searcher runs fuzzy queries over the full recipe collection.
type Searcher struct {
	recipeRepository storage.RecipeRepository
	logger           *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(recipeRepository storage.RecipeRepository, opts ...Option) (*Searcher, error) {
	if recipeRepository == nil {
		return nil, ErrRecipeRepositoryRequired
	}

	s := &Searcher{
		recipeRepository: recipeRepository,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns the recipes matching query, ordered by sortBy in sortOrder.
// An empty or whitespace-only query returns the whole collection sorted.
func (s *Searcher) Search(ctx context.Context, query string, sortBy SortKey, sortOrder SortOrder) ([]*core.Recipe, error) {
	return s.SearchWithMonitor(ctx, query, sortBy, sortOrder, nil)
}

// SearchWithMonitor searches for matching recipes with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, sortBy SortKey, sortOrder SortOrder, monitor SearchMonitor) ([]*core.Recipe, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		s.logger.Error("error loading recipes for search", "query", query, "err", err)
		return nil, err
	}
	// An empty store comes back as a nil slice.
	if recipes == nil {
		recipes = []*core.Recipe{}
	}
	monitor.AfterLoad(recipes)

	results, err := SearchAndSort(recipes, query, sortBy, sortOrder)
	if err != nil {
		s.logger.Error("error running search pipeline", "query", query, "err", err)
		return nil, err
	}

	for _, recipe := range results {
		monitor.Matched(recipe)
	}
	monitor.Finish(results)

	return results, nil
}
