package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/match"
)

// SortKey selects the recipe field results are ordered by.
type SortKey string

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortByViewCount SortKey = "viewCount"
	SortByCreatedAt SortKey = "createdAt"

	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortKey converts a raw string into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortByViewCount, SortByCreatedAt:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// ParseSortOrder converts a raw string into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAscending, SortDescending:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}

// MatchesRecipe reports whether the query fuzzily matches the recipe's
// title or any one of its tags.
func MatchesRecipe(query string, recipe *core.Recipe) bool {
	if recipe == nil {
		return false
	}
	if match.Fuzzy(query, recipe.Title) {
		return true
	}
	for _, tag := range recipe.Tags {
		if match.Fuzzy(query, tag) {
			return true
		}
	}
	return false
}

// SearchAndSort filters recipes against query and orders the result.
//
// The input slice is never mutated; sorting happens on a copy. Recipes are
// ordered by sortBy in sortOrder (stably, so equal keys keep their input
// order), then filtered: a recipe survives when the query fuzzily matches
// its title or any of its tags. A query that is empty or whitespace-only
// applies no filter and returns every recipe in sorted order.
//
// A nil recipe list is an error. An empty one is fine and yields an empty
// result. Unrecognized sortBy or sortOrder values are rejected before any
// work happens.
func SearchAndSort(recipes []*core.Recipe, query string, sortBy SortKey, sortOrder SortOrder) ([]*core.Recipe, error) {
	if recipes == nil {
		return nil, ErrNilRecipes
	}
	if _, err := ParseSortKey(string(sortBy)); err != nil {
		return nil, err
	}
	if _, err := ParseSortOrder(string(sortOrder)); err != nil {
		return nil, err
	}

	compare := ascendingCompare(sortBy)
	if sortOrder == SortDescending {
		ascending := compare
		compare = func(a, b *core.Recipe) int { return -ascending(a, b) }
	}

	sorted := slices.Clone(recipes)
	slices.SortStableFunc(sorted, compare)

	if strings.TrimSpace(query) == "" {
		return sorted, nil
	}

	results := make([]*core.Recipe, 0, len(sorted))
	for _, recipe := range sorted {
		if MatchesRecipe(query, recipe) {
			results = append(results, recipe)
		}
	}
	return results, nil
}

func ascendingCompare(sortBy SortKey) func(a, b *core.Recipe) int {
	if sortBy == SortByCreatedAt {
		return func(a, b *core.Recipe) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	return func(a, b *core.Recipe) int { return cmp.Compare(a.ViewCount, b.ViewCount) }
}
