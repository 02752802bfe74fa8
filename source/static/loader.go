package static

import (
	"context"
	"time"

	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/source"
)

// Loader is a source.Loader backed by an in-memory recipe list.
// It allows custom behavior injection via function fields.
type Loader struct {
	// LoadFunc is called by Load if set.
	// If nil, the fixed recipe list is returned.
	LoadFunc func(ctx context.Context) ([]*core.Recipe, error)

	recipes   []*core.Recipe
	callCount int
}

var _ source.Loader = (*Loader)(nil)

// NewLoader creates a static loader over the given recipes.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewLoader(recipes ...*core.Recipe) *Loader {
	return &Loader{recipes: recipes}
}

// Load returns the configured recipes.
func (l *Loader) Load(ctx context.Context) ([]*core.Recipe, error) {
	l.callCount++

	if l.LoadFunc != nil {
		return l.LoadFunc(ctx)
	}

	out := make([]*core.Recipe, len(l.recipes))
	copy(out, l.recipes)
	return out, nil
}

// Close is a no-op.
func (l *Loader) Close() error {
	return nil
}

// CallCount returns the number of times Load was called.
func (l *Loader) CallCount() int {
	return l.callCount
}

// Sample returns a small fixed recipe collection for demos and seeding.
// The data is deterministic so repeated seeds produce the same store.
func Sample() []*core.Recipe {
	day := func(months, days int) time.Time {
		return time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC).AddDate(0, months, days)
	}

	return []*core.Recipe{
		{Title: "Chocolate Birthday Cake", Tags: []string{"Dessert", "Baking"}, ViewCount: 812, CreatedAt: day(0, 3)},
		{Title: "Chicken Noodle Soup", Tags: []string{"Soup", "Comfort Food"}, ViewCount: 649, CreatedAt: day(0, 17)},
		{Title: "Apple Pie", Tags: []string{"Dessert", "Baking", "Fruit"}, ViewCount: 1204, CreatedAt: day(1, 2)},
		{Title: "Beef Tacos", Tags: []string{"Dinner", "Mexican", "30 Minute Meals"}, ViewCount: 977, CreatedAt: day(1, 20)},
		{Title: "Margherita Pizza", Tags: []string{"Dinner", "Italian"}, ViewCount: 1533, CreatedAt: day(2, 8)},
		{Title: "Caesar Salad", Tags: []string{"Salad", "Lunch"}, ViewCount: 301, CreatedAt: day(2, 25)},
		{Title: "Banana Bread", Tags: []string{"Baking", "Breakfast"}, ViewCount: 722, CreatedAt: day(3, 11)},
		{Title: "Mushroom Risotto", Tags: []string{"Dinner", "Italian", "Vegetarian"}, ViewCount: 458, CreatedAt: day(3, 29)},
		{Title: "Buttermilk Pancakes", Tags: []string{"Breakfast", "30 Minute Meals"}, ViewCount: 1102, CreatedAt: day(4, 14)},
		{Title: "Gluten-Free Brownies", Tags: []string{"Dessert", "Gluten-Free", "Baking"}, ViewCount: 389, CreatedAt: day(5, 1)},
	}
}
