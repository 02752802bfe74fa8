package storage

import (
	"testing"
	"time"

	"github.com/poiesic/recipit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("comfort-food")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalID(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalRecipe(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		recipe *core.Recipe
	}{
		{
			name: "minimal recipe",
			recipe: &core.Recipe{
				Id:         core.ID(1),
				Title:      "Plain Toast",
				CreatedAt:  now,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "recipe with tags",
			recipe: &core.Recipe{
				Id:         core.ID(2),
				Title:      "Chocolate Birthday Cake",
				Tags:       []string{"dessert", "baking", "chocolate"},
				CreatedAt:  now,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "recipe with tag ids",
			recipe: &core.Recipe{
				Id:         core.ID(3),
				Title:      "Lentil Soup",
				Tags:       []string{"soup", "vegetarian"},
				TagIds:     []core.ID{core.IDFromContent("soup"), core.IDFromContent("vegetarian")},
				CreatedAt:  now,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "recipe with everything",
			recipe: &core.Recipe{
				Id:         core.ID(4),
				Title:      "Weeknight Chicken Stir Fry With Extra Vegetables",
				Tags:       []string{"dinner", "chicken", "quick", "weeknight"},
				TagIds:     []core.ID{core.ID(10), core.ID(20), core.ID(30), core.ID(40)},
				ViewCount:  123456,
				CreatedAt:  now.Add(-24 * time.Hour),
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "empty title",
			recipe: &core.Recipe{
				Id:         core.ID(5),
				Title:      "",
				CreatedAt:  now,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode title",
			recipe: &core.Recipe{
				Id:         core.ID(6),
				Title:      "Crème Brûlée 世界",
				Tags:       []string{"dessert"},
				CreatedAt:  now,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalRecipe(tt.recipe)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalRecipe(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.recipe.Id, decoded.Id)
			assert.Equal(t, tt.recipe.Title, decoded.Title)
			assert.Equal(t, tt.recipe.ViewCount, decoded.ViewCount)
			assert.True(t, tt.recipe.CreatedAt.Equal(decoded.CreatedAt))
			assert.True(t, tt.recipe.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.recipe.UpdatedAt.Equal(decoded.UpdatedAt))
			// Handle nil vs empty slice
			if len(tt.recipe.Tags) == 0 {
				assert.Empty(t, decoded.Tags)
			} else {
				assert.Equal(t, tt.recipe.Tags, decoded.Tags)
			}
			if len(tt.recipe.TagIds) == 0 {
				assert.Empty(t, decoded.TagIds)
			} else {
				assert.Equal(t, tt.recipe.TagIds, decoded.TagIds)
			}
		})
	}
}

func TestUnmarshalRecipe_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecipe(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalTag(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		tag  *core.Tag
	}{
		{
			name: "minimal tag",
			tag: &core.Tag{
				Id:         core.ID(1),
				Name:       "dessert",
				Slug:       "dessert",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "multi-word tag",
			tag: &core.Tag{
				Id:         core.IDFromContent("comfort-food"),
				Name:       "Comfort Food",
				Slug:       "comfort-food",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "tag with digits",
			tag: &core.Tag{
				Id:         core.IDFromContent("30-minute-meals"),
				Name:       "30 Minute Meals",
				Slug:       "30-minute-meals",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalTag(tt.tag)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalTag(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.tag.Id, decoded.Id)
			assert.Equal(t, tt.tag.Name, decoded.Name)
			assert.Equal(t, tt.tag.Slug, decoded.Slug)
			assert.True(t, tt.tag.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.tag.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestUnmarshalTag_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalTag(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	checkpoint := &core.Checkpoint{
		ProcessorType:   "tags",
		LastProcessedId: core.ID(512),
		UpdatedAt:       now,
	}

	data := MarshalCheckpoint(checkpoint)
	require.NotNil(t, data)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, checkpoint.ProcessorType, decoded.ProcessorType)
	assert.Equal(t, checkpoint.LastProcessedId, decoded.LastProcessedId)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestRoundTripConsistency(t *testing.T) {
	t.Run("multiple marshal-unmarshal cycles", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		original := &core.Recipe{
			Id:         core.ID(999),
			Title:      "Sourdough Pancakes",
			Tags:       []string{"breakfast", "sourdough"},
			TagIds:     []core.ID{core.IDFromContent("breakfast"), core.IDFromContent("sourdough")},
			ViewCount:  7,
			CreatedAt:  now,
			InsertedAt: now,
			UpdatedAt:  now,
		}

		// Perform 3 marshal-unmarshal cycles
		current := original
		for i := 0; i < 3; i++ {
			data := MarshalRecipe(current)
			decoded, err := UnmarshalRecipe(data)
			require.NoError(t, err)
			current = decoded
		}

		// Verify final result matches original
		assert.Equal(t, original.Id, current.Id)
		assert.Equal(t, original.Title, current.Title)
		assert.Equal(t, original.Tags, current.Tags)
		assert.Equal(t, original.TagIds, current.TagIds)
		assert.Equal(t, original.ViewCount, current.ViewCount)
	})
}
