package core

import (
	"testing"
	"time"
)

func TestRecipeMUS_RoundTrip(t *testing.T) {
	created := time.Date(2024, time.March, 14, 9, 26, 53, 589000, time.UTC)
	inserted := time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC)

	recipe := Recipe{
		Id:         42,
		Title:      "Chocolate Birthday Cake",
		Tags:       []string{"dessert", "baking"},
		TagIds:     []ID{IDFromContent("dessert"), IDFromContent("baking")},
		ViewCount:  17,
		CreatedAt:  created,
		InsertedAt: inserted,
		UpdatedAt:  inserted,
	}

	buf := make([]byte, RecipeMUS.Size(recipe))
	n := RecipeMUS.Marshal(recipe, buf)
	if n != len(buf) {
		t.Fatalf("Marshal() wrote %d bytes, Size() said %d", n, len(buf))
	}

	got, n, err := RecipeMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal() consumed %d bytes, want %d", n, len(buf))
	}

	if got.Id != recipe.Id {
		t.Errorf("Id = %d, want %d", got.Id, recipe.Id)
	}
	if got.Title != recipe.Title {
		t.Errorf("Title = %q, want %q", got.Title, recipe.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "dessert" || got.Tags[1] != "baking" {
		t.Errorf("Tags = %v, want %v", got.Tags, recipe.Tags)
	}
	if len(got.TagIds) != 2 || got.TagIds[0] != recipe.TagIds[0] || got.TagIds[1] != recipe.TagIds[1] {
		t.Errorf("TagIds = %v, want %v", got.TagIds, recipe.TagIds)
	}
	if got.ViewCount != recipe.ViewCount {
		t.Errorf("ViewCount = %d, want %d", got.ViewCount, recipe.ViewCount)
	}
	if !got.CreatedAt.Equal(recipe.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, recipe.CreatedAt)
	}
	if !got.InsertedAt.Equal(recipe.InsertedAt) {
		t.Errorf("InsertedAt = %v, want %v", got.InsertedAt, recipe.InsertedAt)
	}
	if !got.UpdatedAt.Equal(recipe.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, recipe.UpdatedAt)
	}
}

func TestRecipeMUS_RoundTripEmptySlices(t *testing.T) {
	recipe := Recipe{
		Id:        1,
		Title:     "Plain Toast",
		CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, RecipeMUS.Size(recipe))
	RecipeMUS.Marshal(recipe, buf)

	got, _, err := RecipeMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", got.Tags)
	}
	if len(got.TagIds) != 0 {
		t.Errorf("TagIds = %v, want empty", got.TagIds)
	}
}

func TestRecipeMUS_UnmarshalTruncated(t *testing.T) {
	recipe := Recipe{
		Id:        1,
		Title:     "Lentil Soup",
		CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, RecipeMUS.Size(recipe))
	RecipeMUS.Marshal(recipe, buf)

	if _, _, err := RecipeMUS.Unmarshal(buf[:3]); err == nil {
		t.Error("Unmarshal() on truncated data returned nil error")
	}
}

func TestTagMUS_RoundTrip(t *testing.T) {
	inserted := time.Date(2025, time.February, 10, 8, 30, 0, 0, time.UTC)

	tag := Tag{
		Id:         IDFromContent("comfort-food"),
		Name:       "Comfort Food",
		Slug:       "comfort-food",
		InsertedAt: inserted,
		UpdatedAt:  inserted,
	}

	buf := make([]byte, TagMUS.Size(tag))
	n := TagMUS.Marshal(tag, buf)
	if n != len(buf) {
		t.Fatalf("Marshal() wrote %d bytes, Size() said %d", n, len(buf))
	}

	got, _, err := TagMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.Id != tag.Id {
		t.Errorf("Id = %d, want %d", got.Id, tag.Id)
	}
	if got.Name != tag.Name {
		t.Errorf("Name = %q, want %q", got.Name, tag.Name)
	}
	if got.Slug != tag.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, tag.Slug)
	}
	if !got.InsertedAt.Equal(tag.InsertedAt) {
		t.Errorf("InsertedAt = %v, want %v", got.InsertedAt, tag.InsertedAt)
	}
	if !got.UpdatedAt.Equal(tag.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, tag.UpdatedAt)
	}
}

func TestCheckpointMUS_RoundTrip(t *testing.T) {
	checkpoint := Checkpoint{
		ProcessorType:   "tags",
		LastProcessedId: 99,
		UpdatedAt:       time.Date(2025, time.May, 20, 12, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, CheckpointMUS.Size(checkpoint))
	n := CheckpointMUS.Marshal(checkpoint, buf)
	if n != len(buf) {
		t.Fatalf("Marshal() wrote %d bytes, Size() said %d", n, len(buf))
	}

	got, _, err := CheckpointMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.ProcessorType != checkpoint.ProcessorType {
		t.Errorf("ProcessorType = %q, want %q", got.ProcessorType, checkpoint.ProcessorType)
	}
	if got.LastProcessedId != checkpoint.LastProcessedId {
		t.Errorf("LastProcessedId = %d, want %d", got.LastProcessedId, checkpoint.LastProcessedId)
	}
	if !got.UpdatedAt.Equal(checkpoint.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, checkpoint.UpdatedAt)
	}
}

func TestIDMUS_RoundTrip(t *testing.T) {
	for _, id := range []ID{0, 1, 127, 128, 1 << 40, 18446744073709551615} {
		buf := make([]byte, IDMUS.Size(id))
		IDMUS.Marshal(id, buf)

		got, _, err := IDMUS.Unmarshal(buf)
		if err != nil {
			t.Fatalf("Unmarshal(%d) error = %v", id, err)
		}
		if got != id {
			t.Errorf("round trip = %d, want %d", got, id)
		}
	}
}
