package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "comfort-food",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "a much longer slug than any real tag would carry but it should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("dessert")
	id2 := IDFromContent("desserts")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestTag_Key(t *testing.T) {
	tag := Tag{
		Id:   1,
		Name: "Comfort Food",
		Slug: "comfort-food",
	}

	if got := tag.Key(); got != "comfort-food" {
		t.Errorf("Tag.Key() = %v, want %v", got, "comfort-food")
	}
}

func TestSlugifyTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single word",
			in:   "dessert",
			want: "dessert",
		},
		{
			name: "mixed case with spaces",
			in:   "Comfort Food",
			want: "comfort-food",
		},
		{
			name: "punctuation collapses",
			in:   "Gluten-Free!",
			want: "gluten-free",
		},
		{
			name: "surrounding whitespace",
			in:   "  weeknight dinner  ",
			want: "weeknight-dinner",
		},
		{
			name: "digits survive",
			in:   "30 Minute Meals",
			want: "30-minute-meals",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "punctuation only",
			in:   "!!!",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlugifyTag(tt.in)
			if got != tt.want {
				t.Errorf("SlugifyTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
