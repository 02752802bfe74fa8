package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/recipit/match"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Recipe is a stored recipe summary: the fields the search engine matches
// against (title and tags) plus the keys result lists are sorted by.
type Recipe struct {
	Id         ID
	Title      string
	Tags       []string  // Tags as authored, display form
	TagIds     []ID      // Links to normalized Tag entities (populated by processors)
	ViewCount  int64
	CreatedAt  time.Time // When the recipe was created (sort key, date index key)
	InsertedAt time.Time // When the record was inserted into the database
	UpdatedAt  time.Time // When the record was last updated
}

// Tag is a normalized tag shared by every recipe that carries it.
// Identity is the slug; Name keeps the first-seen display casing.
type Tag struct {
	Id         ID
	Name       string
	Slug       string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Key returns the slug, the deterministic identity of a tag.
// This is used for generating content-based IDs.
func (t *Tag) Key() string {
	return t.Slug
}

// SlugifyTag normalizes a tag name to its canonical slug: lowercase word
// tokens joined by hyphens ("Gluten Free!" becomes "gluten-free").
// Names with no word characters yield an empty slug.
func SlugifyTag(name string) string {
	return strings.Join(match.Tokenize(name), "-")
}

// Checkpoint records how far an asynchronous processor has progressed,
// so interrupted work can be resumed or audited.
type Checkpoint struct {
	ProcessorType   string
	LastProcessedId ID
	UpdatedAt       time.Time
}
