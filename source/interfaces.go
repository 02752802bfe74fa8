package source

import (
	"context"

	"github.com/poiesic/recipit/core"
)

// Loader reads recipes from an external source.
type Loader interface {
	// Load reads and returns every recipe the source holds.
	// The returned recipes carry no IDs; assigning identity is the
	// ingestion pipeline's job.
	// Returns an error if the source cannot be read or parsed.
	Load(ctx context.Context) ([]*core.Recipe, error)

	// Close releases resources held by the loader.
	// After Close is called, the loader should not be used.
	Close() error
}
