package source

import "errors"

var (
	// ErrUnsupportedFormat is returned when a source file format is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrMalformedEntry is returned when a source entry cannot be converted to a recipe.
	ErrMalformedEntry = errors.New("malformed recipe entry")
)
