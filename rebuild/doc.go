// Package rebuild re-derives the tag links for every recipe in a database.
//
// This package supports batch processing of recipes, progress reporting,
// retry logic with exponential backoff, and checkpointing so operators can
// tell when the last full rebuild ran.
package rebuild
