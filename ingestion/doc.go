// Package ingestion provides pipeline orchestration for storing recipes.
//
// The Pipeline type manages the ingestion workflow for recipes, including:
//   - Validating and adding records to storage
//   - Resolving authored tags to normalized tag entities asynchronously
//   - Checkpointing tag linking progress
//
// Tag linking is performed concurrently using a worker pool. Errors during
// async processing are logged but do not fail the ingestion operation.
package ingestion
