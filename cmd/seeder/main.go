package main

import (
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/recipit"
	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/ingestion"
	"github.com/poiesic/recipit/source"
	"github.com/poiesic/recipit/source/file"
	"github.com/poiesic/recipit/source/static"
)

var (
	dbPath       = flag.String("db", "./recipe_db", "path to the recipe database")
	seedFileName = flag.String("src", "", "file of seed data")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// recipesFromLoader returns an iterator over the recipes in a source.
func recipesFromLoader(ctx context.Context, loader source.Loader) (iter.Seq[*core.Recipe], error) {
	recipes, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	return func(yield func(*core.Recipe) bool) {
		for _, recipe := range recipes {
			if !yield(recipe) {
				return
			}
		}
	}, nil
}

// ingestBatched reads from a recipe iterator and ingests in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, recipes iter.Seq[*core.Recipe], batchSize int) error {
	batch := make([]*core.Recipe, 0, batchSize)

	for recipe := range recipes {
		batch = append(batch, recipe)
		if len(batch) == batchSize {
			if _, err := pipeline.Ingest(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining recipes
	if len(batch) > 0 {
		if _, err := pipeline.Ingest(ctx, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	db, err := recipit.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Determine source of seed data
	var loader source.Loader
	if seedFileName != nil && *seedFileName != "" {
		loader, err = file.NewLoader(source.NewConfig(*seedFileName))
		if err != nil {
			panic(err)
		}
	} else {
		loader = static.NewLoader(static.Sample()...)
	}
	defer loader.Close()

	recipes, err := recipesFromLoader(ctx, loader)
	if err != nil {
		panic(err)
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, ingester, recipes, 5); err != nil {
		panic(err)
	}

	// Let the background tag linking drain before exiting
	if err := ingester.ReleaseTimeout(30 * time.Second); err != nil {
		panic(err)
	}
}
