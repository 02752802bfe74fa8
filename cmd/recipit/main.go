// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/poiesic/recipit"
	"github.com/poiesic/recipit/core"
	"github.com/poiesic/recipit/ingestion"
	"github.com/poiesic/recipit/rebuild"
	"github.com/poiesic/recipit/search"
	"github.com/poiesic/recipit/source"
	"github.com/poiesic/recipit/source/file"
	"github.com/poiesic/recipit/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "recipit",
		Usage: "Typo-tolerant search over a local recipe collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import recipes from a JSON or YAML file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Recipe file to import",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Source format (json or yaml, inferred from the extension when omitted)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of recipes to store in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for tag linking (0 uses the pipeline default)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search recipes by title and tags",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort key (viewCount or createdAt)",
						Value: "viewCount",
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Sort order (asc or desc)",
						Value: "desc",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 shows everything)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List recipes, newest first or within a date window",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of recipes to list",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "since",
						Usage: "Only recipes created on or after this date",
					},
					&cli.StringFlag{
						Name:  "until",
						Usage: "Only recipes created before this date",
					},
				},
			},
			{
				Name:      "tags",
				Usage:     "List tags with usage counts, or the recipes for one tag",
				ArgsUsage: "[TAG]",
				Action:    tagsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "since",
						Usage: "Only tags used by recipes created on or after this date",
					},
					&cli.StringFlag{
						Name:  "until",
						Usage: "Only tags used by recipes created before this date",
					},
				},
			},
			{
				Name:   "rebuild-tags",
				Usage:  "Re-derive the tag links for every recipe in the database",
				Action: rebuildTagsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of recipes to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	// Validate flags
	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	// Load the source file before touching the database
	var opts []source.ConfigOption
	if format := c.String("format"); format != "" {
		opts = append(opts, source.WithFormat(source.Format(format)))
	}
	loader, err := file.NewLoader(source.NewConfig(c.String("file"), opts...))
	if err != nil {
		return fmt.Errorf("failed to open recipe source: %w", err)
	}
	defer loader.Close()

	recipes, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}
	if len(recipes) == 0 {
		fmt.Fprintln(os.Stderr, "No recipes to import")
		return nil
	}

	// Open database
	db, err := recipit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Create ingestion pipeline
	var pipelineOpts []ingestion.Option
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(poolSize))
	}
	pipeline, err := db.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}

	// Run import
	fmt.Fprintf(os.Stderr, "Importing %d recipes from %s\n", len(recipes), c.String("file"))

	bar := progressbar.Default(int64(len(recipes)))
	imported := 0
	for i := 0; i < len(recipes); i += batchSize {
		end := i + batchSize
		if end > len(recipes) {
			end = len(recipes)
		}

		added, err := pipeline.Ingest(ctx, recipes[i:end]...)
		if err != nil {
			pipeline.Release()
			return fmt.Errorf("failed to import batch: %w", err)
		}

		imported += len(added)
		bar.Add(len(added))
	}

	// Wait for the background tag linking to drain before exiting
	if err := pipeline.ReleaseTimeout(30 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: tag linking did not finish; run rebuild-tags to repair")
	}

	fmt.Fprintf(os.Stderr, "Imported %d recipes into %s\n", imported, c.String("db"))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	// Validate flags, suggesting the closest valid value on a typo
	sortBy, err := search.ParseSortKey(c.String("sort"))
	if err != nil {
		return withSuggestion(err, c.String("sort"), []string{
			string(search.SortByViewCount),
			string(search.SortByCreatedAt),
		})
	}
	sortOrder, err := search.ParseSortOrder(c.String("order"))
	if err != nil {
		return withSuggestion(err, c.String("order"), []string{
			string(search.SortAscending),
			string(search.SortDescending),
		})
	}

	// Open database
	db, err := recipit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	// Run search
	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.Search(ctx, query, sortBy, sortOrder)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if limit := c.Int("limit"); limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if len(results) == 0 {
		fmt.Println("No recipes found")
		return nil
	}

	fmt.Printf("Found %d recipes\n", len(results))
	for i, recipe := range results {
		printRecipe(i+1, recipe)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	// Validate flags
	limit := c.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	// Open database
	db, err := recipit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// A date window switches from the recency index to the date index
	var recipes []*core.Recipe
	if c.String("since") != "" || c.String("until") != "" {
		start, end, err := parseDateWindow(c.String("since"), c.String("until"))
		if err != nil {
			return err
		}
		recipes, err = db.RecipeRepository().GetRecipesByDateRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to list recipes: %w", err)
		}
		if len(recipes) > limit {
			recipes = recipes[:limit]
		}
	} else {
		recipes, err = db.RecipeRepository().GetRecentRecipes(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to list recipes: %w", err)
		}
	}

	if len(recipes) == 0 {
		fmt.Println("No recipes found")
		return nil
	}

	for i, recipe := range recipes {
		printRecipe(i+1, recipe)
	}
	return nil
}

func tagsCommand(c *cli.Context) error {
	ctx := context.Background()

	// Open database
	db, err := recipit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// With a tag argument, show that tag's recipes instead of the overview
	if tagName := strings.Join(c.Args().Slice(), " "); tagName != "" {
		return showTag(ctx, db, tagName)
	}

	var tags []*core.Tag
	if c.String("since") != "" || c.String("until") != "" {
		start, end, err := parseDateWindow(c.String("since"), c.String("until"))
		if err != nil {
			return err
		}
		tags, err = db.RecipeRepository().GetTagsByDateRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
	} else {
		tags, err = db.TagRepository().GetAllTags(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
	}

	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}

	// GetTagsByDateRange returns tags in no particular order
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })

	for _, tag := range tags {
		ids, err := db.RecipeRepository().GetRecipeIdsByTag(ctx, tag.Id)
		if err != nil {
			return fmt.Errorf("failed to count recipes for tag %q: %w", tag.Slug, err)
		}
		fmt.Printf("%-24s %d\n", tag.Slug, len(ids))
	}
	return nil
}

func showTag(ctx context.Context, db *recipit.Database, tagName string) error {
	tag, err := db.TagRepository().FindTagBySlug(ctx, core.SlugifyTag(tagName))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return unknownTagError(ctx, db, tagName)
		}
		return fmt.Errorf("failed to look up tag %q: %w", tagName, err)
	}

	ids, err := db.RecipeRepository().GetRecipeIdsByTag(ctx, tag.Id)
	if err != nil {
		return fmt.Errorf("failed to load recipes for tag %q: %w", tag.Slug, err)
	}
	recipes, err := db.RecipeRepository().GetRecipes(ctx, ids...)
	if err != nil {
		return fmt.Errorf("failed to load recipes for tag %q: %w", tag.Slug, err)
	}

	fmt.Printf("%s (%d recipes)\n", tag.Name, len(recipes))
	for i, recipe := range recipes {
		printRecipe(i+1, recipe)
	}
	return nil
}

// unknownTagError builds the not-found error for a tag lookup, suggesting
// the closest existing slug when one is plausibly what the user meant.
func unknownTagError(ctx context.Context, db *recipit.Database, tagName string) error {
	tags, err := db.TagRepository().GetAllTags(ctx)
	if err != nil {
		return fmt.Errorf("unknown tag %q", tagName)
	}

	slugs := make([]string, len(tags))
	for i, tag := range tags {
		slugs[i] = tag.Slug
	}
	if closest, ok := closestMatch(tagName, slugs); ok {
		return fmt.Errorf("unknown tag %q (did you mean %q?)", tagName, closest)
	}
	return fmt.Errorf("unknown tag %q", tagName)
}

func rebuildTagsCommand(c *cli.Context) error {
	ctx := context.Background()

	// Create rebuild config
	rebuildConfig := &rebuild.Config{
		BatchSize:  c.Int("batch-size"),
		MaxRetries: c.Int("max-retries"),
		RetryDelay: c.Duration("retry-delay"),
	}

	// Validate config
	if rebuildConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if rebuildConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	// Open database
	db, err := recipit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rebuilder := db.NewRebuilder(rebuildConfig, os.Stderr)

	// Run rebuild
	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintln(os.Stderr)

	if err := rebuilder.Run(ctx); err != nil {
		return fmt.Errorf("tag rebuild failed: %w", err)
	}

	return nil
}

func printRecipe(rank int, recipe *core.Recipe) {
	fmt.Printf("%2d. %s  [%d views, %s]\n",
		rank, recipe.Title, recipe.ViewCount, recipe.CreatedAt.Format(time.DateOnly))
	if len(recipe.Tags) > 0 {
		fmt.Printf("    tags: %s\n", strings.Join(recipe.Tags, ", "))
	}
}

// withSuggestion decorates a bad flag value error with the closest valid value.
func withSuggestion(err error, given string, valid []string) error {
	if closest, ok := closestMatch(given, valid); ok {
		return fmt.Errorf("%w (did you mean %q?)", err, closest)
	}
	return err
}

// closestMatch returns the candidate most similar to pattern, first by
// case-folded subsequence match, then by bounded Levenshtein distance.
func closestMatch(pattern string, candidates []string) (string, bool) {
	matches := fuzzy.RankFindFold(pattern, candidates)
	if len(matches) > 0 {
		sort.Sort(matches)
		return matches[0].Target, true
	}

	bestMatch := ""
	minDist := -1
	for _, candidate := range candidates {
		dist := fuzzy.LevenshteinDistance(strings.ToLower(pattern), strings.ToLower(candidate))
		limit := len(candidate) / 2
		if limit < 2 {
			limit = 2
		}
		if dist <= limit && (minDist == -1 || dist < minDist) {
			minDist = dist
			bestMatch = candidate
		}
	}
	return bestMatch, minDist != -1
}

// parseDateWindow turns free-form --since/--until values into a time range.
// An empty since means the beginning of time; an empty until means now.
func parseDateWindow(since, until string) (time.Time, time.Time, error) {
	start := time.Unix(0, 0).UTC()
	end := time.Now().UTC()

	if since != "" {
		parsed, err := dateparse.ParseAny(since)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since value %q: %w", since, err)
		}
		start = parsed.UTC()
	}
	if until != "" {
		parsed, err := dateparse.ParseAny(until)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --until value %q: %w", until, err)
		}
		end = parsed.UTC()
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--until (%s) is before --since (%s)",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return start, end, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
