// Copyright 2026 Rxscan Systems
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/rxscan/medsearch"
	"github.com/rxscan/medsearch/match"
	"github.com/rxscan/medsearch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "medsearch",
		Usage: "Full-text search over a Japanese medicine master",
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
				Name:      "import",
				Usage:     "Replace the medicine corpus from a master CSV",
				ArgsUsage: "<csv-file>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "backup-dir",
						Usage: "Write a backup of the previous corpus here before importing",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Parse and validate only, without committing",
					},
					&cli.IntFlag{
						Name:  "preview-limit",
						Usage: "Number of parsed records to print in a dry run",
						Value: 10,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Query the medicine corpus",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Search mode (prefix, substring, fuzzy)",
						Value:   "fuzzy",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of hits (0 for all)",
						Value:   20,
					},
				},
			},
			{
				Name:      "match",
				Usage:     "Match scanned prescription text against the corpus",
				ArgsUsage: "<text-file>",
				Action:    matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Candidates to keep per fragment",
						Value: 3,
					},
					&cli.Float64Flag{
						Name:  "floor",
						Usage: "Minimum match confidence",
						Value: match.DefaultConfidenceFloor,
					},
					&cli.BoolFlag{
						Name:  "best-per-ingredient",
						Usage: "Collapse candidates to one per ingredient",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show corpus statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
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

	csvPath := c.Args().First()
	if csvPath == "" {
		return fmt.Errorf("csv file argument is required")
	}

	opts := []medsearch.DatabaseOption{}
	if dir := c.String("backup-dir"); dir != "" {
		opts = append(opts, medsearch.WithBackupDir(dir))
	}

	db, err := medsearch.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if c.Bool("dry-run") {
		preview, err := db.PreviewCSVFile(ctx, csvPath)
		if err != nil {
			return fmt.Errorf("preview failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Parsed %d records\n", len(preview.Records))
		for _, row := range preview.Unindexed {
			fmt.Fprintf(os.Stderr, "Row %d has no searchable field\n", row)
		}
		limit := c.Int("preview-limit")
		for i, rec := range preview.Records {
			if limit > 0 && i >= limit {
				fmt.Fprintf(os.Stderr, "... %d more\n", len(preview.Records)-limit)
				break
			}
			fmt.Printf("%s | %s | %s | %s | %.2f | %s\n",
				rec.MedicineName, rec.IngredientName, rec.Specification,
				rec.Classification, rec.Price, rec.Manufacturer)
		}
		return nil
	}

	gen, err := db.ImportCSVFile(ctx, csvPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Imported %d records (generation %d)\n", gen.Count, gen.Seq)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	mode, err := search.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	db, err := medsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	hits, err := searcher.Search(ctx, query, mode, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("%d: '%s' %s %s (%d)[%0.3f]\n",
			i, hit.Record.MedicineName, hit.Record.IngredientName,
			hit.Record.Specification, hit.Record.Id, hit.Score)
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	textPath := c.Args().First()
	if textPath == "" {
		return fmt.Errorf("text file argument is required")
	}
	data, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}

	db, err := medsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	matcher, err := db.NewMatcher(match.WithConfidenceFloor(c.Float64("floor")))
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}

	candidates, err := matcher.Match(ctx, string(data), c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}
	if c.Bool("best-per-ingredient") {
		candidates = match.BestPerIngredient(candidates)
	}

	fmt.Printf("Found %d candidates\n", len(candidates))
	for i, cand := range candidates {
		fmt.Printf("%d: '%s' %s (%d)[%0.3f] from %q\n",
			i, cand.Record.MedicineName, cand.Record.IngredientName,
			cand.Record.Id, cand.Confidence, cand.Fragment)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := medsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	gen, err := db.MedicineRepository().CurrentGeneration(ctx)
	if err != nil {
		return fmt.Errorf("failed to read generation: %w", err)
	}
	stats, err := db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	fmt.Printf("Generation:    %d\n", gen.Seq)
	fmt.Printf("Fingerprint:   %016x\n", gen.Fingerprint)
	fmt.Printf("Medicines:     %d\n", stats.TotalMedicines)
	fmt.Printf("Manufacturers: %d\n", stats.Manufacturers)
	fmt.Printf("Ingredients:   %d\n", stats.Ingredients)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
