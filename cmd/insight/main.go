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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/poiesic/insight"
	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/analysis"
	"github.com/poiesic/insight/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env supplies OPENAI_API_KEY and friends; absence is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "insight",
		Usage: "Retrieval-augmented analysis of customer feedback data",
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
				Name:   "analyze",
				Usage:  "Embed a feedback CSV and run analyst queries against it",
				Action: analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the customer feedback CSV file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL for embeddings and chat",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (overrides --host)",
					},
					&cli.StringFlag{
						Name:  "chat-host",
						Usage: "Chat service host URL (overrides --host)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "text-embedding-ada-002",
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Chat model name for analysis",
						Value: "gpt-4",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.DurationFlag{
						Name:  "batch-delay",
						Usage: "Delay between embedding batches",
						Value: ingestion.DefaultBatchDelay,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of similar profiles retrieved per query",
						Value: analysis.DefaultTopK,
					},
					&cli.DurationFlag{
						Name:  "query-delay",
						Usage: "Delay between analyst queries",
						Value: analysis.DefaultQueryDelay,
					},
					&cli.IntFlag{
						Name:  "parallel",
						Usage: "Number of queries to run concurrently",
						Value: 1,
					},
					&cli.StringSliceFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Query to run (repeatable); defaults to the built-in example queries",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	// Assemble AI configuration; per-service hosts win over --host.
	configOpts := []ai.ConfigOption{
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	}
	if host := c.String("host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if host := c.String("embedding-host"); host != "" {
		configOpts = append(configOpts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("chat-host"); host != "" {
		configOpts = append(configOpts, ai.WithChatHost(host))
	}

	aiConfig := ai.NewConfig(configOpts...)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := insight.NewEngine(insight.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	// Load and validate the feedback data
	dataPath := c.String("data")
	records, err := engine.LoadRecords(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load feedback data: %w", err)
	}

	fmt.Printf("Data file: %s (%d records)\n", dataPath, len(records))
	fmt.Printf("Embedding host: %s\n", aiConfig.EmbeddingHost)
	fmt.Printf("Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Printf("Chat model: %s\n", aiConfig.ChatModel)
	fmt.Println()

	// Embed in batches and build the index
	tracker := ingestion.NewProgressTracker(os.Stdout)
	index, err := engine.BuildIndex(ctx, records,
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithBatchDelay(c.Duration("batch-delay")),
		ingestion.WithProgress(tracker),
	)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	if index.Len() < len(records) {
		fmt.Printf("Indexed %d of %d records (failed batches dropped)\n", index.Len(), len(records))
	}
	fmt.Println()

	// Run the queries
	queries := c.StringSlice("query")
	if len(queries) == 0 {
		queries = analysis.ExampleQueries
	}

	runner, err := engine.NewRunner(index,
		[]analysis.PipelineOption{analysis.WithTopK(c.Int("top-k"))},
		analysis.WithQueryDelay(c.Duration("query-delay")),
		analysis.WithPoolSize(c.Int("parallel")),
	)
	if err != nil {
		return fmt.Errorf("failed to create query runner: %w", err)
	}
	defer runner.Release()

	var mu sync.Mutex
	err = runner.Run(ctx, queries, func(query, analysis string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Printf("Query: %s\n%s\n%s\n\n", query, strings.Repeat("-", 60), analysis)
	})
	if err != nil {
		return fmt.Errorf("query run failed: %w", err)
	}

	return nil
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
