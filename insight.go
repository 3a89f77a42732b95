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


package insight

import (
	"context"
	"log/slog"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/ai/openai"
	"github.com/poiesic/insight/analysis"
	"github.com/poiesic/insight/core"
	"github.com/poiesic/insight/ingestion"
	"github.com/poiesic/insight/vectorindex"
)

// Engine ties the feedback analysis stages together: CSV loading, batch
// embedding, vector indexing, and retrieval-augmented analysis. It owns the
// AI provider shared by all stages.
type Engine struct {
	provider ai.AIProvider
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI service configuration used to construct the
// OpenAI-compatible provider.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from configuration. The engine takes ownership and closes it on Close.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

func NewEngine(opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}

// LoadRecords reads and validates a feedback CSV file. Each returned record
// carries its generated profile summary.
func (e *Engine) LoadRecords(path string) ([]*core.FeedbackRecord, error) {
	return ingestion.LoadRecords(path)
}

// BuildIndex embeds the records in rate-limited batches and constructs a
// queryable vector index over the surviving pairs. Records from failed
// batches are dropped and logged by the producer.
func (e *Engine) BuildIndex(ctx context.Context, records []*core.FeedbackRecord, opts ...ingestion.ProducerOption) (*vectorindex.Index, error) {
	producer, err := ingestion.NewProducer(e.provider.Embedder(), opts...)
	if err != nil {
		return nil, err
	}

	pairs, err := producer.EmbedAll(ctx, records)
	if err != nil {
		return nil, err
	}

	return vectorindex.Build(e.provider.Embedder(), pairs)
}

// NewPipeline creates an analysis pipeline over the given index using the
// engine's analyst.
func (e *Engine) NewPipeline(index *vectorindex.Index, opts ...analysis.PipelineOption) (*analysis.Pipeline, error) {
	return analysis.NewPipeline(index, e.provider.Analyst(), opts...)
}

// NewRunner creates a query runner over a pipeline built from the given
// index.
func (e *Engine) NewRunner(index *vectorindex.Index, pipelineOpts []analysis.PipelineOption, runnerOpts ...analysis.RunnerOption) (*analysis.Runner, error) {
	pipeline, err := e.NewPipeline(index, pipelineOpts...)
	if err != nil {
		return nil, err
	}
	return analysis.NewRunner(pipeline, runnerOpts...)
}
