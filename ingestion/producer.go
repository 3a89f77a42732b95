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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
	"golang.org/x/time/rate"
)

const (
	// DefaultBatchSize is the number of records submitted per embedding call.
	DefaultBatchSize = 1000

	// DefaultBatchDelay is the minimum interval between embedding calls,
	// a self-imposed rate limit for the embedding service.
	DefaultBatchDelay = 200 * time.Millisecond
)

// Producer embeds record collections in fixed-size chunks.
//
// Chunks are submitted strictly sequentially, paced by a rate limiter so the
// embedding service is never called more often than once per batch delay.
// A failed chunk is logged (including the CustomerIDs it drops) and skipped;
// ingestion is best-effort and one bad chunk never blocks the rest.
type Producer struct {
	embedder  ai.Embedder
	batchSize int
	limiter   *rate.Limiter
	progress  *ProgressTracker
	logger    *slog.Logger
}

// ProducerOption configures a Producer.
type ProducerOption func(*Producer) error

// WithBatchSize sets the number of records per embedding call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) ProducerOption {
	return func(p *Producer) error {
		if size < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
		}
		p.batchSize = size
		return nil
	}
}

// WithBatchDelay sets the minimum interval between embedding calls.
// A zero or negative delay disables pacing (useful in tests).
// Default is DefaultBatchDelay.
func WithBatchDelay(delay time.Duration) ProducerOption {
	return func(p *Producer) error {
		p.limiter = rate.NewLimiter(rate.Every(delay), 1)
		return nil
	}
}

// WithProgress attaches a progress tracker that is updated per chunk.
func WithProgress(progress *ProgressTracker) ProducerOption {
	return func(p *Producer) error {
		p.progress = progress
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ProducerOption {
	return func(p *Producer) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "embedding-producer")
		return nil
	}
}

// NewProducer creates a chunked embedding producer.
// Misconfiguration (nil embedder, non-positive batch size) fails here,
// before any embedding call is made.
func NewProducer(embedder ai.Embedder, opts ...ProducerOption) (*Producer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Producer{
		embedder:  embedder,
		batchSize: DefaultBatchSize,
		limiter:   rate.NewLimiter(rate.Every(DefaultBatchDelay), 1),
		logger:    slog.Default().With("component", "embedding-producer"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// EmbedAll embeds every record's profile summary, in chunks of the configured
// batch size, and returns the successfully embedded (record, vector) pairs in
// original record order. Records from failed chunks are absent from the
// result; their identifiers are logged.
//
// Cancellation is honored between chunks: the pairs embedded so far are
// returned together with the context error.
func (p *Producer) EmbedAll(ctx context.Context, records []*core.FeedbackRecord) ([]core.EmbeddedRecord, error) {
	chunks := chunkRecords(records, p.batchSize)
	p.logger.Info("split records into chunks",
		"records", len(records), "chunks", len(chunks), "batchSize", p.batchSize)

	if p.progress != nil {
		p.progress.Start(len(chunks))
		defer p.progress.Finish()
	}

	pairs := make([]core.EmbeddedRecord, 0, len(records))
	for i, chunk := range chunks {
		// Pace every call, including the first; the limiter's burst of one
		// lets the first chunk through immediately.
		if err := p.limiter.Wait(ctx); err != nil {
			return pairs, err
		}

		embedded, err := p.embedChunk(ctx, chunk, i+1)
		if err != nil {
			p.logger.Error("chunk embedding failed, dropping records",
				"chunk", i+1, "records", len(chunk), "dropped", recordIDs(chunk), "err", err)
			continue
		}

		pairs = append(pairs, embedded...)
		if p.progress != nil {
			p.progress.ChunkDone(len(chunk))
		}
	}

	p.logger.Info("generated embeddings", "records", len(pairs), "of", len(records))
	return pairs, nil
}

// embedChunk embeds one chunk and pairs each record with its vector.
func (p *Producer) embedChunk(ctx context.Context, chunk []*core.FeedbackRecord, num int) ([]core.EmbeddedRecord, error) {
	p.logger.Info("processing chunk", "chunk", num, "records", len(chunk))

	texts := make([]string, len(chunk))
	for i, record := range chunk {
		texts[i] = record.ProfileSummary
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(chunk) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunk), len(embeddings))
	}

	pairs := make([]core.EmbeddedRecord, len(chunk))
	for i, record := range chunk {
		pairs[i] = core.EmbeddedRecord{Record: record, Vector: embeddings[i]}
	}

	p.logger.Info("completed chunk", "chunk", num)
	return pairs, nil
}

// chunkRecords partitions records into contiguous chunks of at most size,
// preserving order. An empty input yields no chunks.
func chunkRecords(records []*core.FeedbackRecord, size int) [][]*core.FeedbackRecord {
	if len(records) == 0 {
		return nil
	}

	chunks := make([][]*core.FeedbackRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// recordIDs lists the CustomerIDs in a chunk for dropped-record logging.
func recordIDs(chunk []*core.FeedbackRecord) []string {
	ids := make([]string, len(chunk))
	for i, record := range chunk {
		ids[i] = record.CustomerID
	}
	return ids
}
