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


package vectorindex

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
)

// Index is an immutable in-memory nearest-neighbor store over embedded
// feedback records. Build once, then query concurrently without locking.
type Index struct {
	entries  []core.EmbeddedRecord
	dim      int
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Index during Build.
type Option func(*Index)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger.With("component", "vector-index")
	}
}

// Build constructs an index from embedded records in one pass. The embedder
// is used to embed query text at lookup time and must be the same service
// that produced the entry vectors.
//
// Entries with a nil record, an empty vector, or a vector whose dimension
// disagrees with the first entry are construction errors. Duplicate customer
// identifiers are permitted and kept. Empty input is permitted and yields an
// index that answers every query with an empty result set.
func Build(embedder ai.Embedder, entries []core.EmbeddedRecord, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	idx := &Index{
		embedder: embedder,
		logger:   slog.Default().With("component", "vector-index"),
	}
	for _, opt := range opts {
		opt(idx)
	}

	for i, entry := range entries {
		if entry.Record == nil {
			return nil, fmt.Errorf("%w: entry %d has no record", ErrInconsistentEntries, i)
		}
		if len(entry.Vector) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) has no vector", ErrInconsistentEntries, i, entry.Record.CustomerID)
		}
		if idx.dim == 0 {
			idx.dim = len(entry.Vector)
		} else if len(entry.Vector) != idx.dim {
			return nil, fmt.Errorf("%w: entry %d (%s) has dimension %d, want %d",
				ErrInconsistentEntries, i, entry.Record.CustomerID, len(entry.Vector), idx.dim)
		}
	}

	idx.entries = entries
	idx.logger.Debug("built vector index", "entries", len(entries), "dimension", idx.dim)
	return idx, nil
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Query embeds the query text and returns up to k entries ranked by
// descending cosine similarity. The text is embedded once per call through
// the index's embedder; no query cache is kept.
//
// An empty index returns an empty result set without calling the embedding
// service. An embedding failure is returned to the caller.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]core.RetrievalResult, error) {
	if len(idx.entries) == 0 {
		return []core.RetrievalResult{}, nil
	}

	vector, err := idx.embedder.EmbedText(ctx, text)
	if err != nil {
		idx.logger.Error("error embedding query text", "err", err)
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return idx.QueryVector(vector, k), nil
}

// QueryVector returns up to k entries ranked by descending cosine similarity
// to the query vector. Ties keep insertion order (first inserted wins). If
// the index holds fewer than k entries, all of them are returned.
func (idx *Index) QueryVector(query []float32, k int) []core.RetrievalResult {
	if k <= 0 || len(idx.entries) == 0 {
		return []core.RetrievalResult{}
	}

	results := make([]core.RetrievalResult, 0, len(idx.entries))
	for _, entry := range idx.entries {
		results = append(results, core.RetrievalResult{
			Score:  cosineSimilarity(query, entry.Vector),
			Vector: entry.Vector,
			Record: entry.Record,
		})
	}

	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Accumulation is done in float64 to limit rounding drift on long vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
