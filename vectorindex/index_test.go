package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/insight/ai/mock"
	"github.com/poiesic/insight/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEntries(n, dim int) []core.EmbeddedRecord {
	entries := make([]core.EmbeddedRecord, n)
	for i := range entries {
		record := &core.FeedbackRecord{
			CustomerID: fmt.Sprintf("C%04d", i+1),
			Age:        30 + i,
			Gender:     "Male",
			Country:    "Spain",
		}
		record.GenerateSummary()
		entries[i] = core.EmbeddedRecord{
			Record: record,
			Vector: mock.DeterministicVector(record.CustomerID, dim),
		}
	}
	return entries
}

func TestBuild(t *testing.T) {
	t.Run("valid entries", func(t *testing.T) {
		idx, err := Build(mock.NewMockEmbedder(), makeEntries(5, 8))
		require.NoError(t, err)
		assert.Equal(t, 5, idx.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		idx, err := Build(mock.NewMockEmbedder(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("duplicate identifiers kept", func(t *testing.T) {
		entries := makeEntries(2, 8)
		entries[1].Record.CustomerID = entries[0].Record.CustomerID

		idx, err := Build(mock.NewMockEmbedder(), entries)
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := Build(nil, makeEntries(1, 8))
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("nil record", func(t *testing.T) {
		entries := makeEntries(2, 8)
		entries[1].Record = nil

		_, err := Build(mock.NewMockEmbedder(), entries)
		assert.ErrorIs(t, err, ErrInconsistentEntries)
	})

	t.Run("missing vector", func(t *testing.T) {
		entries := makeEntries(2, 8)
		entries[0].Vector = nil

		_, err := Build(mock.NewMockEmbedder(), entries)
		assert.ErrorIs(t, err, ErrInconsistentEntries)
	})

	t.Run("mixed dimensions", func(t *testing.T) {
		entries := makeEntries(2, 8)
		entries[1].Vector = mock.DeterministicVector("other", 16)

		_, err := Build(mock.NewMockEmbedder(), entries)
		assert.ErrorIs(t, err, ErrInconsistentEntries)
	})
}

func TestQueryVector_SelfMatchRanksFirst(t *testing.T) {
	entries := makeEntries(10, 16)
	idx, err := Build(mock.NewMockEmbedder(), entries)
	require.NoError(t, err)

	for _, entry := range entries {
		results := idx.QueryVector(entry.Vector, 1)
		require.Len(t, results, 1)
		assert.Equal(t, entry.Record.CustomerID, results[0].Record.CustomerID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	}
}

func TestQueryVector_RankedDescending(t *testing.T) {
	entries := makeEntries(8, 16)
	idx, err := Build(mock.NewMockEmbedder(), entries)
	require.NoError(t, err)

	results := idx.QueryVector(entries[3].Vector, 8)
	require.Len(t, results, 8)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			"results must be ordered by descending similarity")
	}
}

func TestQueryVector_TieBreakInsertionOrder(t *testing.T) {
	// Three entries share one vector; ranking must keep insertion order.
	shared := mock.DeterministicVector("shared", 8)
	entries := []core.EmbeddedRecord{
		{Record: &core.FeedbackRecord{CustomerID: "first"}, Vector: shared},
		{Record: &core.FeedbackRecord{CustomerID: "second"}, Vector: shared},
		{Record: &core.FeedbackRecord{CustomerID: "third"}, Vector: shared},
	}
	idx, err := Build(mock.NewMockEmbedder(), entries)
	require.NoError(t, err)

	results := idx.QueryVector(shared, 3)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Record.CustomerID)
	assert.Equal(t, "second", results[1].Record.CustomerID)
	assert.Equal(t, "third", results[2].Record.CustomerID)
}

func TestQueryVector_KLargerThanIndex(t *testing.T) {
	entries := makeEntries(4, 8)
	idx, err := Build(mock.NewMockEmbedder(), entries)
	require.NoError(t, err)

	results := idx.QueryVector(entries[0].Vector, 50)
	require.Len(t, results, 4)

	seen := make(map[string]bool)
	for _, result := range results {
		assert.False(t, seen[result.Record.CustomerID], "entry %s duplicated", result.Record.CustomerID)
		seen[result.Record.CustomerID] = true
	}
}

func TestQueryVector_EmptyIndex(t *testing.T) {
	idx, err := Build(mock.NewMockEmbedder(), nil)
	require.NoError(t, err)

	for _, k := range []int{1, 3, 100} {
		results := idx.QueryVector(mock.DeterministicVector("anything", 8), k)
		assert.Empty(t, results)
	}
}

func TestQueryVector_NonPositiveK(t *testing.T) {
	idx, err := Build(mock.NewMockEmbedder(), makeEntries(3, 8))
	require.NoError(t, err)

	assert.Empty(t, idx.QueryVector(mock.DeterministicVector("q", 8), 0))
	assert.Empty(t, idx.QueryVector(mock.DeterministicVector("q", 8), -1))
}

func TestQuery_EmbedsTextOncePerCall(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	idx, err := Build(embedder, makeEntries(5, 64))
	require.NoError(t, err)

	before := embedder.CallCount()
	_, err = idx.Query(context.Background(), "high income low satisfaction", 3)
	require.NoError(t, err)
	assert.Equal(t, before+1, embedder.CallCount())

	_, err = idx.Query(context.Background(), "high income low satisfaction", 3)
	require.NoError(t, err)
	assert.Equal(t, before+2, embedder.CallCount(), "query embeddings must not be cached")
}

func TestQuery_SelfMatchByText(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	entries := makeEntries(6, 8)
	// Entry vectors come from the same embedder as query vectors.
	for i := range entries {
		vec, err := embedder.EmbedText(context.Background(), entries[i].Record.ProfileSummary)
		require.NoError(t, err)
		entries[i].Vector = vec
	}

	idx, err := Build(embedder, entries)
	require.NoError(t, err)

	results, err := idx.Query(context.Background(), entries[2].Record.ProfileSummary, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, entries[2].Record.CustomerID, results[0].Record.CustomerID)
}

func TestQuery_EmptyIndexSkipsEmbedding(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	idx, err := Build(embedder, nil)
	require.NoError(t, err)

	results, err := idx.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, embedder.CallCount())
}

func TestQuery_EmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("service unavailable")
	}
	idx, err := Build(embedder, makeEntries(3, 64))
	require.NoError(t, err)

	_, err = idx.Query(context.Background(), "anything", 3)
	assert.Error(t, err)
}
