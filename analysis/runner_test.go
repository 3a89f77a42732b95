package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/insight/ai/mock"
	"github.com/poiesic/insight/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, retriever Retriever, analyst *mock.MockAnalyst, opts ...RunnerOption) *Runner {
	t.Helper()

	pipeline, err := NewPipeline(retriever, analyst)
	require.NoError(t, err)

	opts = append([]RunnerOption{WithQueryDelay(0)}, opts...)
	runner, err := NewRunner(pipeline, opts...)
	require.NoError(t, err)
	t.Cleanup(runner.Release)

	return runner
}

func TestNewRunner_NilPipeline(t *testing.T) {
	_, err := NewRunner(nil)
	assert.ErrorIs(t, err, ErrPipelineRequired)
}

func TestRun_AllQueriesHandled(t *testing.T) {
	retriever := &testRetriever{results: []core.RetrievalResult{retrievalHit("C0001", 0.9)}}
	analyst := mock.NewMockAnalyst()
	analyst.AnalyzeFunc = func(ctx context.Context, prompt string) (string, error) {
		return "answer", nil
	}
	runner := newTestRunner(t, retriever, analyst)

	var mu sync.Mutex
	got := make(map[string]string)
	err := runner.Run(context.Background(), ExampleQueries, func(query, analysis string) {
		mu.Lock()
		got[query] = analysis
		mu.Unlock()
	})
	require.NoError(t, err)

	assert.Len(t, got, len(ExampleQueries))
	for _, query := range ExampleQueries {
		assert.Equal(t, "answer", got[query])
	}
}

func TestRun_FailedQuerySkipped(t *testing.T) {
	retriever := &testRetriever{}
	analyst := mock.NewMockAnalyst()
	analyst.AnalyzeFunc = func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "second") {
			return "", errors.New("model overloaded")
		}
		return "ok", nil
	}
	runner := newTestRunner(t, retriever, analyst)

	var mu sync.Mutex
	var handled []string
	err := runner.Run(context.Background(), []string{"first", "second", "third"}, func(query, analysis string) {
		mu.Lock()
		handled = append(handled, query)
		mu.Unlock()
	})
	require.NoError(t, err, "a failed query must not stop the run")

	assert.ElementsMatch(t, []string{"first", "third"}, handled)
	assert.Equal(t, 3, analyst.CallCount(), "every query still reaches the analyst")
}

func TestRun_SequentialByDefault(t *testing.T) {
	retriever := &testRetriever{}
	analyst := mock.NewMockAnalyst()

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	analyst.AnalyzeFunc = func(ctx context.Context, prompt string) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return "ok", nil
	}
	runner := newTestRunner(t, retriever, analyst)

	err := runner.Run(context.Background(), []string{"a", "b", "c", "d"}, func(string, string) {})
	require.NoError(t, err)
	assert.Equal(t, 1, maxInFlight)
}

func TestRun_ParallelPool(t *testing.T) {
	retriever := &testRetriever{}
	analyst := mock.NewMockAnalyst()

	release := make(chan struct{})
	started := make(chan struct{}, 4)
	analyst.AnalyzeFunc = func(ctx context.Context, prompt string) (string, error) {
		started <- struct{}{}
		<-release
		return "ok", nil
	}
	runner := newTestRunner(t, retriever, analyst, WithPoolSize(4))

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(context.Background(), []string{"a", "b", "c", "d"}, func(string, string) {})
	}()

	// All four workers block inside the analyst at once.
	for i := 0; i < 4; i++ {
		<-started
	}
	close(release)
	require.NoError(t, <-done)
}

func TestRun_CancelledBetweenSubmissions(t *testing.T) {
	retriever := &testRetriever{}
	analyst := mock.NewMockAnalyst()
	runner := newTestRunner(t, retriever, analyst)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, []string{"a", "b"}, func(string, string) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoQueries(t *testing.T) {
	runner := newTestRunner(t, &testRetriever{}, mock.NewMockAnalyst())

	called := false
	err := runner.Run(context.Background(), nil, func(string, string) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
}
