package analysis

import (
	"context"
	"log/slog"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
	"golang.org/x/sync/errgroup"
)

// DefaultTopK is the number of similar profiles retrieved per query.
const DefaultTopK = 3

// Retriever finds the records most similar to a query string.
// *vectorindex.Index satisfies this interface.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]core.RetrievalResult, error)
}

// Pipeline answers an analytical query in three stages: fan out the query
// into a passthrough branch and a similarity-lookup branch, merge both into
// one prompt, then forward the prompt to the analyst.
//
// Retrieval problems never abort a query. A failed or empty lookup degrades
// to a prompt that says so; only a failed analyst call is returned to the
// caller. Invocations carry no state between calls and may run concurrently.
type Pipeline struct {
	retriever Retriever
	analyst   ai.Analyst
	topK      int
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithTopK sets the number of similar profiles retrieved per query.
// Default is DefaultTopK.
func WithTopK(k int) PipelineOption {
	return func(p *Pipeline) error {
		if k < 1 {
			return ErrInvalidTopK
		}
		p.topK = k
		return nil
	}
}

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "analysis-pipeline")
		return nil
	}
}

// NewPipeline creates an analysis pipeline over the given retriever and analyst.
func NewPipeline(retriever Retriever, analyst ai.Analyst, opts ...PipelineOption) (*Pipeline, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if analyst == nil {
		return nil, ErrAnalystRequired
	}

	p := &Pipeline{
		retriever: retriever,
		analyst:   analyst,
		topK:      DefaultTopK,
		logger:    slog.Default().With("component", "analysis-pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Analyze runs one query through the pipeline and returns the analyst's
// completion. The returned error comes only from the analyst call; retrieval
// errors are logged and absorbed into the prompt.
func (p *Pipeline) Analyze(ctx context.Context, query string) (string, error) {
	// Stage 1: both branches are independent and side-effect-free, so they
	// run concurrently and join before the merge.
	var (
		passthrough string
		hits        []core.RetrievalResult
		lookupErr   error
	)

	var g errgroup.Group
	g.Go(func() error {
		passthrough = query
		return nil
	})
	g.Go(func() error {
		// The lookup branch reports through lookupErr, not the group:
		// a retrieval failure is merged into the prompt, not propagated.
		hits, lookupErr = p.retriever.Query(ctx, query, p.topK)
		return nil
	})
	g.Wait()

	if lookupErr != nil {
		p.logger.Error("error fetching similar profiles", "query", query, "err", lookupErr)
	} else {
		p.logger.Debug("retrieved similar profiles", "query", query, "hits", len(hits))
	}

	// Stage 2: pure merge of the branch outputs.
	prompt := BuildPrompt(passthrough, hits, lookupErr)

	// Stage 3: external analyst call; its error belongs to the caller.
	return p.analyst.Analyze(ctx, prompt)
}
