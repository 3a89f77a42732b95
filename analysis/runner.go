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


package analysis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"
)

// DefaultQueryDelay is the minimum interval between query submissions,
// pacing chat-service traffic during batch query runs.
const DefaultQueryDelay = 2 * time.Second

// ExampleQueries exercises the pipeline against common analyst questions.
var ExampleQueries = []string{
	"What patterns do you see in high-income customers with low satisfaction scores?",
	"Analyze the relationship between purchase frequency and loyalty levels.",
	"What characteristics define our most satisfied customers?",
	"Identify potential churn risks based on customer patterns.",
}

// Runner feeds queries into a Pipeline over a worker pool. Submissions are
// paced by an inter-query delay; with the default pool size of one, queries
// run strictly sequentially. A failed query is logged and skipped, never
// stopping the remaining queries.
type Runner struct {
	pipeline *Pipeline
	pool     *ants.Pool
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithPoolSize sets the worker pool size for concurrent query processing.
// Default is 1 (sequential).
func WithPoolSize(size int) RunnerOption {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithQueryDelay sets the minimum interval between query submissions.
// A zero or negative delay disables pacing (useful in tests).
// Default is DefaultQueryDelay.
func WithQueryDelay(delay time.Duration) RunnerOption {
	return func(r *Runner) error {
		r.limiter = rate.NewLimiter(rate.Every(delay), 1)
		return nil
	}
}

// WithRunnerLogger sets a custom logger.
// Default is slog.Default().
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "query-runner")
		return nil
	}
}

// NewRunner creates a query runner over the given pipeline.
func NewRunner(pipeline *Pipeline, opts ...RunnerOption) (*Runner, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		pipeline: pipeline,
		pool:     pool,
		limiter:  rate.NewLimiter(rate.Every(DefaultQueryDelay), 1),
		logger:   slog.Default().With("component", "query-runner"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Run submits every query to the pipeline and calls handle with each
// successful analysis. Queries whose analyst call fails are logged and
// skipped. Run returns once all submitted queries have finished; it returns
// an error only when cancelled between submissions.
//
// handle may be called from pool workers; it must be safe for the configured
// pool size.
func (r *Runner) Run(ctx context.Context, queries []string, handle func(query, analysis string)) error {
	var wg sync.WaitGroup

	for _, query := range queries {
		if err := r.limiter.Wait(ctx); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()

			analysis, err := r.pipeline.Analyze(ctx, query)
			if err != nil {
				r.logger.Error("error analyzing query", "query", query, "err", err)
				return
			}
			handle(query, analysis)
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return submitErr
		}
	}

	wg.Wait()
	return nil
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
