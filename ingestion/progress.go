package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks and reports chunk-level progress of an embedding run.
type ProgressTracker struct {
	writer      io.Writer
	totalChunks int
	doneChunks  int
	doneRecords int
	startTime   time.Time
	started     bool
	mu          sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stdout)
func NewProgressTracker(writer io.Writer) *ProgressTracker {
	return &ProgressTracker{writer: writer}
}

// Start begins tracking a run over the given number of chunks.
func (p *ProgressTracker) Start(totalChunks int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalChunks = totalChunks
	p.doneChunks = 0
	p.doneRecords = 0
	p.startTime = time.Now()
	p.started = true
}

// ChunkDone records the successful completion of one chunk.
func (p *ProgressTracker) ChunkDone(records int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.doneChunks++
	p.doneRecords += records
	p.report()
}

// Finish prints final progress and a trailing newline.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
	p.started = false
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	percentage := 0.0
	if p.totalChunks > 0 {
		percentage = float64(p.doneChunks) / float64(p.totalChunks) * 100.0
	}

	fmt.Fprintf(p.writer, "\rChunks: %d/%d (%.1f%%) - %d records embedded",
		p.doneChunks, p.totalChunks, percentage, p.doneRecords)
}
