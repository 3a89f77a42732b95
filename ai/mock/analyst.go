package mock

import (
	"context"
	"sync"
)

// MockAnalyst is a test double for ai.Analyst.
// It records every prompt it receives so tests can assert on the text that
// reached the chat stage.
type MockAnalyst struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, uses default canned behavior.
	AnalyzeFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewMockAnalyst creates a mock analyst with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyst() *MockAnalyst {
	return &MockAnalyst{}
}

// Analyze records the prompt and returns a canned completion.
func (m *MockAnalyst) Analyze(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, prompt)
	}

	return "mock analysis", nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockAnalyst) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockAnalyst) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or "" if Analyze was never called.
func (m *MockAnalyst) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded prompts and any injected behavior.
func (m *MockAnalyst) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.AnalyzeFunc = nil
}
