package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/insight/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_NumberedList(t *testing.T) {
	hits := []core.RetrievalResult{
		retrievalHit("C0007", 0.91),
		retrievalHit("C0008", 0.84),
		retrievalHit("C0009", 0.77),
	}

	prompt := BuildPrompt("which customers churn?", hits, nil)

	assert.True(t, strings.HasPrefix(prompt, "Analysis Query: which customers churn?\n\n"))
	assert.Contains(t, prompt, "1. Similarity Score: 0.91")
	assert.Contains(t, prompt, "2. Similarity Score: 0.84")
	assert.Contains(t, prompt, "3. Similarity Score: 0.77")

	// Every human-readable field reaches the analyst via the summary.
	assert.Contains(t, prompt, "Customer C0007")
	assert.Contains(t, prompt, "41 year old Male from Italy")
	assert.Contains(t, prompt, "income $55000.00")
	assert.Contains(t, prompt, "7/10")
	assert.Contains(t, prompt, "8/10")
	assert.Contains(t, prompt, "6 times per year")
	assert.Contains(t, prompt, "Feedback Score: Medium")
	assert.Contains(t, prompt, "Loyalty Level: Silver")
	assert.Contains(t, prompt, "74.5%")
}

func TestBuildPrompt_NoMatches(t *testing.T) {
	prompt := BuildPrompt("a query", nil, nil)

	assert.Contains(t, prompt, "Analysis Query: a query")
	assert.Contains(t, prompt, NoticeNoMatches)
	assert.NotContains(t, prompt, "Relevant Customer Profiles")
}

func TestBuildPrompt_RetrievalFailure(t *testing.T) {
	prompt := BuildPrompt("a query", nil, errors.New("boom"))

	assert.Contains(t, prompt, "Analysis Query: a query")
	assert.Contains(t, prompt, NoticeRetrievalFailed)
	assert.NotContains(t, prompt, "boom", "raw error text must not leak into the prompt")
}

func TestBuildPrompt_FailureBeatsEmptyHits(t *testing.T) {
	// A lookup error with stale hits still reports failure.
	prompt := BuildPrompt("q", []core.RetrievalResult{retrievalHit("C1", 0.5)}, errors.New("down"))

	assert.Contains(t, prompt, NoticeRetrievalFailed)
	assert.NotContains(t, prompt, "Customer C1")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	hits := []core.RetrievalResult{retrievalHit("C0001", 0.9)}

	assert.Equal(t, BuildPrompt("q", hits, nil), BuildPrompt("q", hits, nil))
}
