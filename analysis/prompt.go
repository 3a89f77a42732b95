package analysis

import (
	"fmt"
	"strings"

	"github.com/poiesic/insight/core"
)

// Notices inserted into the prompt when retrieval yields no context.
// They are complete sentences; a degraded prompt is still a grammatical one.
const (
	// NoticeNoMatches is used when the lookup succeeded with zero hits.
	NoticeNoMatches = "No relevant profiles found for this query. Base the analysis on the query alone."

	// NoticeRetrievalFailed is used when the lookup itself failed.
	NoticeRetrievalFailed = "Customer profile retrieval failed, so no similar profiles are available. Base the analysis on the query alone."
)

// BuildPrompt merges the passthrough query with the retrieval outcome into
// the analyst prompt body. Pure function: no logging, no side effects.
func BuildPrompt(query string, hits []core.RetrievalResult, lookupErr error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis Query: %s\n\n", query)

	switch {
	case lookupErr != nil:
		b.WriteString(NoticeRetrievalFailed)
		b.WriteString("\n")
	case len(hits) == 0:
		b.WriteString(NoticeNoMatches)
		b.WriteString("\n")
	default:
		b.WriteString("Relevant Customer Profiles for Context:\n")
		for i, hit := range hits {
			fmt.Fprintf(&b, "%d. Similarity Score: %.2f\n   Customer %s. %s\n",
				i+1, hit.Score, hit.Record.CustomerID, hit.Record.ProfileSummary)
		}
	}

	return b.String()
}
