package core

import (
	"fmt"
	"strings"
)

// FeedbackRecord represents one customer response from the feedback survey.
// Source fields map 1:1 to the input CSV columns. ProfileSummary is derived
// after load and is the only field used for embedding.
type FeedbackRecord struct {
	CustomerID        string  `csv:"CustomerID"`
	Age               int     `csv:"Age"`
	Gender            string  `csv:"Gender"`
	Country           string  `csv:"Country"`
	Income            float64 `csv:"Income"`
	ProductQuality    int     `csv:"ProductQuality"`    // 0-10 rating
	ServiceQuality    int     `csv:"ServiceQuality"`    // 0-10 rating
	PurchaseFrequency int     `csv:"PurchaseFrequency"` // purchases per year
	FeedbackScore     string  `csv:"FeedbackScore"`
	LoyaltyLevel      string  `csv:"LoyaltyLevel"`
	SatisfactionScore float64 `csv:"SatisfactionScore"` // percentage

	// ProfileSummary is the canonical text rendering of the record,
	// populated by GenerateSummary before the record enters the
	// embedding pipeline. Excluded from equality and ordering.
	ProfileSummary string `csv:"-"`
}

// GenerateSummary renders the record into its profile summary. The output
// depends only on the source fields, so regenerating an unchanged record
// always yields an identical string.
func (r *FeedbackRecord) GenerateSummary() {
	r.ProfileSummary = fmt.Sprintf(
		"Customer Profile: %d year old %s from %s with income $%.2f. "+
			"Product Quality Rating: %d/10, Service Quality: %d/10. "+
			"Purchases %d times per year. Feedback Score: %s. "+
			"Loyalty Level: %s. Satisfaction Score: %.1f%%",
		r.Age, r.Gender, r.Country, r.Income,
		r.ProductQuality, r.ServiceQuality,
		r.PurchaseFrequency, r.FeedbackScore,
		r.LoyaltyLevel, r.SatisfactionScore,
	)
}

// Equal reports whether two records refer to the same customer.
// Identity is defined by CustomerID alone.
func (r *FeedbackRecord) Equal(other *FeedbackRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.CustomerID == other.CustomerID
}

// CompareRecords orders records lexicographically by CustomerID. It exists
// for deterministic sorting and deduplication, not business logic.
func CompareRecords(a, b *FeedbackRecord) int {
	return strings.Compare(a.CustomerID, b.CustomerID)
}

// EmbeddedRecord pairs a record with the embedding vector computed from its
// profile summary. Once inserted into an index, the vector is never mutated.
type EmbeddedRecord struct {
	Record *FeedbackRecord
	Vector []float32
}

// RetrievalResult is a single similarity hit for a query. Results are
// transient and produced per query, ordered by descending score.
type RetrievalResult struct {
	Score  float64
	Vector []float32
	Record *FeedbackRecord
}
