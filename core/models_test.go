package core

import (
	"strings"
	"testing"
)

func sampleRecord() *FeedbackRecord {
	return &FeedbackRecord{
		CustomerID:        "C1001",
		Age:               34,
		Gender:            "Female",
		Country:           "Germany",
		Income:            72500.50,
		ProductQuality:    8,
		ServiceQuality:    6,
		PurchaseFrequency: 12,
		FeedbackScore:     "High",
		LoyaltyLevel:      "Gold",
		SatisfactionScore: 87.25,
	}
}

func TestGenerateSummary(t *testing.T) {
	record := sampleRecord()
	record.GenerateSummary()

	want := "Customer Profile: 34 year old Female from Germany with income $72500.50. " +
		"Product Quality Rating: 8/10, Service Quality: 6/10. " +
		"Purchases 12 times per year. Feedback Score: High. " +
		"Loyalty Level: Gold. Satisfaction Score: 87.2%"

	if record.ProfileSummary != want {
		t.Errorf("GenerateSummary() = %q, want %q", record.ProfileSummary, want)
	}
}

func TestGenerateSummary_Deterministic(t *testing.T) {
	record := sampleRecord()

	record.GenerateSummary()
	first := record.ProfileSummary
	record.GenerateSummary()
	second := record.ProfileSummary

	if first != second {
		t.Errorf("GenerateSummary() produced different output for unchanged record: %q vs %q", first, second)
	}
}

func TestGenerateSummary_ContainsAllFields(t *testing.T) {
	record := sampleRecord()
	record.GenerateSummary()

	for _, fragment := range []string{"34", "Female", "Germany", "72500.50", "8/10", "6/10", "12 times", "High", "Gold", "87.2%"} {
		if !strings.Contains(record.ProfileSummary, fragment) {
			t.Errorf("summary missing %q: %s", fragment, record.ProfileSummary)
		}
	}
}

func TestFeedbackRecord_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *FeedbackRecord
		want bool
	}{
		{
			name: "same ID different fields",
			a:    &FeedbackRecord{CustomerID: "C1", Age: 30},
			b:    &FeedbackRecord{CustomerID: "C1", Age: 65},
			want: true,
		},
		{
			name: "different IDs",
			a:    &FeedbackRecord{CustomerID: "C1"},
			b:    &FeedbackRecord{CustomerID: "C2"},
			want: false,
		},
		{
			name: "nil other",
			a:    &FeedbackRecord{CustomerID: "C1"},
			b:    nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareRecords(t *testing.T) {
	a := &FeedbackRecord{CustomerID: "C100"}
	b := &FeedbackRecord{CustomerID: "C200"}

	if CompareRecords(a, b) >= 0 {
		t.Errorf("CompareRecords(C100, C200) should be negative")
	}
	if CompareRecords(b, a) <= 0 {
		t.Errorf("CompareRecords(C200, C100) should be positive")
	}
	if CompareRecords(a, a) != 0 {
		t.Errorf("CompareRecords(C100, C100) should be zero")
	}
}
