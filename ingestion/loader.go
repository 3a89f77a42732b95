package ingestion

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/poiesic/insight/core"
)

// LoadRecords reads customer feedback records from a CSV file with
// header-named columns (CustomerID, Age, Gender, ... SatisfactionScore).
//
// A missing file, malformed header, or malformed row aborts the whole load:
// partially parsed survey data would silently corrupt downstream embeddings.
// Every returned record is validated and has its profile summary populated.
func LoadRecords(path string) ([]*core.FeedbackRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feedback data: %w", err)
	}
	defer file.Close()

	var records []*core.FeedbackRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, record := range records {
		if err := core.ValidateFeedbackRecord(record); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		record.GenerateSummary()
	}

	slog.Debug("loaded feedback records", "path", path, "records", len(records))
	return records, nil
}
