package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/poiesic/insight/core"
)

var (
	outFileName = flag.String("out", "feedback.csv", "output CSV file")
	recordCount = flag.Int("count", 100, "number of records to generate")
	randomSeed  = flag.Int64("seed", 1, "random seed")
)

var (
	genders   = []string{"Female", "Male"}
	countries = []string{"Germany", "France", "Spain", "Italy", "UK", "USA", "Canada", "Mexico", "Australia"}
	loyalty   = []string{"Bronze", "Silver", "Gold"}
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// feedbackScore buckets the satisfaction percentage the same way the
// analysis expects to see it in real exports.
func feedbackScore(satisfaction float64) string {
	switch {
	case satisfaction >= 75:
		return "High"
	case satisfaction >= 50:
		return "Medium"
	default:
		return "Low"
	}
}

func generateRecords(rng *rand.Rand, count int) []*core.FeedbackRecord {
	records := make([]*core.FeedbackRecord, 0, count)
	for i := 0; i < count; i++ {
		satisfaction := 20 + rng.Float64()*80
		records = append(records, &core.FeedbackRecord{
			CustomerID:        fmt.Sprintf("C%04d", i+1),
			Age:               18 + rng.Intn(62),
			Gender:            genders[rng.Intn(len(genders))],
			Country:           countries[rng.Intn(len(countries))],
			Income:            20000 + rng.Float64()*130000,
			ProductQuality:    rng.Intn(11),
			ServiceQuality:    rng.Intn(11),
			PurchaseFrequency: 1 + rng.Intn(30),
			FeedbackScore:     feedbackScore(satisfaction),
			LoyaltyLevel:      loyalty[rng.Intn(len(loyalty))],
			SatisfactionScore: satisfaction,
		})
	}
	return records
}

func main() {
	rng := rand.New(rand.NewSource(*randomSeed))
	records := generateRecords(rng, *recordCount)

	f, err := os.Create(*outFileName)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		panic(err)
	}

	slog.Info("generated feedback data", "file", *outFileName, "records", len(records))
}
