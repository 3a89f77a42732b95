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


package core

import "fmt"

// ValidateFeedbackRecord validates a FeedbackRecord according to domain rules.
//
// Validation rules:
//   - CustomerID must not be empty
//   - Age must be positive
//   - ProductQuality and ServiceQuality must be on the 0-10 scale
//   - PurchaseFrequency must not be negative
//   - SatisfactionScore must be a percentage (0-100)
//
// NOT validated:
//   - ProfileSummary (empty until GenerateSummary runs)
//   - FeedbackScore and LoyaltyLevel (free-form categorical values)
func ValidateFeedbackRecord(record *FeedbackRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.CustomerID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyCustomerID)
	}

	if record.Age <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidRecord, ErrInvalidAge, record.Age)
	}

	if !isValidRating(record.ProductQuality) {
		return fmt.Errorf("%w: product quality: %w: got %d", ErrInvalidRecord, ErrInvalidQualityRating, record.ProductQuality)
	}

	if !isValidRating(record.ServiceQuality) {
		return fmt.Errorf("%w: service quality: %w: got %d", ErrInvalidRecord, ErrInvalidQualityRating, record.ServiceQuality)
	}

	if record.PurchaseFrequency < 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidRecord, ErrInvalidPurchaseFrequency, record.PurchaseFrequency)
	}

	if record.SatisfactionScore < 0 || record.SatisfactionScore > 100 {
		return fmt.Errorf("%w: %w: got %g", ErrInvalidRecord, ErrInvalidSatisfactionScore, record.SatisfactionScore)
	}

	return nil
}

// isValidRating checks a rating against the 0-10 survey scale.
func isValidRating(rating int) bool {
	return rating >= 0 && rating <= 10
}
