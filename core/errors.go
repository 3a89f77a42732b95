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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a FeedbackRecord failed validation.
	ErrInvalidRecord = errors.New("invalid feedback record")

	// ErrEmptyCustomerID indicates the CustomerID field is empty.
	ErrEmptyCustomerID = errors.New("customer ID cannot be empty")

	// ErrInvalidAge indicates the Age field is not a positive integer.
	ErrInvalidAge = errors.New("age must be positive")

	// ErrInvalidQualityRating indicates a quality rating is outside the 0-10 scale.
	ErrInvalidQualityRating = errors.New("quality rating must be between 0 and 10")

	// ErrInvalidPurchaseFrequency indicates a negative purchase frequency.
	ErrInvalidPurchaseFrequency = errors.New("purchase frequency cannot be negative")

	// ErrInvalidSatisfactionScore indicates a satisfaction score outside 0-100.
	ErrInvalidSatisfactionScore = errors.New("satisfaction score must be between 0 and 100")
)
