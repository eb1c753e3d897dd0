// Copyright 2026 Rxscan Systems
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

import (
	"fmt"
	"math"
)

// ValidateMedicineRecord validates a MedicineRecord according to domain rules.
//
// Validation rules:
//   - Price must be finite and non-negative
//
// NOT validated:
//   - Searchable-field emptiness (a warning condition, see
//     CheckSearchable)
//   - ID (0 is valid before import assigns one)
func ValidateMedicineRecord(record *MedicineRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if math.IsNaN(record.Price) || math.IsInf(record.Price, 0) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNonFinitePrice)
	}

	if record.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNegativePrice)
	}

	return nil
}

// CheckSearchable returns ErrNoSearchableField if the record cannot be
// reached by any search query. This is a warning condition, not a
// validation failure: the record is stored but never matched.
func CheckSearchable(record *MedicineRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if !record.HasSearchableField() {
		return ErrNoSearchableField
	}
	return nil
}
