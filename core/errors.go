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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a MedicineRecord failed validation.
	ErrInvalidRecord = errors.New("invalid medicine record")

	// ErrNegativePrice indicates a negative price value.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrNonFinitePrice indicates a NaN or infinite price value.
	ErrNonFinitePrice = errors.New("price must be finite")

	// ErrNoSearchableField indicates a record whose searchable fields are
	// all empty. Such a record is indexed under no tokens and is therefore
	// unreachable by search; importers report it as a warning, not a
	// failure.
	ErrNoSearchableField = errors.New("record has no searchable field")
)
