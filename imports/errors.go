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


package imports

import (
	"errors"
	"fmt"
)

var (
	// ErrRepositoryRequired is returned when a medicine repository is not provided.
	ErrRepositoryRequired = errors.New("medicine repository required")

	// ErrMissingColumn indicates the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrBadPrice indicates a price cell that cannot be parsed as a
	// number.
	ErrBadPrice = errors.New("malformed price")

	// ErrBadRow indicates a structurally malformed CSV row.
	ErrBadRow = errors.New("malformed row")

	// ErrNoRecords indicates a CSV with a valid header but no data rows.
	ErrNoRecords = errors.New("no records to import")
)

// RowError reports a validation failure at a specific CSV row.
// Row numbers are 1-based and count the header as row 1, matching what
// an operator sees in a spreadsheet.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
