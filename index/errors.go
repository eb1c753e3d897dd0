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


package index

import "errors"

var (
	// ErrDuplicateID indicates two records in one build share an ID.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrInvalidGramSize indicates a gram size below 2. Unigrams cannot
	// support the two-character query threshold.
	ErrInvalidGramSize = errors.New("gram size must be at least 2")
)
