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


// Package index builds and serves the inverted full-text index over the
// medicine master.
//
// Japanese text has no whitespace word boundaries, so each searchable
// field is tokenized into overlapping character n-grams (bigrams by
// default) over its normalized text. Whole-field values are kept
// alongside the gram postings for exact and prefix lookup.
//
// An Index is an immutable snapshot: Build is a pure function of the
// record set, and a built Index is safe for unbounded concurrent reads.
// Rebuilding from the same records always produces an equivalent index.
package index
