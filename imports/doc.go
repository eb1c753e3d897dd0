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


// Package imports loads the medicine master from CSV into the record
// store.
//
// An import replaces the whole corpus generation and is all-or-nothing:
// the entire file is parsed and validated before anything is written,
// and a single malformed row aborts the import with a RowError naming
// the row, leaving the previous generation intact. A dry-run Preview
// parses and validates without committing.
//
// Records whose searchable fields are all empty are imported but
// reported as warnings, since no query can ever reach them.
package imports
