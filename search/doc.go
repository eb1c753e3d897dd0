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


// Package search provides the query engine over the medicine index.
//
// The Searcher type serves three query modes against one immutable index
// snapshot:
//   - prefix: records whose normalized field begins with the query
//   - substring: records containing the query as a contiguous normalized
//     substring, resolved by n-gram intersection plus verification
//   - fuzzy: additionally, records within a bounded edit distance
//
// Results are ranked exact, then prefix, then substring, then by
// ascending edit distance, with ascending record id as the final
// tie-break, so rankings are fully deterministic.
package search
