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


// Package match reconciles noisy OCR text against the medicine master.
//
// OCR output contains misread characters, merged tokens, and partial
// names. The Matcher runs each recognized fragment through the fuzzy
// query engine, refines the short candidate list with normalized
// Levenshtein similarity against each candidate's medicine name, and
// keeps matches above a confidence floor.
//
// The OCR engine itself is a black box behind the Recognizer interface;
// segment confidence is advisory only and never gates whether a segment
// is attempted.
package match
