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


// Package storage provides the storage abstraction layer for medsearch.
//
// This package defines the repository interface that decouples the
// medicine master's persistence from the search core. The authoritative
// data lives in whole corpus generations: a bulk import replaces the
// entire generation atomically, and the previous one stays intact until
// the new one is published.
//
// # Constructor Return Type Pattern
//
// Public constructors of backend packages return the storage interfaces
// rather than concrete types:
//
//	repo, err := badger.NewMedicineRepository(backend)
//
// so consumers never couple to a specific engine and tests can swap in
// in-memory implementations.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
