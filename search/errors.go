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


package search

import "errors"

var (
	// ErrProviderRequired is returned when an index provider is not provided.
	ErrProviderRequired = errors.New("index provider required")

	// ErrIndexUnavailable is returned when a query arrives before any
	// generation has been imported. It is a distinct condition from an
	// empty result: the former means "not ready", the latter "nothing
	// matched".
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrInvalidMode is returned for an unknown query mode.
	ErrInvalidMode = errors.New("invalid search mode")
)
