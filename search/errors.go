// Copyright 2025 Poiesic Systems
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
	// ErrRecipeRepositoryRequired is returned when a recipe repository is not provided.
	ErrRecipeRepositoryRequired = errors.New("recipe repository required")

	// ErrNilRecipes is returned when a nil recipe list is passed to SearchAndSort.
	ErrNilRecipes = errors.New("recipe list must not be nil")

	// ErrInvalidSortKey is returned for an unrecognized sort key.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidSortOrder is returned for an unrecognized sort order.
	ErrInvalidSortOrder = errors.New("invalid sort order")
)
