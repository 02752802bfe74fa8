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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRecipe validates a Recipe according to domain rules.
//
// Validation rules:
//   - Title must not be empty or whitespace-only
//   - ViewCount must not be negative
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Tags (an untagged recipe is valid)
//   - TagIds (populated by processors)
//   - ID (0 is valid from database sequences)
//   - CreatedAt zero value (ingestion defaults it to the current time)
func ValidateRecipe(recipe *Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe is nil", ErrInvalidRecipe)
	}

	if strings.TrimSpace(recipe.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyTitle)
	}

	if recipe.ViewCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrNegativeViewCount)
	}

	if !IsValidTimestamp(recipe.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateTag validates a Tag according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Slug must not be empty
//
// NOT validated:
//   - ID (0 is valid until the content-based ID is assigned)
func ValidateTag(tag *Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: tag is nil", ErrInvalidTag)
	}

	if tag.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptyTagName)
	}

	if tag.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptyTagSlug)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
