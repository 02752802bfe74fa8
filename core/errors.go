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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecipe indicates a Recipe failed validation.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrInvalidTag indicates a Tag failed validation.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrNegativeViewCount indicates a negative ViewCount value.
	ErrNegativeViewCount = errors.New("view count cannot be negative")

	// ErrEmptyTagName indicates the tag Name field is empty.
	ErrEmptyTagName = errors.New("tag name cannot be empty")

	// ErrEmptyTagSlug indicates the tag Slug field is empty.
	ErrEmptyTagSlug = errors.New("tag slug cannot be empty")
)

// Serialization errors
var (
	// ErrNegativeLength indicates a serialized collection declared a negative length.
	ErrNegativeLength = errors.New("negative length")
)
