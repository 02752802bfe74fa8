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


// Package match implements typo-tolerant text matching for recipe search.
//
// The entry point is Fuzzy, a boolean predicate deciding whether a free-text
// query matches a candidate string (a recipe title or a single tag). It is
// built from four small pieces, each usable on its own:
//
//   - Tokenize: lowercase word tokens split on non-alphanumeric runs
//   - MaxDistance: edit-distance budget adapted to token length
//   - BoundedLevenshtein: edit distance with an early exit past the budget
//   - Fuzzy: substring accept, then per-token matching
//
// Matching is case-insensitive and ASCII-oriented: tokens are maximal runs
// of ASCII letters and digits, and anything else is a separator. There is
// no stemming and no relevance scoring; every decision is a plain boolean.
//
// Multi-word queries are conjunctive: every query token must match some
// candidate token, in any order. Single-word queries additionally try the
// whole candidate string as one unit when it is short enough, which lets a
// squashed query like "applepie" match the tag "apple pie" even though
// neither tag token matches it on its own. This whole-string fallback
// deliberately never runs for multi-word queries; the asymmetry between
// the two branches is part of the matching contract and must not be
// "fixed" without revisiting the precision of multi-word search.
//
// Every function in this package is pure and safe for concurrent use.
package match
