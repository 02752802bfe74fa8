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


package match

import "strings"

// tokenMatches reports whether queryToken matches any of candidateTokens.
// A candidate token matches if it contains queryToken as a substring
// (checked first, it is the cheap path and covers partial-word search
// like "choc" against "chocolate"), or if it is within the adaptive
// edit-distance budget for queryToken's length.
//
// An empty queryToken matches nothing. The tokenizer never produces one,
// but an empty needle would otherwise substring-match every candidate.
func tokenMatches(queryToken string, candidateTokens []string) bool {
	if queryToken == "" {
		return false
	}

	threshold := MaxDistance(len(queryToken))
	for _, candidate := range candidateTokens {
		if strings.Contains(candidate, queryToken) {
			return true
		}
		if BoundedLevenshtein(queryToken, candidate, threshold) <= threshold {
			return true
		}
	}
	return false
}

// Fuzzy reports whether query matches candidate, tolerating typos,
// partial words, and word reordering. Both strings are compared
// case-insensitively.
//
// The decision proceeds in order:
//
//  1. An empty candidate matches nothing.
//  2. If the lowercased candidate contains the lowercased query as a
//     literal substring, that is an immediate accept.
//  3. Both strings are tokenized. A candidate with no tokens matches
//     nothing.
//  4. A multi-token query matches only if every query token matches some
//     candidate token (conjunction; word order is irrelevant).
//  5. A single-token query matches if its token matches some candidate
//     token, or if the whole candidate string is short enough
//     (len(candidate) <= len(token)+threshold) and within the token's
//     edit-distance budget as one unit. The whole-string fallback exists
//     to catch short tags that are near-misses of the query without
//     containing a separately matching token, and it intentionally never
//     runs for multi-token queries.
//
// A query with no tokens at all (for example, only punctuation) matches
// nothing here; treating a trivial query as "no filter" is the calling
// pipeline's job, not the predicate's.
func Fuzzy(query, candidate string) bool {
	if candidate == "" {
		return false
	}

	loweredQuery := strings.ToLower(query)
	loweredCandidate := strings.ToLower(candidate)
	if strings.Contains(loweredCandidate, loweredQuery) {
		return true
	}

	queryTokens := Tokenize(query)
	candidateTokens := Tokenize(candidate)
	if len(candidateTokens) == 0 {
		return false
	}

	if len(queryTokens) > 1 {
		for _, token := range queryTokens {
			if !tokenMatches(token, candidateTokens) {
				return false
			}
		}
		return true
	}

	if len(queryTokens) == 0 {
		return false
	}

	token := queryTokens[0]
	if tokenMatches(token, candidateTokens) {
		return true
	}

	threshold := MaxDistance(len(token))
	if len(loweredCandidate) <= len(token)+threshold {
		return BoundedLevenshtein(token, loweredCandidate, threshold) <= threshold
	}
	return false
}
