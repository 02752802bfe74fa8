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

// BoundedLevenshtein computes the Levenshtein distance (unit-cost insert,
// delete, substitute) between a and b, giving up as soon as the distance
// provably exceeds maxDistance. It returns the true distance when that is
// <= maxDistance and the sentinel maxDistance+1 otherwise; callers compare
// the result against their threshold and never rely on the sentinel's
// exact value.
//
// Distance is computed over bytes. Inputs in this package are lowercased
// ASCII tokens, for which byte distance and character distance agree.
//
// With maxDistance 0 only identical strings match.
func BoundedLevenshtein(a, b string, maxDistance int) int {
	if a == b {
		return 0
	}

	la, lb := len(a), len(b)
	if la-lb > maxDistance || lb-la > maxDistance {
		return maxDistance + 1
	}

	// Roll two rows over the shorter string to keep the working set at
	// O(min(len(a), len(b))).
	if lb > la {
		a, b = b, a
		la, lb = lb, la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= lb; j++ {
			d := curr[j-1] + 1 // insertion
			if del := prev[j] + 1; del < d {
				d = del
			}
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			if sub < d {
				d = sub
			}
			curr[j] = d
			if d < rowMin {
				rowMin = d
			}
		}

		// Distances only grow down the matrix, so once a whole row is
		// past the budget the final distance is too.
		if rowMin > maxDistance {
			return maxDistance + 1
		}

		prev, curr = curr, prev
	}

	if prev[lb] > maxDistance {
		return maxDistance + 1
	}
	return prev[lb]
}
