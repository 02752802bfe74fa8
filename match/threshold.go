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

// MaxDistance returns the edit-distance budget for matching a token of the
// given length:
//
//	length 0-4   -> 1
//	length 5-7   -> 2
//	length >= 8  -> min(3, max(2, floor(length * 0.34)))
//
// Short tokens tolerate only a single-character slip, which keeps pairs
// like "rice" and "ride" apart. Longer tokens tolerate proportionally
// more, capped at 3 to bound comparison cost on long strings. The budget
// never decreases as length grows.
func MaxDistance(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 7:
		return 2
	}

	d := int(float64(length) * 0.34)
	if d < 2 {
		d = 2
	}
	if d > 3 {
		d = 3
	}
	return d
}
