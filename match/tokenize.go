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

// Tokenize splits input into lowercase word tokens. A token is a maximal
// run of ASCII letters or digits; every other character is a separator,
// and runs of separators collapse into a single boundary. Empty segments
// are discarded, so empty or all-separator input yields no tokens.
func Tokenize(input string) []string {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	return strings.FieldsFunc(cleaned, isSeparator)
}

// isSeparator reports whether r cannot be part of a token.
// Only ASCII letters and digits are token characters.
func isSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return false
	case r >= 'A' && r <= 'Z':
		return false
	case r >= '0' && r <= '9':
		return false
	}
	return true
}
