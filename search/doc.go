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


// Package search runs typo-tolerant recipe queries.
//
// The pipeline makes a single pass over the full collection: recipes are
// sorted by the requested key and kept when the query fuzzily matches the
// title or one of the tags. There is no stored index and no scoring;
// matching is the boolean predicate from the match package.
//
// The Searcher type wires the pipeline to a storage.RecipeRepository and
// reports progress through the optional SearchMonitor interface.
package search
