// Copyright 2026 Poiesic Systems
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


// Package search builds and queries term-frequency similarity indexes over
// patent collections.
//
// The Engine type owns a TF-IDF index over one text field and answers
// three kinds of queries:
//   - free-text search ranked by cosine similarity
//   - conflict detection (patents similar to a given document number)
//   - hybrid search combining text ranking with metadata filters
//
// A new engine is unbuilt; the first query builds the index over the
// default field, and Build rebuilds it over any field at any time. Queries
// share read access while rebuilds take exclusive access, so every result
// set comes from one consistent index.
package search
