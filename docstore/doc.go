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


// Package docstore loads patent document collections from JSON batch files
// and reports on their shape.
//
// A Loader aggregates every file matching a glob pattern under a data
// directory into a single in-memory Collection, preserving file order and
// record order. Unreadable or malformed files are logged and skipped so a
// single bad batch never blocks a corpus. The package also provides
// field-coverage statistics and a directory watcher for detecting stale
// corpora.
package docstore
