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


package core

import "errors"

// Domain errors
var (
	// ErrInvalidDocument indicates a patent record failed validation.
	ErrInvalidDocument = errors.New("invalid patent document")

	// ErrMissingDocNumber indicates a record carries no document number.
	ErrMissingDocNumber = errors.New("document number is missing")

	// ErrPatentNotFound indicates a lookup for an unknown document number.
	// Similarity lookups report it as data on the result, never as a
	// returned error.
	ErrPatentNotFound = errors.New("patent not found")
)
