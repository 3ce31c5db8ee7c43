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

import "fmt"

// CriticalFields lists the fields a patent record must populate to be
// useful for indexing and conflict detection.
var CriticalFields = []string{FieldTitle, FieldAbstract, FieldClaims}

// ValidateDocument validates a patent record according to domain rules.
//
// Validation rules:
//   - the record must not be nil
//   - doc_number must be present and non-empty after coercion
//
// NOT validated:
//   - critical text fields (records missing them still index; their
//     vectors are simply empty, see HasCriticalFields for filtering)
func ValidateDocument(doc Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.ID() == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingDocNumber)
	}

	return nil
}

// HasCriticalFields reports whether every critical field is present and
// non-empty after string coercion. Collections can be filtered on it to
// drop records that would only ever produce zero-scoring results.
func HasCriticalFields(doc Document) bool {
	for _, field := range CriticalFields {
		if doc.StringField(field) == "" {
			return false
		}
	}
	return true
}
