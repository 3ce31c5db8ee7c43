package search

import (
	"strings"

	"github.com/poiesic/priorart/core"
)

// Filters narrows hybrid search candidates by patent metadata. Zero-value
// fields are inactive; the zero Filters matches every document.
type Filters struct {
	// Classification keeps documents whose classification field starts
	// with the code. Matching is case-sensitive, so "B60" matches
	// "B60K 28/10" but not "b60k 28/10".
	Classification string

	// TitleKeywords keeps documents whose title contains every keyword,
	// case-insensitively.
	TitleKeywords []string

	// SpecificTitle keeps documents whose title contains the phrase,
	// case-insensitively.
	SpecificTitle string
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f.Classification == "" && len(f.TitleKeywords) == 0 && f.SpecificTitle == ""
}

// Match reports whether doc passes every active filter. Documents missing
// a filtered field never match.
func (f Filters) Match(doc core.Document) bool {
	if f.Classification != "" &&
		!strings.HasPrefix(doc.StringField(core.FieldClassification), f.Classification) {
		return false
	}

	if len(f.TitleKeywords) == 0 && f.SpecificTitle == "" {
		return true
	}

	title := strings.ToLower(doc.StringField(core.FieldTitle))
	for _, kw := range f.TitleKeywords {
		if !strings.Contains(title, strings.ToLower(kw)) {
			return false
		}
	}
	if f.SpecificTitle != "" && !strings.Contains(title, strings.ToLower(f.SpecificTitle)) {
		return false
	}
	return true
}
