package search

import (
	"regexp"
	"strings"

	"github.com/poiesic/priorart/core"
)

// tokenPattern matches word tokens of two or more letters, digits, or
// underscores. Single-character tokens carry no signal in patent text.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// normalizeFieldValue coerces a raw field value to canonical index text.
// It is total over the value shapes JSON decoding produces, so absent and
// malformed fields vectorize as empty documents instead of failing a
// build.
func normalizeFieldValue(v any) string {
	return normalizeText(core.Stringify(v))
}

// normalizeText lowercases, collapses whitespace runs to single spaces,
// and trims. Idempotent.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenize splits normalized text into index terms: stop-filtered word
// tokens plus adjacent-pair bigrams joined with one space. Stop words are
// removed before pairs form.
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(text, -1)

	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !englishStopWords[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(kept)-1)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}
