package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestFingerprintFromContent(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test content"},
		},
		{
			name:  "empty part",
			parts: []string{""},
		},
		{
			name:  "many parts",
			parts: []string{"claims", "a vehicle sensor", "a display panel", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f1 := FingerprintFromContent(tt.parts...)
			f2 := FingerprintFromContent(tt.parts...)

			if f1 != f2 {
				t.Errorf("FingerprintFromContent() produced different values for same content: %d vs %d", f1, f2)
			}
		})
	}
}

func TestFingerprintFromContent_Different(t *testing.T) {
	f1 := FingerprintFromContent("content1")
	f2 := FingerprintFromContent("content2")

	if f1 == f2 {
		t.Errorf("FingerprintFromContent() produced same value for different content")
	}

	// Part boundaries matter: ("ab","c") is not ("a","bc").
	f3 := FingerprintFromContent("ab", "c")
	f4 := FingerprintFromContent("a", "bc")
	if f3 == f4 {
		t.Errorf("FingerprintFromContent() ignored part boundaries")
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "nil",
			value: nil,
			want:  "",
		},
		{
			name:  "string",
			value: "A vehicle sensor",
			want:  "A vehicle sensor",
		},
		{
			name:  "integral float keeps no decimal point",
			value: float64(20240012345),
			want:  "20240012345",
		},
		{
			name:  "fractional float",
			value: 0.25,
			want:  "0.25",
		},
		{
			name:  "bool",
			value: true,
			want:  "true",
		},
		{
			name:  "mixed sequence drops empties",
			value: []any{"first claim", "", nil, "second claim", float64(3)},
			want:  "first claim second claim 3",
		},
		{
			name:  "string sequence",
			value: []string{"one", "", "two"},
			want:  "one two",
		},
		{
			name:  "unsupported shape",
			value: map[string]any{"nested": "object"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stringify(tt.value)
			if got != tt.want {
				t.Errorf("Stringify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := Document{
		FieldDocNumber: float64(20240012345),
		FieldTitle:     "Wireless vehicle sensor network",
		FieldClaims:    []any{"claim one", "claim two"},
	}

	if got := doc.ID(); got != "20240012345" {
		t.Errorf("Document.ID() = %q, want %q", got, "20240012345")
	}
	if got := doc.Title(); got != "Wireless vehicle sensor network" {
		t.Errorf("Document.Title() = %q", got)
	}
	if got := doc.StringField(FieldClaims); got != "claim one claim two" {
		t.Errorf("Document.StringField(claims) = %q", got)
	}
	if _, ok := doc.Field(FieldAbstract); ok {
		t.Errorf("Document.Field() reported a missing field as present")
	}
}

func TestDocumentTitle_Fallback(t *testing.T) {
	if got := (Document{}).Title(); got != "No Title" {
		t.Errorf("Document.Title() on empty record = %q, want %q", got, "No Title")
	}
	if got := (Document{FieldTitle: ""}).Title(); got != "No Title" {
		t.Errorf("Document.Title() on empty title = %q, want %q", got, "No Title")
	}
}

func TestRiskFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{1.0, RiskHigh},
		{0.71, RiskHigh},
		{0.7, RiskMedium},
		{0.5, RiskMedium},
		{0.41, RiskMedium},
		{0.4, RiskLow},
		{0.1, RiskLow},
		{0.0, RiskLow},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %.2f", tt.score), func(t *testing.T) {
			if got := RiskFromScore(tt.score); got != tt.want {
				t.Errorf("RiskFromScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestSearchResult_NotFound(t *testing.T) {
	marker := SearchResult{
		PatentID: "US999",
		Err:      fmt.Errorf("%w: US999", ErrPatentNotFound),
	}
	if !marker.NotFound() {
		t.Errorf("SearchResult.NotFound() = false for a not-found marker")
	}

	hit := SearchResult{PatentID: "US1", Score: 0.5, Risk: RiskMedium}
	if hit.NotFound() {
		t.Errorf("SearchResult.NotFound() = true for a regular hit")
	}

	other := SearchResult{Err: errors.New("boom")}
	if other.NotFound() {
		t.Errorf("SearchResult.NotFound() = true for an unrelated error")
	}
}
