package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name: "valid record",
			doc: Document{
				FieldDocNumber: "US20240012345",
				FieldTitle:     "Vehicle sensor",
			},
			wantErr: nil,
		},
		{
			name: "numeric document number",
			doc: Document{
				FieldDocNumber: float64(20240012345),
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "missing document number",
			doc:     Document{FieldTitle: "Untitled"},
			wantErr: ErrMissingDocNumber,
		},
		{
			name:    "empty document number",
			doc:     Document{FieldDocNumber: ""},
			wantErr: ErrMissingDocNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasCriticalFields(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{
			name: "all critical fields populated",
			doc: Document{
				FieldTitle:    "Vehicle sensor",
				FieldAbstract: "A sensor for vehicles.",
				FieldClaims:   "1. A sensor.",
			},
			want: true,
		},
		{
			name: "claims as list",
			doc: Document{
				FieldTitle:    "Vehicle sensor",
				FieldAbstract: "A sensor for vehicles.",
				FieldClaims:   []any{"1. A sensor."},
			},
			want: true,
		},
		{
			name: "missing abstract",
			doc: Document{
				FieldTitle:  "Vehicle sensor",
				FieldClaims: "1. A sensor.",
			},
			want: false,
		},
		{
			name: "empty claims list",
			doc: Document{
				FieldTitle:    "Vehicle sensor",
				FieldAbstract: "A sensor for vehicles.",
				FieldClaims:   []any{},
			},
			want: false,
		},
		{
			name: "null title",
			doc: Document{
				FieldTitle:    nil,
				FieldAbstract: "A sensor for vehicles.",
				FieldClaims:   "1. A sensor.",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCriticalFields(tt.doc); got != tt.want {
				t.Errorf("HasCriticalFields() = %v, want %v", got, tt.want)
			}
		})
	}
}
