package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Run("lowercases and collapses whitespace", func(t *testing.T) {
		got := normalizeText("  Wireless \t SENSOR\nNetwork ")
		assert.Equal(t, "wireless sensor network", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"  Mixed   Case\tText  ",
			"already normalized",
			"",
			"ONE",
		}
		for _, in := range inputs {
			once := normalizeText(in)
			assert.Equal(t, once, normalizeText(once))
		}
	})
}

func TestNormalizeFieldValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"plain string", "A Vehicle  Sensor", "a vehicle sensor"},
		{"claim list", []any{"First CLAIM.", "Second claim."}, "first claim. second claim."},
		{"number", float64(42), "42"},
		{"unsupported shape", map[string]any{"k": "v"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeFieldValue(tt.value))
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Run("unigrams plus bigrams", func(t *testing.T) {
		got := tokenize("wireless sensor network")
		want := []string{
			"wireless", "sensor", "network",
			"wireless sensor", "sensor network",
		}
		assert.Equal(t, want, got)
	})

	t.Run("stop words removed before bigrams form", func(t *testing.T) {
		got := tokenize("the state of the art")
		assert.Equal(t, []string{"state", "art", "state art"}, got)
	})

	t.Run("single character tokens dropped", func(t *testing.T) {
		got := tokenize("a x sensor y")
		assert.Equal(t, []string{"sensor"}, got)
	})

	t.Run("digits and underscores are word characters", func(t *testing.T) {
		got := tokenize("5g modem_chip")
		assert.Equal(t, []string{"5g", "modem_chip", "5g modem_chip"}, got)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Nil(t, tokenize(""))
	})

	t.Run("all stop words", func(t *testing.T) {
		assert.Nil(t, tokenize("the of and"))
	})

	t.Run("single term has no bigram", func(t *testing.T) {
		assert.Equal(t, []string{"sensor"}, tokenize("sensor"))
	})
}
