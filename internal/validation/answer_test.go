package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := map[string]string{
		"The Beatles":            "beatles",
		"  Lake   Victoria! ":    "lake victoria",
		"An Apple":               "apple",
		"Édith Piaf":             "edith piaf",
		"Muhammad Ali (Cassius)": "muhammad ali cassius",
		"":                       "",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeAnswer(in), in)
	}
}

func TestIsSimilarAnswer(t *testing.T) {
	tests := []struct {
		expected string
		given    string
		want     bool
	}{
		{"Muhammad Ali", "muhammad ali", true},
		{"Lake Victoria", "victoria", true},
		{"Escher", "escer", true},
		{"George Washington Carver", "George Washington Carvr", true},
		{"Apollo 13", "Apollo 13", true},
		{"Brazil", "Uruguay", false},
		{"Lake Victoria", "a", false},
		{"Scarab", "", false},
		{"Tom Cruise", "   ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSimilarAnswer(tt.expected, tt.given), "%q vs %q", tt.expected, tt.given)
	}
}
