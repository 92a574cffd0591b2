package util

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "HADES", "hades"},
		{"spaces to dashes", "hollow knight", "hollow-knight"},
		{"underscores to dashes", "hollow_knight", "hollow-knight"},
		{"already normalized", "the-witcher-3", "the-witcher-3"},

		// Whitespace handling
		{"trim whitespace", "  hades  ", "hades"},
		{"multiple spaces", "hollow   knight", "hollow-knight"},
		{"tabs and spaces", "hollow\t knight", "hollow-knight"},

		// Special characters
		{"trademark removal", "NieR:Automata™", "nierautomata"},
		{"punctuation removal", "divinity/original-sin", "divinity-original-sin"},
		{"apostrophe removal", "assassin's creed", "assassins-creed"},

		// Dash handling
		{"multiple dashes", "hollow--knight", "hollow-knight"},
		{"leading dashes", "--hades", "hades"},
		{"trailing dashes", "hades--", "hades"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "the witcher 3", "the-witcher-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSearchTerm(t *testing.T) {
	tests := []struct {
		slug     string
		expected string
	}{
		{"the-witcher-3", "the witcher 3"},
		{"hades", "hades"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SearchTerm(tt.slug); got != tt.expected {
			t.Errorf("SearchTerm(%q) = %q, want %q", tt.slug, got, tt.expected)
		}
	}
}
