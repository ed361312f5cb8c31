package cards

import "testing"

func TestTransliterateGreek(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "acute accent",
			input:    "g;iasoy",
			expected: "γίασου",
		},
		{
			name:     "final sigma with accent",
			input:    "ftervt;ow",
			expected: "φτερωτός",
		},
		{
			name:     "diaeresis then acute",
			input:    "uro:;izv",
			expected: "θροΐζω",
		},
		{
			name:     "acute then diaeresis",
			input:    "uro;:izv",
			expected: "θροΐζω",
		},
		{
			name:     "combined marker on letter without combined form",
			input:    "uro:;azv",
			expected: "θρο:άζω",
		},
		{
			name:     "uppercase",
			input:    "Ellhnik;a",
			expected: "Ελληνικά",
		},
		{
			name:     "passthrough punctuation",
			input:    "kal, hm;era!",
			expected: "καλ, ημέρα!",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Greek.Transliterate(tc.input)
			if got != tc.expected {
				t.Errorf("Transliterate(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTransliterateEnglishIsIdentity(t *testing.T) {
	input := "the quick; brown: fox"
	if got := English.Transliterate(input); got != input {
		t.Errorf("English transliteration changed input: %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	if l, err := ParseLanguage("gr"); err != nil || l != Greek {
		t.Errorf("ParseLanguage(gr) = %v, %v", l, err)
	}
	if l, err := ParseLanguage("en"); err != nil || l != English {
		t.Errorf("ParseLanguage(en) = %v, %v", l, err)
	}
	if _, err := ParseLanguage("fr"); err == nil {
		t.Error("expected error for unknown language")
	}
}
