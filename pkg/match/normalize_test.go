package match

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "Whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "Uppercases and trims",
			input:    "  acme widgets  ",
			expected: "ACME WIDGETS",
		},
		{
			name:     "Strips Ltd suffix",
			input:    "Acme Widgets Ltd",
			expected: "ACME WIDGETS",
		},
		{
			name:     "Strips Limited suffix",
			input:    "Acme Widgets Limited",
			expected: "ACME WIDGETS",
		},
		{
			name:     "Strips PLC suffix",
			input:    "Northern Rail plc",
			expected: "NORTHERN RAIL",
		},
		{
			name:     "First matching suffix wins",
			input:    "Smith and Co",
			expected: "SMITH AND",
		},
		{
			name:     "Suffix behind a trailing period",
			input:    "Acme Ltd.",
			expected: "ACME",
		},
		{
			name:     "Suffix behind a trailing comma",
			input:    "Widget Works, Inc.",
			expected: "WIDGET WORKS",
		},
		{
			name:     "Stacked suffixes stripped to a stable name",
			input:    "Acme Trading Co Ltd",
			expected: "ACME TRADING",
		},
		{
			name:     "Removes periods and commas",
			input:    "J. Smith, Son",
			expected: "J SMITH SON",
		},
		{
			name:     "Collapses whitespace runs",
			input:    "Acme   Widgets\t Trading",
			expected: "ACME WIDGETS TRADING",
		},
		{
			name:     "Suffix in the middle is kept",
			input:    "Ltd Haulage Services",
			expected: "LTD HAULAGE SERVICES",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Normalize(tc.input)
			if result != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Acme Widgets Ltd",
		"  J. Smith, Son & Daughters  ",
		"NORTHERN   RAIL plc",
		"already normal",
		"Ltd Haulage Services",
		"Acme Ltd.",
		"Smith & Co.",
		"Widget Works, Inc.",
		"Acme Trading Co Ltd",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeSuffixEquivalence(t *testing.T) {
	if Normalize("Acme Widgets Ltd") != Normalize("ACME WIDGETS") {
		t.Errorf("expected %q and %q to normalize identically", "Acme Widgets Ltd", "ACME WIDGETS")
	}
}
