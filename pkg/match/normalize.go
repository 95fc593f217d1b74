package match

import "strings"

// legalSuffixes are checked in order; each pass removes at most the first
// match.
var legalSuffixes = []string{
	" LTD",
	" LIMITED",
	" PLC",
	" INC",
	" LLC",
	" CO",
	" COMPANY",
	" & CO",
	" AND CO",
}

// Normalize canonicalizes a free-text company name for comparison:
// uppercase, trim, drop periods and commas, strip a trailing legal-entity
// suffix, collapse whitespace. The pass repeats until the name is stable, so
// Normalize(Normalize(x)) == Normalize(x) for every input, including names
// that hide a suffix behind punctuation or stack several suffixes. Empty
// input normalizes to "".
func Normalize(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	for {
		next := normalizePass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizePass(s string) string {
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
