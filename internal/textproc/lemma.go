package textproc

import "strings"

// suffix rules applied in order; only the first match strips.
var suffixRules = []struct {
	suffix  string
	replace string
	minStem int
}{
	{"ies", "y", 3},
	{"sses", "ss", 3},
	{"ing", "", 4},
	{"edly", "", 4},
	{"ed", "", 4},
	{"s", "", 3},
}

// Lemmatize reduces an already-lowercased word to a base form by greedy
// suffix stripping. It is intentionally lightweight: comparisons only need
// inflected variants of the same word to collapse together, not a full
// morphological analysis.
func Lemmatize(word string) string {
	for _, rule := range suffixRules {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		if rule.suffix == "s" && strings.HasSuffix(word, "ss") {
			continue
		}
		stem := word[:len(word)-len(rule.suffix)]
		if len(stem) < rule.minStem {
			continue
		}
		return stem + rule.replace
	}
	return word
}
