// Package textproc normalizes raw document text into token sequences for
// the scoring functions: lowercasing, punctuation and number stripping,
// stop-word removal, and light suffix lemmatization.
package textproc

import (
	"strings"
	"unicode"
)

// Tokenize converts raw text into an ordered sequence of normalized word
// tokens. Tokens are lowercased, punctuation-trimmed, number-free,
// stop-word-filtered, and lemmatized. Order and duplicates are preserved
// so that overlap counting stays meaningful downstream.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.ToLower(strings.Trim(f, "'"))
		if w == "" || hasDigit(w) || IsStopWord(w) {
			continue
		}
		tokens = append(tokens, Lemmatize(w))
	}
	return tokens
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
