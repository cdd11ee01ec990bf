// Package textproc implements the deterministic text transformations behind
// the processing actions. All functions are pure: same input, same output,
// no I/O. They are string heuristics, not language understanding.
package textproc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Correction styles.
const (
	StyleFormal = "formal"
	StyleCasual = "casual"
)

// Correct applies the autocorrect heuristic for the given style and returns
// the result prefixed with a style-annotated label. Empty (or all-whitespace)
// input is returned unchanged.
//
// Sentences are split on the literal "." delimiter. Abbreviations and
// decimals are therefore mishandled; this matches the documented contract.
func Correct(text, style string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}

	var corrected string
	switch style {
	case StyleFormal:
		sentences := splitSentences(trimmed)
		for i, s := range sentences {
			sentences[i] = capitalize(s)
		}
		corrected = strings.Join(sentences, ". ")
		if !strings.HasSuffix(corrected, ".") {
			corrected += "."
		}
	case StyleCasual:
		corrected = capitalize(strings.ToLower(trimmed))
	default:
		corrected = capitalize(trimmed)
	}

	return fmt.Sprintf("AI Corrected (%s): %s", style, corrected)
}

// splitSentences splits on "." and drops segments that are empty after
// trimming.
func splitSentences(text string) []string {
	var out []string
	for _, seg := range strings.Split(text, ".") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// capitalize upper-cases the first rune, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
