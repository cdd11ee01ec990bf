package textproc

import "strings"

// Complexity labels, keyed off word count.
const (
	ComplexityEasy     = "Easy"
	ComplexityModerate = "Moderate"
	ComplexityComplex  = "Complex"
)

const wordsPerMinute = 200

// Analysis is the structured result of the analyze action.
type Analysis struct {
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
	CharacterCount     int     `json:"character_count"`
	AvgWordLength      float64 `json:"avg_word_length"`
	ReadingTimeMinutes float64 `json:"reading_time_minutes"`
	Complexity         string  `json:"complexity"`
}

// Analyze computes surface statistics for text. Empty input yields zero
// counts, never an error. Sentence counting splits on the literal "."
// delimiter and counts non-empty segments.
func Analyze(text string) Analysis {
	words := len(strings.Fields(text))

	sentences := 0
	for _, seg := range strings.Split(text, ".") {
		if strings.TrimSpace(seg) != "" {
			sentences++
		}
	}

	chars := len(text)
	charsNoSpaces := len(strings.ReplaceAll(text, " ", ""))

	divisor := words
	if divisor < 1 {
		divisor = 1
	}

	complexity := ComplexityEasy
	switch {
	case words >= 300:
		complexity = ComplexityComplex
	case words >= 100:
		complexity = ComplexityModerate
	}

	return Analysis{
		WordCount:          words,
		SentenceCount:      sentences,
		CharacterCount:     chars,
		AvgWordLength:      float64(charsNoSpaces) / float64(divisor),
		ReadingTimeMinutes: float64(words) / wordsPerMinute,
		Complexity:         complexity,
	}
}
