package textproc

import (
	"strings"
	"testing"
)

func TestAnalyze_KnownSentence(t *testing.T) {
	a := Analyze("The quick brown fox jumps.")

	if a.WordCount != 5 {
		t.Errorf("word count = %d, want 5", a.WordCount)
	}
	if a.SentenceCount != 1 {
		t.Errorf("sentence count = %d, want 1", a.SentenceCount)
	}
	if a.CharacterCount != 26 {
		t.Errorf("character count = %d, want 26", a.CharacterCount)
	}
	if a.Complexity != ComplexityEasy {
		t.Errorf("complexity = %q, want %q", a.Complexity, ComplexityEasy)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze("")
	if a.WordCount != 0 || a.SentenceCount != 0 || a.CharacterCount != 0 {
		t.Errorf("empty input should yield zero counts, got %+v", a)
	}
	if a.AvgWordLength != 0 {
		t.Errorf("avg word length = %f, want 0", a.AvgWordLength)
	}
}

func TestAnalyze_CountsMatchInput(t *testing.T) {
	inputs := []string{
		"one",
		"two  words",
		"tabs\tand\nnewlines here",
		"Trailing space. ",
		"No terminator at all",
	}
	for _, in := range inputs {
		a := Analyze(in)
		if want := len(strings.Fields(in)); a.WordCount != want {
			t.Errorf("Analyze(%q).WordCount = %d, want %d", in, a.WordCount, want)
		}
		if a.CharacterCount != len(in) {
			t.Errorf("Analyze(%q).CharacterCount = %d, want %d", in, a.CharacterCount, len(in))
		}
	}
}

func TestAnalyze_SentenceCountSkipsEmptySegments(t *testing.T) {
	a := Analyze("One. Two... Three.")
	// "..." produces empty segments which must not count.
	if a.SentenceCount != 3 {
		t.Errorf("sentence count = %d, want 3", a.SentenceCount)
	}
}

func TestAnalyze_ComplexityThresholds(t *testing.T) {
	cases := []struct {
		words int
		want  string
	}{
		{99, ComplexityEasy},
		{100, ComplexityModerate},
		{299, ComplexityModerate},
		{300, ComplexityComplex},
	}
	for _, tc := range cases {
		text := strings.TrimSpace(strings.Repeat("word ", tc.words))
		if got := Analyze(text).Complexity; got != tc.want {
			t.Errorf("%d words: complexity = %q, want %q", tc.words, got, tc.want)
		}
	}
}

func TestAnalyze_AvgWordLength(t *testing.T) {
	// "abc de" = 6 chars, 1 space removed -> 5 chars over 2 words.
	a := Analyze("abc de")
	if a.AvgWordLength != 2.5 {
		t.Errorf("avg word length = %f, want 2.5", a.AvgWordLength)
	}
}

func TestAnalyze_ReadingTime(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 400))
	a := Analyze(text)
	if a.ReadingTimeMinutes != 2 {
		t.Errorf("reading time = %f minutes, want 2", a.ReadingTimeMinutes)
	}
}

func TestSummarize_ShortInputUnchanged(t *testing.T) {
	in := "A short text under the limit."
	s := Summarize(in)
	if s.Text != in {
		t.Errorf("short input changed: %q", s.Text)
	}
	if s.Truncated {
		t.Error("short input should not be marked truncated")
	}
}

func TestSummarize_IdempotentUnderLimit(t *testing.T) {
	in := "A short text under the limit."
	once := Summarize(in).Text
	twice := Summarize(once).Text
	if once != twice {
		t.Errorf("summarize not idempotent: %q vs %q", once, twice)
	}
}

func TestSummarize_TruncatesLongInput(t *testing.T) {
	words := make([]string, 45)
	for i := range words {
		words[i] = "w" + string(rune('a'+i%26))
	}
	in := strings.Join(words, "  ") // double spaces collapse on rejoin

	s := Summarize(in)
	if !s.Truncated {
		t.Fatal("45-word input should be truncated")
	}
	if s.OriginalWords != 45 || s.SummaryWords != SummaryWordLimit {
		t.Errorf("word counts = %d/%d, want 45/%d", s.OriginalWords, s.SummaryWords, SummaryWordLimit)
	}
	if !strings.HasSuffix(s.Text, "...") {
		t.Errorf("missing ellipsis marker: %q", s.Text)
	}
	want := strings.Join(words[:SummaryWordLimit], " ") + "..."
	if s.Text != want {
		t.Errorf("summary = %q, want %q", s.Text, want)
	}
	if got := len(strings.Fields(s.Text)); got != SummaryWordLimit {
		t.Errorf("output word count = %d, want %d", got, SummaryWordLimit)
	}
}

func TestCorrect_FormalAddsCapitalAndPeriod(t *testing.T) {
	got := Correct("hello world", StyleFormal)
	want := "AI Corrected (formal): Hello world."
	if got != want {
		t.Errorf("Correct = %q, want %q", got, want)
	}
}

func TestCorrect_FormalMultipleSentences(t *testing.T) {
	got := Correct("first part. second part", StyleFormal)
	want := "AI Corrected (formal): First part. Second part."
	if got != want {
		t.Errorf("Correct = %q, want %q", got, want)
	}
}

func TestCorrect_CasualLowercasesAll(t *testing.T) {
	got := Correct("HELLO World", StyleCasual)
	want := "AI Corrected (casual): Hello world"
	if got != want {
		t.Errorf("Correct = %q, want %q", got, want)
	}
}

func TestCorrect_UnknownStyleCapitalizesWhole(t *testing.T) {
	got := Correct("hello. world", "shouty")
	want := "AI Corrected (shouty): Hello. world"
	if got != want {
		t.Errorf("Correct = %q, want %q", got, want)
	}
}

func TestCorrect_EmptyIsNoOp(t *testing.T) {
	if got := Correct("", StyleFormal); got != "" {
		t.Errorf("empty input changed: %q", got)
	}
	if got := Correct("   ", StyleFormal); got != "   " {
		t.Errorf("whitespace input changed: %q", got)
	}
}
