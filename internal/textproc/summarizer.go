package textproc

import "strings"

// SummaryWordLimit is the truncation point for the summarize action.
const SummaryWordLimit = 30

// Summary is the result of summarizing a text: the (possibly truncated)
// output plus the word counts used for response metadata.
type Summary struct {
	Text          string
	OriginalWords int
	SummaryWords  int
	Truncated     bool
}

// Summarize truncates text to the first SummaryWordLimit whitespace-delimited
// words. Input at or under the limit is returned unchanged. Truncated output
// is joined with single spaces and carries a trailing ellipsis marker.
func Summarize(text string) Summary {
	words := strings.Fields(text)
	if len(words) <= SummaryWordLimit {
		return Summary{
			Text:          text,
			OriginalWords: len(words),
			SummaryWords:  len(words),
		}
	}
	return Summary{
		Text:          strings.Join(words[:SummaryWordLimit], " ") + "...",
		OriginalWords: len(words),
		SummaryWords:  SummaryWordLimit,
		Truncated:     true,
	}
}
