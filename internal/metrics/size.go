package metrics

import (
	"strings"
	"unicode/utf8"
)

// TextSize holds byte, rune, word and line counts of a prompt or reply.
type TextSize struct {
	Bytes  int `json:"bytes"`
	Runes  int `json:"runes"`
	Words  int `json:"words"`
	Lines  int `json:"lines"`
	Tokens int `json:"tokens_est"`
}

// messageOverhead is the fixed per-message cost added by EstimateTokens.
const messageOverhead = 4

// Measure computes the TextSize of s.
func Measure(s string) TextSize {
	return TextSize{
		Bytes:  len(s),
		Runes:  utf8.RuneCountInString(s),
		Words:  len(strings.Fields(s)),
		Lines:  countLines(s),
		Tokens: EstimateTokens(s),
	}
}

// EstimateTokens is a deterministic upper-bound guess at the input-token cost
// of one message: its rune count plus a small fixed overhead. Empty is free.
func EstimateTokens(s string) int {
	if s == "" {
		return 0
	}
	return utf8.RuneCountInString(s) + messageOverhead
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}
