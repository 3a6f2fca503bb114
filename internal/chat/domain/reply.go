package domain

import "strings"

// questionDelimiters end a question segment: the ASCII question mark plus
// the danda and double danda used as full stops in Hindi.
var questionDelimiters = []rune{'?', '।', '॥'}

func isQuestionDelimiter(r rune) bool {
	for _, d := range questionDelimiters {
		if r == d {
			return true
		}
	}
	return false
}

// TruncateToFirstQuestion keeps only the first question of an assistant
// reply. The reply is split on sentence-ending question delimiters; when
// more than one segment results, only the first is kept with a question
// mark re-appended. Replies without delimiters pass through unchanged.
func TruncateToFirstQuestion(reply string) string {
	parts := splitOnQuestionDelimiters(reply)
	if len(parts) <= 1 {
		return reply
	}
	return parts[0] + "?"
}

// splitOnQuestionDelimiters splits like a regex split: empty segments are
// kept, including a trailing one when the reply ends on a delimiter.
func splitOnQuestionDelimiters(s string) []string {
	var parts []string
	var cur strings.Builder
	for _, r := range s {
		if isQuestionDelimiter(r) {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(parts, cur.String())
}
