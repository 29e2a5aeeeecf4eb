package logs

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var termEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`)

// EscapeTerm escapes backslashes and quotes for use inside a Logs Insights string literal.
func EscapeTerm(term string) string {
	return termEscaper.Replace(term)
}

// BuildQuery returns the Logs Insights query for a search.
//
// With a term, the query requires a literal match and then either its lower-case or
// upper-case form. This is a heuristic, not case-insensitive search: mixed-case
// occurrences only match when the literal form also appears in the message.
func BuildQuery(term string, limit int) string {
	var b strings.Builder
	b.WriteString("fields @timestamp, @message")
	if term != "" {
		escaped := EscapeTerm(term)
		fmt.Fprintf(&b, " | filter @message like '%%%s%%'", escaped)
		fmt.Fprintf(&b, " | filter @message like '%%%s%%' or @message like '%%%s%%'",
			strings.ToLower(escaped), strings.ToUpper(escaped))
	}
	fmt.Fprintf(&b, " | sort @timestamp desc | limit %d", limit)
	return b.String()
}

// FindMatches returns the non-overlapping, case-insensitive occurrences of term in message as byte spans.
func FindMatches(message, term string) []Span {
	spans := []Span{}
	if term == "" {
		return spans
	}
	termRunes := utf8.RuneCountInString(term)
	for i := 0; i < len(message); {
		j := i
		for n := 0; n < termRunes && j < len(message); n++ {
			_, size := utf8.DecodeRuneInString(message[j:])
			j += size
		}
		if strings.EqualFold(message[i:j], term) {
			spans = append(spans, Span{Start: i, End: j})
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(message[i:])
		i += size
	}
	return spans
}
