package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SyntaxError reports source text that does not match the grammar. Lexing and
// parsing stop at the first one; no partial program is returned alongside it.
type SyntaxError struct {
	Line    int
	Col     int
	Msg     string
	Hint    string // closest keyword to the offending word, if any
	Snippet string // the offending source line, trimmed
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d, col %d: %s", e.Line, e.Col, e.Msg)
	if e.Hint != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Hint)
	}
	if e.Snippet != "" {
		b.WriteString("\n  |> ")
		b.WriteString(e.Snippet)
	}
	return b.String()
}

// snippet returns the trimmed 1-based source line, or "" when out of range.
func snippet(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}

var (
	verbWords      = []string{"jump", "walk", "punch"}
	directionWords = []string{"left", "right"}
	startWords     = append([]string{"do"}, verbWords...)
)

// suggest picks the candidate that fuzzily matches word best, or "".
func suggest(word string, candidates []string) string {
	if word == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	if strings.EqualFold(ranks[0].Target, word) {
		return ""
	}
	return ranks[0].Target
}
