// Package trace writes lowered action sequences for downstream consumers.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"tweetlang/pkg/action"
)

// Format selects how a trace is rendered.
type Format string

const (
	Text    Format = "text"    // one action per line: Punch(Left)
	Compact Format = "compact" // one line of two-letter codes: PL WR JL
	JSON    Format = "json"    // [{"verb":"punch","direction":"left"}]
	YAML    Format = "yaml"    // - verb: punch / direction: left
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{Text, Compact, JSON, YAML} }

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown trace format %q (want one of %v)", s, Formats())
}

// Code is the two-letter compact form of a: verb initial then direction initial.
func Code(a action.Action) string {
	return a.Verb.String()[:1] + a.Direction.String()[:1]
}

// Write renders seq to w. Text and Compact stream the sequence as it is
// produced; JSON and YAML collect it first.
func Write(w io.Writer, f Format, seq iter.Seq[action.Action]) error {
	switch f {
	case Text:
		return writeLines(w, seq, func(a action.Action) string { return a.String() }, "\n")
	case Compact:
		return writeLines(w, seq, Code, " ")
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(collect(seq))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(collect(seq)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown trace format %q", f)
}

// WriteSlice is Write for an already lowered sequence.
func WriteSlice(w io.Writer, f Format, actions []action.Action) error {
	return Write(w, f, slices.Values(actions))
}

func collect(seq iter.Seq[action.Action]) []action.Action {
	out := slices.Collect(seq)
	if out == nil {
		out = []action.Action{}
	}
	return out
}

// writeLines emits render(a) for each action separated by sep, then a newline.
// Nothing is written for an empty sequence.
func writeLines(w io.Writer, seq iter.Seq[action.Action], render func(action.Action) string, sep string) error {
	bw := bufio.NewWriter(w)
	first := true
	for a := range seq {
		if !first {
			bw.WriteString(sep)
		}
		first = false
		bw.WriteString(render(a))
	}
	if !first {
		bw.WriteString("\n")
	}
	return bw.Flush()
}
