package span

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderHuman formats d in the ASCII-art shape specified in spec §6:
//
//	<level>[<code>]: <message>
//	  --> <file>:<line>:<column>
//	<line_num> | <source line>
//	         | <spaces><carets> <label?>
//	note: …
//	help: …
//
// Grounded on the teacher's CompilerError.Format (internal/errors in
// the teacher repo), generalized to the closed AT#### code taxonomy
// and to carry notes/help/related lines.
func RenderHuman(d *Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s[%s]: %s\n", d.Level, d.Code, d.Message)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", d.File, d.Line, d.Column)

	if d.Snippet != "" {
		lineNumStr := fmt.Sprintf("%d | ", d.Line)
		fmt.Fprintf(&b, "%s%s\n", lineNumStr, d.Snippet)

		gutter := strings.Repeat(" ", len(lineNumStr)-2) + "| "
		carets := strings.Repeat(" ", max0(d.Column-1)) + strings.Repeat("^", max1(d.Length))
		b.WriteString(gutter)
		b.WriteString(carets)
		if d.Label != "" {
			b.WriteString(" ")
			b.WriteString(d.Label)
		}
		b.WriteString("\n")
	}

	for _, r := range d.Related {
		fmt.Fprintf(&b, "  note: %s (%s:%d:%d)\n", r.Message, r.File, r.Line, r.Column)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "note: %s\n", n)
	}
	if d.Help != "" {
		fmt.Fprintf(&b, "help: %s\n", d.Help)
	}

	return b.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// RenderJSON serializes d to its canonical JSON form.
func RenderJSON(d *Diagnostic) ([]byte, error) {
	return json.Marshal(d)
}

// ParseJSON is the inverse of RenderJSON; round-tripping a value
// through RenderJSON/ParseJSON must reproduce it exactly (spec §8).
func ParseJSON(data []byte) (*Diagnostic, error) {
	var d Diagnostic
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RenderHumanList concatenates the human rendering of every diagnostic
// in order, separated by blank lines.
func RenderHumanList(l List) string {
	parts := make([]string, 0, len(l))
	for _, d := range l {
		parts = append(parts, RenderHuman(d))
	}
	return strings.Join(parts, "\n")
}
