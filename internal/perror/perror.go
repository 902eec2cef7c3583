// Package perror implements BareScript's two escaping error kinds,
// ParserError and RuntimeError (§7), plus the caret-formatted source
// display both use. The formatting style is grounded on the teacher's
// own CompilerError.Format, adapted to BareScript's column-truncation
// rule (§4.3.2): lines longer than 120 columns are truncated with "..."
// markers while keeping the caret aligned to the offending column.
package perror

import (
	"fmt"
	"strings"
)

const maxLineWidth = 120

// ParserError is raised by internal/parser (§7). It always carries a
// 1-based line and column plus, when known, the name of the script being
// parsed.
type ParserError struct {
	Err          string
	Line         string
	ColumnNumber int
	LineNumber   int
	ScriptName   string
}

func (e *ParserError) Error() string {
	var sb strings.Builder
	if e.ScriptName != "" {
		fmt.Fprintf(&sb, "%s:%d: %s\n", e.ScriptName, e.LineNumber, e.Err)
	} else {
		fmt.Fprintf(&sb, "%d: %s\n", e.LineNumber, e.Err)
	}
	line, col := truncateForDisplay(e.Line, e.ColumnNumber)
	sb.WriteString(line)
	sb.WriteByte('\n')
	if col > 0 {
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteByte('^')
	}
	return sb.String()
}

// truncateForDisplay shortens src to maxLineWidth columns when needed,
// inserting "..." markers at the cut points and repositioning col so the
// caret still points at the same logical character.
func truncateForDisplay(src string, col int) (string, int) {
	runes := []rune(src)
	if len(runes) <= maxLineWidth || col < 1 {
		return src, col
	}

	const marker = "..."
	// Keep a window of maxLineWidth runes centered on the column, leaving
	// room for the marker(s) we add.
	window := maxLineWidth - 2*len(marker)
	if window < 1 {
		window = 1
	}
	start := col - 1 - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(runes) {
		end = len(runes)
		start = end - window
		if start < 0 {
			start = 0
		}
	}

	out := string(runes[start:end])
	newCol := col - start
	if start > 0 {
		out = marker + out
		newCol += len(marker)
	}
	if end < len(runes) {
		out += marker
	}
	return out, newCol
}

// RuntimeError is raised by internal/interp (§7): no column or caret,
// just scriptName:line decoration when those are known.
type RuntimeError struct {
	Message    string
	ScriptName string
	LineNumber int
}

func (e *RuntimeError) Error() string {
	if e.ScriptName == "" {
		return e.Message
	}
	return fmt.Sprintf("%s:%d: %s", e.ScriptName, e.LineNumber, e.Message)
}

// NewRuntimeError constructs an undecorated RuntimeError (scriptName may be
// filled in later as the error propagates through nested calls).
func NewRuntimeError(format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, a...)}
}

// WithLocation returns a copy of e decorated with scriptName/line, unless
// it is already decorated (the innermost frame wins, matching the
// teacher's practice of attaching location once at the point of failure).
func (e *RuntimeError) WithLocation(scriptName string, line int) *RuntimeError {
	if e.ScriptName != "" {
		return e
	}
	cp := *e
	cp.ScriptName = scriptName
	cp.LineNumber = line
	return &cp
}
