package perror

import (
	"strings"
	"testing"
)

func TestParserErrorShortLine(t *testing.T) {
	err := &ParserError{Err: "Missing endif statement", Line: "if x:", ColumnNumber: 1, LineNumber: 1, ScriptName: "-c 0"}
	msg := err.Error()
	if !strings.Contains(msg, "Missing endif statement") {
		t.Errorf("expected message in output, got %q", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Errorf("expected caret in output, got %q", msg)
	}
}

func TestParserErrorTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 200) + "!" + strings.Repeat("y", 50)
	col := 201
	err := &ParserError{Err: "bad token", Line: long, ColumnNumber: col, LineNumber: 5}
	msg := err.Error()
	lines := strings.Split(msg, "\n")
	if len(lines[1]) > maxLineWidth+10 {
		t.Errorf("expected truncated source line, got length %d", len(lines[1]))
	}
	if !strings.Contains(msg, "...") {
		t.Errorf("expected truncation marker, got %q", msg)
	}
	// The caret must land under the '!' we inserted.
	caretCol := strings.Index(lines[2], "^")
	if caretCol < 0 {
		t.Fatalf("no caret found")
	}
	if lines[1][caretCol] != '!' {
		t.Errorf("caret points at %q, want '!'", lines[1][caretCol])
	}
}

func TestRuntimeErrorLocation(t *testing.T) {
	err := NewRuntimeError("Unknown jump label")
	decorated := err.WithLocation("main.bare", 7)
	if decorated.Error() != "main.bare:7: Unknown jump label" {
		t.Errorf("got %q", decorated.Error())
	}
	// innermost frame wins
	again := decorated.WithLocation("other.bare", 99)
	if again != decorated {
		t.Errorf("expected WithLocation to be a no-op once already located")
	}
}
