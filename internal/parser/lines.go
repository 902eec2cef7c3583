package parser

import (
	"regexp"
	"strings"
)

// logicalLine is one statement-level line after continuation joining.
// LineNumber is the first physical line that contributed to it, used for
// all diagnostics and coverage keys (§4.3.1, §4.4.1).
type logicalLine struct {
	text       string
	lineNumber int
}

var blankOrComment = regexp.MustCompile(`^\s*(#.*)?$`)

// splitLogicalLines splits text on CR?LF, joins backslash-continued lines
// with a single space, and drops blank/comment-only lines while keeping
// correct line numbering for everything that remains (§4.3.1, §6 source
// format).
func splitLogicalLines(text string, startLine int) []logicalLine {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out []logicalLine
	i := 0
	lineNo := startLine
	for i < len(raw) {
		firstLineNo := lineNo
		var sb strings.Builder
		joined := false
		for {
			cur := raw[i]
			trimmedEnd := strings.TrimRight(cur, " \t")
			if strings.HasSuffix(trimmedEnd, "\\") {
				body := strings.TrimSuffix(trimmedEnd, "\\")
				if joined {
					sb.WriteByte(' ')
				}
				sb.WriteString(body)
				joined = true
				i++
				lineNo++
				if i >= len(raw) {
					break
				}
				continue
			}
			if joined {
				sb.WriteByte(' ')
				sb.WriteString(cur)
			} else {
				sb.WriteString(cur)
			}
			i++
			lineNo++
			break
		}

		text := sb.String()
		if !blankOrComment.MatchString(text) {
			out = append(out, logicalLine{text: text, lineNumber: firstLineNo})
		}
	}
	return out
}
