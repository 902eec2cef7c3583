package value

import (
	"regexp"
	"strconv"
)

// RegexFlags is a bitset over the three portable flags the language
// surfaces (§9 design note: "regex portability").
type RegexFlags uint8

const (
	RegexCaseInsensitive RegexFlags = 1 << iota
	RegexMultiLine
	RegexDotMatchesNewline
)

// Regex pairs a compiled pattern with the source text and flags that
// produced it. Equality is by source pattern (§3.1 invariant), not by
// compiled form or flags.
type Regex struct {
	Source   string
	Flags    RegexFlags
	compiled *regexp.Regexp
}

// NewRegex compiles source with the given flags using Go's RE2 engine
// (stdlib `regexp` — see SPEC_FULL.md DOMAIN STACK for why no third-party
// engine is used). It does not attempt to emulate another engine's
// backtracking or backreference behavior.
func NewRegex(source string, flags RegexFlags) (*Regex, error) {
	var prefix string
	if flags&RegexCaseInsensitive != 0 {
		prefix += "i"
	}
	if flags&RegexMultiLine != 0 {
		prefix += "m"
	}
	if flags&RegexDotMatchesNewline != 0 {
		prefix += "s"
	}
	pattern := source
	if prefix != "" {
		pattern = "(?" + prefix + ")" + source
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{Source: source, Flags: flags, compiled: re}, nil
}

// Compiled returns the underlying *regexp.Regexp.
func (r *Regex) Compiled() *regexp.Regexp { return r.compiled }

// Match reports whether the regex matches anywhere in s.
func (r *Regex) Match(s string) bool {
	if r == nil || r.compiled == nil {
		return false
	}
	return r.compiled.MatchString(s)
}

// Groups runs the regex against s and returns a flat map with keys "0",
// "1", ... plus any named capture groups, or nil if there is no match
// (§9 design note: "exposed through a flat map").
func (r *Regex) Groups(s string) map[string]string {
	if r == nil || r.compiled == nil {
		return nil
	}
	m := r.compiled.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	names := r.compiled.SubexpNames()
	out := make(map[string]string, len(m))
	for i, g := range m {
		out[strconv.Itoa(i)] = g
		if i < len(names) && names[i] != "" {
			out[names[i]] = g
		}
	}
	return out
}
