// Package docextract implements the external documentation extractor (§4.7):
// it scans (file, text) pairs for $function/$group/$doc/$return/$arg
// directive comments and emits a sorted JSON record per function.
package docextract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tidwall/sjson"
)

// File is one source unit handed to Extract.
type File struct {
	Name string
	Text string
}

// Arg is one $arg directive attached to a function record.
type Arg struct {
	Name string
	Doc  string
}

// Record is one extracted function's documentation.
type Record struct {
	Name   string
	Group  string
	Doc    string
	Args   []Arg
	Return string
}

var (
	commentRE  = regexp.MustCompile(`^\s*(?://|#)\s?(.*)$`)
	keywordRE  = regexp.MustCompile(`^\$(function|group|doc|return):\s?(.*)$`)
	argRE      = regexp.MustCompile(`^\$arg\s+([A-Za-z_][A-Za-z0-9_]*)(?:\([^)]*\))?:\s?(.*)$`)
)

// Extract scans files in order and returns the canonical JSON array of
// records, sorted by function name in natural order (§4.7, §6).
//
// Every function must be given a $group and a $doc line or Extract fails;
// an input that yields zero records is also an error, since a doc run with
// nothing to show almost always means the directives weren't found at all.
func Extract(files []File) (string, error) {
	records, err := scan(files)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("docextract: no $function records found")
	}

	names := make([]string, 0, len(records))
	byName := make(map[string]*Record, len(records))
	for _, r := range records {
		names = append(names, r.Name)
		byName[r.Name] = r
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	out := "[]"
	for i, name := range names {
		r := byName[name]
		if r.Group == "" || r.Doc == "" {
			return "", fmt.Errorf("docextract: function %q is missing $group or $doc", r.Name)
		}
		prefix := fmt.Sprintf("%d", i)
		var serr error
		out, serr = sjson.Set(out, prefix+".name", r.Name)
		if serr != nil {
			return "", serr
		}
		out, serr = sjson.Set(out, prefix+".group", r.Group)
		if serr != nil {
			return "", serr
		}
		out, serr = sjson.Set(out, prefix+".doc", r.Doc)
		if serr != nil {
			return "", serr
		}
		if r.Return != "" {
			out, serr = sjson.Set(out, prefix+".return", r.Return)
			if serr != nil {
				return "", serr
			}
		}
		for _, a := range r.Args {
			out, serr = sjson.SetRaw(out, prefix+".args.-1", fmt.Sprintf("{%q:%q,%q:%q}", "name", a.Name, "doc", a.Doc))
			if serr != nil {
				return "", serr
			}
		}
	}
	return out, nil
}

// scan performs the line-by-line pass of §4.7, returning one *Record per
// $function directive in first-seen order (sorting happens in Extract).
func scan(files []File) ([]*Record, error) {
	var records []*Record
	seen := map[string]bool{}
	var current *Record
	docBlank := true // leading blank $doc lines are discarded

	for _, f := range files {
		current = nil
		for _, line := range strings.Split(f.Text, "\n") {
			m := commentRE.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			content := m[1]

			if kw := keywordRE.FindStringSubmatch(content); kw != nil {
				directive, value := kw[1], strings.TrimSpace(kw[2])
				switch directive {
				case "function":
					if value == "" {
						return nil, fmt.Errorf("docextract: %s: $function directive has no name", f.Name)
					}
					if seen[value] {
						return nil, fmt.Errorf("docextract: %s: duplicate function %q", f.Name, value)
					}
					seen[value] = true
					current = &Record{Name: value}
					records = append(records, current)
					docBlank = true
					continue
				case "group":
					if current == nil {
						return nil, fmt.Errorf("docextract: %s: $group outside of a $function block", f.Name)
					}
					current.Group = value
					continue
				case "doc":
					if current == nil {
						return nil, fmt.Errorf("docextract: %s: $doc outside of a $function block", f.Name)
					}
					if value == "" && docBlank {
						continue
					}
					docBlank = false
					current.Doc = appendLine(current.Doc, value)
					continue
				case "return":
					if current == nil {
						return nil, fmt.Errorf("docextract: %s: $return outside of a $function block", f.Name)
					}
					current.Return = value
					continue
				}
			}

			if arg := argRE.FindStringSubmatch(content); arg != nil {
				if current == nil {
					return nil, fmt.Errorf("docextract: %s: $arg outside of a $function block", f.Name)
				}
				current.Args = append(current.Args, Arg{Name: arg[1], Doc: strings.TrimSpace(arg[2])})
			}
		}
	}
	return records, nil
}

func appendLine(doc, line string) string {
	if doc == "" {
		return line
	}
	return doc + "\n" + line
}
