package docextract

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestExtractSortsAndShapesRecords(t *testing.T) {
	files := []File{
		{Name: "math.bare", Text: strings.Join([]string{
			"// $function: func10",
			"// $group: Math",
			"// $doc: Tenth helper.",
			"function func10()",
			"endfunction",
			"",
			"// $function: func2",
			"// $group: Math",
			"// $doc:",
			"// $doc: Second helper.",
			"// $arg n: the input",
			"// $return: doubled n",
			"function func2(n)",
			"endfunction",
		}, "\n")},
	}

	out, err := Extract(files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := gjson.Parse(out).Array()
	if len(results) != 2 {
		t.Fatalf("expected 2 records, got %d", len(results))
	}
	// Natural order puts func2 before func10, not lexical order.
	if results[0].Get("name").String() != "func2" {
		t.Errorf("expected func2 first, got %s", results[0].Get("name").String())
	}
	if results[1].Get("name").String() != "func10" {
		t.Errorf("expected func10 second, got %s", results[1].Get("name").String())
	}
	if got := results[0].Get("doc").String(); got != "Second helper." {
		t.Errorf("expected leading blank $doc to be discarded, got %q", got)
	}
	if got := results[0].Get("return").String(); got != "doubled n" {
		t.Errorf("expected return doc, got %q", got)
	}
	args := results[0].Get("args").Array()
	if len(args) != 1 || args[0].Get("name").String() != "n" {
		t.Errorf("expected one arg named n, got %v", args)
	}
}

func TestExtractRejectsDuplicateFunctionName(t *testing.T) {
	files := []File{{Name: "dup.bare", Text: strings.Join([]string{
		"// $function: f",
		"// $group: G",
		"// $doc: first",
		"// $function: f",
		"// $group: G",
		"// $doc: second",
	}, "\n")}}
	if _, err := Extract(files); err == nil {
		t.Fatalf("expected duplicate-function error")
	}
}

func TestExtractRejectsMissingGroupOrDoc(t *testing.T) {
	files := []File{{Name: "incomplete.bare", Text: strings.Join([]string{
		"// $function: f",
		"// $doc: missing a group",
	}, "\n")}}
	if _, err := Extract(files); err == nil {
		t.Fatalf("expected missing-$group error")
	}
}

func TestExtractRejectsEmptyOutput(t *testing.T) {
	if _, err := Extract([]File{{Name: "empty.bare", Text: "# nothing to see here\n"}}); err == nil {
		t.Fatalf("expected empty-output error")
	}
}

func TestExtractRejectsDirectiveOutsideFunction(t *testing.T) {
	files := []File{{Name: "stray.bare", Text: "// $group: orphaned\n"}}
	if _, err := Extract(files); err == nil {
		t.Fatalf("expected $group-outside-function error")
	}
}
