package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/barescript-lang/barescript/internal/parser"
	"github.com/barescript-lang/barescript/internal/value"
)

// fixtureCategory drives one testdata/fixtures subdirectory of *.bare
// scripts. Pass cases parse and execute cleanly, their result snapshotted
// with go-snaps; error cases must fail during parsing or execution, with
// the resulting message snapshotted instead.
type fixtureCategory struct {
	name         string
	path         string
	description  string
	expectErrors bool
}

var fixtureCategories = []fixtureCategory{
	{
		name:        "basics",
		path:        "../../testdata/fixtures/basics",
		description: "function calls, recursion, type-fallthrough coercion, short-circuit evaluation",
	},
	{
		name:        "control",
		path:        "../../testdata/fixtures/control",
		description: "while/for loops, break/continue, array and object literals",
	},
	{
		name:         "errors",
		path:         "../../testdata/fixtures/errors",
		description:  "scripts that must fail at parse time or run time",
		expectErrors: true,
	},
}

// TestFixtures runs every *.bare script under testdata/fixtures against
// the synchronous interpreter, snapshotting its observable result.
func TestFixtures(t *testing.T) {
	for _, cat := range fixtureCategories {
		cat := cat
		t.Run(cat.name, func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join(cat.path, "*.bare"))
			if err != nil {
				t.Fatalf("glob %s: %v", cat.path, err)
			}
			if len(files) == 0 {
				t.Fatalf("no fixtures found under %s", cat.path)
			}
			sort.Strings(files)
			for _, f := range files {
				f := f
				t.Run(filepath.Base(f), func(t *testing.T) {
					runFixture(t, f, cat.expectErrors)
				})
			}
		})
	}
}

func runFixture(t *testing.T, path string, expectErrors bool) {
	t.Helper()
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}

	name := filepath.Base(path)
	script, err := parser.ParseScript(string(src), 1, name)
	if err != nil {
		if !expectErrors {
			t.Fatalf("unexpected parse error in %s: %v", name, err)
		}
		snaps.MatchSnapshot(t, fmt.Sprintf("%s_error", name), err.Error())
		return
	}

	type execResult struct {
		v   value.Value
		err error
	}
	resultChan := make(chan execResult, 1)
	go func() {
		v, _, err := ExecuteScript(script, &value.Options{})
		resultChan <- execResult{v, err}
	}()

	var res execResult
	select {
	case res = <-resultChan:
	case <-time.After(5 * time.Second):
		t.Fatalf("%s timed out after 5 seconds (likely infinite loop)", name)
		return
	}

	if res.err != nil {
		if !expectErrors {
			t.Fatalf("unexpected execution error in %s: %v", name, res.err)
		}
		snaps.MatchSnapshot(t, fmt.Sprintf("%s_error", name), res.err.Error())
		return
	}

	if expectErrors {
		t.Fatalf("%s was expected to fail but produced %v", name, res.v)
	}
	snaps.MatchSnapshot(t, fmt.Sprintf("%s_result", name), value.JSONOf(res.v, ""))
}
