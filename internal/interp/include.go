package interp

import (
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/barescript-lang/barescript/internal/ast"
	"github.com/barescript-lang/barescript/internal/lint"
	"github.com/barescript-lang/barescript/internal/parser"
	"github.com/barescript-lang/barescript/internal/perror"
	"github.com/barescript-lang/barescript/internal/value"
)

const includesKey = "__bareScriptIncludes"

// execInclude implements the §4.5.2 algorithm for one Include statement,
// which may fold several URLs together. Fetches are initiated concurrently
// (one goroutine per not-yet-included URL) but results are parsed and
// executed strictly in declaration order, matching the ordering guarantee
// of §4.5.1/§5.
func (r *runner) execInclude(st *ast.IncludeStatement) error {
	resolved := make([]string, len(st.Includes))
	for i, inc := range st.Includes {
		resolved[i] = r.resolveIncludeURL(inc)
	}

	results := make([]includeFetch, len(st.Includes))

	var wg sync.WaitGroup
	for i, url := range resolved {
		if r.alreadyIncluded(url) {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = r.fetchInclude(url)
		}(i, url)
	}
	wg.Wait()

	for i, inc := range st.Includes {
		url := resolved[i]
		if r.alreadyIncluded(url) {
			continue
		}
		if results[i].err != nil {
			return results[i].err
		}

		// Mark included before executing so a cyclic include resolves
		// cleanly instead of recursing forever (§9 "Include loader
		// reentrancy").
		r.markIncluded(url)

		script, err := parser.ParseScript(results[i].text, 1, url)
		if err != nil {
			return err
		}
		script.System = inc.System

		if err := r.executeInclude(script, url); err != nil {
			return err
		}

		if r.opts.Debug && r.opts.LogFn != nil {
			for _, w := range lint.Script(script, knownGlobals(r.opts.Globals)) {
				r.opts.LogFn(w)
			}
		}
	}
	return nil
}

// includeFetch holds the outcome of fetching one include URL's body.
type includeFetch struct {
	text string
	err  error
}

func (r *runner) fetchInclude(url string) includeFetch {
	fail := perror.NewRuntimeError("Include of %s failed", url)
	if r.opts.FetchFn == nil {
		return includeFetch{err: fail}
	}
	resp, err := r.opts.FetchFn(url, value.Null)
	if err != nil || resp == nil || !resp.OK {
		return includeFetch{err: fail}
	}
	text, terr := resp.Text()
	if terr != nil {
		return includeFetch{err: fail}
	}
	return includeFetch{text: text}
}

// executeInclude runs script's statements with a urlFn that resolves
// further relative includes/fetches against url (§4.5.2 step 6). Globals
// remain shared since Options is copied by value but Globals is a pointer.
func (r *runner) executeInclude(script *ast.Script, url string) error {
	prev := r.opts
	sub := *prev
	sub.URLFn = func(u string) string { return urlFileRelative(url, u) }
	r.opts = &sub
	defer func() { r.opts = prev }()

	_, err := r.execStatements(script.Statements, nil, url, script.System)
	return err
}

func (r *runner) resolveIncludeURL(inc ast.IncludeEntry) string {
	if inc.System && r.opts.SystemPrefix != "" {
		return urlFileRelative(r.opts.SystemPrefix, inc.URL)
	}
	if r.opts.URLFn != nil {
		return r.opts.URLFn(inc.URL)
	}
	return inc.URL
}

func (r *runner) alreadyIncluded(url string) bool {
	v, ok := r.opts.Globals.Get(includesKey)
	if !ok || v.Kind() != value.KindObject || v.Object() == nil {
		return false
	}
	return v.Object().Has(url)
}

func (r *runner) markIncluded(url string) {
	v, ok := r.opts.Globals.Get(includesKey)
	var set *value.Object
	if !ok || v.Kind() != value.KindObject || v.Object() == nil {
		set = value.NewEmptyObject()
		r.opts.Globals.Set(includesKey, value.NewObject(set))
	} else {
		set = v.Object()
	}
	set.Set(url, value.NewBool(true))
}

// knownGlobals snapshots globals' current keys for lint.Script's "Unknown
// global variable" check (§4.2, §4.5.2 step 7: lint an included script
// "with current globals" rather than none).
func knownGlobals(globals *value.Object) map[string]bool {
	names := make(map[string]bool, globals.Len())
	for _, k := range globals.Keys() {
		names[k] = true
	}
	return names
}

var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// urlFileRelative implements the §6 URL semantics: an absolute (scheme- or
// root-prefixed) url is returned unchanged or POSIX-normalized in place;
// otherwise it is resolved against the directory portion of base and
// normalized, collapsing "." and ".." without ascending above the root of
// an absolute base.
func urlFileRelative(base, u string) string {
	if schemeRE.MatchString(u) {
		return u
	}
	if strings.HasPrefix(u, "/") {
		return normalizePOSIX(u)
	}

	scheme := schemeRE.FindString(base)
	rest := strings.TrimPrefix(base, scheme)
	dir := path.Dir(rest)
	return scheme + normalizePOSIX(path.Join(dir, u))
}

func normalizePOSIX(p string) string {
	abs := strings.HasPrefix(p, "/")
	cleaned := path.Clean(p)
	if abs && !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned
}
