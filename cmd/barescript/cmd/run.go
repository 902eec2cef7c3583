package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/barescript-lang/barescript/internal/value"
	"github.com/barescript-lang/barescript/pkg/barescript"
)

var (
	runCode       []string
	runDebug      bool
	runStatic     bool
	runVars       []string
	runBootstrap  bool
	runConfigFile string
	runDumpAST    bool
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run BareScript source from files and/or inline code",
	Long: `Run one or more BareScript units in order: every -c CODE first, in the
order given, then every positional file argument, in the order given.

Examples:
  barescript run script.bare
  barescript run -c "return 1 + 1"
  barescript run -v N=21 -c "return N * 2"
  barescript run -d --dump-ast script.bare`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runCode, "code", "c", nil, "inline script to run (repeatable, named \"-c N\")")
	runCmd.Flags().BoolVarP(&runDebug, "debug", "d", false, "debug/lint mode: lint includes, log host-function errors")
	runCmd.Flags().BoolVarP(&runStatic, "static", "s", false, "static-only: run the linter and exit 1 on warnings, never execute")
	runCmd.Flags().StringArrayVarP(&runVars, "var", "v", nil, "seed globals[NAME] with parse_expression(EXPR) (NAME=EXPR, repeatable)")
	runCmd.Flags().BoolVarP(&runBootstrap, "bootstrap", "m", false, "prepend a system-include bootstrap line")
	runCmd.Flags().StringVar(&runConfigFile, "config", "", "YAML file of name: value pairs to batch-seed globals")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "pretty-print the parsed AST before running")
}

type scriptUnit struct {
	name string
	text string
}

func runRun(_ *cobra.Command, args []string) error {
	globals := barescript.NewGlobals()

	if runConfigFile != "" {
		if err := loadConfigGlobals(runConfigFile, globals); err != nil {
			return err
		}
	}
	if err := seedVars(runVars, globals); err != nil {
		return err
	}

	units := make([]scriptUnit, 0, len(runCode)+len(args))
	for i, code := range runCode {
		units = append(units, scriptUnit{name: fmt.Sprintf("-c %d", i), text: code})
	}
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		units = append(units, scriptUnit{name: path, text: string(data)})
	}
	if len(units) == 0 {
		return fmt.Errorf("no script given: pass -c CODE or a file argument")
	}

	opts := &value.Options{
		Globals: globals,
		Debug:   runDebug,
		LogFn:   func(s string) { fmt.Fprintln(os.Stderr, s) },
		FetchFn: localFileFetch,
	}
	if runBootstrap {
		opts.SystemPrefix = "system://"
	}

	exitCode := 0
	for _, u := range units {
		text := u.text
		if runBootstrap {
			text = "include <bootstrap.bare>\n" + text
		}

		script, err := barescript.ParseScript(text, 1, u.name)
		if err != nil {
			return err
		}
		if runDumpAST {
			pretty.Println(script)
		}

		if runStatic {
			warnings := barescript.LintScript(script, globalNames(globals))
			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, w)
			}
			if len(warnings) > 0 {
				exitWithStatus(1)
			}
			continue
		}

		result, _, err := barescript.ExecuteScriptAsync(script, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitWithStatus(1)
		}
		if code := barescript.ExitCode(result); code != 0 {
			exitCode = code
			break
		}
	}
	if exitCode != 0 {
		exitWithStatus(exitCode)
	}
	return nil
}

// seedVars applies every -v NAME=EXPR pair in order, evaluating EXPR
// statically against the globals accumulated so far (§6 -v NAME EXPR).
func seedVars(vars []string, globals *value.Object) error {
	for _, raw := range vars {
		name, exprText, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("-v expects NAME=EXPR, got %q", raw)
		}
		expr, err := barescript.ParseExpression(exprText, true)
		if err != nil {
			return err
		}
		v, err := barescript.EvaluateExpression(expr, &value.Options{Globals: globals}, nil, true)
		if err != nil {
			return err
		}
		globals.Set(name, v)
	}
	return nil
}

func globalNames(globals *value.Object) map[string]bool {
	names := make(map[string]bool, globals.Len())
	for _, k := range globals.Keys() {
		names[k] = true
	}
	return names
}

// localFileFetch is the reference CLI's fetchFn: includes and systemFetch
// resolve against the local filesystem only, never the network, matching
// the sandboxed default a standalone embedding example should ship with.
func localFileFetch(url string, _ value.Value) (*value.FetchResponse, error) {
	path := strings.TrimPrefix(url, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return &value.FetchResponse{OK: false, Status: 404, Text: func() (string, error) { return "", err }}, nil
	}
	return &value.FetchResponse{OK: true, Status: 200, Text: func() (string, error) { return string(data), nil }}, nil
}

// exitWithStatus exits immediately with code (§6 exit-code semantics).
func exitWithStatus(code int) {
	os.Exit(code)
}
