package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/barescript-lang/barescript/pkg/barescript"
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Run the static analyses against a script and print warnings",
	Long: `Parse a BareScript file (or stdin) and run the linter of §4.2 against
it, printing one warning per line. Exits 1 if any warning was produced,
the same static-only behavior as "run -s".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(_ *cobra.Command, args []string) error {
	var input string
	name := "<lint>"
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		input, name = string(data), args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	script, err := barescript.ParseScript(input, 1, name)
	if err != nil {
		return err
	}

	warnings := barescript.LintScript(script, nil)
	for _, w := range warnings {
		fmt.Println(w)
	}
	if len(warnings) > 0 {
		exitWithStatus(1)
	}
	return nil
}
