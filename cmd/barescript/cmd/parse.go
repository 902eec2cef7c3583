package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/barescript-lang/barescript/pkg/barescript"
)

var (
	parseExpression    bool
	parseAllowArrayLit bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse BareScript source and pretty-print its AST",
	Long: `Parse BareScript source code and print the resulting AST.

If no file is provided, reads from stdin. Use -e to parse the input as a
single expression instead of a script.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse the input as a single expression")
	parseCmd.Flags().BoolVar(&parseAllowArrayLit, "allow-array-literal", false, "permit [...] array literals anywhere in the expression")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := readParseInput(args)
	if err != nil {
		return err
	}

	if parseExpression {
		expr, err := barescript.ParseExpression(input, parseAllowArrayLit)
		if err != nil {
			return err
		}
		pretty.Println(expr)
		return nil
	}

	script, err := barescript.ParseScript(input, 1, "<parse>")
	if err != nil {
		return err
	}
	pretty.Println(script)
	return nil
}

func readParseInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
