package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barescript-lang/barescript/internal/docextract"
)

var docCmd = &cobra.Command{
	Use:   "doc [files...]",
	Short: "Extract $function/$group/$doc/$arg/$return directive comments",
	Long: `Scan one or more source files for doc directive comments (§4.7) and
print the extracted function records as a sorted JSON array.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDoc,
}

func init() {
	rootCmd.AddCommand(docCmd)
}

func runDoc(_ *cobra.Command, args []string) error {
	files := make([]docextract.File, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, docextract.File{Name: path, Text: string(data)})
	}

	out, err := docextract.Extract(files)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
