package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "barescript",
	Short: "BareScript interpreter and embedding toolkit",
	Long: `barescript is a Go implementation of the BareScript embeddable scripting
language.

BareScript is a small, line-oriented scripting language meant to be
embedded in a host application: a script runs against a host-supplied
variable store and host functions, with no filesystem or network access
beyond what the host's fetchFn chooses to expose.`,
	Version: Version,
}

// Execute runs the root command. Any error a subcommand's RunE returns is
// reported here before exiting; cobra's own error/usage printing is
// silenced to avoid reporting it twice. The run and lint commands print
// script execution errors and lint warnings themselves and exit directly
// with their own status.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		exitWithError("%v", err)
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags. -v is reserved by the `run` command for variable
	// seeding (§6), so verbose output uses -V instead.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
