// Command barescript is the reference CLI runner and embedding example
// for the BareScript language (§6).
package main

import (
	"os"

	"github.com/barescript-lang/barescript/cmd/barescript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
