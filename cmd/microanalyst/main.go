// Command microanalyst inspects and transforms microplate experiment
// records.
package main

import (
	"fmt"
	"os"

	"github.com/bzaczynski/microanalyst/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
