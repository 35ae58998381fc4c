// Command strand runs the string analysis service and its offline tools.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/strand/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
