// Command asterc is a thin CLI over the library API (spec.md §6.1): it
// wires canonicalize/lex/parse/lower/typecheck together for the commands
// "compile", "typecheck", "fmt-check" and "version", and does nothing the library itself does not
// already do. Presentation (color, exit codes) lives here; the pipeline
// package never imports it.
package main

import (
	"fmt"
	"os"

	"github.com/aster-cloud/aster/cmd/asterc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
