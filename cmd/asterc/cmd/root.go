// Package cmd implements the asterc command tree (spec.md §6.1).
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "asterc",
	Short: "Aster CNL compiler front-end",
	Long: `asterc compiles the Aster controlled natural language into a
strictly typed, effect- and PII-annotated Core IR (spec.md §1).

It runs the four-stage pipeline - canonicalize, lex, parse, lower - and,
for "typecheck", the Hindley-Milner-style type and effect checker on top.
It does not execute programs; it produces diagnostics and, on success, a
Core IR value (spec.md §1 "Explicit non-goals").`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().String("lexicon", "", "path to a lexicon YAML file (default: built-in English)")
	rootCmd.PersistentFlags().String("domain", "", "path to a domain identifier-translation YAML file")
	rootCmd.PersistentFlags().String("manifest", "", "path to a capability manifest JSON file (spec.md §6.4)")
	rootCmd.PersistentFlags().StringSlice("module-path", nil, "module search path for cross-module imports (repeatable)")
	rootCmd.PersistentFlags().Bool("json", false, "emit diagnostics (and, for compile, the Core IR envelope) as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostic output")
}
