package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/pipeline"
)

var typecheckNoPii bool

var typecheckCmd = &cobra.Command{
	Use:   "typecheck [file]",
	Short: "Compile and type-check an Aster source file",
	Long: `Typecheck runs the full pipeline (spec.md §6.1
compileAndTypecheck): canonicalize, lex, parse, lower, then every pass of
the type and effect checker (spec.md §4.7) - symbol resolution, effect
inference, capability subset enforcement, PII flow, exhaustiveness, and
workflow DAG validation.

Exits non-zero if any error-severity diagnostic is produced (spec.md §7).

Examples:
  asterc typecheck greet.aster
  asterc typecheck --manifest manifest.json --module-path ./lib service.aster`,
	Args: cobra.ExactArgs(1),
	RunE: runTypecheck,
}

func init() {
	rootCmd.AddCommand(typecheckCmd)
	typecheckCmd.Flags().BoolVar(&typecheckNoPii, "no-pii", false, "disable PII flow enforcement (spec.md §4.7 pass 6)")
}

func runTypecheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	cfg, err := buildConfig(cmd, filename)
	if err != nil {
		return err
	}
	if typecheckNoPii {
		enforce := false
		cfg.EnforcePii = &enforce
	}

	asJSON, _ := cmd.Flags().GetBool("json")

	result := pipeline.CompileAndTypecheck(string(content), cfg)
	if err := printDiagnostics(cmd, result.Diagnostics, asJSON); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("compilation failed")
	}
	if diagnostic.HasErrors(result.Diagnostics) {
		return fmt.Errorf("typecheck found %d error(s)", countErrors(result.Diagnostics))
	}
	if !asJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "%s no errors\n", green("✓"))
	}
	return nil
}

func countErrors(diags []*diagnostic.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diagnostic.Error {
			n++
		}
	}
	return n
}
