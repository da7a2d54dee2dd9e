package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/aster/internal/pipeline"
)

var fmtCheckCmd = &cobra.Command{
	Use:   "fmt-check [file]",
	Short: "Check canonicalization idempotence and parseability",
	Long: `fmt-check is not a source formatter - text-edit formatting is an
LSP-layer concern this module treats as an external collaborator (spec.md
§1). It instead verifies two of the pipeline's testable properties
(spec.md §8): that canonicalize is idempotent on this file
(canonicalize(canonicalize(s)) == canonicalize(s)), and that the
canonicalized text still lexes and parses.

Exits non-zero if either check fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmtCheck,
}

func init() {
	rootCmd.AddCommand(fmtCheckCmd)
}

func runFmtCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	cfg, err := buildConfig(cmd, filename)
	if err != nil {
		return err
	}

	once := pipeline.Canonicalize(string(content), cfg)
	twice := pipeline.Canonicalize(once, cfg)
	if once != twice {
		return fmt.Errorf("%s: canonicalization is not idempotent on %s", red("fmt-check"), filename)
	}

	toks, err := pipeline.Lex(once, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", red("fmt-check"), err)
	}
	if _, err := pipeline.Parse(toks); err != nil {
		return fmt.Errorf("%s: %w", red("fmt-check"), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is canonical and parses\n", green("✓"), filename)
	return nil
}
