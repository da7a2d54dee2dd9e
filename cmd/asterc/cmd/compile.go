package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/pipeline"
)

var compileOutput string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Canonicalize, lex, parse, and lower an Aster source file",
	Long: `Compile runs the first four pipeline stages (spec.md §6.1) and
prints the resulting Core IR JSON envelope (spec.md §6.3). It does not
type-check; use "asterc typecheck" for that.

Examples:
  # Compile a module and print its Core IR envelope
  asterc compile greet.aster

  # Write the envelope to a file instead of stdout
  asterc compile greet.aster -o greet.ir.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the Core IR envelope here instead of stdout")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	cfg, err := buildConfig(cmd, filename)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")

	result := pipeline.Compile(string(content), cfg)
	if !result.Success {
		if err := printDiagnostics(cmd, result.Diagnostics, asJSON); err != nil {
			return err
		}
		return fmt.Errorf("compilation failed")
	}

	data, err := core.Serialize(result.Core, core.Metadata{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Source:          filename,
		CompilerVersion: Version,
	})
	if err != nil {
		return fmt.Errorf("serializing core IR: %w", err)
	}

	if compileOutput != "" {
		if err := os.WriteFile(compileOutput, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", compileOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Core IR written to %s\n", green("✓"), compileOutput)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
