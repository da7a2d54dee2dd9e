package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/manifest"
	"github.com/aster-cloud/aster/internal/module"
	"github.com/aster-cloud/aster/internal/pipeline"
	"github.com/aster-cloud/aster/internal/schema"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// buildConfig turns the persistent flags shared by every subcommand into a
// pipeline.Config, loading the lexicon/domain/manifest files they name.
func buildConfig(cmd *cobra.Command, filename string) (pipeline.Config, error) {
	cfg := pipeline.Config{Filename: filename}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	if path, _ := cmd.Flags().GetString("lexicon"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading lexicon %s: %w", path, err)
		}
		lx, err := lexicon.Load(data)
		if err != nil {
			return cfg, fmt.Errorf("loading lexicon %s: %w", path, err)
		}
		cfg.Lexicon = lx
	}

	if path, _ := cmd.Flags().GetString("domain"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading domain table %s: %w", path, err)
		}
		dom, err := lexicon.LoadDomain(data)
		if err != nil {
			return cfg, fmt.Errorf("loading domain table %s: %w", path, err)
		}
		cfg.Domain = dom
	}

	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		m, err := manifest.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("loading capability manifest %s: %w", path, err)
		}
		cfg.Manifest = m
	}

	searchPaths, _ := cmd.Flags().GetStringSlice("module-path")
	if len(searchPaths) > 0 {
		cfg.ModuleSearchPaths = searchPaths
		cache := module.NewCache(searchPaths)
		if cfg.Lexicon != nil {
			cache.WithLexicon(cfg.Lexicon)
		}
		cfg.ModuleCache = cache
	}

	return cfg, nil
}

// printDiagnostics renders diagnostics either as the JSON array spec.md
// §6.5 describes or as color-coded lines, one per diagnostic, in the
// source order the type checker guarantees (spec.md §5 "Ordering
// guarantees"). It writes through cmd's own streams rather than the
// process-global os.Stdout/os.Stderr, so tests can capture it.
func printDiagnostics(cmd *cobra.Command, diags []*diagnostic.Diagnostic, asJSON bool) error {
	if asJSON {
		data, err := diagnostic.MarshalJSON(diags)
		if err != nil {
			return err
		}
		formatted, err := schema.FormatJSON(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(formatted))
		return nil
	}

	for _, d := range diags {
		fmt.Fprintln(cmd.ErrOrStderr(), formatDiagnostic(d))
	}
	return nil
}

func formatDiagnostic(d *diagnostic.Diagnostic) string {
	var label string
	switch d.Severity {
	case diagnostic.Error:
		label = red("error")
	case diagnostic.Warning:
		label = yellow("warning")
	default:
		label = cyan(string(d.Severity))
	}
	return fmt.Sprintf("%s: %s [%s] at %s", label, d.Message, d.Code, d.Span.Start)
}
