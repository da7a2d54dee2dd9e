package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run invokes the root command with args, capturing stdout/stderr. rootCmd
// is a package-level singleton shared across every test in this file, so
// flag-backed package vars left over from a prior run are reset first -
// pflag only overwrites a flag's value when the new args actually set it.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	compileOutput = ""
	typecheckNoPii = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "greet.aster")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompileCommandPrintsCoreIREnvelope(t *testing.T) {
	path := writeSource(t, "Rule greet given name: Text, produce Text:\n  Return name.\n")
	out, err := run(t, "compile", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, `"version":"1.0"`)
	assert.Contains(t, out, `"kind":"Module"`)
}

func TestCompileCommandWritesToOutputFile(t *testing.T) {
	path := writeSource(t, "Rule greet given name: Text, produce Text:\n  Return name.\n")
	outPath := filepath.Join(t.TempDir(), "greet.ir.json")
	_, err := run(t, "compile", path, "-o", outPath, "--no-color")
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":"1.0"`)
}

func TestTypecheckCommandFailsOnUndeclaredEffect(t *testing.T) {
	path := writeSource(t, "Rule fetch given url: Text, produce Text:\n  Let r be Http.get(url).\n  Return r.\n")
	_, err := run(t, "typecheck", path, "--no-color")
	assert.Error(t, err)
}

func TestTypecheckCommandSucceedsOnWellFormedSource(t *testing.T) {
	path := writeSource(t, "Rule greet given name: Text, produce Text:\n  Return name.\n")
	_, err := run(t, "typecheck", path, "--no-color")
	assert.NoError(t, err)
}

func TestFmtCheckCommandAcceptsCanonicalSource(t *testing.T) {
	path := writeSource(t, "Rule greet given name: Text, produce Text:\n  Return name.\n")
	out, err := run(t, "fmt-check", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "is canonical and parses")
}
