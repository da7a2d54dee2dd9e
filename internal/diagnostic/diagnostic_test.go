package diagnostic

import (
	"strings"
	"testing"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToErrorSeverity(t *testing.T) {
	d := New(UndefinedVariable, ast.Span{Start: ast.Pos{Line: 1, Col: 1}}, "undefined variable %q", "x")
	require.Equal(t, Error, d.Severity)
	require.Equal(t, UndefinedVariable, d.Code)
	require.Contains(t, d.Message, "x")
}

func TestNewWarningAndInfoSeverity(t *testing.T) {
	w := NewWarning(EffSuperfluousIO, ast.Span{}, "declared io is unused")
	require.Equal(t, Warning, w.Severity)

	i := NewInfo(CapabilityNotManifest, ast.Span{}, "capability not in manifest").WithData("channel", "manifest")
	require.Equal(t, Info, i.Severity)
	require.Equal(t, "manifest", i.Data["channel"])
}

func TestHasErrors(t *testing.T) {
	none := []*Diagnostic{NewWarning(EffSuperfluousIO, ast.Span{}, "x")}
	require.False(t, HasErrors(none))

	some := append(none, New(UndefinedVariable, ast.Span{}, "y"))
	require.True(t, HasErrors(some))
}

func TestWithRelated(t *testing.T) {
	d := New(DuplicateSymbol, ast.Span{Start: ast.Pos{Line: 3, Col: 1}}, "duplicate symbol %q", "f")
	d.WithRelated(RelatedInformation{
		Span:    ast.Span{Start: ast.Pos{Line: 1, Col: 1}},
		Message: "first defined here",
	})
	require.Len(t, d.RelatedInformation, 1)
	require.Equal(t, "first defined here", d.RelatedInformation[0].Message)
}

func TestFatalAsDiagnostic(t *testing.T) {
	f := NewFatal(IndentationError, ast.Pos{Line: 2, Col: 3}, "indentation must be a multiple of two spaces")
	require.True(t, strings.Contains(f.Error(), "INDENTATION_ERROR"))

	d := f.AsDiagnostic()
	require.Equal(t, Error, d.Severity)
	require.Equal(t, ast.Pos{Line: 2, Col: 3}, d.Span.Start)
}

func TestMarshalJSONSortsKeysDeterministically(t *testing.T) {
	diags := []*Diagnostic{
		New(UndefinedVariable, ast.Span{Start: ast.Pos{Line: 1, Col: 1}}, "undefined variable"),
	}
	a, err := MarshalJSON(diags)
	require.NoError(t, err)
	b, err := MarshalJSON(diags)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestMarshalJSONHandlesNil(t *testing.T) {
	out, err := MarshalJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(out))
}
