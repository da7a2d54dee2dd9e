package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/pipeline"
)

func TestCompileSucceedsOnWellFormedSource(t *testing.T) {
	result := pipeline.Compile("Rule greet given name: Text, produce Text:\n  Return name.\n", pipeline.Config{})
	require.True(t, result.Success)
	require.NotNil(t, result.Core)
	assert.Empty(t, result.Diagnostics)
}

func TestCompileReportsFatalAsSingleDiagnostic(t *testing.T) {
	result := pipeline.Compile("Rule given broken", pipeline.Config{})
	assert.False(t, result.Success)
	assert.Nil(t, result.Core)
	require.Len(t, result.Diagnostics, 1)
}

func TestCompileAndTypecheckConcatenatesDiagnostics(t *testing.T) {
	result := pipeline.CompileAndTypecheck(
		"Rule fetch given url: Text, produce Text:\n  Let r be Http.get(url).\n  Return r.\n",
		pipeline.Config{},
	)
	require.True(t, result.Success)
	require.NotNil(t, result.Core)
	assert.Contains(t, codesOf(result.Diagnostics), diagnostic.CapabilityNotDeclared)
}

func codesOf(diags []*diagnostic.Diagnostic) []diagnostic.Code {
	out := make([]diagnostic.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}
