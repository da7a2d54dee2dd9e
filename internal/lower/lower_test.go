package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/canon"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/lexer"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/lower"
	"github.com/aster-cloud/aster/internal/parser"
)

// lowerSrc canonicalizes, lexes, parses, and lowers src in one step,
// failing the test immediately on any stage error.
func lowerSrc(t *testing.T, src string) *core.Module {
	t.Helper()
	lx := lexicon.English()
	canonical := canon.Canonicalize(src, canon.Options{Lexicon: lx})
	toks, err := lexer.Lex(canonical, lx)
	require.NoError(t, err)
	file, err := parser.Parse(toks)
	require.NoError(t, err)
	mod, err := lower.Lower(file, "test.aster")
	require.NoError(t, err)
	require.NotNil(t, mod)
	return mod
}

func TestLowerAssignsNodeIDsAndOrigin(t *testing.T) {
	mod := lowerSrc(t, "Rule f given x: Int, produce Int:\n  Return x.\n")
	require.NotZero(t, mod.ID())
	assert.Equal(t, "test.aster", mod.Origin().File)
	fn := mod.Decls[0].(*core.FuncDecl)
	require.NotZero(t, fn.ID())
	assert.NotEqual(t, mod.ID(), fn.ID())
}

func TestLowerUnknownEffectIsFatal(t *testing.T) {
	lx := lexicon.English()
	canonical := canon.Canonicalize("Rule f given x: Int, produce Int. It performs network:\n  Return x.\n", canon.Options{Lexicon: lx})
	toks, err := lexer.Lex(canonical, lx)
	require.NoError(t, err)
	file, err := parser.Parse(toks)
	require.NoError(t, err)

	_, err = lower.Lower(file, "test.aster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network")
}

func TestLowerEffectParamIsNotAnUnknownEffect(t *testing.T) {
	mod := lowerSrc(t, "Rule identity of T given x: T, produce T. It performs io of E:\n  Return x.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	assert.Contains(t, fn.EffectParams, "E")
	found := false
	for _, e := range fn.DeclaredEffects {
		if e.IsVar && e.Name == "E" {
			found = true
		}
	}
	assert.True(t, found, "effect parameter E should be recorded as a declared-effect variable reference")
}

func TestLowerWorkflowDependencyDefaulting(t *testing.T) {
	mod := lowerSrc(t, "Rule f given x: Int, produce Int:\n"+
		"  workflow:\n"+
		"    step a:\n"+
		"      Return x.\n"+
		"    step b depends on [\"a\"]:\n"+
		"      Return x.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	wf := fn.Body.Stmts[0].(*core.WorkflowStmt)
	require.Len(t, wf.Steps, 2)
	assert.Empty(t, wf.Steps[0].Dependencies)
	assert.Equal(t, []string{"a"}, wf.Steps[1].Dependencies)
}

func TestLowerWorkflowDependencyDefaultsToPreviousStep(t *testing.T) {
	mod := lowerSrc(t, "Rule f given x: Int, produce Int:\n"+
		"  workflow:\n"+
		"    step a:\n"+
		"      Return x.\n"+
		"    step b:\n"+
		"      Return x.\n"+
		"    step c:\n"+
		"      Return x.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	wf := fn.Body.Stmts[0].(*core.WorkflowStmt)
	require.Len(t, wf.Steps, 3)
	assert.Empty(t, wf.Steps[0].Dependencies)
	assert.Equal(t, []string{"a"}, wf.Steps[1].Dependencies)
	assert.Equal(t, []string{"b"}, wf.Steps[2].Dependencies)
}

func TestLowerWorkflowTimeoutConvertsToMilliseconds(t *testing.T) {
	mod := lowerSrc(t, "Rule f given x: Int, produce Int:\n"+
		"  workflow:\n"+
		"    step a:\n"+
		"      Return x.\n"+
		"    timeout: 30 seconds.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	wf := fn.Body.Stmts[0].(*core.WorkflowStmt)
	require.NotNil(t, wf.Timeout)
	assert.Equal(t, 30000, wf.Timeout.Milliseconds)
}

func TestLowerWorkflowStepEffectCapsFromCallPrefix(t *testing.T) {
	mod := lowerSrc(t, "Rule f given url: Text, produce Int:\n"+
		"  workflow:\n"+
		"    step a:\n"+
		"      Let r be Http.get(url).\n"+
		"      Return 1.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	wf := fn.Body.Stmts[0].(*core.WorkflowStmt)
	assert.Equal(t, []string{"Http"}, wf.Steps[0].EffectCaps)
	assert.Equal(t, []string{"Http"}, wf.EffectCaps)
}

func TestLowerShortLambdaInfersArithmeticReturnType(t *testing.T) {
	mod := lowerSrc(t, "Rule f given x: Int, produce Int:\n  Let g be (n) => n plus 1.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	let := fn.Body.Stmts[0].(*core.LetStmt)
	lam := let.Value.(*core.Lambda)
	assert.Equal(t, core.TypeName{Name: "Int"}, lam.RetType)
}

func TestLowerLambdaCapturesFreeVariableExcludingParamAndDotted(t *testing.T) {
	mod := lowerSrc(t, "Rule f given x: Int, produce Int:\n"+
		"  Let total be x.\n"+
		"  Let g be (n) => total plus n.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	let := fn.Body.Stmts[1].(*core.LetStmt)
	lam := let.Value.(*core.Lambda)
	assert.Equal(t, []string{"total"}, lam.Captures)
}

func TestLowerPatCtorElidesEmptyNames(t *testing.T) {
	mod := lowerSrc(t, "Rule f given v: Result<Int, Text>, produce Int:\n"+
		"  Match v: When Ok(n), Return n. When Err(e), Return 0.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	match := fn.Body.Stmts[0].(*core.MatchStmt)
	for _, arm := range match.Arms {
		ctor, ok := arm.Pattern.(core.PatCtor)
		require.True(t, ok)
		assert.Nil(t, ctor.Names)
	}
}

func TestLowerWorkflowTypeAnnotation(t *testing.T) {
	mod := lowerSrc(t, "Rule ship given x: Int, produce Workflow<Int, Text>:\n  Return x.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	_, ok := fn.RetType.(core.Workflow)
	assert.True(t, ok, "Workflow<R,E> return type should lower to core.Workflow, not a generic TypeApp")
}

func TestLowerPiiAggregationAcrossParamsAndReturn(t *testing.T) {
	mod := lowerSrc(t, "Rule lookup given id: Pii<Text, L1, id>, produce Pii<Text, L2, email>:\n  Return id.\n")
	fn := mod.Decls[0].(*core.FuncDecl)
	require.NotNil(t, fn.Pii)
	assert.Equal(t, ast.PiiL2, fn.Pii.Sensitivity)
	assert.Contains(t, fn.Pii.Categories, "id")
	assert.Contains(t, fn.Pii.Categories, "email")
}
