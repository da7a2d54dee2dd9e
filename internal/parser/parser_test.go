package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/canon"
	"github.com/aster-cloud/aster/internal/lexer"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/parser"
)

// parse canonicalizes and lexes src with the built-in English lexicon, then
// parses it, failing the test immediately on any stage error.
func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	lx := lexicon.English()
	canonical := canon.Canonicalize(src, canon.Options{Lexicon: lx})
	toks, err := lexer.Lex(canonical, lx)
	require.NoError(t, err)
	file, err := parser.Parse(toks)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func TestParseModuleHeaderTwoForms(t *testing.T) {
	f := parse(t, "Module Billing.\n")
	assert.Equal(t, "Billing", f.ModuleName)

	f2 := parse(t, "This module is Billing.\n")
	assert.Equal(t, "Billing", f2.ModuleName)
}

func TestParseDataDecl(t *testing.T) {
	f := parse(t, "Define T with a: Int and b: Text.\n")
	require.Len(t, f.Decls, 1)
	d, ok := f.Decls[0].(*ast.DataDecl)
	require.True(t, ok)
	assert.Equal(t, "T", d.Name)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "a", d.Fields[0].Name)
	assert.Equal(t, "b", d.Fields[1].Name)
}

func TestParseDataDeclWithConstraints(t *testing.T) {
	f := parse(t, "Define Account with balance: Int required and age: Int between 0 and 150.\n")
	d := f.Decls[0].(*ast.DataDecl)
	require.Len(t, d.Fields, 2)
	require.Len(t, d.Fields[0].Constraints, 1)
	_, isRequired := d.Fields[0].Constraints[0].(ast.RequiredConstraint)
	assert.True(t, isRequired)
	require.Len(t, d.Fields[1].Constraints, 1)
	between, isBetween := d.Fields[1].Constraints[0].(ast.BetweenConstraint)
	require.True(t, isBetween)
	assert.Equal(t, 0.0, between.Low)
	assert.Equal(t, 150.0, between.High)
}

func TestParseEnumDecl(t *testing.T) {
	f := parse(t, "Define R as one of A, B or C.\n")
	d, ok := f.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	assert.Equal(t, "R", d.Name)
	assert.Equal(t, []string{"A", "B", "C"}, d.Variants)
}

func TestParseFuncDeclWithEffects(t *testing.T) {
	f := parse(t, "Rule f given x: Int and y: Int, produce Int. It performs cpu:\n  Return x plus y.\n")
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "x", fn.Params[0].Name)
	assert.Equal(t, "y", fn.Params[1].Name)
	require.Len(t, fn.DeclaredEffects, 1)
	assert.Equal(t, "cpu", fn.DeclaredEffects[0].Name)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	call, ok := ret.Value.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, []string{"+"}, call.Target.Parts)
}

func TestParseFuncDeclWithoutBody(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	assert.Nil(t, fn.Body)
	assert.Empty(t, fn.DeclaredEffects)
}

func TestParseIfOtherwise(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n  If x greater than 0:\n    Return x.\n  Otherwise:\n    Return 0.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 1)
	ifs, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifs.Else)
	cond, ok := ifs.Cond.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, []string{">"}, cond.Target.Parts)
}

func TestParseMatchInline(t *testing.T) {
	f := parse(t, "Rule f given v: Result<Int, Text>, produce Int:\n  Match v: When Ok(n), Return n. When Err(e), Return 0.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 1)
	m, ok := fn.Body.Stmts[0].(*ast.MatchStmt)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)

	okArm := m.Arms[0]
	ctor, ok := okArm.Pattern.(*ast.PatCtor)
	require.True(t, ok)
	assert.Equal(t, "Ok", ctor.TypeName)
	require.Len(t, ctor.Args, 1)

	errArm := m.Arms[1]
	ctor2, ok := errArm.Pattern.(*ast.PatCtor)
	require.True(t, ok)
	assert.Equal(t, "Err", ctor2.TypeName)
}

func TestParseMatchIndentedBlock(t *testing.T) {
	f := parse(t, "Rule f given v: Int, produce Int:\n  Match v:\n    When 0:\n      Return 1.\n    When n:\n      Return n.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	m := fn.Body.Stmts[0].(*ast.MatchStmt)
	require.Len(t, m.Arms, 2)
	lit, ok := m.Arms[0].Pattern.(*ast.PatInt)
	require.True(t, ok)
	assert.Equal(t, int64(0), lit.Value)
	_, ok = m.Arms[1].Pattern.(*ast.PatName)
	require.True(t, ok)
}

func TestParseWorkflow(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n"+
		"  workflow:\n"+
		"    step a:\n"+
		"      Return x.\n"+
		"    step b depends on [\"a\"]:\n"+
		"      Return x.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	wf, ok := fn.Body.Stmts[0].(*ast.WorkflowStmt)
	require.True(t, ok)
	require.Len(t, wf.Steps, 2)
	assert.Equal(t, "a", wf.Steps[0].Name)
	assert.False(t, wf.Steps[0].DependenciesExplicit)
	assert.Equal(t, "b", wf.Steps[1].Name)
	assert.True(t, wf.Steps[1].DependenciesExplicit)
	assert.Equal(t, []string{"a"}, wf.Steps[1].Dependencies)
}

func TestParseWorkflowRetryAndTimeout(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n"+
		"  workflow:\n"+
		"    step a:\n"+
		"      Return x.\n"+
		"    retry:\n"+
		"      max attempts 3.\n"+
		"      backoff exponential.\n"+
		"    timeout: 30 seconds.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	wf := fn.Body.Stmts[0].(*ast.WorkflowStmt)
	require.NotNil(t, wf.Retry)
	assert.Equal(t, 3, wf.Retry.MaxAttempts)
	assert.Equal(t, "exponential", wf.Retry.Backoff)
	require.NotNil(t, wf.Timeout)
	assert.Equal(t, 30, wf.Timeout.Seconds)
}

func TestParseExpressionPrecedence(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n  Return 1 plus 2 times 3.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	add, ok := ret.Value.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, []string{"+"}, add.Target.Parts)
	require.Len(t, add.Args, 2)
	mul, ok := add.Args[1].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, []string{"*"}, mul.Target.Parts)
}

func TestParseShortLambda(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n  Let g be (n) => n plus 1.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	lam, ok := let.Value.(*ast.Lambda)
	require.True(t, ok)
	assert.True(t, lam.Short)
	require.Len(t, lam.Params, 1)
	assert.Equal(t, "n", lam.Params[0].Name)
}

func TestParseBlockLambda(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n"+
		"  Let g be function with n: Int, produce Int:\n"+
		"    Return n.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	lam, ok := let.Value.(*ast.Lambda)
	require.True(t, ok)
	assert.False(t, lam.Short)
	require.NotNil(t, lam.RetType)
}

func TestParseImport(t *testing.T) {
	f := parse(t, "Use billing.core as core.\n")
	d, ok := f.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "billing.core", d.Name)
	assert.Equal(t, "core", d.AsName)
}

func TestParseWaitAndScopeStmts(t *testing.T) {
	f := parse(t, "Rule f given x: Int, produce Int:\n"+
		"  Start r as async x.\n"+
		"  Wait for r.\n"+
		"  Within scope:\n"+
		"    Return x.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 3)
	_, ok := fn.Body.Stmts[0].(*ast.StartStmt)
	require.True(t, ok)
	wait, ok := fn.Body.Stmts[1].(*ast.WaitStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"r"}, wait.Names)
	_, ok = fn.Body.Stmts[2].(*ast.ScopeStmt)
	require.True(t, ok)
}

func TestParseGenericAndFuncTypes(t *testing.T) {
	f := parse(t, "Define T with items: List<Int> and cb: Func(Int) produce Int.\n")
	d := f.Decls[0].(*ast.DataDecl)
	_, ok := d.Fields[0].Type.(*ast.List)
	require.True(t, ok)
	ft, ok := d.Fields[1].Type.(*ast.FuncType)
	require.True(t, ok)
	require.Len(t, ft.Params, 1)
}

func TestParseTypeAndEffectParams(t *testing.T) {
	f := parse(t, "Rule identity of T given x: T, produce T. It performs io of E:\n  Return x.\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	assert.Equal(t, []string{"T"}, fn.TypeParams)
	assert.Equal(t, []string{"E"}, fn.EffectParams)
	_, ok := fn.Params[0].Type.(*ast.TypeVar)
	require.True(t, ok)
}
