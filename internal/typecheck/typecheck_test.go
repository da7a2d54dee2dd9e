package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/aster/internal/canon"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/lexer"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/lower"
	"github.com/aster-cloud/aster/internal/parser"
	"github.com/aster-cloud/aster/internal/typecheck"
)

// typecheckSrc canonicalizes, lexes, parses, and lowers src, then runs the
// checker over the result, failing the test immediately on any earlier
// stage's error (mirrors internal/lower's lowerSrc helper).
func typecheckSrc(t *testing.T, src string, opts typecheck.Options) []*diagnostic.Diagnostic {
	t.Helper()
	lx := lexicon.English()
	canonical := canon.Canonicalize(src, canon.Options{Lexicon: lx})
	toks, err := lexer.Lex(canonical, lx)
	require.NoError(t, err)
	file, err := parser.Parse(toks)
	require.NoError(t, err)
	mod, err := lower.Lower(file, "test.aster")
	require.NoError(t, err)
	return typecheck.Typecheck(mod, opts)
}

func codesOf(diags []*diagnostic.Diagnostic) []diagnostic.Code {
	out := make([]diagnostic.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

// Scenario 1 (spec.md §8): a function using only declared effects and
// capabilities produces zero diagnostics.
func TestScenarioGreetHasNoDiagnostics(t *testing.T) {
	diags := typecheckSrc(t, "Rule greet given name: Text, produce Text:\n  Return name.\n", typecheck.Options{})
	assert.Empty(t, diags)
}

// Scenario 2 (spec.md §8): a rule with no effects clause at all that calls
// Http.get reports exactly one EFF_MISSING_IO (alongside the separate
// CAPABILITY_NOT_DECLARED for the missing Http capability).
func TestScenarioEffectInferenceMissingIO(t *testing.T) {
	diags := typecheckSrc(t, "Rule fetch given url: Text, produce Text:\n  Let r be Http.get(url).\n  Return r.\n",
		typecheck.Options{})
	var missingIO int
	for _, d := range diags {
		if d.Code == diagnostic.EffMissingIO {
			missingIO++
		}
	}
	assert.Equal(t, 1, missingIO)
	assert.Contains(t, codesOf(diags), diagnostic.CapabilityNotDeclared)
}

// Scenario 3 (spec.md §8): a function that declares io with Http but calls
// Db.query reports CAPABILITY_NOT_DECLARED for Sql.
func TestScenarioCapabilityViolation(t *testing.T) {
	diags := typecheckSrc(t, "Rule lookup given id: Text, produce Text. It performs io with Http:\n  Let r be Db.query(id).\n  Return r.\n",
		typecheck.Options{})
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Code == diagnostic.CapabilityNotDeclared {
			found = true
		}
	}
	assert.True(t, found)
}

// Scenario 4 (spec.md §8): a three-step workflow whose dependencies form a
// cycle reports WORKFLOW_CIRCULAR_DEPENDENCY.
func TestScenarioWorkflowCycle(t *testing.T) {
	src := "Rule run given x: Int, produce Int:\n" +
		"  workflow:\n" +
		"    step a depends on [\"c\"]:\n" +
		"      Return x.\n" +
		"    step b depends on [\"a\"]:\n" +
		"      Return x.\n" +
		"    step c depends on [\"b\"]:\n" +
		"      Return x.\n"
	diags := typecheckSrc(t, src, typecheck.Options{})
	assert.Contains(t, codesOf(diags), diagnostic.WorkflowCircularDep)
}

// Scenario 5 (spec.md §8): a workflow with no explicit "depends on" clauses
// sequences implicitly and reports nothing.
func TestScenarioWorkflowImplicitSequencingIsClean(t *testing.T) {
	src := "Rule run given x: Int, produce Int:\n" +
		"  workflow:\n" +
		"    step first:\n" +
		"      Return x.\n" +
		"    step second:\n" +
		"      Return x.\n" +
		"    step third:\n" +
		"      Return x.\n"
	diags := typecheckSrc(t, src, typecheck.Options{})
	assert.Empty(t, diags)
}

// Scenario 6 (spec.md §8): matching only two of a three-variant enum
// reports MATCH_NONEXHAUSTIVE naming the missing variant.
func TestScenarioMatchNonexhaustive(t *testing.T) {
	src := "Define R as one of A, B or C.\n" +
		"Rule classify given r: R, produce Int:\n" +
		"  Match r: When A, Return 1. When B, Return 2.\n"
	diags := typecheckSrc(t, src, typecheck.Options{})
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Code == diagnostic.MatchNonexhaustive {
			found = true
			assert.Contains(t, d.Message, "C")
		}
	}
	assert.True(t, found)
}

func TestDuplicateSymbolInSameScope(t *testing.T) {
	diags := typecheckSrc(t, "Rule f given x: Int, produce Int:\n  Let y be x.\n  Let y be x.\n  Return y.\n",
		typecheck.Options{})
	assert.Contains(t, codesOf(diags), diagnostic.DuplicateSymbol)
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	diags := typecheckSrc(t, "Rule f given x: Int, produce Int:\n"+
		"  If x greater than 0:\n"+
		"    Let x be 1.\n"+
		"    Return x.\n"+
		"  Return x.\n", typecheck.Options{})
	for _, d := range diags {
		assert.NotEqual(t, diagnostic.DuplicateSymbol, d.Code)
	}
}

func TestUnknownTypeIsReported(t *testing.T) {
	diags := typecheckSrc(t, "Rule f given x: Bogus, produce Int:\n  Return 1.\n", typecheck.Options{})
	assert.Contains(t, codesOf(diags), diagnostic.UnknownType)
}

func TestPiiLeakToLogIsReported(t *testing.T) {
	diags := typecheckSrc(t, "Rule audit given id: Pii<Text, L1, email>, produce Unit:\n  Let logged be Log.info(id).\n  Return.\n",
		typecheck.Options{})
	assert.Contains(t, codesOf(diags), diagnostic.PiiLeakLog)
}

func TestPiiEnforcementCanBeDisabled(t *testing.T) {
	off := false
	diags := typecheckSrc(t, "Rule audit given id: Pii<Text, L1, email>, produce Unit:\n  Let logged be Log.info(id).\n  Return.\n",
		typecheck.Options{EnforcePii: &off})
	assert.NotContains(t, codesOf(diags), diagnostic.PiiLeakLog)
}

func TestWorkflowUnknownDependencyIsReported(t *testing.T) {
	src := "Rule run given x: Int, produce Int:\n" +
		"  workflow:\n" +
		"    step a depends on [\"ghost\"]:\n" +
		"      Return x.\n"
	diags := typecheckSrc(t, src, typecheck.Options{})
	assert.Contains(t, codesOf(diags), diagnostic.WorkflowUnknownDep)
}

