// Package diagnostic implements the two error regimes spec.md §7
// describes: a throwing Fatal error for the canonicalizer/lexer/parser/
// lowering stages, and an accumulating Diagnostic list for the type
// checker. Every diagnostic carries a stable ErrorCode (spec.md §6.5).
package diagnostic

// Code is a stable diagnostic identifier (spec.md §6.5).
type Code string

const (
	// Lexer (spec.md §4.2 "Failures")
	UnexpectedCharacter Code = "UNEXPECTED_CHARACTER"
	IndentationError    Code = "INDENTATION_ERROR"
	UnterminatedString  Code = "UNTERMINATED_STRING"

	// Parser (spec.md §4.4)
	ExpectPeriod  Code = "EXPECT_PERIOD"
	ExpectColon   Code = "EXPECT_COLON"
	ExpectKeyword Code = "EXPECT_KEYWORD"

	// Lowering (spec.md §4.5)
	UnknownEffect    Code = "UNKNOWN_EFFECT"
	UnknownDeclKind  Code = "UNKNOWN_DECL_KIND"
	UnknownStmtKind  Code = "UNKNOWN_STMT_KIND"
	UnknownExprKind  Code = "UNKNOWN_EXPR_KIND"
	UnknownPatKind   Code = "UNKNOWN_PATTERN_KIND"
	UnknownTypeKind  Code = "UNKNOWN_TYPE_KIND"

	// Type checker (spec.md §4.7)
	DuplicateSymbol        Code = "DUPLICATE_SYMBOL"
	UndefinedVariable      Code = "UNDEFINED_VARIABLE"
	TypeMismatchAssign     Code = "TYPE_MISMATCH_ASSIGN"
	ReturnTypeMismatch     Code = "RETURN_TYPE_MISMATCH"
	MatchBranchMismatch    Code = "MATCH_BRANCH_MISMATCH"
	MatchNonexhaustive     Code = "MATCH_NONEXHAUSTIVE"
	MatchIntNoWildcard     Code = "MATCH_INT_NO_WILDCARD"
	AwaitType              Code = "AWAIT_TYPE"
	UnknownField           Code = "UNKNOWN_FIELD"
	FieldTypeMismatch      Code = "FIELD_TYPE_MISMATCH"
	MissingRequiredField   Code = "MISSING_REQUIRED_FIELD"
	TypeVarUndeclared      Code = "TYPE_VAR_UNDECLARED"
	TypeVarLikeUndeclared  Code = "TYPEVAR_LIKE_UNDECLARED"
	TypeParamUnused        Code = "TYPE_PARAM_UNUSED"
	EffectVarUndeclared    Code = "EFFECT_VAR_UNDECLARED"
	EffMissingIO           Code = "EFF_MISSING_IO"
	EffMissingCPU          Code = "EFF_MISSING_CPU"
	EffSuperfluousIO       Code = "EFF_SUPERFLUOUS_IO"
	EffSuperfluousCPU      Code = "EFF_SUPERFLUOUS_CPU"
	CapabilityNotDeclared  Code = "CAPABILITY_NOT_DECLARED"
	CapabilityNotManifest  Code = "CAPABILITY_NOT_IN_MANIFEST"
	PiiLeakHTTP            Code = "PII_LEAK_HTTP"
	PiiLeakLog             Code = "PII_LEAK_LOG"
	PiiLeakGeneric         Code = "PII_LEAK"
	WorkflowUnknownDep     Code = "WORKFLOW_UNKNOWN_STEP_DEPENDENCY"
	WorkflowCircularDep    Code = "WORKFLOW_CIRCULAR_DEPENDENCY"
	WorkflowCompensateMiss Code = "WORKFLOW_COMPENSATE_MISSING"
	WorkflowRetryTooMany   Code = "WORKFLOW_RETRY_TOO_MANY"
	WorkflowTimeoutRange   Code = "WORKFLOW_TIMEOUT_OUT_OF_RANGE"
	ModuleCycle            Code = "MODULE_CYCLE"
	UndefinedModule        Code = "UNDEFINED_MODULE"
	UnknownType            Code = "UNKNOWN_TYPE"
	ArityMismatch          Code = "ARITY_MISMATCH"
)
