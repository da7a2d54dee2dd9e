package diagnostic

import (
	"fmt"

	"github.com/aster-cloud/aster/internal/ast"
)

// Fatal is the throwing error kind raised by lowering (spec.md §7 "Fatal,
// throwing errors"). The lexer and parser report failures with their own
// positioned error types (lexer.Error, parser.Error), not with Fatal; the
// canonicalizer never fails. It aborts the pipeline at the first structural failure; there
// is no recovery and no second Fatal is ever produced for one compile.
type Fatal struct {
	Code Code
	Pos  ast.Pos
	Msg  string
}

func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: %s at %s", f.Code, f.Msg, f.Pos)
}

// NewFatal builds a Fatal with a formatted message.
func NewFatal(code Code, pos ast.Pos, format string, args ...any) *Fatal {
	return &Fatal{Code: code, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// AsDiagnostic renders a Fatal as the single-element diagnostic list the
// library boundary surfaces when a stage panics or returns an error
// (spec.md §7 "Propagation": "the library boundary surfaces fatal errors
// as a single-element diagnostic list with success=false").
func (f *Fatal) AsDiagnostic() *Diagnostic {
	span := ast.Span{Start: f.Pos, End: f.Pos}
	return &Diagnostic{
		Code:     f.Code,
		Severity: Error,
		Message:  f.Msg,
		Span:     span,
	}
}
