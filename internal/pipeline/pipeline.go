// Package pipeline composes the canonicalizer, lexer, parser, lowerer, and
// type checker into the library API spec.md §6.1 describes: four discrete
// stages plus the two convenience operations, compile and
// compileAndTypecheck, every caller outside this module actually reaches
// for (spec.md §6.1 "exact names are implementation-defined").
package pipeline

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/canon"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/lexer"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/lower"
	"github.com/aster-cloud/aster/internal/manifest"
	"github.com/aster-cloud/aster/internal/module"
	"github.com/aster-cloud/aster/internal/parser"
	"github.com/aster-cloud/aster/internal/typecheck"
)

// Config bundles the optional knobs every stage of spec.md §6.1 accepts.
// A zero Config runs with the English lexicon, no domain substitution, and
// PII enforcement on.
type Config struct {
	Lexicon           *lexicon.Lexicon
	Domain            *lexicon.Domain
	Manifest          *manifest.Manifest
	ModuleCache       *module.Cache
	ModuleSearchPaths []string
	EnforcePii        *bool

	// Filename attributes diagnostics and Core IR node origins to a source
	// name; it plays no role in compilation itself.
	Filename string
}

func (cfg Config) lexiconOrDefault() *lexicon.Lexicon {
	if cfg.Lexicon != nil {
		return cfg.Lexicon
	}
	return lexicon.English()
}

func (cfg Config) filenameOrDefault() string {
	if cfg.Filename != "" {
		return cfg.Filename
	}
	return "<input>"
}

// Canonicalize runs spec.md §4.1's canonicalization pass. It never fails.
func Canonicalize(source string, cfg Config) string {
	return canon.Canonicalize(source, canon.Options{Lexicon: cfg.lexiconOrDefault(), Domain: cfg.Domain})
}

// Lex tokenizes already-canonicalized text (spec.md §4.2).
func Lex(canonicalText string, cfg Config) ([]lexer.Token, error) {
	return lexer.Lex(canonicalText, cfg.lexiconOrDefault())
}

// Parse builds the surface AST from a token stream (spec.md §4.3/§4.4).
func Parse(toks []lexer.Token) (*ast.File, error) {
	return parser.Parse(toks)
}

// Lower desugars a parsed file into Core IR (spec.md §4.5).
func Lower(file *ast.File, filename string) (*core.Module, error) {
	return lower.Lower(file, filename)
}

// Typecheck runs every pass of spec.md §4.7 over a lowered module.
func Typecheck(mod *core.Module, cfg Config) []*diagnostic.Diagnostic {
	return typecheck.Typecheck(mod, typecheck.Options{
		Manifest:          cfg.Manifest,
		ModuleCache:       cfg.ModuleCache,
		ModuleSearchPaths: cfg.ModuleSearchPaths,
		Lexicon:           cfg.lexiconOrDefault(),
		EnforcePii:        cfg.EnforcePii,
	})
}

// CompileResult is compile's return shape (spec.md §6.1
// "compile(source, options) -> {success, core|diagnostics}").
type CompileResult struct {
	Success     bool
	Core        *core.Module
	Diagnostics []*diagnostic.Diagnostic
}

// Compile runs canonicalize, lex, parse, and lower. A stage failure
// surfaces as the single-element diagnostic list spec.md §7 describes
// ("the library boundary surfaces fatal errors as a single-element
// diagnostic list with success=false"); it never panics.
func Compile(source string, cfg Config) CompileResult {
	canonical := Canonicalize(source, cfg)

	toks, err := Lex(canonical, cfg)
	if err != nil {
		return CompileResult{Diagnostics: []*diagnostic.Diagnostic{fatalDiagnostic(err)}}
	}

	file, err := Parse(toks)
	if err != nil {
		return CompileResult{Diagnostics: []*diagnostic.Diagnostic{fatalDiagnostic(err)}}
	}

	mod, err := Lower(file, cfg.filenameOrDefault())
	if err != nil {
		return CompileResult{Diagnostics: []*diagnostic.Diagnostic{fatalDiagnostic(err)}}
	}

	return CompileResult{Success: true, Core: mod}
}

// CompileAndTypecheckResult is compileAndTypecheck's return shape: unlike
// Compile, it always carries both the Core IR reached (if any) and the
// diagnostics accumulated along the way, since the type checker's list is
// concatenated after a successful lower rather than replacing it.
type CompileAndTypecheckResult struct {
	Success     bool
	Core        *core.Module
	Diagnostics []*diagnostic.Diagnostic
}

// CompileAndTypecheck composes Compile with Typecheck (spec.md §6.1
// "compileAndTypecheck(source, options) additionally runs typechecking and
// returns both Core IR and [Diagnostic]"). Success reflects whether lower
// reached Core IR at all; a Core IR with type-checker errors in its
// Diagnostics is still "success" in this sense, since typechecking itself
// never fails to produce a result (spec.md §7 "the checker never throws").
func CompileAndTypecheck(source string, cfg Config) CompileAndTypecheckResult {
	compiled := Compile(source, cfg)
	if !compiled.Success {
		return CompileAndTypecheckResult{Diagnostics: compiled.Diagnostics}
	}
	diags := Typecheck(compiled.Core, cfg)
	return CompileAndTypecheckResult{Success: true, Core: compiled.Core, Diagnostics: diags}
}

// fatalDiagnostic renders a thrown stage error as the single diagnostic
// spec.md §7 prescribes for a library-boundary failure. lower raises a
// *diagnostic.Fatal, which keeps its own code and position. lex and parse
// return *lexer.Error / *parser.Error instead; those take the fallback,
// which reports them under code "FATAL" with an empty span, the position
// appearing only inside the message text.
func fatalDiagnostic(err error) *diagnostic.Diagnostic {
	if f, ok := err.(*diagnostic.Fatal); ok {
		return f.AsDiagnostic()
	}
	return diagnostic.New("FATAL", ast.Span{}, "%v", err)
}
