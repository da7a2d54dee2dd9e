// Package typecheck implements the Type & Effect Checker (spec.md §4.7):
// symbol-table scoping, per-function type-parameter/effect-parameter
// validation, statement and call checking, effect-summary reconciliation,
// capability subset enforcement, PII flow analysis, match exhaustiveness,
// workflow DAG validation, and cross-module import resolution through the
// Module Cache. Unlike internal/lower, the checker never throws: every
// finding is appended to an accumulating diagnostics list so sibling
// declarations and statements are still checked after an error (spec.md §7
// "Accumulating diagnostics").
package typecheck

import (
	"sort"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/manifest"
	"github.com/aster-cloud/aster/internal/module"
)

// builtinTypeNames is the closed set of type names spec.md §4.7 pass 2
// recognizes without a data/enum declaration.
var builtinTypeNames = map[string]bool{
	"Int": true, "Long": true, "Double": true, "Bool": true, "Text": true,
	"Unit": true, "Unknown": true, "Result": true, "Option": true,
	"Maybe": true, "List": true, "Map": true, "Set": true, "Workflow": true,
}

// Options configures a Typecheck run (spec.md §6.1
// "typecheck(Core Module, {manifest?, moduleCache?, moduleSearchPaths?,
// lexicon?, enforcePii?})").
type Options struct {
	// Manifest is the optional capability manifest consulted as an
	// advisory channel (spec.md §4.7 pass 5, §6.4).
	Manifest *manifest.Manifest

	// ModuleCache resolves a dotted import name to its lowered Core IR
	// for cross-module call-target resolution (spec.md §4.7
	// "Cross-module resolution"). Optional: a module with unresolved
	// imports simply reports UNDEFINED_MODULE for any call into them
	// (spec.md §9 "typecheck in the source has both a browser variant
	// and a Node variant ... behavior when an import is unresolved is
	// UNDEFINED_MODULE, not silent success").
	ModuleCache *module.Cache

	// ModuleSearchPaths is forwarded to a ModuleCache constructed by the
	// caller; it is informational here and not otherwise consulted
	// directly by the checker.
	ModuleSearchPaths []string

	// Lexicon is accepted for interface symmetry with the other pipeline
	// stages; the checker itself works on already-lowered Core IR and
	// lexicon-independent identifiers, so it is unused today.
	Lexicon *lexicon.Lexicon

	// EnforcePii toggles PII flow analysis (spec.md §4.7 pass 6). nil
	// means "on", matching the optional-flag phrasing of spec.md §6.1.
	EnforcePii *bool
}

func (o Options) enforcePii() bool {
	return o.EnforcePii == nil || *o.EnforcePii
}

// Checker holds the per-compile state one Typecheck run accumulates.
type Checker struct {
	mod  *core.Module
	opts Options

	scope *Scope
	diags []*diagnostic.Diagnostic

	datas   map[string]*core.DataDecl
	enums   map[string]*core.EnumDecl
	imports map[string]*core.ImportDecl // alias/dotted-name -> decl
	funcs   map[string]*core.FuncDecl   // local function name -> decl

	// per-function state, reset by enterFunc
	curFunc          *core.FuncDecl
	typeParamSet     map[string]bool
	effectParamSet   map[string]bool
	usedTypeParams   map[string]bool
	usedEffectParams map[string]bool
	effectSummary    map[string]bool // concrete effect names accumulated while walking the body
	capSummary       map[string]bool // capability names implied by calls in the body
}

// Typecheck runs every pass of spec.md §4.7 over mod and returns the
// accumulated diagnostics, in source order (spec.md §5 "Diagnostic
// ordering guarantees"). It never panics or returns an error: a Core IR
// that violates an invariant lowering itself would have caught is simply
// outside this checker's scope.
func Typecheck(mod *core.Module, opts Options) []*diagnostic.Diagnostic {
	c := &Checker{
		mod:     mod,
		opts:    opts,
		scope:   newScope(ScopeModule, nil),
		datas:   map[string]*core.DataDecl{},
		enums:   map[string]*core.EnumDecl{},
		imports: map[string]*core.ImportDecl{},
		funcs:   map[string]*core.FuncDecl{},
	}

	c.collect()
	for _, d := range mod.Decls {
		fn, ok := d.(*core.FuncDecl)
		if !ok {
			continue
		}
		c.checkFunc(fn)
	}

	sort.SliceStable(c.diags, func(i, j int) bool { return lessSpan(c.diags[i].Span, c.diags[j].Span) })
	return c.diags
}

func lessSpan(a, b ast.Span) bool {
	if a.Start.Line != b.Start.Line {
		return a.Start.Line < b.Start.Line
	}
	return a.Start.Col < b.Start.Col
}

// report appends a diagnostic to the accumulating stream. It never aborts
// the pass in progress (spec.md §7 "the checker continues past an error
// when it can still produce further useful feedback").
func (c *Checker) report(d *diagnostic.Diagnostic) {
	c.diags = append(c.diags, d)
}

// spanOf renders a Core IR node's Origin as the ast.Span a Diagnostic
// carries.
func spanOf(n core.Node) ast.Span {
	o := n.Origin()
	return ast.Span{Start: o.Start, End: o.End}
}
