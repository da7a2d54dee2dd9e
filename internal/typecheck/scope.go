package typecheck

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

// ScopeKind classifies a Scope, mirroring spec.md §4.7 "Symbol tables": "A
// stack of scopes (module, function, block, lambda, match-arm)".
type ScopeKind string

const (
	ScopeModule   ScopeKind = "module"
	ScopeFunction ScopeKind = "function"
	ScopeBlock    ScopeKind = "block"
	ScopeLambda   ScopeKind = "lambda"
	ScopeMatchArm ScopeKind = "match-arm"
)

// SymbolKind classifies a Symbol's role.
type SymbolKind string

const (
	SymVar   SymbolKind = "var"
	SymParam SymbolKind = "param"
	SymFunc  SymbolKind = "func"
	SymType  SymbolKind = "type"
	SymEnum  SymbolKind = "enum"
)

// Symbol is one entry of a scope's symbol table (spec.md §4.7 "Symbol
// tables"): {name, type, kind, defSpan}.
type Symbol struct {
	Name    string
	Type    core.Type
	Kind    SymbolKind
	DefSpan ast.Span
}

// Scope is one frame of the symbol-table stack. Shadowing across scopes is
// permitted; redefining a name within the same scope is not (spec.md §4.7
// "Symbol tables": "defineSymbol at the same scope with an existing name
// emits DUPLICATE_SYMBOL. Shadowing across scopes is permitted.").
type Scope struct {
	Kind    ScopeKind
	Symbols map[string]*Symbol
	Parent  *Scope
}

func newScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Symbols: make(map[string]*Symbol), Parent: parent}
}

// pushScope opens a new scope nested inside the current one.
func (c *Checker) pushScope(kind ScopeKind) {
	c.scope = newScope(kind, c.scope)
}

// popScope closes the current scope, returning to its parent.
func (c *Checker) popScope() {
	c.scope = c.scope.Parent
}

// define adds sym to the current scope, reporting DUPLICATE_SYMBOL if the
// name already exists at this exact scope level.
func (c *Checker) define(sym *Symbol) {
	if existing, ok := c.scope.Symbols[sym.Name]; ok {
		c.report(diagnostic.New(diagnostic.DuplicateSymbol, sym.DefSpan,
			"%q is already defined in this scope", sym.Name).
			WithRelated(diagnostic.RelatedInformation{Span: existing.DefSpan, Message: "previous definition"}))
		return
	}
	c.scope.Symbols[sym.Name] = sym
}

// lookup walks the scope chain outward looking for name, honoring
// shadowing (the innermost definition wins).
func (c *Checker) lookup(name string) (*Symbol, bool) {
	for s := c.scope; s != nil; s = s.Parent {
		if sym, ok := s.Symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
