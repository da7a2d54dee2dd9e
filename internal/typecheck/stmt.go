package typecheck

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/types"
)

// typeLookup adapts the Checker's scope chain to the types.Lookup function
// pointer package types' inference helpers expect.
func (c *Checker) typeLookup(name string) (core.Type, bool) {
	sym, ok := c.lookup(name)
	if !ok {
		return nil, false
	}
	return sym.Type, true
}

// checkBlock runs pass 3 (spec.md §4.7 item 3) over a statement sequence.
func (c *Checker) checkBlock(b *core.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
}

func (c *Checker) checkStmt(s core.Stmt) {
	switch n := s.(type) {
	case *core.LetStmt:
		t := c.checkExpr(n.Value)
		c.define(&Symbol{Name: n.Name, Type: t, Kind: SymVar, DefSpan: spanOf(n)})

	case *core.SetStmt:
		t := c.checkExpr(n.Value)
		sym, ok := c.lookup(n.Name)
		if !ok {
			c.report(diagnostic.New(diagnostic.UndefinedVariable, spanOf(n), "undefined variable %q", n.Name))
			return
		}
		if !types.IsSubtype(t, sym.Type) {
			c.report(diagnostic.New(diagnostic.TypeMismatchAssign, spanOf(n),
				"cannot assign %s to %q of type %s", t, n.Name, sym.Type))
		}

	case *core.ReturnStmt:
		var t core.Type = core.TypeName{Name: "Unit"}
		if n.Value != nil {
			t = c.checkExpr(n.Value)
		}
		if c.curFunc != nil && c.curFunc.RetType != nil && !types.IsSubtype(t, c.curFunc.RetType) {
			c.report(diagnostic.New(diagnostic.ReturnTypeMismatch, spanOf(n),
				"returns %s but rule %q produces %s", t, c.curFunc.Name, c.curFunc.RetType))
		}

	case *core.IfStmt:
		c.checkExpr(n.Cond)
		c.pushScope(ScopeBlock)
		c.checkBlock(n.Then)
		c.popScope()
		if n.Else != nil {
			c.pushScope(ScopeBlock)
			c.checkBlock(n.Else)
			c.popScope()
			c.checkBranchCompatibility(n.Then, n.Else, spanOf(n))
		}

	case *core.MatchStmt:
		c.checkMatch(n)

	case *core.ScopeStmt:
		c.pushScope(ScopeBlock)
		c.checkBlock(n.Body)
		c.popScope()

	case *core.StartStmt:
		t := c.checkExpr(n.Value)
		c.define(&Symbol{Name: n.Name, Type: t, Kind: SymVar, DefSpan: spanOf(n)})

	case *core.WaitStmt:
		for _, name := range n.Names {
			if _, ok := c.lookup(name); !ok {
				c.report(diagnostic.New(diagnostic.UndefinedVariable, spanOf(n), "undefined variable %q", name))
			}
		}

	case *core.WorkflowStmt:
		c.checkWorkflow(n)
	}
}

// checkBranchCompatibility implements the "branches' return-type shapes
// must be compatible" half of spec.md §4.7 item 3 for If statements: it
// infers each branch's return type independently and flags a mismatch only
// when both branches actually return something and disagree.
func (c *Checker) checkBranchCompatibility(then, els *core.Block, span ast.Span) {
	thenT := types.InferReturnType(then, c.typeLookup)
	elseT := types.InferReturnType(els, c.typeLookup)
	if types.Equal(thenT, types.Unknown, true) || types.Equal(elseT, types.Unknown, true) {
		return
	}
	if !types.Equal(thenT, elseT, false) {
		c.report(diagnostic.New(diagnostic.MatchBranchMismatch, span,
			"branches return incompatible types %s and %s", thenT, elseT))
	}
}
