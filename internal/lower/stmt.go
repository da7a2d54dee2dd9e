package lower

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

func (lw *lowerer) lowerBlock(b *ast.Block) (*core.Block, error) {
	if b == nil {
		return nil, nil
	}
	stmts := make([]core.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		cs, err := lw.lowerStmt(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, cs)
	}
	out := &core.Block{Stmts: stmts}
	lw.finish(out, b.Span())
	return out, nil
}

func (lw *lowerer) lowerStmt(s ast.Stmt) (core.Stmt, error) {
	switch n := s.(type) {
	case *ast.LetStmt:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.LetStmt{Name: n.Name, Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.SetStmt:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.SetStmt{Name: n.Name, Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.ReturnStmt:
		var v core.Expr
		if n.Value != nil {
			lv, err := lw.lowerExpr(n.Value)
			if err != nil {
				return nil, err
			}
			v = lv
		}
		out := &core.ReturnStmt{Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.IfStmt:
		cond, err := lw.lowerExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := lw.lowerBlock(n.Then)
		if err != nil {
			return nil, err
		}
		var els *core.Block
		if n.Else != nil {
			els, err = lw.lowerBlock(n.Else)
			if err != nil {
				return nil, err
			}
		}
		out := &core.IfStmt{Cond: cond, Then: then, Else: els}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.MatchStmt:
		scrut, err := lw.lowerExpr(n.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]*core.MatchArm, len(n.Arms))
		for i, a := range n.Arms {
			pat, err := lw.lowerPattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := lw.lowerBlock(a.Body)
			if err != nil {
				return nil, err
			}
			arms[i] = &core.MatchArm{Pattern: pat, Body: body}
		}
		out := &core.MatchStmt{Scrutinee: scrut, Arms: arms}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.ScopeStmt:
		body, err := lw.lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		out := &core.ScopeStmt{Body: body}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.StartStmt:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.StartStmt{Name: n.Name, Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.WaitStmt:
		out := &core.WaitStmt{Names: append([]string{}, n.Names...)}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.WorkflowStmt:
		return lw.lowerWorkflow(n)
	}

	return nil, diagnostic.NewFatal(diagnostic.UnknownStmtKind, s.Span().Start, "unknown statement kind %T", s)
}
