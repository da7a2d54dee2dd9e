package lower

import (
	"sort"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/types"
)

func (lw *lowerer) lowerExpr(e ast.Expr) (core.Expr, error) {
	switch n := e.(type) {
	case *ast.Name:
		out := &core.Name{Parts: append([]string{}, n.Parts...)}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Literal:
		out := &core.Literal{Kind: core.LiteralKind(n.Kind), Value: n.Value}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Call:
		target, err := lw.lowerExpr(n.Target)
		if err != nil {
			return nil, err
		}
		args := make([]core.Expr, len(n.Args))
		for i, a := range n.Args {
			la, err := lw.lowerExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = la
		}
		out := &core.Call{Target: target, Args: args}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Construct:
		fields := make([]*core.ConstructField, len(n.Fields))
		for i, f := range n.Fields {
			v, err := lw.lowerExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = &core.ConstructField{Name: f.Name, Value: v}
		}
		out := &core.Construct{TypeName: n.TypeName, Fields: fields}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Ok:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.Ok{Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Err:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.Err{Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Some:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.Some{Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.None:
		out := &core.None{}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Await:
		v, err := lw.lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		out := &core.Await{Value: v}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.Lambda:
		return lw.lowerLambda(n)
	}

	return nil, diagnostic.NewFatal(diagnostic.UnknownExprKind, e.Span().Start, "unknown expression kind %T", e)
}

// lowerLambda infers a nil RetType from the body's last Return (spec.md
// §4.5 transformation 3) via the same static-type inference the type
// checker uses (internal/types.InferReturnType), so lowering and checking
// never disagree on the "common cases" rule. Captures are computed by one
// AST walk over the unlowered body, excluding parameter names and dotted
// references (spec.md §4.5 transformation 4).
func (lw *lowerer) lowerLambda(n *ast.Lambda) (*core.Lambda, error) {
	params, err := lw.lowerParams(n.Params)
	if err != nil {
		return nil, err
	}
	body, err := lw.lowerBlock(n.Body)
	if err != nil {
		return nil, err
	}

	ret := n.RetType
	var retType core.Type
	if ret != nil {
		retType, err = lw.lowerType(ret)
		if err != nil {
			return nil, err
		}
	} else {
		retType = types.InferReturnType(body, noLookup)
	}

	out := &core.Lambda{
		Params:   params,
		RetType:  retType,
		Body:     body,
		Captures: computeCaptures(n.Params, n.Body),
	}
	lw.finish(out, n.Span())
	return out, nil
}

func noLookup(string) (core.Type, bool) { return nil, false }

// computeCaptures walks a lambda body once, recording every single-part
// Name read that is not bound by a parameter, Let/Start binding, or match
// pattern in scope. Dotted references (module-qualified calls like
// "Http.get") are excluded, since they never denote a closed-over local
// (spec.md §4.5 transformation 4).
func computeCaptures(params []*ast.Param, body *ast.Block) []string {
	bound := map[string]bool{}
	for _, p := range params {
		bound[p.Name] = true
	}
	seen := map[string]bool{}
	var captures []string

	record := func(name string) {
		if bound[name] || seen[name] {
			return
		}
		seen[name] = true
		captures = append(captures, name)
	}

	var walkBlock func(*ast.Block)
	var walkStmt func(ast.Stmt)
	var walkExpr func(ast.Expr)

	walkExpr = func(e ast.Expr) {
		switch n := e.(type) {
		case *ast.Name:
			if len(n.Parts) == 1 {
				record(n.Parts[0])
			}
		case *ast.Call:
			walkExpr(n.Target)
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *ast.Construct:
			for _, f := range n.Fields {
				walkExpr(f.Value)
			}
		case *ast.Ok:
			walkExpr(n.Value)
		case *ast.Err:
			walkExpr(n.Value)
		case *ast.Some:
			walkExpr(n.Value)
		case *ast.Await:
			walkExpr(n.Value)
		case *ast.Lambda:
			saved := snapshot(bound)
			for _, p := range n.Params {
				bound[p.Name] = true
			}
			walkBlock(n.Body)
			bound = saved
		}
	}

	bindPattern := func(p ast.Pattern) {
		var walk func(ast.Pattern)
		walk = func(p ast.Pattern) {
			switch n := p.(type) {
			case *ast.PatName:
				bound[n.Name] = true
			case *ast.PatCtor:
				for _, nm := range n.Names {
					bound[nm] = true
				}
				for _, a := range n.Args {
					walk(a)
				}
			}
		}
		walk(p)
	}

	walkStmt = func(s ast.Stmt) {
		switch n := s.(type) {
		case *ast.LetStmt:
			walkExpr(n.Value)
			bound[n.Name] = true
		case *ast.SetStmt:
			walkExpr(n.Value)
		case *ast.ReturnStmt:
			if n.Value != nil {
				walkExpr(n.Value)
			}
		case *ast.IfStmt:
			walkExpr(n.Cond)
			walkBlock(n.Then)
			if n.Else != nil {
				walkBlock(n.Else)
			}
		case *ast.MatchStmt:
			walkExpr(n.Scrutinee)
			for _, arm := range n.Arms {
				saved := snapshot(bound)
				bindPattern(arm.Pattern)
				walkBlock(arm.Body)
				bound = saved
			}
		case *ast.ScopeStmt:
			walkBlock(n.Body)
		case *ast.StartStmt:
			walkExpr(n.Value)
			bound[n.Name] = true
		case *ast.WaitStmt:
			// names it waits on were Started earlier in the same body and
			// are already bound.
		case *ast.WorkflowStmt:
			for _, step := range n.Steps {
				walkBlock(step.Body)
				if step.Compensate != nil {
					walkBlock(step.Compensate)
				}
			}
		}
	}

	walkBlock = func(b *ast.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Stmts {
			walkStmt(s)
		}
	}

	walkBlock(body)
	sort.Strings(captures)
	return captures
}

func snapshot(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
