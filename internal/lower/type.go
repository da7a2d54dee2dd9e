package lower

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

// lowerType maps a surface type to its Core IR shape. A two-argument
// TypeApp named "Workflow" is special-cased into the dedicated core.Workflow
// node (spec.md §3 "Types": Workflow<R,E> is its own node kind, not a
// generic instantiation, so the type checker's lattice-aware equality in
// §4.6 applies to it without a name lookup).
func (lw *lowerer) lowerType(t ast.Type) (core.Type, error) {
	switch n := t.(type) {
	case *ast.TypeName:
		return core.TypeName{Name: n.Name}, nil

	case *ast.TypeVar:
		return core.TypeVar{Name: n.Name}, nil

	case *ast.EffectVar:
		return core.EffectVar{Name: n.Name}, nil

	case *ast.Maybe:
		elem, err := lw.lowerType(n.Elem)
		if err != nil {
			return nil, err
		}
		return core.Maybe{Elem: elem}, nil

	case *ast.Option:
		elem, err := lw.lowerType(n.Elem)
		if err != nil {
			return nil, err
		}
		return core.Option{Elem: elem}, nil

	case *ast.Result:
		ok, err := lw.lowerType(n.Ok)
		if err != nil {
			return nil, err
		}
		errT, err := lw.lowerType(n.Err)
		if err != nil {
			return nil, err
		}
		return core.Result{Ok: ok, Err: errT}, nil

	case *ast.List:
		elem, err := lw.lowerType(n.Elem)
		if err != nil {
			return nil, err
		}
		return core.List{Elem: elem}, nil

	case *ast.Map:
		k, err := lw.lowerType(n.Key)
		if err != nil {
			return nil, err
		}
		v, err := lw.lowerType(n.Value)
		if err != nil {
			return nil, err
		}
		return core.Map{Key: k, Value: v}, nil

	case *ast.TypeApp:
		if n.BaseName == "Workflow" && len(n.Args) == 2 {
			r, err := lw.lowerType(n.Args[0])
			if err != nil {
				return nil, err
			}
			e, err := lw.lowerType(n.Args[1])
			if err != nil {
				return nil, err
			}
			return core.Workflow{R: r, E: e}, nil
		}
		args := make([]core.Type, len(n.Args))
		for i, a := range n.Args {
			lt, err := lw.lowerType(a)
			if err != nil {
				return nil, err
			}
			args[i] = lt
		}
		return core.TypeApp{BaseName: n.BaseName, Args: args}, nil

	case *ast.FuncType:
		params := make([]core.Type, len(n.Params))
		for i, p := range n.Params {
			lt, err := lw.lowerType(p)
			if err != nil {
				return nil, err
			}
			params[i] = lt
		}
		ret, err := lw.lowerType(n.Ret)
		if err != nil {
			return nil, err
		}
		items := make([]core.EffectItem, len(n.DeclaredEffects))
		for i, e := range n.DeclaredEffects {
			items[i] = core.EffectItem{Name: e.Name, IsVar: e.IsVar}
		}
		return core.FuncType{
			Params:          params,
			Ret:             ret,
			DeclaredEffects: items,
			EffectParams:    append([]string{}, n.EffectParams...),
		}, nil

	case *ast.PiiType:
		base, err := lw.lowerType(n.BaseType)
		if err != nil {
			return nil, err
		}
		if inner, ok := base.(core.PiiType); ok {
			// Flatten nested PII annotations into one; the outermost
			// annotation wins (spec.md §3 "Invariants").
			base = inner.BaseType
		}
		return core.PiiType{BaseType: base, Sensitivity: string(n.Sensitivity), Category: n.Category}, nil
	}

	return nil, diagnostic.NewFatal(diagnostic.UnknownTypeKind, t.Span().Start, "unknown type kind %T", t)
}
