// Package lower implements AST -> Core IR lowering (spec.md §4.5): effect-
// string validation, Null/None/Ok/Err type defaulting, short-lambda return
// type inference, capture-list computation, workflow dependency
// defaulting, capability inference from call-target prefixes, and PII
// metadata aggregation. Every failure is thrown as a *diagnostic.Fatal —
// lowering has no accumulating diagnostic stream (spec.md §7 "Fatal,
// throwing errors").
package lower

import (
	"strings"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/effects"
	"github.com/aster-cloud/aster/internal/sid"
)

// lowerer carries the per-compile state a lowering pass needs: the node-id
// allocator (spec.md §3 "Lifecycles") and the source file name attached to
// every Origin.
type lowerer struct {
	alloc *sid.Allocator
	file  string
}

// idOrigin is satisfied by every Core IR node via its embedded base
// (spec.md §3 "AST vs Core IR").
type idOrigin interface {
	SetID(uint64)
	SetOrigin(core.Origin)
}

func (lw *lowerer) origin(sp ast.Span) core.Origin {
	return core.Origin{File: lw.file, Start: sp.Start, End: sp.End}
}

func (lw *lowerer) finish(n idOrigin, sp ast.Span) {
	n.SetID(lw.alloc.Next())
	n.SetOrigin(lw.origin(sp))
}

// Lower lowers a parsed file into its Core IR module. filename is attached
// to every node's Origin so later diagnostics can point back at the
// original source (spec.md §4.5 "Contract": "Output: Core IR with origin
// attached").
func Lower(file *ast.File, filename string) (*core.Module, error) {
	lw := &lowerer{alloc: &sid.Allocator{}, file: filename}

	decls := make([]core.Decl, 0, len(file.Decls))
	for _, d := range file.Decls {
		cd, err := lw.lowerDecl(d)
		if err != nil {
			return nil, err
		}
		decls = append(decls, cd)
	}

	mod := &core.Module{Name: file.ModuleName, Decls: decls}
	lw.finish(mod, file.Span())
	return mod, nil
}

func (lw *lowerer) lowerDecl(d ast.Decl) (core.Decl, error) {
	switch n := d.(type) {
	case *ast.ImportDecl:
		out := &core.ImportDecl{Name: n.Name, AsName: n.AsName}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.DataDecl:
		fields := make([]*core.DataField, len(n.Fields))
		for i, f := range n.Fields {
			t, err := lw.lowerType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = &core.DataField{Name: f.Name, Type: t, Constraints: lw.lowerConstraints(f.Constraints)}
		}
		out := &core.DataDecl{Name: n.Name, Fields: fields}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.EnumDecl:
		out := &core.EnumDecl{Name: n.Name, Variants: append([]string{}, n.Variants...)}
		lw.finish(out, n.Span())
		return out, nil

	case *ast.FuncDecl:
		return lw.lowerFunc(n)
	}

	return nil, diagnostic.NewFatal(diagnostic.UnknownDeclKind, d.Span().Start, "unknown declaration kind %T", d)
}

func (lw *lowerer) lowerFunc(n *ast.FuncDecl) (*core.FuncDecl, error) {
	params, err := lw.lowerParams(n.Params)
	if err != nil {
		return nil, err
	}

	ret := core.Type(core.TypeName{Name: "Unknown"})
	if n.RetType != nil {
		ret, err = lw.lowerType(n.RetType)
		if err != nil {
			return nil, err
		}
	}

	declaredEffects, concreteEffects, err := lw.lowerEffects(n)
	if err != nil {
		return nil, err
	}

	body, err := lw.lowerBlock(n.Body)
	if err != nil {
		return nil, err
	}

	out := &core.FuncDecl{
		Name:               n.Name,
		TypeParams:         append([]string{}, n.TypeParams...),
		EffectParams:       append([]string{}, n.EffectParams...),
		Params:             params,
		RetType:            ret,
		DeclaredEffects:    declaredEffects,
		Effects:            concreteEffects,
		EffectCaps:         append([]string{}, n.EffectCaps...),
		EffectCapsExplicit: n.EffectCapsExplicit,
		Body:               body,
		Pii:                lw.aggregatePii(params, ret),
	}
	lw.finish(out, n.Span())
	return out, nil
}

func (lw *lowerer) lowerParams(ps []*ast.Param) ([]*core.Param, error) {
	out := make([]*core.Param, len(ps))
	for i, p := range ps {
		t := core.Type(core.TypeName{Name: "Unknown"})
		if !p.TypeInferred && p.Type != nil {
			lt, err := lw.lowerType(p.Type)
			if err != nil {
				return nil, err
			}
			t = lt
		}
		out[i] = &core.Param{Name: p.Name, Type: t, Constraints: lw.lowerConstraints(p.Constraints)}
	}
	return out, nil
}

// lowerEffects validates each declared effect string against {io, cpu,
// pure} unless it names one of the function's own effect parameters
// (spec.md §4.5 transformation 1). It returns both the full declared-effect
// list (concrete entries and variable references alike) and the concrete
// subset the type checker's effect summary starts from.
func (lw *lowerer) lowerEffects(n *ast.FuncDecl) ([]core.EffectItem, []string, error) {
	effectParamSet := make(map[string]bool, len(n.EffectParams))
	for _, ep := range n.EffectParams {
		effectParamSet[ep] = true
	}

	declared := make([]core.EffectItem, len(n.DeclaredEffects))
	var concrete []string
	for i, e := range n.DeclaredEffects {
		declared[i] = core.EffectItem{Name: e.Name, IsVar: e.IsVar}
		if e.IsVar {
			continue
		}
		if _, ok := effects.ParseEffect(e.Name); !ok {
			if effectParamSet[e.Name] {
				continue
			}
			return nil, nil, diagnostic.NewFatal(diagnostic.UnknownEffect, n.Span().Start,
				"unknown effect %q; recognized effects are %s", e.Name, strings.Join(effects.KnownEffectNames, ", "))
		}
		concrete = append(concrete, e.Name)
	}
	return declared, concrete, nil
}

func (lw *lowerer) lowerConstraints(cs []ast.Constraint) []core.Constraint {
	if len(cs) == 0 {
		return nil
	}
	out := make([]core.Constraint, len(cs))
	for i, c := range cs {
		switch n := c.(type) {
		case ast.RequiredConstraint:
			out[i] = core.RequiredConstraint{}
		case ast.BetweenConstraint:
			out[i] = core.BetweenConstraint{Low: n.Low, High: n.High}
		case ast.AtLeastConstraint:
			out[i] = core.AtLeastConstraint{N: n.N}
		case ast.AtMostConstraint:
			out[i] = core.AtMostConstraint{N: n.N}
		case ast.MatchingConstraint:
			out[i] = core.MatchingConstraint{Pattern: n.Pattern}
		}
	}
	return out
}
