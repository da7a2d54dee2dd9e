package typecheck

import (
	"strings"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/types"
)

var operatorNames = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"not": true, "and": true, "or": true,
}

var operatorArithmetic = map[string]bool{"+": true, "-": true, "*": true, "/": true}

// checkExpr is pass 3/4's expression walk: it recurses into every
// subexpression (so calls nested anywhere still drive effect/capability/PII
// accumulation) and returns the expression's inferred type, following the
// same rules as types.InferStaticType (spec.md §4.6 "Helpers", §4.5
// transformation 2) but built directly over the Checker so a Call can run
// pass 4/5/6's checks as it is visited.
func (c *Checker) checkExpr(e core.Expr) core.Type {
	switch n := e.(type) {
	case *core.Literal:
		return types.InferStaticType(n, c.typeLookup)

	case *core.Name:
		name := n.String()
		if sym, ok := c.lookup(name); ok {
			return sym.Type
		}
		if len(n.Parts) == 1 {
			if _, ok := c.imports[name]; ok {
				return types.Unknown
			}
		}
		c.report(diagnostic.New(diagnostic.UndefinedVariable, spanOf(n), "undefined variable %q", name))
		return types.Unknown

	case *core.Call:
		return c.checkCall(n)

	case *core.Construct:
		dataDecl := c.datas[n.TypeName]
		for _, f := range n.Fields {
			argT := c.checkExpr(f.Value)
			if dataDecl == nil {
				continue
			}
			field := lookupDataField(dataDecl, f.Name)
			if field == nil {
				c.report(diagnostic.New(diagnostic.UnknownField, spanOf(n),
					"%s has no field %q", n.TypeName, f.Name))
				continue
			}
			if !types.IsSubtype(argT, field.Type) {
				c.report(diagnostic.New(diagnostic.FieldTypeMismatch, spanOf(n),
					"field %q expects %s, got %s", f.Name, field.Type, argT))
			}
		}
		if dataDecl != nil {
			c.checkRequiredFields(dataDecl, n)
		}
		return core.TypeName{Name: n.TypeName}

	case *core.Ok:
		return core.Result{Ok: c.checkExpr(n.Value), Err: types.Unknown}

	case *core.Err:
		return core.Result{Ok: types.Unknown, Err: c.checkExpr(n.Value)}

	case *core.Some:
		return core.Option{Elem: c.checkExpr(n.Value)}

	case *core.None:
		return core.Option{Elem: types.Unknown}

	case *core.Await:
		t := c.checkExpr(n.Value)
		if !isAwaitable(t) {
			c.report(diagnostic.New(diagnostic.AwaitType, spanOf(n),
				"await requires Maybe<T>, Option<T> or Result<T,_>, got %s", t))
		}
		return awaitedType(t)

	case *core.Lambda:
		c.pushScope(ScopeLambda)
		for _, p := range n.Params {
			c.define(&Symbol{Name: p.Name, Type: p.Type, Kind: SymParam})
		}
		if n.Body != nil {
			c.checkBlock(n.Body)
		}
		c.popScope()
		ret := n.RetType
		if ret == nil {
			ret = types.InferReturnType(n.Body, c.typeLookup)
		}
		params := make([]core.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Type
		}
		return core.FuncType{Params: params, Ret: ret}
	}
	return types.Unknown
}

func lookupDataField(d *core.DataDecl, name string) *core.DataField {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// checkRequiredFields flags a Construct that omits a field carrying a
// RequiredConstraint (spec.md §4.3 "required").
func (c *Checker) checkRequiredFields(d *core.DataDecl, n *core.Construct) {
	given := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		given[f.Name] = true
	}
	for _, f := range d.Fields {
		if !given[f.Name] && hasRequired(f.Constraints) {
			c.report(diagnostic.New(diagnostic.MissingRequiredField, spanOf(n),
				"missing required field %q", f.Name))
		}
	}
}

func hasRequired(cs []core.Constraint) bool {
	for _, c := range cs {
		if _, ok := c.(core.RequiredConstraint); ok {
			return true
		}
	}
	return false
}

func isAwaitable(t core.Type) bool {
	switch t.(type) {
	case core.Maybe, core.Option, core.Result:
		return true
	}
	return false
}

func awaitedType(t core.Type) core.Type {
	switch n := t.(type) {
	case core.Maybe:
		return n.Elem
	case core.Option:
		return n.Elem
	case core.Result:
		return n.Ok
	}
	return types.Unknown
}

// checkCall is passes 4-6 together: resolve the target's signature, check
// arity/argument subtyping, union the callee's effects into the current
// function's effect summary, enforce the capability subset, and flag any
// PII-typed argument reaching a capability-gated or logging call.
func (c *Checker) checkCall(call *core.Call) core.Type {
	argTypes := make([]core.Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.checkExpr(a)
	}

	name, ok := call.Target.(*core.Name)
	if !ok {
		return types.Unknown
	}

	if operatorNames[name.String()] {
		if operatorArithmetic[name.String()] {
			return core.TypeName{Name: "Int"}
		}
		return core.TypeName{Name: "Bool"}
	}

	dotted := name.String()

	if fn, ok := c.funcs[dotted]; ok && len(name.Parts) == 1 {
		c.checkArity(fn.Params, argTypes, call)
		for _, eff := range fn.Effects {
			c.effectSummary[eff] = true
		}
		for _, cap := range fn.EffectCaps {
			c.requireCapability(cap, call)
		}
		if len(fn.EffectCaps) > 0 {
			c.checkPiiLeak(dotted, fn.EffectCaps[0], argTypes, call)
		}
		return fn.RetType
	}

	if sig, ok := builtins[dotted]; ok {
		c.checkArity(sig.Params, argTypes, call)
		if sig.Effect != "" {
			c.effectSummary[sig.Effect] = true
		}
		if sig.Capability != "" {
			c.requireCapability(sig.Capability, call)
		}
		c.checkPiiLeak(dotted, sig.Capability, argTypes, call)
		return sig.Ret
	}

	if len(name.Parts) > 1 {
		if imp, matched, ok := c.matchImport(name.Parts); ok {
			fn, ok := c.resolveImportedFunc(imp, strings.Join(name.Parts[matched:], "."), call)
			if !ok {
				return types.Unknown
			}
			c.checkArity(fn.Params, argTypes, call)
			for _, eff := range fn.Effects {
				c.effectSummary[eff] = true
			}
			for _, cap := range fn.EffectCaps {
				c.requireCapability(cap, call)
			}
			if len(fn.EffectCaps) > 0 {
				c.checkPiiLeak(dotted, fn.EffectCaps[0], argTypes, call)
			}
			return fn.RetType
		}
	}

	if sym, ok := c.lookup(name.Parts[0]); ok && len(name.Parts) == 1 {
		if ft, ok := sym.Type.(core.FuncType); ok {
			c.checkArity(typesToParams(ft.Params), argTypes, call)
			return ft.Ret
		}
	}

	c.report(diagnostic.New(diagnostic.UndefinedVariable, spanOf(call), "undefined function %q", dotted))
	return types.Unknown
}

func typesToParams(ts []core.Type) []*core.Param {
	out := make([]*core.Param, len(ts))
	for i, t := range ts {
		out[i] = &core.Param{Type: t}
	}
	return out
}

// checkArity flags an argument-count mismatch and, for each position both
// lists have, a subtype mismatch reusing TYPE_MISMATCH_ASSIGN (spec.md §4.7
// item 4 "Argument arity and subtype fit are checked").
func (c *Checker) checkArity(params []*core.Param, args []core.Type, call *core.Call) {
	if len(params) != len(args) {
		c.report(diagnostic.New(diagnostic.ArityMismatch, spanOf(call),
			"expected %d argument(s), got %d", len(params), len(args)))
	}
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		if params[i].Type == nil {
			continue
		}
		if !types.IsSubtype(args[i], params[i].Type) {
			c.report(diagnostic.New(diagnostic.TypeMismatchAssign, spanOf(call),
				"argument %d expects %s, got %s", i+1, params[i].Type, args[i]))
		}
	}
}
