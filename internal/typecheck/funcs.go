package typecheck

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

// checkFunc runs passes 2-8 of spec.md §4.7 over one function declaration:
// type/effect parameter validation, parameter binding, body statement
// checking (which itself drives call resolution, capability and PII
// checks, exhaustiveness, and workflow validation), and the effect-summary
// reconciliation pass 4 closes with.
func (c *Checker) checkFunc(fn *core.FuncDecl) {
	c.curFunc = fn
	c.typeParamSet = setOf(fn.TypeParams)
	c.effectParamSet = setOf(fn.EffectParams)
	c.usedTypeParams = map[string]bool{}
	c.usedEffectParams = map[string]bool{}
	c.effectSummary = map[string]bool{}
	c.capSummary = map[string]bool{}

	c.pushScope(ScopeFunction)
	defer c.popScope()

	for _, p := range fn.Params {
		c.validateType(p.Type, spanOf(fn))
		c.define(&Symbol{Name: p.Name, Type: p.Type, Kind: SymParam, DefSpan: spanOf(fn)})
	}
	c.validateType(fn.RetType, spanOf(fn))

	for _, e := range fn.DeclaredEffects {
		if e.IsVar {
			c.usedEffectParams[e.Name] = true
		}
	}

	for _, tp := range fn.TypeParams {
		if !c.usedTypeParams[tp] {
			c.report(diagnostic.New(diagnostic.TypeParamUnused, spanOf(fn),
				"type parameter %q is not reachable from any parameter or return type", tp))
		}
	}
	for _, ep := range fn.EffectParams {
		if !c.usedEffectParams[ep] {
			c.report(diagnostic.New(diagnostic.TypeParamUnused, spanOf(fn),
				"effect parameter %q does not appear in declaredEffects", ep))
		}
	}

	if fn.Body != nil {
		c.checkBlock(fn.Body)
	}

	c.reconcileEffects(fn)
}

func setOf(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// validateType walks a Core IR type, marking TypeVar/EffectVar reachability
// for the unused-parameter check and classifying unresolved TypeName nodes
// as TYPEVAR_LIKE_UNDECLARED (single-letter-uppercase, e.g. a forgotten
// type parameter) or UNKNOWN_TYPE (spec.md §4.7 pass 2).
func (c *Checker) validateType(t core.Type, span ast.Span) {
	if t == nil {
		return
	}
	switch n := t.(type) {
	case core.TypeName:
		if builtinTypeNames[n.Name] || c.datas[n.Name] != nil || c.enums[n.Name] != nil {
			return
		}
		if isTypeVarLike(n.Name) {
			c.report(diagnostic.New(diagnostic.TypeVarLikeUndeclared, span,
				"%q looks like a type parameter but is not declared on this rule", n.Name))
			return
		}
		c.report(diagnostic.New(diagnostic.UnknownType, span, "unknown type %q", n.Name))

	case core.TypeVar:
		c.usedTypeParams[n.Name] = true
		if !c.typeParamSet[n.Name] {
			c.report(diagnostic.New(diagnostic.TypeVarUndeclared, span,
				"type variable %q is not declared on this rule", n.Name))
		}

	case core.EffectVar:
		c.usedEffectParams[n.Name] = true
		if !c.effectParamSet[n.Name] {
			c.report(diagnostic.New(diagnostic.EffectVarUndeclared, span,
				"effect variable %q is not declared on this rule", n.Name))
		}

	case core.Maybe:
		c.validateType(n.Elem, span)
	case core.Option:
		c.validateType(n.Elem, span)
	case core.Result:
		c.validateType(n.Ok, span)
		c.validateType(n.Err, span)
	case core.List:
		c.validateType(n.Elem, span)
	case core.Map:
		c.validateType(n.Key, span)
		c.validateType(n.Value, span)
	case core.TypeApp:
		for _, a := range n.Args {
			c.validateType(a, span)
		}
	case core.Workflow:
		c.validateType(n.R, span)
		c.validateType(n.E, span)
	case core.FuncType:
		for _, p := range n.Params {
			c.validateType(p, span)
		}
		c.validateType(n.Ret, span)
	case core.PiiType:
		c.validateType(n.BaseType, span)
	}
}

// isTypeVarLike reports whether name is a single uppercase letter, the
// surface convention for a type parameter (spec.md §4.7 pass 2).
func isTypeVarLike(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}

// reconcileEffects is pass 4's effect-summary close-out (spec.md §4.7 item
// 4): the callee effects accumulated while walking the body must be a
// subset of declaredEffects' concrete entries, else EFF_MISSING_IO/
// EFF_MISSING_CPU; a declared concrete effect the body never exercises
// warns EFF_SUPERFLUOUS_IO/EFF_SUPERFLUOUS_CPU.
func (c *Checker) reconcileEffects(fn *core.FuncDecl) {
	declared := setOf(fn.Effects)

	if c.effectSummary["io"] && !declared["io"] {
		c.report(diagnostic.New(diagnostic.EffMissingIO, spanOf(fn),
			"rule %q performs io but does not declare it", fn.Name))
	}
	if c.effectSummary["cpu"] && !declared["cpu"] {
		c.report(diagnostic.New(diagnostic.EffMissingCPU, spanOf(fn),
			"rule %q performs cpu work but does not declare it", fn.Name))
	}
	if declared["io"] && !c.effectSummary["io"] {
		c.report(diagnostic.NewWarning(diagnostic.EffSuperfluousIO, spanOf(fn),
			"rule %q declares io but its body never performs it", fn.Name))
	}
	if declared["cpu"] && !c.effectSummary["cpu"] {
		c.report(diagnostic.NewWarning(diagnostic.EffSuperfluousCPU, spanOf(fn),
			"rule %q declares cpu but its body never performs it", fn.Name))
	}

	c.checkCapabilitySubset(fn)
}
