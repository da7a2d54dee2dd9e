package types

import "github.com/aster-cloud/aster/internal/core"

// Bindings maps a TypeVar/EffectVar name to the type or effect it has been
// unified with. Unify never mutates the types it is given — all binding
// decisions live in this map (spec.md §4.6 "Unification").
type Bindings map[string]core.Type

// Unify attempts to unify a and b, recording any new TypeVar/EffectVar
// bindings into bindings, and reports success. It is bidirectional: either
// side may contribute the concrete type for a variable on the other side.
// TypeApp must match both base name and arity; FuncType must match arity.
func Unify(a, b core.Type, bindings Bindings) bool {
	if av, ok := a.(core.TypeVar); ok {
		return bindVar(av.Name, b, bindings)
	}
	if bv, ok := b.(core.TypeVar); ok {
		return bindVar(bv.Name, a, bindings)
	}
	if av, ok := a.(core.EffectVar); ok {
		return bindVar(av.Name, b, bindings)
	}
	if bv, ok := b.(core.EffectVar); ok {
		return bindVar(bv.Name, a, bindings)
	}

	if isUnknown(a) || isUnknown(b) {
		return true
	}

	switch at := a.(type) {
	case core.TypeName:
		bt, ok := b.(core.TypeName)
		return ok && at.Name == bt.Name
	case core.Maybe:
		bt, ok := b.(core.Maybe)
		return ok && Unify(at.Elem, bt.Elem, bindings)
	case core.Option:
		bt, ok := b.(core.Option)
		return ok && Unify(at.Elem, bt.Elem, bindings)
	case core.Result:
		bt, ok := b.(core.Result)
		return ok && Unify(at.Ok, bt.Ok, bindings) && Unify(at.Err, bt.Err, bindings)
	case core.List:
		bt, ok := b.(core.List)
		return ok && Unify(at.Elem, bt.Elem, bindings)
	case core.Map:
		bt, ok := b.(core.Map)
		return ok && Unify(at.Key, bt.Key, bindings) && Unify(at.Value, bt.Value, bindings)
	case core.TypeApp:
		bt, ok := b.(core.TypeApp)
		if !ok || at.BaseName != bt.BaseName || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Unify(at.Args[i], bt.Args[i], bindings) {
				return false
			}
		}
		return true
	case core.Workflow:
		bt, ok := b.(core.Workflow)
		return ok && Unify(at.R, bt.R, bindings) && Unify(at.E, bt.E, bindings)
	case core.FuncType:
		bt, ok := b.(core.FuncType)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Unify(at.Params[i], bt.Params[i], bindings) {
				return false
			}
		}
		return Unify(at.Ret, bt.Ret, bindings)
	case core.PiiType:
		bt, ok := b.(core.PiiType)
		return ok && at.Sensitivity == bt.Sensitivity && at.Category == bt.Category && Unify(at.BaseType, bt.BaseType, bindings)
	}
	return Equal(a, b, false)
}

// bindVar binds name to t, or checks t is consistent with an existing
// binding: "An EffectVar unifies once; re-binding to a different effect
// fails unification" (spec.md §4.6 "Effect lattice") generalizes cleanly to
// TypeVars too.
func bindVar(name string, t core.Type, bindings Bindings) bool {
	if existing, ok := bindings[name]; ok {
		return Unify(existing, t, bindings)
	}
	bindings[name] = t
	return true
}
