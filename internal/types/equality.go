// Package types implements the Core IR type system (spec.md §4.6): type
// equality and subtyping, the effect lattice, bidirectional unification,
// alias expansion, and the static-type inference helpers used by lowering
// and the type checker. It holds no declaration-collection or diagnostic
// logic — that lives in internal/typecheck, which calls into this package.
package types

import "github.com/aster-cloud/aster/internal/core"

// Unknown is the type used wherever inference gives up or nothing more
// specific is known (spec.md §4.6 "Type equality": "Unknown equals any
// type unless a strict flag is set").
var Unknown core.Type = core.TypeName{Name: "Unknown"}

func isUnknown(t core.Type) bool {
	tn, ok := t.(core.TypeName)
	return ok && tn.Name == "Unknown"
}

// Equal reports structural equality of a and b (spec.md §4.6 "Type
// equality"). strict disables the "Unknown equals anything" escape hatch.
func Equal(a, b core.Type, strict bool) bool {
	if !strict {
		if isUnknown(a) || isUnknown(b) {
			return true
		}
	}
	switch at := a.(type) {
	case core.TypeName:
		bt, ok := b.(core.TypeName)
		return ok && at.Name == bt.Name
	case core.TypeVar:
		bt, ok := b.(core.TypeVar)
		return ok && at.Name == bt.Name
	case core.EffectVar:
		bt, ok := b.(core.EffectVar)
		return ok && at.Name == bt.Name
	case core.Maybe:
		bt, ok := b.(core.Maybe)
		return ok && Equal(at.Elem, bt.Elem, strict)
	case core.Option:
		bt, ok := b.(core.Option)
		return ok && Equal(at.Elem, bt.Elem, strict)
	case core.Result:
		bt, ok := b.(core.Result)
		return ok && Equal(at.Ok, bt.Ok, strict) && Equal(at.Err, bt.Err, strict)
	case core.List:
		bt, ok := b.(core.List)
		return ok && Equal(at.Elem, bt.Elem, strict)
	case core.Map:
		bt, ok := b.(core.Map)
		return ok && Equal(at.Key, bt.Key, strict) && Equal(at.Value, bt.Value, strict)
	case core.TypeApp:
		bt, ok := b.(core.TypeApp)
		if !ok || at.BaseName != bt.BaseName || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i], strict) {
				return false
			}
		}
		return true
	case core.Workflow:
		bt, ok := b.(core.Workflow)
		return ok && Equal(at.R, bt.R, strict) && Equal(at.E, bt.E, strict)
	case core.FuncType:
		bt, ok := b.(core.FuncType)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i], strict) {
				return false
			}
		}
		if !Equal(at.Ret, bt.Ret, strict) {
			return false
		}
		return effectsEqual(at.DeclaredEffects, bt.DeclaredEffects) && stringsEqual(at.EffectParams, bt.EffectParams)
	case core.PiiType:
		bt, ok := b.(core.PiiType)
		return ok && at.Sensitivity == bt.Sensitivity && at.Category == bt.Category && Equal(at.BaseType, bt.BaseType, strict)
	}
	return false
}

// effectsEqual compares declaredEffects element-wise; an undefined
// (nil) list is equivalent to an empty one (spec.md §4.6 "Type equality").
func effectsEqual(a, b []core.EffectItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
