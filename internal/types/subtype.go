package types

import (
	"strings"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/effects"
)

// IsSubtype reports whether sub is assignable where sup is expected
// (spec.md §4.6 "Subtyping"). Maybe<T> and Option<T> are mutually
// interchangeable; Result is invariant in both type parameters except that
// Unknown is compatible with everything; Workflow<R,E> requires R equality
// plus effectRowLeq on the declared effect rows.
func IsSubtype(sub, sup core.Type) bool {
	if isUnknown(sub) || isUnknown(sup) {
		return true
	}

	switch supT := sup.(type) {
	case core.Maybe:
		switch subT := sub.(type) {
		case core.Maybe:
			return IsSubtype(subT.Elem, supT.Elem)
		case core.Option:
			return IsSubtype(subT.Elem, supT.Elem)
		}
		return false
	case core.Option:
		switch subT := sub.(type) {
		case core.Option:
			return IsSubtype(subT.Elem, supT.Elem)
		case core.Maybe:
			return IsSubtype(subT.Elem, supT.Elem)
		}
		return false
	case core.Result:
		subT, ok := sub.(core.Result)
		if !ok {
			return false
		}
		return Equal(subT.Ok, supT.Ok, false) && Equal(subT.Err, supT.Err, false)
	case core.Workflow:
		subT, ok := sub.(core.Workflow)
		if !ok {
			return false
		}
		return Equal(subT.R, supT.R, false) && effectRowLeq(subT.E, supT.E)
	case core.List:
		subT, ok := sub.(core.List)
		return ok && IsSubtype(subT.Elem, supT.Elem)
	case core.Map:
		subT, ok := sub.(core.Map)
		return ok && IsSubtype(subT.Key, supT.Key) && IsSubtype(subT.Value, supT.Value)
	case core.PiiType:
		subT, ok := sub.(core.PiiType)
		if !ok {
			return IsSubtype(sub, supT.BaseType)
		}
		return subT.Sensitivity == supT.Sensitivity && subT.Category == supT.Category && IsSubtype(subT.BaseType, supT.BaseType)
	}
	return Equal(sub, sup, false)
}

// effectRowLeq reports whether sub ⊑ sup in the effect lattice (spec.md
// §4.6 "Effect lattice" PURE ⊑ CPU ⊑ IO ⊑ Workflow). When either side isn't
// a concrete effect name (an unresolved EffectVar, for instance) the rows
// can't be ranked, so they fall back to plain structural equality.
func effectRowLeq(sub, sup core.Type) bool {
	subEff, subOk := asEffect(sub)
	supEff, supOk := asEffect(sup)
	if subOk && supOk {
		return effects.Leq(subEff, supEff)
	}
	return Equal(sub, sup, false)
}

func asEffect(t core.Type) (effects.Effect, bool) {
	tn, ok := t.(core.TypeName)
	if !ok {
		return 0, false
	}
	return effects.ParseEffect(strings.ToLower(tn.Name))
}
