package types

import "github.com/aster-cloud/aster/internal/core"

// Constraint is one item accepted by the constraint solver (spec.md §4.6
// "Constraint solver"): either an equality or a subtype obligation between
// two types.
type Constraint struct {
	Subtype bool // false = Equals, true = Subtype (A must be a subtype of B)
	A, B    core.Type
}

// Solve resolves a list of constraints by iterated unification/subtype
// checks over a shared bindings map, returning nil on conflict (spec.md
// §4.6 "Constraint solver": "returns null on conflict").
func Solve(constraints []Constraint) Bindings {
	bindings := Bindings{}
	for _, c := range constraints {
		if c.Subtype {
			a := ExpandAlias(c.A, nil)
			b := ExpandAlias(c.B, nil)
			if !IsSubtype(a, b) && !Unify(a, b, bindings) {
				return nil
			}
			continue
		}
		if !Unify(c.A, c.B, bindings) {
			return nil
		}
	}
	return bindings
}
