package core

import "fmt"

// Type is the family of Core IR type nodes (spec.md §3 "Types").
type Type interface {
	String() string
	typeNode()
}

// Constraint is a refinement attached to a data field or parameter
// (spec.md §4.3/§4.4: required, between, at least, at most, matching).
type Constraint interface {
	String() string
	constraintNode()
}

type RequiredConstraint struct{}

func (RequiredConstraint) constraintNode() {}
func (RequiredConstraint) String() string  { return "required" }

type BetweenConstraint struct{ Low, High float64 }

func (BetweenConstraint) constraintNode() {}
func (c BetweenConstraint) String() string { return fmt.Sprintf("between %g and %g", c.Low, c.High) }

type AtLeastConstraint struct{ N float64 }

func (AtLeastConstraint) constraintNode() {}
func (c AtLeastConstraint) String() string { return fmt.Sprintf("at least %g", c.N) }

type AtMostConstraint struct{ N float64 }

func (AtMostConstraint) constraintNode() {}
func (c AtMostConstraint) String() string { return fmt.Sprintf("at most %g", c.N) }

type MatchingConstraint struct{ Pattern string }

func (MatchingConstraint) constraintNode() {}
func (c MatchingConstraint) String() string { return fmt.Sprintf("matching pattern %q", c.Pattern) }

// TypeName is a named, non-parametric type (Int, Text, Bool, Unknown, or a
// user Data/Enum name).
type TypeName struct{ Name string }

func (TypeName) typeNode()        {}
func (t TypeName) String() string { return t.Name }

// TypeVar is a type parameter reference.
type TypeVar struct{ Name string }

func (TypeVar) typeNode()        {}
func (t TypeVar) String() string { return t.Name }

// EffectVar is an effect parameter reference, distinct from TypeVar so the
// type checker can tell "every declared TypeVar/EffectVar is used"
// diagnostics apart (spec.md §4.7 pass 2).
type EffectVar struct{ Name string }

func (EffectVar) typeNode()        {}
func (e EffectVar) String() string { return "effect " + e.Name }

// Maybe and Option are subtyping-equivalent (spec.md §4.6 "Subtyping") but
// kept as distinct node kinds because the AST preserves which surface
// keyword ("Null"-typed vs "Option of") produced them.
type Maybe struct{ Elem Type }

func (Maybe) typeNode()        {}
func (m Maybe) String() string { return fmt.Sprintf("Maybe<%s>", m.Elem) }

type Option struct{ Elem Type }

func (Option) typeNode()        {}
func (o Option) String() string { return fmt.Sprintf("Option<%s>", o.Elem) }

type Result struct{ Ok, Err Type }

func (Result) typeNode()        {}
func (r Result) String() string { return fmt.Sprintf("Result<%s,%s>", r.Ok, r.Err) }

type List struct{ Elem Type }

func (List) typeNode()        {}
func (l List) String() string { return fmt.Sprintf("List<%s>", l.Elem) }

type Map struct{ Key, Value Type }

func (Map) typeNode()        {}
func (m Map) String() string { return fmt.Sprintf("Map<%s,%s>", m.Key, m.Value) }

// TypeApp is a generic type application, e.g. Set<T> or a user-defined
// parametric Data/Enum instantiation.
type TypeApp struct {
	BaseName string
	Args     []Type
}

func (TypeApp) typeNode() {}
func (t TypeApp) String() string {
	s := t.BaseName + "<"
	for i, a := range t.Args {
		if i > 0 {
			s += ","
		}
		s += a.String()
	}
	return s + ">"
}

// Workflow is the return type of a workflow expression: R is the result
// type of the final step, E the declared effect row governing it (spec.md
// §4.6 "For Workflow<R, E>, R equality plus an effect-row check using the
// lattice").
type Workflow struct{ R, E Type }

func (Workflow) typeNode()        {}
func (w Workflow) String() string { return fmt.Sprintf("Workflow<%s,%s>", w.R, w.E) }

// FuncType is a function signature as a type.
type FuncType struct {
	Params          []Type
	Ret             Type
	DeclaredEffects []EffectItem
	EffectParams    []string
}

func (FuncType) typeNode() {}
func (f FuncType) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ","
		}
		s += p.String()
	}
	return s + ") -> " + f.Ret.String()
}

// PiiType tags a base type with a sensitivity and category. baseType is
// never itself a PiiType: lowering flattens nested PII annotations into one
// (spec.md §3 "Invariants").
type PiiType struct {
	BaseType    Type
	Sensitivity string // L1, L2, or L3
	Category    string
}

func (PiiType) typeNode() {}
func (p PiiType) String() string {
	return fmt.Sprintf("Pii<%s,%s,%s>", p.BaseType, p.Sensitivity, p.Category)
}
