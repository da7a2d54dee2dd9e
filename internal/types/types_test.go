package types

import (
	"testing"

	"github.com/aster-cloud/aster/internal/core"
)

func TestUnknownEqualsAnythingUnlessStrict(t *testing.T) {
	if !Equal(Unknown, core.TypeName{Name: "Int"}, false) {
		t.Fatal("Unknown should equal anything when not strict")
	}
	if Equal(Unknown, core.TypeName{Name: "Int"}, true) {
		t.Fatal("Unknown should not equal Int under strict equality")
	}
}

func TestFuncTypeEffectsUndefinedEquivalentToEmpty(t *testing.T) {
	a := core.FuncType{Ret: core.TypeName{Name: "Int"}}
	b := core.FuncType{Ret: core.TypeName{Name: "Int"}, DeclaredEffects: []core.EffectItem{}}
	if !Equal(a, b, true) {
		t.Fatal("nil and empty DeclaredEffects should be equivalent")
	}
}

func TestMaybeOptionSubtypeEquivalence(t *testing.T) {
	m := core.Maybe{Elem: core.TypeName{Name: "Text"}}
	o := core.Option{Elem: core.TypeName{Name: "Text"}}
	if !IsSubtype(m, o) || !IsSubtype(o, m) {
		t.Fatal("Maybe<T> and Option<T> must be mutually subtype-compatible")
	}
}

func TestResultInvariantExceptUnknown(t *testing.T) {
	intErr := core.Result{Ok: core.TypeName{Name: "Int"}, Err: core.TypeName{Name: "Text"}}
	boolErr := core.Result{Ok: core.TypeName{Name: "Bool"}, Err: core.TypeName{Name: "Text"}}
	if IsSubtype(intErr, boolErr) {
		t.Fatal("Result should be invariant: Result<Int,Text> is not a subtype of Result<Bool,Text>")
	}
	unknownErr := core.Result{Ok: Unknown, Err: core.TypeName{Name: "Text"}}
	if !IsSubtype(intErr, unknownErr) {
		t.Fatal("Unknown should be compatible with anything even under Result invariance")
	}
}

func TestWorkflowSubtypeChecksEffectRow(t *testing.T) {
	result := core.TypeName{Name: "Order"}
	pure := core.Workflow{R: result, E: core.TypeName{Name: "pure"}}
	cpu := core.Workflow{R: result, E: core.TypeName{Name: "cpu"}}
	io := core.Workflow{R: result, E: core.TypeName{Name: "io"}}

	if !IsSubtype(pure, io) {
		t.Fatal("Workflow<Order,pure> should be a subtype of Workflow<Order,io>: pure ⊑ io")
	}
	if IsSubtype(io, pure) {
		t.Fatal("Workflow<Order,io> should not be a subtype of Workflow<Order,pure>: io ⋢ pure")
	}
	if !IsSubtype(cpu, cpu) {
		t.Fatal("Workflow<Order,cpu> should be a subtype of itself")
	}

	otherResult := core.Workflow{R: core.TypeName{Name: "Shipment"}, E: core.TypeName{Name: "pure"}}
	if IsSubtype(pure, otherResult) {
		t.Fatal("Workflow result types are invariant; Order and Shipment must not be interchangeable")
	}

	varied := core.Workflow{R: result, E: core.EffectVar{Name: "E"}}
	if IsSubtype(pure, varied) {
		t.Fatal("a concrete effect row is not a subtype of an unresolved effect variable")
	}
	if !IsSubtype(varied, varied) {
		t.Fatal("an effect variable should be a subtype of itself (falls back to structural equality)")
	}
}

func TestUnifyBindsTypeVarBothDirections(t *testing.T) {
	bindings := Bindings{}
	if !Unify(core.TypeVar{Name: "T"}, core.TypeName{Name: "Int"}, bindings) {
		t.Fatal("Unify should bind T -> Int")
	}
	if bindings["T"] != (core.TypeName{Name: "Int"}) {
		t.Fatalf("expected T bound to Int, got %v", bindings["T"])
	}
	if !Unify(core.TypeName{Name: "Int"}, core.TypeVar{Name: "T"}, bindings) {
		t.Fatal("Unify should succeed re-unifying T with the same concrete type from the other side")
	}
	if Unify(core.TypeVar{Name: "T"}, core.TypeName{Name: "Text"}, bindings) {
		t.Fatal("re-binding T to a conflicting type must fail")
	}
}

func TestUnifyTypeAppRequiresMatchingArity(t *testing.T) {
	bindings := Bindings{}
	a := core.TypeApp{BaseName: "Set", Args: []core.Type{core.TypeName{Name: "Int"}}}
	b := core.TypeApp{BaseName: "Set", Args: []core.Type{core.TypeName{Name: "Int"}, core.TypeName{Name: "Text"}}}
	if Unify(a, b, bindings) {
		t.Fatal("TypeApp with mismatched arity must fail to unify")
	}
}

func TestExpandAliasStopsOnSelfReference(t *testing.T) {
	aliases := map[string]core.Type{"Loopy": core.TypeName{Name: "Loopy"}}
	got := ExpandAlias(core.TypeName{Name: "Loopy"}, aliases)
	if got != (core.TypeName{Name: "Loopy"}) {
		t.Fatalf("self-referential alias should stop expanding, got %v", got)
	}
}

func lookupNone(string) (core.Type, bool) { return nil, false }

func TestInferStaticTypeNullOkErr(t *testing.T) {
	null := &core.Literal{Kind: core.NullLit}
	if got := InferStaticType(null, lookupNone); got != (core.Maybe{Elem: Unknown}) {
		t.Fatalf("Null should infer Maybe<Unknown>, got %v", got)
	}
	none := &core.None{}
	if got := InferStaticType(none, lookupNone); got != (core.Option{Elem: Unknown}) {
		t.Fatalf("None should infer Option<Unknown>, got %v", got)
	}
	ok := &core.Ok{Value: &core.Literal{Kind: core.IntLit, Value: int64(1)}}
	want := core.Result{Ok: core.TypeName{Name: "Int"}, Err: Unknown}
	if got := InferStaticType(ok, lookupNone); got != want {
		t.Fatalf("Ok(1) should infer %v, got %v", want, got)
	}
}

func TestCommonTypeRequiresAllMatch(t *testing.T) {
	same := []core.Type{core.TypeName{Name: "Int"}, core.TypeName{Name: "Int"}}
	if got := CommonType(same); got != (core.TypeName{Name: "Int"}) {
		t.Fatalf("expected common Int, got %v", got)
	}
	mixed := []core.Type{core.TypeName{Name: "Int"}, core.TypeName{Name: "Text"}}
	if got := CommonType(mixed); !isUnknown(got) {
		t.Fatalf("mismatched element types should infer Unknown, got %v", got)
	}
}
