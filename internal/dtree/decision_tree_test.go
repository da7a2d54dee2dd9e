package dtree

import (
	"testing"

	"github.com/aster-cloud/aster/internal/core"
)

func arm(pattern core.Pattern) *core.MatchArm {
	return &core.MatchArm{Pattern: pattern, Body: &core.Block{}}
}

func TestCompileResultCoversBothConstructors(t *testing.T) {
	arms := []*core.MatchArm{
		arm(core.PatCtor{TypeName: "Ok", Args: []core.Pattern{core.PatName{Name: "n"}}}),
		arm(core.PatCtor{TypeName: "Err", Args: []core.Pattern{core.PatName{Name: "e"}}}),
	}
	tree := Compile(arms, UniverseFor(core.Result{}, nil))

	sw, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("expected *SwitchNode, got %T", tree)
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if _, ok := sw.Cases["Ok"]; !ok {
		t.Error("missing case for Ok")
	}
	if _, ok := sw.Cases["Err"]; !ok {
		t.Error("missing case for Err")
	}
	if missing, exhaustive := Diagnose(tree); !exhaustive {
		t.Errorf("expected exhaustive match, missing = %v", missing)
	}
}

func TestCompileResultMissingErrReportsIt(t *testing.T) {
	arms := []*core.MatchArm{
		arm(core.PatCtor{TypeName: "Ok", Args: []core.Pattern{core.PatName{Name: "n"}}}),
	}
	tree := Compile(arms, UniverseFor(core.Result{}, nil))

	missing, ok := Diagnose(tree)
	if ok {
		t.Fatal("expected a non-exhaustive match")
	}
	if len(missing) != 1 || missing[0] != "Err" {
		t.Errorf("missing = %v, want [Err]", missing)
	}
}

func TestCompileEnumWithWildcardCloseIsExhaustive(t *testing.T) {
	arms := []*core.MatchArm{
		arm(core.PatCtor{TypeName: "Pending"}),
		arm(core.PatName{Name: "other"}),
	}
	universe := Universe{Tags: []string{"Pending", "Shipped", "Delivered"}}
	tree := Compile(arms, universe)

	sw, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("expected *SwitchNode, got %T", tree)
	}
	if _, ok := sw.Default.(*LeafNode); !ok {
		t.Errorf("expected the bare-name arm to close the match as Default, got %T", sw.Default)
	}
	if _, exhaustive := Diagnose(tree); !exhaustive {
		t.Error("a bare-name arm should close an enum match regardless of tag coverage")
	}
}

func TestCompileEnumMissingVariantsWithoutWildcard(t *testing.T) {
	arms := []*core.MatchArm{
		arm(core.PatCtor{TypeName: "Pending"}),
		arm(core.PatCtor{TypeName: "Shipped"}),
	}
	universe := Universe{Tags: []string{"Pending", "Shipped", "Delivered"}}
	tree := Compile(arms, universe)

	missing, ok := Diagnose(tree)
	if ok {
		t.Fatal("expected a non-exhaustive match")
	}
	if len(missing) != 1 || missing[0] != "Delivered" {
		t.Errorf("missing = %v, want [Delivered]", missing)
	}
}

func TestCompileMaybeRequiresNullAndWildcard(t *testing.T) {
	universe := UniverseFor(core.Maybe{Elem: core.TypeName{Name: "Int"}}, nil)

	nullOnly := Compile([]*core.MatchArm{arm(core.PatNull{})}, universe)
	missing, ok := Diagnose(nullOnly)
	if ok {
		t.Fatal("Null alone should not close a Maybe match")
	}
	if len(missing) != 1 || missing[0] != "_" {
		t.Errorf("missing = %v, want [_]", missing)
	}

	both := Compile([]*core.MatchArm{
		arm(core.PatNull{}),
		arm(core.PatName{Name: "x"}),
	}, universe)
	if _, ok := Diagnose(both); !ok {
		t.Error("Null + bare-name should close a Maybe match")
	}
}

func TestCompileIntegralWithoutWildcardWarns(t *testing.T) {
	universe := UniverseFor(core.TypeName{Name: "Int"}, nil)
	tree := Compile([]*core.MatchArm{
		arm(core.PatInt{Value: 1}),
		arm(core.PatInt{Value: 2}),
	}, universe)

	missing, ok := Diagnose(tree)
	if ok {
		t.Fatal("expected an unmatched default for an integral match with no wildcard")
	}
	if len(missing) != 1 || missing[0] != "_" {
		t.Errorf("missing = %v, want [_]", missing)
	}
}

func TestCompileWildcardOnlyIsLeaf(t *testing.T) {
	tree := Compile([]*core.MatchArm{arm(core.PatName{Name: "_"})}, Universe{})
	leaf, ok := tree.(*LeafNode)
	if !ok {
		t.Fatalf("expected *LeafNode, got %T", tree)
	}
	if leaf.ArmIndex != 0 {
		t.Errorf("ArmIndex = %d, want 0", leaf.ArmIndex)
	}
}

func TestUniverseForEnumConsultsLookup(t *testing.T) {
	lookup := func(name string) ([]string, bool) {
		if name == "Status" {
			return []string{"Pending", "Shipped", "Delivered"}, true
		}
		return nil, false
	}
	u := UniverseFor(core.TypeName{Name: "Status"}, lookup)
	if len(u.Tags) != 3 {
		t.Errorf("Tags = %v, want 3 entries", u.Tags)
	}

	unknown := UniverseFor(core.TypeName{Name: "Widget"}, lookup)
	if len(unknown.Tags) != 0 || unknown.RequireDefault || unknown.Integral {
		t.Errorf("expected an open universe for an unresolved type name, got %+v", unknown)
	}
}
