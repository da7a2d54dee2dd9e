package core

import (
	"strings"
	"testing"

	"github.com/aster-cloud/aster/internal/ast"
)

func TestPiiTypeBaseNeverPii(t *testing.T) {
	inner := TypeName{Name: "Text"}
	p := PiiType{BaseType: inner, Sensitivity: "L2", Category: "email"}
	if _, ok := p.BaseType.(PiiType); ok {
		t.Fatal("PiiType.BaseType must never itself be a PiiType")
	}
}

func TestMaybeOptionDistinctNodesSameShape(t *testing.T) {
	m := Maybe{Elem: TypeName{Name: "Int"}}
	o := Option{Elem: TypeName{Name: "Int"}}
	if m.String() == o.String() {
		t.Fatalf("Maybe and Option should render distinctly, got %q for both", m.String())
	}
}

func TestPatCtorToleratesNamesOrArgs(t *testing.T) {
	legacy := PatCtor{TypeName: "Ok", Names: []string{"n"}}
	modern := PatCtor{TypeName: "Ok", Args: []Pattern{PatName{Name: "n"}}}
	if legacy.String() == "" || modern.String() == "" {
		t.Fatal("both PatCtor forms must render")
	}
}

func TestModulePrettyListsDecls(t *testing.T) {
	mod := &Module{
		base: base{NodeID: 1, Org: Origin{File: "x.aster", Start: ast.Pos{Line: 1, Col: 1}, End: ast.Pos{Line: 1, Col: 1}}},
		Name: "Demo",
		Decls: []Decl{
			&ImportDecl{base: base{NodeID: 2}, Name: "http"},
			&EnumDecl{base: base{NodeID: 3}, Name: "Status", Variants: []string{"Active", "Closed"}},
		},
	}
	out := Pretty(mod)
	if !strings.Contains(out, "Demo") || !strings.Contains(out, "Status") {
		t.Fatalf("Pretty output missing expected content: %q", out)
	}
}

func TestOriginStringIncludesFile(t *testing.T) {
	o := Origin{File: "a.aster", Start: ast.Pos{Line: 1, Col: 1}, End: ast.Pos{Line: 2, Col: 3}}
	if !strings.HasPrefix(o.String(), "a.aster:") {
		t.Fatalf("Origin.String() = %q, want file prefix", o.String())
	}
}

func TestWorkflowStepDependenciesDefaultable(t *testing.T) {
	step := &WorkflowStep{Name: "charge"}
	if step.Dependencies != nil {
		t.Fatal("expected lowering, not the zero value, to fill in default dependencies")
	}
}
