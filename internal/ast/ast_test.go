package ast

import "testing"

func TestFuncDeclString(t *testing.T) {
	f := &FuncDecl{
		Name: "greet",
		Params: []*Param{
			{Name: "name", Type: &TypeName{Name: "Text"}},
		},
		RetType: &TypeName{Name: "Text"},
	}
	got := f.String()
	want := "rule greet(name)"
	if got != want {
		t.Fatalf("FuncDecl.String() = %q, want %q", got, want)
	}
}

func TestPiiTypeNeverWrapsPii(t *testing.T) {
	// The invariant (spec.md §3) is enforced by lowering, not by the type
	// alone; this test documents the shape a well-formed PiiType must have.
	p := &PiiType{
		BaseType:    &TypeName{Name: "Text"},
		Sensitivity: PiiL2,
		Category:    "email",
	}
	if _, bad := p.BaseType.(*PiiType); bad {
		t.Fatalf("PiiType.BaseType must not itself be a PiiType")
	}
}

func TestPatCtorToleratesBothForms(t *testing.T) {
	withArgs := &PatCtor{TypeName: "Ok", Args: []Pattern{&PatName{Name: "n"}}}
	withNames := &PatCtor{TypeName: "Ok", Names: []string{"n"}}

	if withArgs.String() != "Ok(n)" {
		t.Fatalf("args form: got %q", withArgs.String())
	}
	if withNames.String() != "Ok(n)" {
		t.Fatalf("names form: got %q", withNames.String())
	}
}

func TestWorkflowStepDefaultDependencies(t *testing.T) {
	step := &WorkflowStep{Name: "ship"}
	if step.DependenciesExplicit {
		t.Fatalf("zero-value WorkflowStep must not claim explicit dependencies")
	}
}
