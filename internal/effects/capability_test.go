package effects

import "testing"

func TestCapabilityForPrefix(t *testing.T) {
	cases := map[string]Capability{
		"Http": Http, "Db": Sql, "Sql": Sql, "Files": Files, "Fs": Files,
		"Secrets": Secrets, "Time": Time, "Clock": Time, "Ai": AiModel,
		"Payment": Payment, "Inventory": Inventory,
	}
	for prefix, want := range cases {
		got, ok := CapabilityForPrefix(prefix)
		if !ok || got != want {
			t.Fatalf("CapabilityForPrefix(%q) = (%v, %v), want (%v, true)", prefix, got, ok, want)
		}
	}
	if _, ok := CapabilityForPrefix("Unknown"); ok {
		t.Fatal("unrecognized prefix should not map to a capability")
	}
}

func TestSetSubset(t *testing.T) {
	declared := NewSet([]Capability{Http, Sql})
	if !NewSet([]Capability{Http}).Subset(declared) {
		t.Fatal("{Http} should be a subset of {Http, Sql}")
	}
	if NewSet([]Capability{Files}).Subset(declared) {
		t.Fatal("{Files} should not be a subset of {Http, Sql}")
	}
}

func TestEffectLatticeOrder(t *testing.T) {
	if !Leq(Pure, CPU) || !Leq(CPU, IO) || !Leq(IO, WorkflowEffect) {
		t.Fatal("expected PURE < CPU < IO < Workflow")
	}
	if Leq(IO, CPU) {
		t.Fatal("IO must not be <= CPU")
	}
}

func TestParseEffectRejectsUnknown(t *testing.T) {
	if _, ok := ParseEffect("workflow"); ok {
		t.Fatal("workflow is a derived effect, not user-writable, ParseEffect should reject it")
	}
	if _, ok := ParseEffect("network"); ok {
		t.Fatal("unrecognized effect string should be rejected")
	}
	e, ok := ParseEffect("io")
	if !ok || e != IO {
		t.Fatalf("ParseEffect(io) = (%v, %v), want (IO, true)", e, ok)
	}
}

func TestMaxTakesLeastUpperBound(t *testing.T) {
	if Max(Pure, IO) != IO {
		t.Fatal("Max(Pure, IO) should be IO")
	}
}
