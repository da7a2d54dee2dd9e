package effects

import (
	"fmt"
	"strings"
)

// UnknownEffectError is the fatal lowering failure when an effect string is
// neither in {io, cpu, pure} nor a declared effect parameter (spec.md §4.5
// transformation 1).
type UnknownEffectError struct {
	Effect string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("unknown effect %q; recognized effects are %s",
		e.Effect, strings.Join(KnownEffectNames, ", "))
}

// CapabilityNotDeclaredError backs the CAPABILITY_NOT_DECLARED diagnostic
// (spec.md §4.7 pass 5): a call requires a capability the enclosing
// function did not declare in effectCaps.
type CapabilityNotDeclaredError struct {
	Required Capability
	Declared Set
}

func (e *CapabilityNotDeclaredError) Error() string {
	return fmt.Sprintf("capability %s is required but not declared in effectCaps", e.Required)
}
