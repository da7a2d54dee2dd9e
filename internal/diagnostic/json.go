package diagnostic

import "github.com/aster-cloud/aster/internal/schema"

// MarshalJSON renders a diagnostic list with sorted object keys so that two
// compiles of the same source produce byte-identical diagnostic JSON,
// matching the Core IR envelope's determinism (spec.md §6.3, SPEC_FULL.md
// §5 "Deterministic JSON").
func MarshalJSON(diags []*Diagnostic) ([]byte, error) {
	if diags == nil {
		diags = []*Diagnostic{}
	}
	return schema.MarshalDeterministic(diags)
}
