// Package effects models the capability and effect-lattice vocabulary the
// type checker enforces (spec.md §3 "Types", §4.7 passes 4-5). It holds no
// runtime behavior — capabilities here are type-checking tokens, not
// executable grants, since the core never executes programs (spec.md §1
// non-goals).
package effects

// Capability is one of the nine effect-authorization tokens a function may
// declare via effectCaps (spec.md §4.5 transformation 7).
type Capability string

const (
	Http      Capability = "Http"
	Sql       Capability = "Sql"
	Files     Capability = "Files"
	Secrets   Capability = "Secrets"
	Time      Capability = "Time"
	AiModel   Capability = "AiModel"
	Payment   Capability = "Payment"
	Inventory Capability = "Inventory"
	Cpu       Capability = "Cpu"
)

// All lists every known capability, in a stable order for diagnostics.
var All = []Capability{Http, Sql, Files, Secrets, Time, AiModel, Payment, Inventory, Cpu}

// prefixMap maps a call target's dotted namespace prefix to the capability
// it requires (spec.md §4.5 transformation 7).
var prefixMap = map[string]Capability{
	"Http":      Http,
	"Db":        Sql,
	"Sql":       Sql,
	"Files":     Files,
	"Fs":        Files,
	"Secrets":   Secrets,
	"Time":      Time,
	"Clock":     Time,
	"Ai":        AiModel,
	"Payment":   Payment,
	"Inventory": Inventory,
}

// CapabilityForPrefix returns the capability implied by a dotted call
// target's leading namespace (e.g. "Http.get" -> Http), and false if the
// prefix names no known capability.
func CapabilityForPrefix(prefix string) (Capability, bool) {
	c, ok := prefixMap[prefix]
	return c, ok
}

// Set is an unordered collection of capabilities, used for effectCaps
// subset checks (spec.md §4.7 pass 5).
type Set map[Capability]bool

// NewSet builds a Set from a capability list.
func NewSet(caps []Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = true
	}
	return s
}

// Contains reports whether c is a member of s.
func (s Set) Contains(c Capability) bool { return s[c] }

// Subset reports whether every capability in s is also present in other.
func (s Set) Subset(other Set) bool {
	for c := range s {
		if !other[c] {
			return false
		}
	}
	return true
}

// Effect is a concrete point in the effect lattice (spec.md §4.6 "Effect
// lattice"): PURE(0) < CPU(1) < IO(2) < Workflow(3).
type Effect int

const (
	Pure Effect = iota
	CPU
	IO
	WorkflowEffect
)

var effectNames = map[string]Effect{
	"pure": Pure,
	"cpu":  CPU,
	"io":   IO,
}

var effectStrings = map[Effect]string{
	Pure:           "pure",
	CPU:            "cpu",
	IO:             "io",
	WorkflowEffect: "workflow",
}

func (e Effect) String() string { return effectStrings[e] }

// ParseEffect parses a concrete effect name against the surface lexicon
// {io, cpu, pure} (spec.md §4.5 transformation 1). Workflow is a derived
// effect, never user-written, so it is intentionally not accepted here.
func ParseEffect(s string) (Effect, bool) {
	e, ok := effectNames[s]
	return e, ok
}

// Leq reports whether a ⊑ b in the effect lattice.
func Leq(a, b Effect) bool { return a <= b }

// Max returns the least upper bound of a and b.
func Max(a, b Effect) Effect {
	if a > b {
		return a
	}
	return b
}

// KnownEffectNames lists the recognized concrete effect strings, used to
// enumerate the valid set in diagnostic messages (spec.md §4.5
// transformation 1: "fail fatally with the recognized set enumerated").
var KnownEffectNames = []string{"io", "cpu", "pure"}
