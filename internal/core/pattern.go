package core

import "fmt"

// Pattern is the family of Core IR match patterns (spec.md §3 "Patterns").
type Pattern interface {
	String() string
	patternNode()
}

type PatNull struct{}

func (PatNull) patternNode() {}
func (PatNull) String() string { return "Null" }

type PatInt struct{ Value int64 }

func (PatInt) patternNode()        {}
func (p PatInt) String() string { return fmt.Sprintf("%d", p.Value) }

type PatName struct{ Name string }

func (PatName) patternNode()        {}
func (p PatName) String() string { return p.Name }

// PatCtor matches a constructor (enum variant, Ok/Err/Some, or a Data
// shape). Args is the new nested-pattern form; Names is the legacy flat
// binding form. They are mutually exclusive in code this lowering
// produces, but readers must tolerate either (spec.md §3 "Invariants").
type PatCtor struct {
	TypeName string
	Names    []string
	Args     []Pattern
}

func (PatCtor) patternNode() {}
func (p PatCtor) String() string {
	if len(p.Args) > 0 {
		s := p.TypeName + "("
		for i, a := range p.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		return s + ")"
	}
	return fmt.Sprintf("%s%v", p.TypeName, p.Names)
}
