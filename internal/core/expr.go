package core

import "fmt"

// Expr is the family of Core IR expression nodes (spec.md §3 "Expressions").
// Unlike the teacher's ANF Core, these are not required to be atomic: the
// Core IR here mirrors the AST's direct tree shape rather than decomposing
// into let-bindings, matching spec.md's description of lowering as a
// desugaring pass, not an ANF transform.
type Expr interface {
	Node
	exprNode()
}

// Name is a (possibly dotted) reference.
type Name struct {
	base
	Parts []string
}

func (n *Name) exprNode() {}
func (n *Name) String() string {
	s := n.Parts[0]
	for _, p := range n.Parts[1:] {
		s += "." + p
	}
	return s
}

// LiteralKind enumerates the literal kinds (spec.md §3 "Expressions").
type LiteralKind int

const (
	BoolLit LiteralKind = iota
	IntLit
	LongLit
	FloatLit
	StringLit
	NullLit
)

type Literal struct {
	base
	Kind  LiteralKind
	Value any
}

func (l *Literal) exprNode()        {}
func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }

// Call is function application. Arithmetic/comparison keywords were
// desugared into Call(Name("+"), ...) etc. already during parsing
// (spec.md §3 "Expressions"); lowering does not reinterpret them.
type Call struct {
	base
	Target Expr
	Args   []Expr
}

func (c *Call) exprNode() {}
func (c *Call) String() string {
	s := c.Target.String() + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

type ConstructField struct {
	Name  string
	Value Expr
}

type Construct struct {
	base
	TypeName string
	Fields   []*ConstructField
}

func (c *Construct) exprNode() {}
func (c *Construct) String() string { return fmt.Sprintf("%s{%d fields}", c.TypeName, len(c.Fields)) }

type Ok struct {
	base
	Value Expr
}

func (o *Ok) exprNode()        {}
func (o *Ok) String() string { return fmt.Sprintf("Ok(%s)", o.Value) }

type Err struct {
	base
	Value Expr
}

func (e *Err) exprNode()        {}
func (e *Err) String() string { return fmt.Sprintf("Err(%s)", e.Value) }

type Some struct {
	base
	Value Expr
}

func (s *Some) exprNode()        {}
func (s *Some) String() string { return fmt.Sprintf("Some(%s)", s.Value) }

type None struct{ base }

func (n *None) exprNode()        {}
func (n *None) String() string { return "None" }

type Await struct {
	base
	Value Expr
}

func (a *Await) exprNode()        {}
func (a *Await) String() string { return fmt.Sprintf("Await(%s)", a.Value) }

// Lambda carries its free-variable capture list, computed by lowering via a
// single AST walk that excludes parameter names and dotted references
// (spec.md §4.5 transformation 4).
type Lambda struct {
	base
	Params   []*Param
	RetType  Type
	Body     *Block
	Captures []string
}

func (l *Lambda) exprNode() {}
func (l *Lambda) String() string {
	return fmt.Sprintf("lambda(%d params) -> %s", len(l.Params), l.RetType)
}
