package ast

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Name is a possibly-dotted reference, e.g. "total" or "IO.read".
type Name struct {
	base
	Parts []string
}

func (*Name) exprNode() {}

// LiteralKind classifies a Literal node.
type LiteralKind int

const (
	BoolLit LiteralKind = iota
	IntLit
	LongLit
	FloatLit
	StringLit
	NullLit
)

// Literal is a constant value.
type Literal struct {
	base
	Kind  LiteralKind
	Value any // bool, int64, float64, string, or nil for NullLit
}

func (*Literal) exprNode() {}

// Call is function application: target(args...).
type Call struct {
	base
	Target Expr
	Args   []Expr
}

func (*Call) exprNode() {}

// Construct builds a named type via its constructor fields:
// "T with f = e and g = e".
type Construct struct {
	base
	TypeName string
	Fields   []*ConstructField
}

func (*Construct) exprNode() {}

// ConstructField is one "name = expr" entry in a Construct expression.
type ConstructField struct {
	Name  string
	Value Expr
}

// Ok wraps a value as a successful Result.
type Ok struct {
	base
	Value Expr
}

func (*Ok) exprNode() {}

// Err wraps a value as a failed Result.
type Err struct {
	base
	Value Expr
}

func (*Err) exprNode() {}

// Some wraps a value as a present Option.
type Some struct {
	base
	Value Expr
}

func (*Some) exprNode() {}

// None is the absent Option value.
type None struct {
	base
}

func (*None) exprNode() {}

// Await suspends until the given Maybe/Option/Result resolves.
type Await struct {
	base
	Value Expr
}

func (*Await) exprNode() {}

// Lambda is a function value, either the short form "(x: T) => expr" or the
// block form "a function with ... produce T: <block>".
type Lambda struct {
	base
	Params   []*Param
	RetType  Type // nil when not annotated
	Body     *Block
	Captures []string // free variables, filled in by lowering
	Short    bool      // true for the "(x: T) => expr" surface form
}

func (*Lambda) exprNode() {}
