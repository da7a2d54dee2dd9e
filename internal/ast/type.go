package ast

// Type is implemented by all type nodes.
type Type interface {
	Node
	typeNode()
}

// TypeName is a named type: a builtin ("Int", "Text", ...) or a declared
// Data/Enum name.
type TypeName struct {
	base
	Name string
}

func (*TypeName) typeNode() {}

// TypeVar is a type parameter reference, e.g. "T".
type TypeVar struct {
	base
	Name string
}

func (*TypeVar) typeNode() {}

// EffectVar is an effect parameter reference, e.g. "E".
type EffectVar struct {
	base
	Name string
}

func (*EffectVar) typeNode() {}

// Maybe is a nullable type. Maybe<T> and Option<T> are subtyping-equivalent.
type Maybe struct {
	base
	Elem Type
}

func (*Maybe) typeNode() {}

// Option is the sum-style optional type.
type Option struct {
	base
	Elem Type
}

func (*Option) typeNode() {}

// Result is a success/failure type.
type Result struct {
	base
	Ok  Type
	Err Type
}

func (*Result) typeNode() {}

// List is a homogeneous sequence type.
type List struct {
	base
	Elem Type
}

func (*List) typeNode() {}

// Map is a key/value type.
type Map struct {
	base
	Key   Type
	Value Type
}

func (*Map) typeNode() {}

// TypeApp is a generic type application with an arbitrary base name, e.g.
// "Workflow<Order, ShipError>".
type TypeApp struct {
	base
	BaseName string
	Args     []Type
}

func (*TypeApp) typeNode() {}

// FuncType is a function/lambda type.
type FuncType struct {
	base
	Params          []Type
	Ret             Type
	DeclaredEffects []EffectItem // optional
	EffectParams    []string     // optional
}

func (*FuncType) typeNode() {}

// PiiSensitivity is the sensitivity tier of a PiiType.
type PiiSensitivity string

const (
	PiiL1 PiiSensitivity = "L1"
	PiiL2 PiiSensitivity = "L2"
	PiiL3 PiiSensitivity = "L3"
)

// PiiType annotates a base type as carrying personally identifiable
// information. BaseType is never itself a PiiType — lowering flattens
// nested PII annotations (spec invariant).
type PiiType struct {
	base
	BaseType    Type
	Sensitivity PiiSensitivity
	Category    string // "name", "email", "phone", "ssn", "address", "id", ...
}

func (*PiiType) typeNode() {}
