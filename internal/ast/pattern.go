package ast

// Pattern is implemented by all pattern nodes used in Match arms.
type Pattern interface {
	Node
	patternNode()
}

// PatNull matches the null literal.
type PatNull struct{ base }

func (*PatNull) patternNode() {}

// PatInt matches an exact integer literal.
type PatInt struct {
	base
	Value int64
}

func (*PatInt) patternNode() {}

// PatName binds the scrutinee to a variable (or is a wildcard when Name is
// "_" or an enum variant's wildcard close).
type PatName struct {
	base
	Name string
}

func (*PatName) patternNode() {}

// PatCtor matches a constructor, e.g. "Ok(n)" or "Point(x, y)". Names is the
// legacy flat-bindings form; Args supports nested patterns. New code
// produces Args and leaves Names empty; both are tolerated when reading.
type PatCtor struct {
	base
	TypeName string
	Names    []string
	Args     []Pattern
}

func (*PatCtor) patternNode() {}
