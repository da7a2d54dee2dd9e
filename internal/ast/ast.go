// Package ast defines the surface syntax tree produced by the parser.
//
// The AST preserves surface syntax that the Core IR discards: article words,
// inferred-type markers, and whether a capability list was written out
// explicitly. Every node carries a Span; the parser never hands back a node
// without one.
package ast

import "fmt"

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Span is a source range, start inclusive and end exclusive.
type Span struct {
	Start Pos
	End   Pos
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Span() Span
	String() string
}

// base embeds the span every node carries and implements Span().
type base struct {
	Sp Span
}

func (b base) Span() Span { return b.Sp }

// SetSpan attaches a span to a node built as a composite literal outside
// package ast (the parser constructs nodes before their full extent is
// known, then backfills the span once the closing token is consumed).
func (b *base) SetSpan(s Span) { b.Sp = s }

// File is the top-level parse result: an optional module header followed by
// zero or more declarations.
type File struct {
	base
	ModuleName string // "" if no "Module X." / "This module is X." header
	Decls      []Decl
}

// Decl is implemented by all top-level declarations.
type Decl interface {
	Node
	declNode()
}

// ImportDecl brings an external module into scope.
type ImportDecl struct {
	base
	Name   string // dotted module path
	AsName string // "" if no alias
}

func (*ImportDecl) declNode() {}

// DataDecl declares a product type.
type DataDecl struct {
	base
	Name   string
	Fields []*DataField
}

func (*DataDecl) declNode() {}

// DataField is one field of a Data declaration.
type DataField struct {
	Name        string
	Type        Type
	Constraints []Constraint
	Sp          Span
}

// EnumDecl declares a closed sum of nullary variants.
type EnumDecl struct {
	base
	Name     string
	Variants []string
}

func (*EnumDecl) declNode() {}

// FuncDecl declares a rule/function.
type FuncDecl struct {
	base
	Name               string
	TypeParams         []string
	EffectParams       []string
	Params             []*Param
	RetType            Type
	DeclaredEffects    []EffectItem // includes effect variables
	EffectCaps         []string     // capability names, e.g. "Http", "Sql"
	EffectCapsExplicit bool
	Body               *Block // nil for a declaration-only signature (none in this grammar today)
}

func (*FuncDecl) declNode() {}

// Param is one function parameter.
type Param struct {
	Name          string
	Type          Type // nil when TypeInferred is true
	Constraints   []Constraint
	TypeInferred  bool
	Sp            Span
}

// EffectItem is one entry of a DeclaredEffects list: either a concrete
// effect name ("io", "cpu", "pure") or a reference to a declared effect
// variable.
type EffectItem struct {
	Name  string
	IsVar bool
}

// Constraint is a field/parameter validation constraint.
type Constraint interface {
	constraintNode()
}

// RequiredConstraint marks a field as required (non-null).
type RequiredConstraint struct{}

func (RequiredConstraint) constraintNode() {}

// BetweenConstraint bounds a numeric field inclusively.
type BetweenConstraint struct {
	Low, High float64
}

func (BetweenConstraint) constraintNode() {}

// AtLeastConstraint lower-bounds a numeric field inclusively.
type AtLeastConstraint struct{ N float64 }

func (AtLeastConstraint) constraintNode() {}

// AtMostConstraint upper-bounds a numeric field inclusively.
type AtMostConstraint struct{ N float64 }

func (AtMostConstraint) constraintNode() {}

// MatchingConstraint requires a string field to match a regular expression.
type MatchingConstraint struct{ Pattern string }

func (MatchingConstraint) constraintNode() {}
