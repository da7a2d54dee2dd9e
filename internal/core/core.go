// Package core defines the Core IR (spec.md §3 "AST vs Core IR"): the
// minimal tree produced by lowering and consumed by the type checker and
// downstream back-ends. Unlike internal/ast's surface tree, every Core IR
// node carries a stable NodeID (assigned during lowering, spec.md §3
// "Lifecycles") and an Origin pointing back to the source it was lowered
// from, instead of the AST's bare Span. Core IR is immutable once lowering
// returns: the type checker records its findings in a separate diagnostics
// stream rather than mutating the tree (spec.md §3 "Lifecycles").
package core

import (
	"fmt"

	"github.com/aster-cloud/aster/internal/ast"
)

// Origin locates a Core IR node in its original source file.
type Origin struct {
	File  string
	Start ast.Pos
	End   ast.Pos
}

func (o Origin) String() string {
	if o.File == "" {
		return fmt.Sprintf("%s-%s", o.Start, o.End)
	}
	return fmt.Sprintf("%s:%s-%s", o.File, o.Start, o.End)
}

// Node is the common interface of every Core IR node.
type Node interface {
	ID() uint64
	Origin() Origin
	String() string
}

type base struct {
	NodeID uint64
	Org    Origin
}

func (b base) ID() uint64    { return b.NodeID }
func (b base) Origin() Origin { return b.Org }

// SetID and SetOrigin let lowering finish a node built as a composite
// literal outside package core, once its allocator-assigned id and source
// origin are known.
func (b *base) SetID(id uint64)    { b.NodeID = id }
func (b *base) SetOrigin(o Origin) { b.Org = o }

// Module is a fully lowered compilation unit.
type Module struct {
	base
	Name  string
	Decls []Decl
}

func (m *Module) String() string { return fmt.Sprintf("Module(%s, %d decls)", m.Name, len(m.Decls)) }

// Decl is the family of top-level declarations.
type Decl interface {
	Node
	declNode()
}

// ImportDecl brings an external module into scope (spec.md §3 "Declarations").
type ImportDecl struct {
	base
	Name   string
	AsName string
}

func (d *ImportDecl) declNode() {}
func (d *ImportDecl) String() string {
	if d.AsName != "" {
		return fmt.Sprintf("import %s as %s", d.Name, d.AsName)
	}
	return fmt.Sprintf("import %s", d.Name)
}

// DataField is one field of a DataDecl.
type DataField struct {
	Name        string
	Type        Type
	Constraints []Constraint
}

// DataDecl is a product type.
type DataDecl struct {
	base
	Name   string
	Fields []*DataField
}

func (d *DataDecl) declNode() {}
func (d *DataDecl) String() string { return fmt.Sprintf("data %s{%d fields}", d.Name, len(d.Fields)) }

// EnumDecl is a closed sum of nullary variants.
type EnumDecl struct {
	base
	Name     string
	Variants []string
}

func (d *EnumDecl) declNode() {}
func (d *EnumDecl) String() string { return fmt.Sprintf("enum %s%v", d.Name, d.Variants) }

// EffectItem is one entry of a declaredEffects list: either a concrete
// effect name (io, cpu, pure) or a reference to a declared effect
// parameter (spec.md §3 "Types"/"Invariants").
type EffectItem struct {
	Name  string
	IsVar bool
}

func (e EffectItem) String() string {
	if e.IsVar {
		return "effect:" + e.Name
	}
	return e.Name
}

// PiiSummary is the aggregated PII metadata for a function's parameters and
// return type (spec.md §4.5 transformation 8): the union of every category
// seen, tagged with the highest sensitivity among them.
type PiiSummary struct {
	Sensitivity ast.PiiSensitivity // "" if no PII reachable
	Categories  []string
}

// Param is one function parameter.
type Param struct {
	Name        string
	Type        Type
	Constraints []Constraint
}

// FuncDecl is a function declaration (spec.md §3 "Declarations").
type FuncDecl struct {
	base
	Name                string
	TypeParams          []string
	EffectParams        []string
	Params              []*Param
	RetType             Type
	DeclaredEffects     []EffectItem
	Effects             []string // concrete effect set, parsed against {io, cpu, pure}
	EffectCaps          []string
	EffectCapsExplicit  bool
	Body                *Block
	Pii                 *PiiSummary
}

func (d *FuncDecl) declNode() {}
func (d *FuncDecl) String() string {
	return fmt.Sprintf("rule %s(%d params) -> %s", d.Name, len(d.Params), d.RetType)
}
