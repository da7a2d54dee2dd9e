// Package dtree compiles Match arms into a decision tree so the type
// checker's exhaustiveness pass (spec.md §4.7 pass 7) can name exactly which
// enum variant, Result/Option arm, or Maybe case a match left uncovered,
// rather than just flagging that it is incomplete.
package dtree

import (
	"fmt"
	"sort"

	"github.com/aster-cloud/aster/internal/core"
)

// DecisionTree is a compiled Match: a chain of constructor/literal tests
// ending in the body to run or a mark that no arm covers that shape.
type DecisionTree interface {
	isDecisionTree()
	String() string
}

// LeafNode is a match with a body to execute.
type LeafNode struct {
	ArmIndex int
	Body     *core.Block
}

func (*LeafNode) isDecisionTree()  {}
func (l *LeafNode) String() string { return fmt.Sprintf("Leaf(arm=%d)", l.ArmIndex) }

// FailNode marks a scrutinee shape no arm reaches. Missing names the
// uncovered constructors/variants (or "_" for a missing wildcard close) a
// caller reports in a MATCH_NONEXHAUSTIVE diagnostic; an empty Missing means
// the match is exhaustive and this branch is simply unreachable.
type FailNode struct{ Missing []string }

func (*FailNode) isDecisionTree()  {}
func (f *FailNode) String() string { return fmt.Sprintf("Fail(missing=%v)", f.Missing) }

// SwitchNode dispatches on the scrutinee's top-level shape: Cases maps a
// constructor name, integer literal (formatted as text), or "Null" to the
// subtree for that shape; Default handles a bare-identifier arm, if any.
type SwitchNode struct {
	Path    []int
	Cases   map[string]DecisionTree
	Default DecisionTree
}

func (*SwitchNode) isDecisionTree() {}
func (s *SwitchNode) String() string {
	return fmt.Sprintf("Switch(path=%v, cases=%d, default=%v)", s.Path, len(s.Cases), s.Default != nil)
}

// Universe is the closed set of shapes a Match over a given scrutinee type
// must cover (spec.md §4.7 pass 7). The type checker builds one from the
// scrutinee's resolved type via UniverseFor before calling Compile.
type Universe struct {
	// Tags is the set of constructor/variant names every arm list must
	// cover between them: enum variants, or Result's "Ok"/"Err", or
	// Option's "Some"/"None".
	Tags []string

	// RequireDefault additionally requires a bare-identifier arm to close
	// the match, even once every tag in Tags is covered. Maybe needs
	// this: the non-null case has no constructor pattern of its own, so
	// only a wildcard binding can cover it (spec.md §3 "Patterns").
	RequireDefault bool

	// Integral scrutinees (Int) have no closed tag set: any finite list
	// of literal arms is incomplete without a wildcard, but that is a
	// warning, not a MATCH_NONEXHAUSTIVE error (spec.md §4.7 pass 7
	// "Integer matches without a wildcard warn").
	Integral bool
}

// UniverseFor derives the Universe implied by a scrutinee's resolved type.
// lookupEnum resolves a declared enum's type name to its variant list; it
// is consulted only for a bare core.TypeName that isn't a built-in.
func UniverseFor(t core.Type, lookupEnum func(name string) ([]string, bool)) Universe {
	switch n := t.(type) {
	case core.Result:
		return Universe{Tags: []string{"Ok", "Err"}}
	case core.Option:
		return Universe{Tags: []string{"Some", "None"}}
	case core.Maybe:
		return Universe{Tags: []string{"Null"}, RequireDefault: true}
	case core.TypeName:
		if n.Name == "Int" {
			return Universe{Integral: true}
		}
		if lookupEnum != nil {
			if variants, ok := lookupEnum(n.Name); ok {
				return Universe{Tags: variants}
			}
		}
	}
	return Universe{}
}

type matchRow struct {
	pattern  core.Pattern
	armIndex int
	body     *core.Block
}

// Compile builds a decision tree from a Match statement's arms, against the
// universe its scrutinee type implies. This checker only specializes the
// scrutinee's top-level shape: spec.md §4.7 pass 7 requires coverage of the
// outermost constructor/variant/literal, not of nested pattern arguments, so
// Compile does not recurse into a matched PatCtor's Args the way a full ANF
// match compiler would.
func Compile(arms []*core.MatchArm, universe Universe) DecisionTree {
	rows := make([]matchRow, len(arms))
	for i, arm := range arms {
		rows[i] = matchRow{pattern: arm.Pattern, armIndex: i, body: arm.Body}
	}
	return compile(rows, universe, nil)
}

func compile(rows []matchRow, universe Universe, path []int) DecisionTree {
	if len(rows) == 0 {
		return &FailNode{Missing: closedMissing(universe)}
	}
	if isDefault(rows[0].pattern) {
		return &LeafNode{ArmIndex: rows[0].armIndex, Body: rows[0].body}
	}
	return buildSwitch(rows, universe, path)
}

func isDefault(p core.Pattern) bool {
	_, ok := p.(core.PatName)
	return ok
}

// buildSwitch groups rows by their top-level shape, in first-seen order,
// and routes any bare-identifier rows to Default — mirroring how a Match
// evaluates its arms top to bottom, first match wins.
func buildSwitch(rows []matchRow, universe Universe, path []int) DecisionTree {
	cases := map[string][]matchRow{}
	var order []string
	var defaultRows []matchRow

	for _, row := range rows {
		key, ok := shapeKey(row.pattern)
		if !ok {
			defaultRows = append(defaultRows, row)
			continue
		}
		if _, seen := cases[key]; !seen {
			order = append(order, key)
		}
		cases[key] = append(cases[key], row)
	}

	node := &SwitchNode{Path: append([]int{}, path...), Cases: make(map[string]DecisionTree, len(order))}
	for _, key := range order {
		first := cases[key][0]
		node.Cases[key] = &LeafNode{ArmIndex: first.armIndex, Body: first.body}
	}

	if len(defaultRows) > 0 {
		node.Default = compile(defaultRows, Universe{}, append(path, len(order)))
	} else {
		node.Default = &FailNode{Missing: missingFor(universe, order)}
	}
	return node
}

func shapeKey(p core.Pattern) (string, bool) {
	switch n := p.(type) {
	case core.PatCtor:
		return n.TypeName, true
	case core.PatInt:
		return fmt.Sprintf("%d", n.Value), true
	case core.PatNull:
		return "Null", true
	default:
		return "", false
	}
}

func missingFor(universe Universe, covered []string) []string {
	seen := map[string]bool{}
	for _, c := range covered {
		seen[c] = true
	}
	var out []string
	for _, m := range closedMissing(universe) {
		if m == "_" || !seen[m] {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// closedMissing assumes nothing has been covered yet: every tag the
// universe names, plus "_" if a wildcard is still required to close it.
func closedMissing(universe Universe) []string {
	var out []string
	out = append(out, universe.Tags...)
	if universe.RequireDefault || universe.Integral {
		out = append(out, "_")
	}
	sort.Strings(out)
	return out
}

// Diagnose walks a compiled tree's single reachable failure point (its root
// switch's Default, or the tree itself if the arm list was empty) and
// reports the constructors/variants still missing. ok is true when the
// match is exhaustive.
func Diagnose(tree DecisionTree) (missing []string, ok bool) {
	switch n := tree.(type) {
	case *LeafNode:
		return nil, true
	case *FailNode:
		return n.Missing, len(n.Missing) == 0
	case *SwitchNode:
		return Diagnose(n.Default)
	default:
		return nil, true
	}
}
