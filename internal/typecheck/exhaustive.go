package typecheck

import (
	"strings"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/dtree"
)

// checkMatch is pass 7 (spec.md §4.7 item 7): it compiles the arm list into
// a decision tree against the scrutinee type's closed universe and reports
// MATCH_NONEXHAUSTIVE (or, for an integer scrutinee missing a wildcard, the
// warning-level MATCH_INT_NO_WILDCARD) when a shape is left uncovered.
func (c *Checker) checkMatch(n *core.MatchStmt) {
	scrutType := c.checkExpr(n.Scrutinee)

	universe := dtree.UniverseFor(scrutType, c.lookupEnumVariants)
	tree := dtree.Compile(n.Arms, universe)
	if missing, ok := dtree.Diagnose(tree); !ok {
		if universe.Integral {
			c.report(diagnostic.NewWarning(diagnostic.MatchIntNoWildcard, spanOf(n),
				"integer match has no wildcard arm to close it"))
		} else {
			c.report(diagnostic.New(diagnostic.MatchNonexhaustive, spanOf(n),
				"match is not exhaustive: missing %s", strings.Join(missing, ", ")))
		}
	}

	for _, arm := range n.Arms {
		c.pushScope(ScopeMatchArm)
		c.bindPattern(arm.Pattern, scrutType)
		c.checkBlock(arm.Body)
		c.popScope()
	}
}

func (c *Checker) lookupEnumVariants(name string) ([]string, bool) {
	e, ok := c.enums[name]
	if !ok {
		return nil, false
	}
	return e.Variants, true
}

// bindPattern introduces the symbols a Match arm's pattern binds, recursing
// into a constructor pattern's nested arguments (spec.md §3 "Patterns").
func (c *Checker) bindPattern(p core.Pattern, scrutType core.Type) {
	switch n := p.(type) {
	case core.PatName:
		c.define(&Symbol{Name: n.Name, Type: scrutType})
	case core.PatCtor:
		for _, name := range n.Names {
			c.define(&Symbol{Name: name, Type: unk})
		}
		for _, arg := range n.Args {
			c.bindPattern(arg, unk)
		}
	}
}
