package lower

import (
	"sort"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/effects"
)

// lowerWorkflow defaults a step's dependencies to [prevStepName] when the
// author omitted "depends on" (spec.md §4.5 transformation 6) and derives
// each step's effectCaps by walking its body and compensate block against
// the capability prefix map (spec.md §4.5 transformation 7).
func (lw *lowerer) lowerWorkflow(n *ast.WorkflowStmt) (*core.WorkflowStmt, error) {
	steps := make([]*core.WorkflowStep, len(n.Steps))
	topCaps := map[string]bool{}
	prev := ""

	for i, s := range n.Steps {
		body, err := lw.lowerBlock(s.Body)
		if err != nil {
			return nil, err
		}
		var compensate *core.Block
		if s.Compensate != nil {
			compensate, err = lw.lowerBlock(s.Compensate)
			if err != nil {
				return nil, err
			}
		}

		deps := s.Dependencies
		if !s.DependenciesExplicit && prev != "" {
			deps = []string{prev}
		}

		caps := stepCapabilities(body, compensate)
		for _, c := range caps {
			topCaps[c] = true
		}

		steps[i] = &core.WorkflowStep{
			Name:         s.Name,
			Dependencies: append([]string{}, deps...),
			Body:         body,
			Compensate:   compensate,
			EffectCaps:   caps,
		}
		prev = s.Name
	}

	var retry *core.RetryPolicy
	if n.Retry != nil {
		retry = &core.RetryPolicy{MaxAttempts: n.Retry.MaxAttempts, Backoff: n.Retry.Backoff}
	}
	var timeout *core.Timeout
	if n.Timeout != nil {
		timeout = &core.Timeout{Milliseconds: n.Timeout.Seconds * 1000}
	}

	caps := make([]string, 0, len(topCaps))
	for c := range topCaps {
		caps = append(caps, c)
	}
	sort.Strings(caps)

	out := &core.WorkflowStmt{Steps: steps, EffectCaps: caps, Retry: retry, Timeout: timeout}
	lw.finish(out, n.Span())
	return out, nil
}

// stepCapabilities walks one or more lowered blocks collecting the
// capability implied by every call target's dotted namespace prefix
// (spec.md §4.5 transformation 7), deduplicated and sorted for a
// deterministic EffectCaps list.
func stepCapabilities(blocks ...*core.Block) []string {
	found := map[string]bool{}

	var walkExpr func(core.Expr)
	var walkStmt func(core.Stmt)
	walkBlock := func(b *core.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Stmts {
			walkStmt(s)
		}
	}

	walkExpr = func(e core.Expr) {
		switch n := e.(type) {
		case *core.Call:
			if name, ok := n.Target.(*core.Name); ok && len(name.Parts) > 1 {
				if cap, ok := effects.CapabilityForPrefix(name.Parts[0]); ok {
					found[string(cap)] = true
				}
			}
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *core.Construct:
			for _, f := range n.Fields {
				walkExpr(f.Value)
			}
		case *core.Ok:
			walkExpr(n.Value)
		case *core.Err:
			walkExpr(n.Value)
		case *core.Some:
			walkExpr(n.Value)
		case *core.Await:
			walkExpr(n.Value)
		case *core.Lambda:
			walkBlock(n.Body)
		}
	}

	walkStmt = func(s core.Stmt) {
		switch n := s.(type) {
		case *core.LetStmt:
			walkExpr(n.Value)
		case *core.SetStmt:
			walkExpr(n.Value)
		case *core.ReturnStmt:
			if n.Value != nil {
				walkExpr(n.Value)
			}
		case *core.IfStmt:
			walkExpr(n.Cond)
			walkBlock(n.Then)
			walkBlock(n.Else)
		case *core.MatchStmt:
			walkExpr(n.Scrutinee)
			for _, a := range n.Arms {
				walkBlock(a.Body)
			}
		case *core.ScopeStmt:
			walkBlock(n.Body)
		case *core.StartStmt:
			walkExpr(n.Value)
		case *core.WorkflowStmt:
			for _, st := range n.Steps {
				walkBlock(st.Body)
				walkBlock(st.Compensate)
			}
		}
	}

	for _, b := range blocks {
		walkBlock(b)
	}

	names := make([]string, 0, len(found))
	for c := range found {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}
