package typecheck

import (
	"sort"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

// Policy bounds enforced on workflow retry/timeout declarations (spec.md
// §4.7 item 8 "enforce policy bounds (configurable) on both"). These are
// not yet threaded through Options; a caller needing different bounds
// currently has no hook, which is an acceptable default for a first cut.
const (
	maxWorkflowRetryAttempts = 10
	maxWorkflowTimeoutMillis = 24 * 60 * 60 * 1000
)

// checkWorkflow is pass 8 (spec.md §4.7 item 8): step-dependency
// validation, cycle detection, a compensate-block-missing warning for any
// IO-capable step, and retry/timeout bound checks. Each step's body and
// compensate block are also checked like any other statement sequence, so
// calls inside a workflow step still drive capability/PII/variable
// resolution (passes 3-6).
func (c *Checker) checkWorkflow(n *core.WorkflowStmt) {
	names := make(map[string]bool, len(n.Steps))
	for _, s := range n.Steps {
		names[s.Name] = true
	}

	for _, s := range n.Steps {
		for _, dep := range s.Dependencies {
			if !names[dep] {
				c.report(diagnostic.New(diagnostic.WorkflowUnknownDep, spanOf(n),
					"step %q depends on unknown step %q", s.Name, dep))
			}
		}
	}

	if cyclePath, ok := workflowCycle(n.Steps); ok {
		c.report(diagnostic.New(diagnostic.WorkflowCircularDep, spanOf(n),
			"workflow steps form a cycle: %v", cyclePath))
	}

	for _, s := range n.Steps {
		c.pushScope(ScopeBlock)
		c.checkBlock(s.Body)
		c.popScope()
		if s.Compensate != nil {
			c.pushScope(ScopeBlock)
			c.checkBlock(s.Compensate)
			c.popScope()
		}
		if len(s.EffectCaps) > 0 && s.Compensate == nil {
			c.report(diagnostic.NewWarning(diagnostic.WorkflowCompensateMiss, spanOf(n),
				"step %q performs io but has no compensate block", s.Name))
		}
	}

	if n.Retry != nil {
		if n.Retry.MaxAttempts <= 0 || n.Retry.MaxAttempts > maxWorkflowRetryAttempts {
			c.report(diagnostic.New(diagnostic.WorkflowRetryTooMany, spanOf(n),
				"retry.maxAttempts %d is out of the allowed range (1-%d)", n.Retry.MaxAttempts, maxWorkflowRetryAttempts))
		}
	}
	if n.Timeout != nil {
		if n.Timeout.Milliseconds < 0 || n.Timeout.Milliseconds > maxWorkflowTimeoutMillis {
			c.report(diagnostic.New(diagnostic.WorkflowTimeoutRange, spanOf(n),
				"timeout.milliseconds %d is out of the allowed range (0-%d)", n.Timeout.Milliseconds, maxWorkflowTimeoutMillis))
		}
	}
}

// workflowCycle runs a Tarjan-style DFS over the step dependency graph,
// treating a self-dependency as a cycle of length one (spec.md §4.7 item 8
// "a self-dependency is a cycle").
func workflowCycle(steps []*core.WorkflowStep) ([]string, bool) {
	deps := make(map[string][]string, len(steps))
	for _, s := range steps {
		deps[s.Name] = s.Dependencies
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(steps))
	var path []string

	var visit func(name string) ([]string, bool)
	visit = func(name string) ([]string, bool) {
		color[name] = gray
		path = append(path, name)
		for _, dep := range deps[name] {
			switch color[dep] {
			case gray:
				return append(append([]string{}, path...), dep), true
			case white:
				if cyc, found := visit(dep); found {
					return cyc, true
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return nil, false
	}

	ordered := make([]string, 0, len(steps))
	for _, s := range steps {
		ordered = append(ordered, s.Name)
	}
	sort.Strings(ordered)

	for _, name := range ordered {
		if color[name] == white {
			if cyc, found := visit(name); found {
				return cyc, true
			}
		}
	}
	return nil, false
}
