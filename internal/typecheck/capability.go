package typecheck

import (
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/effects"
)

// requireCapability is pass 5 (spec.md §4.7 item 5): a call whose target
// maps to capability cap is only allowed when cap is among the enclosing
// function's declared effectCaps. span locates the call.
func (c *Checker) requireCapability(cap string, span core.Node) {
	if cap == "" || c.curFunc == nil {
		return
	}
	c.capSummary[cap] = true
	for _, declared := range c.curFunc.EffectCaps {
		if declared == cap {
			return
		}
	}
	c.report(diagnostic.New(diagnostic.CapabilityNotDeclared, spanOf(span),
		"capability %s is required but not declared in effectCaps for rule %q", cap, c.curFunc.Name))
}

// checkCapabilitySubset is the manifest-advisory half of pass 5: when an
// external capability manifest was supplied, a function's effectCaps must
// be a subset of its module's allow-list, else an info-severity diagnostic
// on a distinguishable "manifest" channel (spec.md §4.7 item 5, §6.4).
func (c *Checker) checkCapabilitySubset(fn *core.FuncDecl) {
	if c.opts.Manifest == nil {
		return
	}
	allow, ok := c.opts.Manifest.AllowFor(c.mod.Name)
	if !ok {
		return
	}
	for _, capName := range fn.EffectCaps {
		if !allow.Contains(effects.Capability(capName)) {
			c.report(diagnostic.NewInfo(diagnostic.CapabilityNotManifest, spanOf(fn),
				"capability %s is not in the manifest's allow-list for module %q", capName, c.mod.Name).
				WithData("channel", "manifest"))
		}
	}
}
