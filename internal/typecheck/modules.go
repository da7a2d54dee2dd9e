package typecheck

import (
	"strings"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
	"github.com/aster-cloud/aster/internal/module"
)

// matchImport resolves a dotted call target against the imports collected
// by pass 1, trying the longest dotted prefix first. An import alias is a
// single token, but an un-aliased import keeps its full dotted module name
// (spec.md §9 "calls through module aliases may miss the mapping" guards
// against exactly this: a naive first-token match would miss a multi-
// segment un-aliased import). matched is the number of leading parts
// consumed, so the caller can join the remainder into the callee name.
func (c *Checker) matchImport(parts []string) (imp *core.ImportDecl, matched int, ok bool) {
	for n := len(parts) - 1; n >= 1; n-- {
		prefix := strings.Join(parts[:n], ".")
		if i, found := c.imports[prefix]; found {
			return i, n, true
		}
	}
	return nil, 0, false
}

// resolveImportedFunc resolves a call whose target begins with a dotted
// prefix matching an import alias (spec.md §4.7 "Cross-module
// resolution"): it loads the imported module through the Module Cache and
// looks up the named function among its declarations. ok is false (with a
// diagnostic already reported) when the cache is unavailable, the module
// cannot be resolved, or it has no such function.
func (c *Checker) resolveImportedFunc(imp *core.ImportDecl, funcName string, span core.Node) (*core.FuncDecl, bool) {
	if c.opts.ModuleCache == nil {
		c.report(diagnostic.New(diagnostic.UndefinedModule, spanOf(span),
			"module %q cannot be resolved: no module cache configured", imp.Name))
		return nil, false
	}

	mod, err := c.opts.ModuleCache.Load(imp.Name, "", nil)
	if err != nil {
		if _, cycle := err.(*module.CycleError); cycle {
			c.report(diagnostic.New(diagnostic.ModuleCycle, spanOf(span), "%v", err))
		} else {
			c.report(diagnostic.New(diagnostic.UndefinedModule, spanOf(span),
				"module %q not found: %v", imp.Name, err))
		}
		return nil, false
	}

	for _, d := range mod.Decls {
		if fn, ok := d.(*core.FuncDecl); ok && fn.Name == funcName {
			return fn, true
		}
	}
	c.report(diagnostic.New(diagnostic.UndefinedModule, spanOf(span),
		"module %q has no rule %q", imp.Name, funcName))
	return nil, false
}
