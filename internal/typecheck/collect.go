package typecheck

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
)

// collect is pass 1 (spec.md §4.7 "Collect declarations: populate datas,
// enums, imports, funcSignatures"). Duplicate top-level names across these
// four families are reported as DUPLICATE_SYMBOL at the module scope,
// against whichever declaration was recorded first.
func (c *Checker) collect() {
	for _, d := range c.mod.Decls {
		switch n := d.(type) {
		case *core.DataDecl:
			c.defineTopLevel(n.Name, SymType, spanOf(n))
			c.datas[n.Name] = n

		case *core.EnumDecl:
			c.defineTopLevel(n.Name, SymEnum, spanOf(n))
			c.enums[n.Name] = n

		case *core.ImportDecl:
			key := n.AsName
			if key == "" {
				key = n.Name
			}
			c.defineTopLevel(key, SymVar, spanOf(n))
			c.imports[key] = n

		case *core.FuncDecl:
			c.defineTopLevel(n.Name, SymFunc, spanOf(n))
			c.funcs[n.Name] = n
		}
	}
}

func (c *Checker) defineTopLevel(name string, kind SymbolKind, span ast.Span) {
	c.define(&Symbol{Name: name, Kind: kind, DefSpan: span})
}
