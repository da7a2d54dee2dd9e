package ast

import (
	"fmt"
	"strings"
)

// String implementations give every node a debug-friendly rendering. They
// are not a source printer; the formatter (out of scope for this module)
// produces surface syntax from spans instead.

func (f *File) String() string {
	parts := make([]string, 0, len(f.Decls)+1)
	if f.ModuleName != "" {
		parts = append(parts, "module "+f.ModuleName)
	}
	for _, d := range f.Decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n")
}

func (i *ImportDecl) String() string {
	if i.AsName != "" {
		return fmt.Sprintf("use %s as %s", i.Name, i.AsName)
	}
	return "use " + i.Name
}

func (d *DataDecl) String() string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return fmt.Sprintf("data %s { %s }", d.Name, strings.Join(names, ", "))
}

func (e *EnumDecl) String() string {
	return fmt.Sprintf("enum %s { %s }", e.Name, strings.Join(e.Variants, ", "))
}

func (f *FuncDecl) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("rule %s(%s)", f.Name, strings.Join(names, ", "))
}

func (b *Block) String() string {
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (l *LetStmt) String() string { return fmt.Sprintf("let %s be %s", l.Name, l.Value) }
func (s *SetStmt) String() string { return fmt.Sprintf("set %s to %s", s.Name, s.Value) }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("if %s: %s otherwise: %s", i.Cond, i.Then, i.Else)
	}
	return fmt.Sprintf("if %s: %s", i.Cond, i.Then)
}

func (m *MatchStmt) String() string {
	arms := make([]string, len(m.Arms))
	for i, a := range m.Arms {
		arms[i] = fmt.Sprintf("when %s, %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("match %s: %s", m.Scrutinee, strings.Join(arms, " "))
}

func (s *ScopeStmt) String() string { return "within scope: " + s.Body.String() }
func (s *StartStmt) String() string {
	return fmt.Sprintf("start %s as async %s", s.Name, s.Value)
}
func (w *WaitStmt) String() string { return "wait for " + strings.Join(w.Names, ", ") }

func (w *WorkflowStmt) String() string {
	names := make([]string, len(w.Steps))
	for i, s := range w.Steps {
		names[i] = s.Name
	}
	return "workflow: " + strings.Join(names, ", ")
}

func (n *Name) String() string { return strings.Join(n.Parts, ".") }

func (l *Literal) String() string {
	if l.Kind == NullLit {
		return "null"
	}
	return fmt.Sprintf("%v", l.Value)
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Target, strings.Join(args, ", "))
}

func (c *Construct) String() string {
	parts := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		parts[i] = fmt.Sprintf("%s = %s", f.Name, f.Value)
	}
	return fmt.Sprintf("%s with %s", c.TypeName, strings.Join(parts, " and "))
}

func (o *Ok) String() string   { return "ok of " + o.Value.String() }
func (e *Err) String() string  { return "err of " + e.Value.String() }
func (s *Some) String() string { return "some of " + s.Value.String() }
func (*None) String() string   { return "none" }
func (a *Await) String() string { return "await(" + a.Value.String() + ")" }

func (l *Lambda) String() string {
	names := make([]string, len(l.Params))
	for i, p := range l.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(names, ", "), l.Body)
}

func (*PatNull) String() string   { return "null" }
func (p *PatInt) String() string  { return fmt.Sprintf("%d", p.Value) }
func (p *PatName) String() string { return p.Name }
func (p *PatCtor) String() string {
	if len(p.Args) > 0 {
		parts := make([]string, len(p.Args))
		for i, a := range p.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", p.TypeName, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s(%s)", p.TypeName, strings.Join(p.Names, ", "))
}

func (t *TypeName) String() string  { return t.Name }
func (t *TypeVar) String() string   { return t.Name }
func (t *EffectVar) String() string { return t.Name }
func (m *Maybe) String() string     { return fmt.Sprintf("Maybe<%s>", m.Elem) }
func (o *Option) String() string    { return fmt.Sprintf("Option<%s>", o.Elem) }
func (r *Result) String() string    { return fmt.Sprintf("Result<%s,%s>", r.Ok, r.Err) }
func (l *List) String() string      { return fmt.Sprintf("List<%s>", l.Elem) }
func (m *Map) String() string       { return fmt.Sprintf("Map<%s,%s>", m.Key, m.Value) }

func (t *TypeApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.BaseName, strings.Join(args, ","))
}

func (f *FuncType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Ret)
}

func (p *PiiType) String() string {
	return fmt.Sprintf("Pii<%s,%s,%s>", p.BaseType, p.Sensitivity, p.Category)
}
