package core

import "strings"

// Pretty renders a Module as an indented outline of its declarations, for
// debugging and golden-file tests. It is not the JSON envelope (see
// internal/schema) — just a human-readable dump in the teacher's idiom of a
// small Pretty() debug printer alongside the real marshaler.
func Pretty(m *Module) string {
	var b strings.Builder
	b.WriteString("Module(")
	b.WriteString(m.Name)
	b.WriteString(")\n")
	for _, d := range m.Decls {
		b.WriteString("  ")
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}
