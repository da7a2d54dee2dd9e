// Package sid assigns stable node identifiers during lowering (spec.md §3
// "Lifecycles": "NodeID... assigned by elaborator"). The teacher computes a
// content-addressed SID by hashing path/offsets/kind; this spec's Core IR
// nodes carry a plain uint64 NodeID instead (internal/core's base struct),
// so an Allocator here is a simple per-compile monotonic counter rather
// than a hash — stability only needs to hold within one lowering pass,
// since Core IR is rebuilt from scratch on every compile (spec.md §5
// "deterministic" pipeline).
package sid

// Allocator hands out unique, increasing NodeIDs for one lowering pass.
// The zero value is ready to use and starts counting from 1, reserving 0 to
// mean "unassigned" for nodes constructed outside of lowering (e.g. in
// tests).
type Allocator struct {
	next uint64
}

// Next returns the next NodeID.
func (a *Allocator) Next() uint64 {
	a.next++
	return a.next
}
