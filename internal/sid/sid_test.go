package sid

import "testing"

func TestAllocatorMonotonicAndNonzero(t *testing.T) {
	var a Allocator
	seen := map[uint64]bool{}
	for i := 0; i < 5; i++ {
		id := a.Next()
		if id == 0 {
			t.Fatal("Next() must never return the reserved zero value")
		}
		if seen[id] {
			t.Fatalf("duplicate NodeID %d", id)
		}
		seen[id] = true
	}
}

func TestAllocatorsAreIndependent(t *testing.T) {
	var a, b Allocator
	a.Next()
	if got := b.Next(); got != 1 {
		t.Fatalf("fresh Allocator should start at 1, got %d", got)
	}
}
