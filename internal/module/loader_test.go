package module

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

type countingSource struct{ reads int }

func (c *countingSource) ReadFile(path string) ([]byte, error) {
	c.reads++
	return os.ReadFile(path)
}

func (c *countingSource) ModTime(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return info.ModTime().String(), nil
}

func writeModule(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name+SourceExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCacheLoadResolvesAndLowers(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "billing", "Module billing.\n")

	cache := NewCache([]string{dir})
	mod, err := cache.Load("billing", "", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if mod.Name != "billing" {
		t.Errorf("Name = %s, want billing", mod.Name)
	}
}

func TestCacheLoadIsCachedByFingerprint(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "billing", "Module billing.\n")

	src := &countingSource{}
	cache := NewCache([]string{dir}).WithSource(src)

	if _, err := cache.Load("billing", "", nil); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if _, err := cache.Load("billing", "", nil); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if src.reads != 1 {
		t.Errorf("reads = %d, want 1 (second Load should hit the cache)", src.reads)
	}
}

func TestCacheLoadDetectsImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", "Module a.\nuse b.\n")
	writeModule(t, dir, "b", "Module b.\nuse a.\n")

	cache := NewCache([]string{dir})
	_, err := cache.Load("a", "", nil)
	if _, ok := err.(*CycleError); !ok {
		t.Errorf("error = %v (%T), want *CycleError", err, err)
	}
}

func TestCacheLoadNotFound(t *testing.T) {
	cache := NewCache([]string{t.TempDir()})
	_, err := cache.Load("nope", "", nil)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("error = %v (%T), want *NotFoundError", err, err)
	}
}

// blockingSource delays every ReadFile until release is closed, so a test
// can force several concurrent Load calls to overlap on the same uri.
type blockingSource struct {
	reads   int32
	release chan struct{}
}

func (b *blockingSource) ReadFile(path string) ([]byte, error) {
	atomic.AddInt32(&b.reads, 1)
	<-b.release
	return os.ReadFile(path)
}

func (b *blockingSource) ModTime(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return info.ModTime().String(), nil
}

func TestCacheLoadSingleFlightsConcurrentCallers(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "billing", "Module billing.\n")

	src := &blockingSource{release: make(chan struct{})}
	cache := NewCache([]string{dir}).WithSource(src)

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			mod, err := cache.Load("billing", "", nil)
			if err != nil {
				t.Errorf("Load() error = %v", err)
				return
			}
			if mod.Name != "billing" {
				t.Errorf("Name = %s, want billing", mod.Name)
			}
		}()
	}

	close(src.release)
	wg.Wait()

	if got := atomic.LoadInt32(&src.reads); got != 1 {
		t.Errorf("ReadFile calls = %d, want 1 (concurrent Loads of the same module should compile once)", got)
	}
}

func TestCacheInvalidatePropagatesToDependents(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "shipping", "Module shipping.\n")
	writeModule(t, dir, "billing", "Module billing.\nuse shipping.\n")

	cache := NewCache([]string{dir})
	if _, err := cache.Load("billing", "", nil); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	shippingPath, err := cache.Resolve("shipping")
	if err != nil {
		t.Fatal(err)
	}
	billingPath, err := cache.Resolve("billing")
	if err != nil {
		t.Fatal(err)
	}
	shippingURI := CanonicalURI(shippingPath)
	billingURI := CanonicalURI(billingPath)

	if _, ok := cache.Get(shippingURI); !ok {
		t.Fatal("expected shipping to be cached")
	}
	if _, ok := cache.Get(billingURI); !ok {
		t.Fatal("expected billing to be cached")
	}

	cache.Invalidate(shippingURI)

	if _, ok := cache.Get(shippingURI); ok {
		t.Error("shipping entry should have been invalidated")
	}
	if _, ok := cache.Get(billingURI); ok {
		t.Error("billing entry should have been transitively invalidated (it imports shipping)")
	}
}
