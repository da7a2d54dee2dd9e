package module

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolverFindsDottedModule(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "billing"), 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "billing", "invoices.aster")
	if err := os.WriteFile(target, []byte("Module billing.invoices.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver([]string{dir})
	got, err := r.Resolve("billing.invoices")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want, _ := filepath.Abs(target)
	if got != want {
		t.Errorf("Resolve() = %s, want %s", got, want)
	}
}

func TestResolverNotFound(t *testing.T) {
	r := NewResolver([]string{t.TempDir()})
	if _, err := r.Resolve("nope.missing"); err == nil {
		t.Error("expected error for unresolved module")
	}
}

func TestResolverGlobSearchPath(t *testing.T) {
	dir := t.TempDir()
	vendored := filepath.Join(dir, "vendor", "acme")
	if err := os.MkdirAll(vendored, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(vendored, "shipping.aster")
	if err := os.WriteFile(target, []byte("Module shipping.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldwd, _ := os.Getwd()
	defer os.Chdir(oldwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	r := NewResolver([]string{"vendor/**"})
	got, err := r.Resolve("shipping")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want, _ := filepath.Abs(target)
	if got != want {
		t.Errorf("Resolve() = %s, want %s", got, want)
	}
}

func TestCandidatePath(t *testing.T) {
	got := candidatePath("billing.invoices")
	want := filepath.Join("billing", "invoices") + SourceExt
	if got != want {
		t.Errorf("candidatePath() = %s, want %s", got, want)
	}
}

func TestCanonicalURI(t *testing.T) {
	if CanonicalURI("a/b/c") != "a/b/c" {
		t.Error("CanonicalURI should forward-slash the path")
	}
}
