package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aster-cloud/aster/internal/effects"
)

func TestParseValid(t *testing.T) {
	data := []byte(`{
		"packages": {
			"billing": {"allow": ["Http", "Sql"]},
			"shipping": {"allow": ["Http"]}
		},
		"default": {"allow": ["Cpu"]}
	}`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(m.Packages) != 2 {
		t.Errorf("Packages = %d, want 2", len(m.Packages))
	}
	if m.Default == nil || len(m.Default.Allow) != 1 {
		t.Errorf("Default allow = %+v", m.Default)
	}
}

func TestParseUnknownCapability(t *testing.T) {
	data := []byte(`{"packages": {"billing": {"allow": ["Network"]}}}`)
	if _, err := Parse(data); err == nil {
		t.Error("expected error for unknown capability")
	}
}

func TestAllowFor(t *testing.T) {
	m, err := Parse([]byte(`{
		"packages": {"billing": {"allow": ["Http", "Sql"]}},
		"default": {"allow": ["Cpu"]}
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	set, ok := m.AllowFor("billing")
	if !ok {
		t.Fatal("expected billing to resolve")
	}
	if !set.Contains(effects.Http) || !set.Contains(effects.Sql) {
		t.Errorf("billing allow set = %v", set)
	}

	set, ok = m.AllowFor("unlisted")
	if !ok {
		t.Fatal("expected default to resolve for unlisted module")
	}
	if !set.Contains(effects.Cpu) {
		t.Errorf("default allow set = %v", set)
	}
}

func TestAllowForNoDefault(t *testing.T) {
	m, err := Parse([]byte(`{"packages": {"billing": {"allow": ["Http"]}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := m.AllowFor("unlisted"); ok {
		t.Error("expected no resolution without a default entry")
	}
}

func TestLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "manifest_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "manifest.json")
	content := []byte(`{"packages": {"billing": {"allow": ["Http"]}}}`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Packages) != 1 {
		t.Errorf("Packages = %d, want 1", len(m.Packages))
	}
}

func TestSortedPackageNames(t *testing.T) {
	m, err := Parse([]byte(`{"packages": {"z": {"allow": []}, "a": {"allow": []}, "m": {"allow": []}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := m.SortedPackageNames()
	want := []string{"a", "m", "z"}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("SortedPackageNames()[%d] = %s, want %s", i, got[i], name)
		}
	}
}
