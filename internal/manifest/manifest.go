// Package manifest loads the capability manifest (spec.md §6.4): an
// optional JSON input the type checker consults to enforce that a
// function's effectCaps are a subset of its package's allow-list (spec.md
// §4.7 pass 5). A manifest violation is advisory, not a hard error — the
// type checker emits it as an info-severity diagnostic on a distinguishable
// channel rather than invalidating the compile (spec.md §4.7 item 5).
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/aster-cloud/aster/internal/effects"
	"github.com/aster-cloud/aster/internal/schema"
)

// SchemaVersion is the manifest schema version this loader understands.
const SchemaVersion = "aster.manifest/v1"

// PackageAllow lists the capabilities a package's functions may declare.
type PackageAllow struct {
	Allow []string `json:"allow"`
}

// Manifest is the capability manifest (spec.md §6.4):
//
//	{
//	  "packages": { "<module>": { "allow": ["Http", "Sql", ...] } },
//	  "default": { "allow": [...] }
//	}
type Manifest struct {
	Packages map[string]PackageAllow `json:"packages"`
	Default  *PackageAllow            `json:"default,omitempty"`
}

// Load reads and parses a capability manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}
	return Parse(data)
}

// Parse parses a capability manifest from JSON bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}

// Validate checks that every capability named in the manifest is one of
// the nine known capabilities (spec.md GLOSSARY "Capability").
func (m *Manifest) Validate() error {
	for pkg, allow := range m.Packages {
		if err := validateAllowList(allow.Allow); err != nil {
			return fmt.Errorf("package %q: %w", pkg, err)
		}
	}
	if m.Default != nil {
		if err := validateAllowList(m.Default.Allow); err != nil {
			return fmt.Errorf("default: %w", err)
		}
	}
	return nil
}

func validateAllowList(allow []string) error {
	for _, name := range allow {
		if !isKnownCapability(name) {
			return fmt.Errorf("unknown capability %q", name)
		}
	}
	return nil
}

func isKnownCapability(name string) bool {
	for _, c := range effects.All {
		if string(c) == name {
			return true
		}
	}
	return false
}

// AllowFor returns the allow-list effective for a module, falling back to
// the manifest's default entry when the module has no specific one. The
// second return value is false when neither the package nor a default
// entry exists, meaning the manifest has no opinion about this module.
func (m *Manifest) AllowFor(module string) (effects.Set, bool) {
	if pkg, ok := m.Packages[module]; ok {
		return toSet(pkg.Allow), true
	}
	if m.Default != nil {
		return toSet(m.Default.Allow), true
	}
	return nil, false
}

func toSet(names []string) effects.Set {
	caps := make([]effects.Capability, 0, len(names))
	for _, n := range names {
		caps = append(caps, effects.Capability(n))
	}
	return effects.NewSet(caps)
}

// MarshalDeterministic renders the manifest deterministically, with packages sorted
// by name, matching the Core IR envelope's determinism discipline (spec.md
// §6.3, SPEC_FULL.md §5 "Deterministic JSON").
func (m *Manifest) MarshalDeterministic() ([]byte, error) {
	return schema.MarshalDeterministic(m)
}

// SortedPackageNames returns the manifest's package keys in sorted order,
// used when a diagnostic needs to enumerate packages deterministically.
func (m *Manifest) SortedPackageNames() []string {
	names := make([]string, 0, len(m.Packages))
	for name := range m.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
