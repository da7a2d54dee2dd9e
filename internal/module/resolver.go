package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SourceExt is the file extension of Aster CNL source modules (spec.md
// §4.8: "tries each candidate with .aster extension", SPEC_FULL.md §1).
const SourceExt = ".aster"

// Resolver walks a list of module search paths looking for the file that
// backs a dotted import name (spec.md §4.8 "Search resolution walks
// moduleSearchPaths and tries each candidate with .aster extension").
// Search paths may contain doublestar globs (e.g. "vendor/**"), matching
// SPEC_FULL.md §4's wiring of github.com/bmatcuk/doublestar/v4.
type Resolver struct {
	SearchPaths []string
}

// NewResolver builds a Resolver over the given search paths, always
// including "." so imports resolve relative to the working directory.
func NewResolver(searchPaths []string) *Resolver {
	paths := append([]string{"."}, searchPaths...)
	return &Resolver{SearchPaths: paths}
}

// candidatePath turns a dotted module name ("billing.invoices") into its
// expected relative file path ("billing/invoices.aster").
func candidatePath(name string) string {
	rel := strings.ReplaceAll(name, ".", string(filepath.Separator))
	if !strings.HasSuffix(rel, SourceExt) {
		rel += SourceExt
	}
	return rel
}

// Resolve finds the absolute file path backing a dotted module name,
// trying each search path in order. A search path entry containing glob
// metacharacters is expanded with doublestar.Glob and each match directory
// is tried as a base.
func (r *Resolver) Resolve(name string) (string, error) {
	rel := candidatePath(name)

	for _, base := range r.SearchPaths {
		if doublestar.ValidatePattern(base) && strings.ContainsAny(base, "*?[") {
			matches, err := doublestar.Glob(os.DirFS("."), base)
			if err != nil {
				continue
			}
			for _, m := range matches {
				candidate := filepath.Join(m, rel)
				if fileExists(candidate) {
					return filepath.Abs(candidate)
				}
			}
			continue
		}

		candidate := filepath.Join(base, rel)
		if fileExists(candidate) {
			return filepath.Abs(candidate)
		}
	}

	return "", fmt.Errorf("module %q not found in search paths %v", name, r.SearchPaths)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CanonicalURI maps a resolved absolute file path to the canonical key the
// Module Cache indexes entries by (spec.md §4.8 "map from canonical URI").
func CanonicalURI(absPath string) string {
	return filepath.ToSlash(absPath)
}
