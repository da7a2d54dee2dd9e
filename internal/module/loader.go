// Package module implements the Module Cache (spec.md §4.8): a cache of
// lowered Core IR keyed by canonical file URI, consulted by the type
// checker to resolve cross-module imports (spec.md §4.7 "Cross-module
// resolution"). A cache entry owns its Core IR and a last-modified
// fingerprint (spec.md §3 "Lifecycles": "A module cache entry owns its
// Core IR and a last-modified fingerprint"); Invalidate drops an entry and
// every entry that transitively imported it, via an explicit
// reverse-dependency map (spec.md §4.8, Design Note "Cross-module
// caching").
package module

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/lexer"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/lower"
	"github.com/aster-cloud/aster/internal/parser"
)

// FileSource abstracts file reads so the Module Cache can be driven by a
// virtual filesystem in tests (spec.md §5 "File reads for imports are
// performed synchronously through a pluggable file-source interface").
type FileSource interface {
	ReadFile(path string) ([]byte, error)
	ModTime(path string) (string, error) // an opaque, comparable fingerprint
}

// osFileSource reads from the real filesystem, fingerprinting by mtime.
type osFileSource struct{}

func (osFileSource) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (osFileSource) ModTime(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return info.ModTime().String(), nil
}

// Entry is one cached module: its Core IR plus the fingerprint it was
// built from, so a later Load can tell whether the backing file changed.
type Entry struct {
	URI         string
	Fingerprint string
	Core        *core.Module
}

// CycleError reports an import cycle discovered during resolution (spec.md
// §4.7 "MODULE_CYCLE error pinpointing the chain").
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("import cycle: %s", strings.Join(e.Chain, " -> "))
}

// NotFoundError reports an import that could not be resolved to a file
// (spec.md §9 Open Questions: "behavior when an import is unresolved is
// UNDEFINED_MODULE, not silent success").
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q not found: %v", e.Name, e.Err)
}
func (e *NotFoundError) Unwrap() error { return e.Err }

// Cache is the thread-safe Module Cache (spec.md §4.8, §5 "readers may run
// compiles in parallel"). The zero value is not ready to use; construct
// with NewCache.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	dependents map[string]map[string]bool // importee URI -> set of importer URIs

	inflight map[string]*sync.WaitGroup // uri -> in-progress compile, for the acquire/compare discipline in Load (spec.md §5)

	resolver *Resolver
	source   FileSource
	lexicon  *lexicon.Lexicon
}

// NewCache builds a Module Cache that resolves imports against searchPaths
// using the real filesystem and the English lexicon.
func NewCache(searchPaths []string) *Cache {
	return &Cache{
		entries:    make(map[string]*Entry),
		dependents: make(map[string]map[string]bool),
		inflight:   make(map[string]*sync.WaitGroup),
		resolver:   NewResolver(searchPaths),
		source:     osFileSource{},
		lexicon:    lexicon.English(),
	}
}

// WithSource overrides the file source (for tests driving a virtual
// filesystem) and returns the receiver for chaining.
func (c *Cache) WithSource(s FileSource) *Cache {
	c.source = s
	return c
}

// WithLexicon overrides the lexicon used to lex imported modules.
func (c *Cache) WithLexicon(lx *lexicon.Lexicon) *Cache {
	c.lexicon = lx
	return c
}

// Get returns the cached entry for a canonical URI, if present.
func (c *Cache) Get(uri string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[uri]
	return e, ok
}

// Invalidate drops the entry for uri and transitively drops every entry
// that (directly or indirectly) imported it, per the reverse-dependency
// map (spec.md §4.8). Invalidation is atomic from the caller's viewpoint
// (spec.md §5 "Invalidation is a write-lock operation").
func (c *Cache) Invalidate(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked(uri, map[string]bool{})
}

func (c *Cache) invalidateLocked(uri string, dropped map[string]bool) {
	if dropped[uri] {
		return
	}
	dropped[uri] = true
	delete(c.entries, uri)
	for dependent := range c.dependents[uri] {
		c.invalidateLocked(dependent, dropped)
	}
	delete(c.dependents, uri)
}

// Resolve locates the file backing a dotted module name without loading
// it, exposed for callers that only need path resolution.
func (c *Cache) Resolve(name string) (string, error) {
	return c.resolver.Resolve(name)
}

// Load resolves name to a file, and lexes/parses/lowers it (recursively
// loading its own imports) unless an unexpired cache entry already exists.
// importerURI is the canonical URI of the module performing this import
// ("" for a top-level compile's own imports), used to record the
// reverse-dependency edge. chain is the list of module names currently
// being resolved, used to detect import cycles (spec.md §4.7 "Recursion
// guarded by a visited set; cycles between modules during resolution
// produce a MODULE_CYCLE error pinpointing the chain").
func (c *Cache) Load(name string, importerURI string, chain []string) (*core.Module, error) {
	for _, seen := range chain {
		if seen == name {
			return nil, &CycleError{Chain: append(append([]string{}, chain...), name)}
		}
	}

	path, err := c.resolver.Resolve(name)
	if err != nil {
		return nil, &NotFoundError{Name: name, Err: err}
	}
	uri := CanonicalURI(path)

	fingerprint, err := c.source.ModTime(path)
	if err != nil {
		return nil, &NotFoundError{Name: name, Err: err}
	}

	if entry, ok := c.Get(uri); ok && entry.Fingerprint == fingerprint {
		c.recordDependent(uri, importerURI)
		return entry.Core, nil
	}

	// Only one caller compiles a given uri at a time; the rest wait on its
	// WaitGroup and re-fetch the entry it produced (spec.md §5 "at most one
	// compilation of a given module runs concurrently; other waiters block
	// on a per-key future/promise").
	wg, owner := c.acquireInflight(uri)
	if !owner {
		wg.Wait()
		if entry, ok := c.Get(uri); ok && entry.Fingerprint == fingerprint {
			c.recordDependent(uri, importerURI)
			return entry.Core, nil
		}
		// The owner's compile failed (or raced with a newer fingerprint);
		// retry as our own attempt.
		return c.Load(name, importerURI, chain)
	}
	defer c.releaseInflight(uri, wg)

	mod, err := c.parseAndLower(name, path, append(chain, name))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[uri] = &Entry{URI: uri, Fingerprint: fingerprint, Core: mod}
	c.mu.Unlock()
	c.recordDependent(uri, importerURI)

	return mod, nil
}

// acquireInflight returns the WaitGroup guarding uri's in-progress compile.
// The caller that creates it (owner == true) is responsible for running the
// compile and then calling releaseInflight; every other caller (owner ==
// false) waits on the returned WaitGroup and re-fetches the entry the owner
// produced instead of compiling uri itself.
func (c *Cache) acquireInflight(uri string) (wg *sync.WaitGroup, owner bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.inflight[uri]; ok {
		return existing, false
	}
	wg = &sync.WaitGroup{}
	wg.Add(1)
	c.inflight[uri] = wg
	return wg, true
}

func (c *Cache) releaseInflight(uri string, wg *sync.WaitGroup) {
	c.mu.Lock()
	delete(c.inflight, uri)
	c.mu.Unlock()
	wg.Done()
}

func (c *Cache) recordDependent(importeeURI, importerURI string) {
	if importerURI == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dependents[importeeURI] == nil {
		c.dependents[importeeURI] = make(map[string]bool)
	}
	c.dependents[importeeURI][importerURI] = true
}

func (c *Cache) parseAndLower(name, path string, chain []string) (*core.Module, error) {
	content, err := c.source.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Name: name, Err: err}
	}

	tokens, err := lexer.Lex(string(content), c.lexicon)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", name, err)
	}
	file, err := parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", name, err)
	}

	uri := CanonicalURI(path)
	mod, err := lower.Lower(file, path)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", name, err)
	}

	// Recursively resolve this module's own imports so their Core IR is
	// cached before the caller needs their FuncDecl signatures (spec.md
	// §4.7 "recursively lexing/parsing/lowering them").
	for _, decl := range mod.Decls {
		imp, ok := decl.(*core.ImportDecl)
		if !ok {
			continue
		}
		if _, err := c.Load(imp.Name, uri, chain); err != nil {
			return nil, err
		}
	}

	return mod, nil
}
