package core_test

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/aster/internal/canon"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/lexer"
	"github.com/aster-cloud/aster/internal/lexicon"
	"github.com/aster-cloud/aster/internal/lower"
	"github.com/aster-cloud/aster/internal/parser"
)

func lowerSrc(t *testing.T, src string) *core.Module {
	t.Helper()
	lx := lexicon.English()
	canonical := canon.Canonicalize(src, canon.Options{Lexicon: lx})
	toks, err := lexer.Lex(canonical, lx)
	require.NoError(t, err)
	file, err := parser.Parse(toks)
	require.NoError(t, err)
	mod, err := lower.Lower(file, "greet.aster")
	require.NoError(t, err)
	return mod
}

// TestEnvelopeRoundTrip exercises spec.md §8's "JSON envelope round-trip:
// deserialize(serialize(m)) == m for every valid Core module" using the
// Greet end-to-end scenario from spec.md §8.
func TestEnvelopeRoundTrip(t *testing.T) {
	mod := lowerSrc(t, "This module is demo.\nRule greet given name: Text, produce Text:\n  Return \"Hello, \" plus name.\n")

	data, err := core.Serialize(mod, core.Metadata{GeneratedAt: "2026-07-31T00:00:00Z", Source: "greet.aster", CompilerVersion: "dev"})
	require.NoError(t, err)

	got, meta, err := core.Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, mod.Name, got.Name)
	assert.Equal(t, len(mod.Decls), len(got.Decls))
	assert.Equal(t, mod.ID(), got.ID())
	assert.Equal(t, mod.Origin(), got.Origin())
	assert.Equal(t, "greet.aster", meta.Source)

	origFn := mod.Decls[0].(*core.FuncDecl)
	gotFn := got.Decls[0].(*core.FuncDecl)
	assert.Equal(t, origFn.Name, gotFn.Name)
	assert.Equal(t, origFn.Effects, gotFn.Effects)
	assert.Equal(t, origFn.RetType.String(), gotFn.RetType.String())
	assert.Equal(t, origFn.Body.String(), gotFn.Body.String())

	// The two JSON trees (pre- and post-round-trip) must be structurally
	// identical, not merely equal on the few fields asserted above.
	wantTree, err := core.ToJSON(mod)
	require.NoError(t, err)
	gotTree, err := core.ToJSON(got)
	require.NoError(t, err)
	if diff := cmp.Diff(wantTree, gotTree); diff != "" {
		t.Errorf("Core IR JSON tree changed across a round trip (-want +got):\n%s", diff)
	}

	// Re-serializing the round-tripped module must byte-for-byte match the
	// first serialization (determinism, not just structural equality).
	data2, err := core.Serialize(got, core.Metadata{GeneratedAt: "2026-07-31T00:00:00Z", Source: "greet.aster", CompilerVersion: "dev"})
	require.NoError(t, err)
	assert.Equal(t, string(data), string(data2))
}

// TestEnvelopeSnapshot pins the Greet scenario's envelope shape with a
// golden snapshot, so an accidental field rename or reordering in json.go
// shows up as a reviewable diff instead of a silent wire-format change.
func TestEnvelopeSnapshot(t *testing.T) {
	mod := lowerSrc(t, "This module is demo.\nRule greet given name: Text, produce Text:\n  Return \"Hello, \" plus name.\n")

	data, err := core.Serialize(mod, core.Metadata{GeneratedAt: "2026-07-31T00:00:00Z", Source: "greet.aster", CompilerVersion: "dev"})
	require.NoError(t, err)

	var pretty map[string]any
	require.NoError(t, json.Unmarshal(data, &pretty))
	indented, err := json.MarshalIndent(pretty, "", "  ")
	require.NoError(t, err)

	snaps.MatchSnapshot(t, string(indented))
}

func TestDeserializeRejectsBadVersion(t *testing.T) {
	_, _, err := core.Deserialize([]byte(`{"version":"2.0","module":{"kind":"Module","name":"x","decls":[]}}`))
	require.Error(t, err)
}

func TestDeserializeRejectsMissingModule(t *testing.T) {
	_, _, err := core.Deserialize([]byte(`{"version":"1.0"}`))
	require.Error(t, err)
}

func TestDeserializeRejectsNonArrayDecls(t *testing.T) {
	_, _, err := core.Deserialize([]byte(`{"version":"1.0","module":{"kind":"Module","name":"x","decls":"nope"}}`))
	require.Error(t, err)
}

func TestDeserializeRejectsWrongModuleKind(t *testing.T) {
	_, _, err := core.Deserialize([]byte(`{"version":"1.0","module":{"kind":"NotModule","name":"x","decls":[]}}`))
	require.Error(t, err)
}
