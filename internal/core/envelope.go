package core

import (
	"encoding/json"
	"fmt"

	"github.com/aster-cloud/aster/internal/schema"
)

// EnvelopeVersion is the only Core IR JSON envelope version this build
// understands (spec.md §6.3).
const EnvelopeVersion = "1.0"

// Metadata is the envelope's informational sidecar (spec.md §6.3
// "metadata": { generatedAt, source, compilerVersion }). None of these
// fields feed back into compilation; they exist for downstream tooling.
type Metadata struct {
	GeneratedAt     string `json:"generatedAt"`
	Source          string `json:"source"`
	CompilerVersion string `json:"compilerVersion"`
}

// Serialize renders a Module as the Core IR JSON envelope (spec.md §6.3),
// deterministically (schema.MarshalDeterministic sorts object keys so two
// serializations of an unchanged Module are byte-identical).
func Serialize(m *Module, meta Metadata) ([]byte, error) {
	modJSON, err := ToJSON(m)
	if err != nil {
		return nil, fmt.Errorf("core: serialize: %w", err)
	}
	envelope := map[string]any{
		"version": EnvelopeVersion,
		"module":  modJSON,
		"metadata": map[string]any{
			"generatedAt":     meta.GeneratedAt,
			"source":          meta.Source,
			"compilerVersion": meta.CompilerVersion,
		},
	}
	return schema.MarshalDeterministic(envelope)
}

// Deserialize parses a Core IR JSON envelope back into a Module, rejecting
// unsupported versions, a missing "module" field, a non-array
// "module.decls", or "module.kind" != "Module" (spec.md §6.3
// "Deserialization must reject ...").
func Deserialize(data []byte) (*Module, Metadata, error) {
	var envelope map[string]any
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, Metadata{}, fmt.Errorf("core: deserialize: invalid JSON: %w", err)
	}

	version, _ := envelope["version"].(string)
	if version != EnvelopeVersion {
		return nil, Metadata{}, fmt.Errorf("core: deserialize: unsupported envelope version %q", version)
	}

	rawModule, ok := envelope["module"]
	if !ok {
		return nil, Metadata{}, fmt.Errorf("core: deserialize: missing %q field", "module")
	}

	mod, err := FromJSON(rawModule)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("core: deserialize: %w", err)
	}

	var meta Metadata
	if rawMeta, ok := envelope["metadata"].(map[string]any); ok {
		meta.GeneratedAt, _ = rawMeta["generatedAt"].(string)
		meta.Source, _ = rawMeta["source"].(string)
		meta.CompilerVersion, _ = rawMeta["compilerVersion"].(string)
	}
	return mod, meta, nil
}
