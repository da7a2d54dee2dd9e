package manifest

// SchemaJSON documents the capability manifest's shape (spec.md §6.4) for
// tooling that wants to validate a manifest file before handing it to
// Load/Parse.
const SchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "aster.manifest/v1",
  "title": "Aster Capability Manifest",
  "type": "object",
  "properties": {
    "packages": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["allow"],
        "properties": {
          "allow": { "type": "array", "items": { "type": "string" } }
        }
      }
    },
    "default": {
      "type": "object",
      "required": ["allow"],
      "properties": {
        "allow": { "type": "array", "items": { "type": "string" } }
      }
    }
  }
}`
