package util

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchema returns an indented JSON schema for the given object type.
// The object should be a pointer to a struct to capture fields and tags.
// Nested structs are inlined rather than placed under $defs.
func GenerateJSONSchema(obj any, title string) ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(obj)
	if title != "" {
		schema.Title = title
	}
	return json.MarshalIndent(schema, "", "  ")
}
