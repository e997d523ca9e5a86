package yamlsort

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// SettingsSchema returns a JSON Schema describing the settings file.
func SettingsSchema() (*jsonschema.Schema, error) {
	schemas := make([]any, 0, len(GetAllSchemaStrings()))
	for _, name := range GetAllSchemaStrings() {
		schemas = append(schemas, name)
	}

	s, err := jsonschema.For[Settings](&jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[Schema](): {Type: "string", Enum: schemas},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("infer settings schema: %w", err)
	}

	s.Schema = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "yamlsort settings"

	if p, ok := s.Properties["quoting_type"]; ok {
		p.Enum = []any{QuoteSingle, QuoteDouble}
	}

	if p, ok := s.Properties["indent"]; ok {
		p.Minimum = ptr(1.0)
	}

	if p, ok := s.Properties["empty_lines_until_level"]; ok {
		p.Minimum = ptr(0.0)
	}

	defaults, err := json.Marshal(DefaultSettings())
	if err != nil {
		return nil, fmt.Errorf("marshal default settings: %w", err)
	}

	var values map[string]json.RawMessage

	err = json.Unmarshal(defaults, &values)
	if err != nil {
		return nil, fmt.Errorf("unmarshal default settings: %w", err)
	}

	for name, v := range values {
		if p, ok := s.Properties[name]; ok {
			p.Default = v
		}
	}

	return s, nil
}

func ptr[T any](v T) *T {
	return &v
}
