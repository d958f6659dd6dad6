package typemap

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/require"

	"github.com/apiformats/clientgen/internal/spec"
)

func schemaOf(typ string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: typ}}
}

func TestMapParameterInlineTypes(t *testing.T) {
	m := TypeScript{}
	doc := &spec.Document{Swagger: "2.0"}

	tests := []struct {
		name  string
		param *spec.Parameter
		want  string
	}{
		{name: "string", param: &spec.Parameter{Type: "string"}, want: "string"},
		{name: "integer", param: &spec.Parameter{Type: "integer"}, want: "number"},
		{name: "long", param: &spec.Parameter{Type: "long"}, want: "number"},
		{name: "boolean", param: &spec.Parameter{Type: "boolean"}, want: "boolean"},
		{name: "file", param: &spec.Parameter{Type: "file"}, want: "File"},
		{name: "unknown", param: &spec.Parameter{Type: "widget"}, want: "any"},
		{name: "nil", param: nil, want: "any"},
		{name: "array of strings", param: &spec.Parameter{Type: "array", Items: schemaOf("string")}, want: "string[]"},
		{name: "enum union", param: &spec.Parameter{Type: "string", Enum: []any{"asc", "desc"}}, want: "'asc' | 'desc'"},
		{name: "schema wins", param: &spec.Parameter{Type: "string", Schema: schemaOf("integer")}, want: "number"},
		{name: "content style", param: &spec.Parameter{Content: map[string]*spec.MediaType{
			"application/json": {Schema: schemaOf("integer")},
		}}, want: "number"},
		{name: "content first sorted, null media skipped", param: &spec.Parameter{Content: map[string]*spec.MediaType{
			"application/json": nil,
			"text/plain":       {Schema: schemaOf("string")},
		}}, want: "string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.MapParameter(tt.param, doc))
		})
	}
}

func TestMapSchema(t *testing.T) {
	m := TypeScript{}
	doc := &spec.Document{Swagger: "2.0"}

	require.Equal(t, "any", m.MapSchema(nil, doc))
	require.Equal(t, "any", m.MapSchema(&openapi3.SchemaRef{}, doc))
	require.Equal(t, "Pet", m.MapSchema(&openapi3.SchemaRef{Ref: "#/definitions/Pet"}, doc))
	require.Equal(t, "Pet", m.MapSchema(&openapi3.SchemaRef{Ref: "#/components/schemas/Pet"}, doc))
	require.Equal(t, "object", m.MapSchema(schemaOf("object"), doc))
	require.Equal(t, "string", m.MapSchema(schemaOf("string"), doc))

	array := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  "array",
		Items: &openapi3.SchemaRef{Ref: "#/definitions/Pet"},
	}}
	require.Equal(t, "Pet[]", m.MapSchema(array, doc))

	enum := &openapi3.SchemaRef{Value: &openapi3.Schema{Type: "string", Enum: []any{"a", "b"}}}
	require.Equal(t, "'a' | 'b'", m.MapSchema(enum, doc))

	numericEnum := &openapi3.SchemaRef{Value: &openapi3.Schema{Type: "integer", Enum: []any{1, 2}}}
	require.Equal(t, "1 | 2", m.MapSchema(numericEnum, doc))
}

func TestDefinitionName(t *testing.T) {
	require.Equal(t, "Pet", DefinitionName("#/definitions/Pet"))
	require.Equal(t, "Pet", DefinitionName("#/components/schemas/Pet"))
	require.Equal(t, "Pet", DefinitionName("Pet"), "bare legacy model names pass through")
}
