// Package typemap provides the default type-mapping collaborator: it turns
// schema and parameter nodes into target-language type descriptor strings.
// The view builders treat the mapper as a black box, so alternative targets
// can plug in their own implementation.
package typemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apiformats/clientgen/internal/spec"
)

// TypeScript maps schema nodes to TypeScript type strings.
type TypeScript struct{}

// MapParameter maps a raw parameter node. 3.x parameters (and 2.0 body
// parameters) carry a schema node; content-style 3.x parameters carry a
// content map instead, where the first content type in sorted order wins;
// 2.0 and legacy parameters declare an inline type/format pair.
func (t TypeScript) MapParameter(p *spec.Parameter, doc *spec.Document) string {
	if p == nil {
		return "any"
	}
	if p.Schema != nil {
		return t.MapSchema(p.Schema, doc)
	}
	if schema := contentSchema(p.Content); schema != nil {
		return t.MapSchema(schema, doc)
	}
	if len(p.Enum) > 0 {
		return enumUnion(p.Enum)
	}
	if strings.EqualFold(p.Type, "array") {
		return t.MapSchema(p.Items, doc) + "[]"
	}
	return primitive(p.Type)
}

// MapSchema maps a schema node. References are rendered as the referenced
// definition's name; the definitions table itself is emitted alongside the
// methods, so the name is always meaningful in the generated source.
func (t TypeScript) MapSchema(ref *openapi3.SchemaRef, doc *spec.Document) string {
	if ref == nil {
		return "any"
	}
	if ref.Ref != "" {
		return DefinitionName(ref.Ref)
	}
	s := ref.Value
	if s == nil {
		return "any"
	}
	if len(s.Enum) > 0 {
		return enumUnion(s.Enum)
	}
	switch s.Type {
	case "array":
		return t.MapSchema(s.Items, doc) + "[]"
	case "object":
		return "object"
	case "":
		return "any"
	default:
		return primitive(s.Type)
	}
}

// contentSchema picks the schema of the first content type in sorted order,
// skipping null media entries.
func contentSchema(content map[string]*spec.MediaType) *openapi3.SchemaRef {
	if len(content) == 0 {
		return nil
	}
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)
	for _, ct := range types {
		if media := content[ct]; media != nil {
			return media.Schema
		}
	}
	return nil
}

// DefinitionName extracts the definition name from a reference pointer
// ("#/definitions/User", "#/components/schemas/User") or returns a bare
// legacy name unchanged.
func DefinitionName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func primitive(typ string) string {
	switch strings.ToLower(typ) {
	case "string", "byte", "date", "date-time", "password":
		return "string"
	case "integer", "int", "long", "float", "double", "number":
		return "number"
	case "boolean", "bool":
		return "boolean"
	case "file":
		return "File"
	case "object", "":
		return "any"
	default:
		return "any"
	}
}

// enumUnion renders an enum as a literal union type; a singleton enum
// collapses to its only member.
func enumUnion(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch val := v.(type) {
		case string:
			parts = append(parts, "'"+val+"'")
		default:
			parts = append(parts, fmt.Sprintf("%v", val))
		}
	}
	return strings.Join(parts, " | ")
}
