package spec

import (
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Version identifies which of the three supported grammars a document uses.
type Version int

const (
	VersionUnknown Version = iota
	// VersionLegacy is Swagger 1.x (swaggerVersion marker, apis/models tables).
	VersionLegacy
	// VersionSwagger2 is Swagger 2.0 (swagger: "2.0").
	VersionSwagger2
	// VersionOpenAPI3 is OpenAPI 3.x (openapi marker).
	VersionOpenAPI3
)

func (v Version) String() string {
	switch v {
	case VersionLegacy:
		return "swagger-1.x"
	case VersionSwagger2:
		return "swagger-2.0"
	case VersionOpenAPI3:
		return "openapi-3.x"
	default:
		return "unknown"
	}
}

// Document is the parsed API description. It is a union over the three
// supported grammars: each builder reads only the sections its version
// defines, and the version-marker fields drive dispatch. Schema nodes reuse
// kin-openapi's SchemaRef so $ref-or-value handling matches the ecosystem.
type Document struct {
	Swagger        string `json:"swagger,omitempty"`
	OpenAPI        string `json:"openapi,omitempty"`
	SwaggerVersion string `json:"swaggerVersion,omitempty"`

	Info     *Info    `json:"info,omitempty"`
	Host     string   `json:"host,omitempty"`
	BasePath string   `json:"basePath,omitempty"`
	Schemes  []string `json:"schemes,omitempty"`
	Consumes []string `json:"consumes,omitempty"`
	Produces []string `json:"produces,omitempty"`

	// Swagger 2.0 sections.
	Paths               map[string]*PathItem           `json:"paths,omitempty"`
	Definitions         map[string]*openapi3.SchemaRef `json:"definitions,omitempty"`
	Parameters          map[string]*Parameter          `json:"parameters,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme     `json:"securityDefinitions,omitempty"`
	Security            SecurityRequirements           `json:"security,omitempty"`

	// OpenAPI 3.x sections (Paths and Security are shared with 2.0).
	Servers    []*Server   `json:"servers,omitempty"`
	Components *Components `json:"components,omitempty"`

	// Swagger 1.x sections.
	APIVersion     string                         `json:"apiVersion,omitempty"`
	ResourcePath   string                         `json:"resourcePath,omitempty"`
	APIs           []*LegacyAPI                   `json:"apis,omitempty"`
	Models         map[string]*openapi3.SchemaRef `json:"models,omitempty"`
	Authorizations map[string]*SecurityScheme     `json:"authorizations,omitempty"`
}

// DetectVersion inspects the version-marker fields. A document with none of
// the recognized markers is VersionUnknown; the dispatcher turns that into
// an UnsupportedVersion error rather than guessing.
func (d *Document) DetectVersion() Version {
	switch {
	case strings.TrimSpace(d.Swagger) == "2.0":
		return VersionSwagger2
	case strings.TrimSpace(d.OpenAPI) != "":
		return VersionOpenAPI3
	case strings.HasPrefix(strings.TrimSpace(d.SwaggerVersion), "1."):
		return VersionLegacy
	default:
		return VersionUnknown
	}
}

// Info carries document metadata common to all three grammars.
type Info struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Server is an OpenAPI 3.x server entry.
type Server struct {
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Components holds the OpenAPI 3.x shared-definition tables the pipeline
// resolves against.
type Components struct {
	Schemas         map[string]*openapi3.SchemaRef `json:"schemas,omitempty"`
	Parameters      map[string]*Parameter          `json:"parameters,omitempty"`
	RequestBodies   map[string]*RequestBody        `json:"requestBodies,omitempty"`
	SecuritySchemes map[string]*SecurityScheme     `json:"securitySchemes,omitempty"`
}

// PathItem is one entry in the path table: the verb-keyed operations plus
// the path-level shared parameters that apply to all of them.
type PathItem struct {
	Parameters []*Parameter
	Operations map[string]*Operation // keyed by lower-cased verb
}

// pathItemMetaKeys are the non-verb siblings a path item may carry.
var pathItemMetaKeys = map[string]bool{
	"parameters":  true,
	"$ref":        true,
	"summary":     true,
	"description": true,
	"servers":     true,
}

// UnmarshalJSON splits the parameters sibling from the verb entries by key
// rather than by a fixed field list, so nonstandard verbs (COPY, PURGE,
// PROPFIND, ...) survive parsing and reach the builder's whitelist check.
func (p *PathItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if key == "parameters" {
			if err := json.Unmarshal(value, &p.Parameters); err != nil {
				return err
			}
			continue
		}
		if pathItemMetaKeys[key] || strings.HasPrefix(key, "x-") {
			continue
		}
		var op Operation
		if err := json.Unmarshal(value, &op); err != nil {
			return err
		}
		if p.Operations == nil {
			p.Operations = make(map[string]*Operation)
		}
		p.Operations[strings.ToLower(key)] = &op
	}
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON, mainly for test fixtures.
func (p *PathItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Operations)+1)
	if len(p.Parameters) > 0 {
		out["parameters"] = p.Parameters
	}
	for verb, op := range p.Operations {
		out[verb] = op
	}
	return json.Marshal(out)
}

// Operation is one HTTP-verb entry under one path. The 2.0 and 3.x field
// sets overlap enough to share a struct; the builders read their own slice.
type Operation struct {
	OperationID string                `json:"operationId,omitempty"`
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Parameters  []*Parameter          `json:"parameters,omitempty"`
	Consumes    []string              `json:"consumes,omitempty"`
	Produces    []string              `json:"produces,omitempty"`
	Responses   map[string]*Response  `json:"responses,omitempty"`
	Security    *SecurityRequirements `json:"security,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Deprecated  bool                  `json:"deprecated,omitempty"`
}

// Parameter is a raw parameter node before classification. The field set is
// the union of the three grammars: `in` for 2.0/3.x, `paramType` for
// legacy, inline type/format for 2.0/legacy, a schema node for 3.x (and
// 2.0 body parameters), plus the generator extension fields.
type Parameter struct {
	Ref string `json:"$ref,omitempty"`

	Name             string               `json:"name,omitempty"`
	In               string               `json:"in,omitempty"`
	ParamType        string               `json:"paramType,omitempty"`
	Description      string               `json:"description,omitempty"`
	Required         bool                 `json:"required,omitempty"`
	Type             string               `json:"type,omitempty"`
	Format           string               `json:"format,omitempty"`
	Enum             []any                `json:"enum,omitempty"`
	Default          any                  `json:"default,omitempty"`
	CollectionFormat string               `json:"collectionFormat,omitempty"`
	AllowMultiple    bool                 `json:"allowMultiple,omitempty"`
	Schema           *openapi3.SchemaRef  `json:"schema,omitempty"`
	Items            *openapi3.SchemaRef  `json:"items,omitempty"`
	Content          map[string]*MediaType `json:"content,omitempty"`

	// Generator extensions.
	ExcludeFromBindings bool   `json:"x-exclude-from-bindings,omitempty"`
	ProxyHeader         string `json:"x-proxy-header,omitempty"`
	NamePattern         string `json:"x-name-pattern,omitempty"`
}

// Response is one status-code entry in an operation's response map. 2.0
// carries a single schema; 3.x carries a content-type map.
type Response struct {
	Ref         string                `json:"$ref,omitempty"`
	Description string                `json:"description,omitempty"`
	Schema      *openapi3.SchemaRef   `json:"schema,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// MediaType is one content-type entry of a 3.x request body or response.
type MediaType struct {
	Schema *openapi3.SchemaRef `json:"schema,omitempty"`
}

// RequestBody is the OpenAPI 3.x request body, synthesized into a
// pseudo-parameter by the V3 builder.
type RequestBody struct {
	Ref         string                `json:"$ref,omitempty"`
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`

	// BodyName overrides the synthesized parameter name.
	BodyName string `json:"x-codegen-request-body-name,omitempty"`
}

// SecurityScheme is one named authentication mechanism. The 2.0 and 3.x
// shapes share the struct; legacy authorizations decode into it as well.
type SecurityScheme struct {
	Type             string            `json:"type,omitempty"`
	Description      string            `json:"description,omitempty"`
	Name             string            `json:"name,omitempty"`
	In               string            `json:"in,omitempty"`
	Flow             string            `json:"flow,omitempty"`
	Scheme           string            `json:"scheme,omitempty"`
	BearerFormat     string            `json:"bearerFormat,omitempty"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty"`
}

// SecurityRequirement lists scheme names that must all be satisfied
// together; a SecurityRequirements list is satisfied by any one entry.
type SecurityRequirement map[string][]string

type SecurityRequirements []SecurityRequirement

// LegacyAPI is one entry of a Swagger 1.x apis table: a path plus its
// operations (1.x nests operations under the api entry instead of keying
// them by verb).
type LegacyAPI struct {
	Path        string             `json:"path,omitempty"`
	Description string             `json:"description,omitempty"`
	Operations  []*LegacyOperation `json:"operations,omitempty"`
}

// LegacyOperation is a Swagger 1.x operation entry.
type LegacyOperation struct {
	Method         string              `json:"method,omitempty"`
	Nickname       string              `json:"nickname,omitempty"`
	Summary        string              `json:"summary,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Type           string              `json:"type,omitempty"`
	Items          *openapi3.SchemaRef `json:"items,omitempty"`
	Produces       []string            `json:"produces,omitempty"`
	Consumes       []string            `json:"consumes,omitempty"`
	Parameters     []*Parameter        `json:"parameters,omitempty"`
	Authorizations map[string][]any    `json:"authorizations,omitempty"`
	Deprecated     string              `json:"deprecated,omitempty"`
}
