// Package view normalizes a parsed Swagger 1.x, Swagger 2.0, or OpenAPI 3.x
// document into a version-independent view model that the render targets
// consume. The pipeline is a pure in-memory transform: one document and one
// options bag in, one view model out, with all per-call state (allocated
// method names, document-wide security flags) scoped to the call.
package view

import (
	"github.com/apiformats/clientgen/internal/spec"
)

// Location is the transport channel a parameter travels in. Exactly one
// location is set for every included parameter.
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InHeader Location = "header"
	InBody   Location = "body"
	InForm   Location = "form"
)

// Parameter is the view-level representation of one classified parameter.
type Parameter struct {
	Name          string
	CamelCaseName string
	Location      Location
	Required      bool
	Description   string

	// Singleton is the single legal value of a one-member enum; templates
	// inline it as a constant instead of requiring caller input.
	IsSingleton bool
	Singleton   any

	// Pattern flags a query parameter whose name is pattern-typed.
	IsPatternType bool
	Pattern       string

	HasDefault  bool
	Default     any
	DefaultJSON string

	// Type is the mapped target type descriptor.
	Type string
	// Cardinality is empty for required parameters, "?" otherwise.
	Cardinality string
}

func (p Parameter) IsPathParameter() bool   { return p.Location == InPath }
func (p Parameter) IsQueryParameter() bool  { return p.Location == InQuery }
func (p Parameter) IsHeaderParameter() bool { return p.Location == InHeader }
func (p Parameter) IsBodyParameter() bool   { return p.Location == InBody }
func (p Parameter) IsFormParameter() bool   { return p.Location == InForm }

// Header is a synthesized request header (Accept, Content-Type).
type Header struct {
	Name  string
	Value string
}

// Response describes one (status code, content type) pair of a successful
// response, with the mapped target type. Last marks the final descriptor so
// templates can omit a trailing separator.
type Response struct {
	Code        string
	ContentType string
	Type        string
	Last        bool
}

// Method is the view-model representation of one retained, uniquely-named
// operation. Method names are unique within one document's generated set.
type Method struct {
	Name        string
	Verb        string
	Path        string
	Summary     string
	Description string

	IsGET  bool
	IsPOST bool

	IsSecure       bool
	IsSecureToken  bool
	IsSecureAPIKey bool
	IsSecureBasic  bool

	Parameters []Parameter
	Headers    []Header
	Responses  []Response

	// Destination is the lower-cased first tag, populated only when
	// multi-file output is requested.
	Destination string

	HasBody        bool
	IsFormMethod   bool
	HasExtraHeader bool

	// AllParametersOptional reports whether the method's whole parameter
	// object may default to empty. Required path parameters do not count:
	// they are supplied structurally, never through the options object.
	AllParametersOptional bool
}

// Definition is a flattened schema/model table entry.
type Definition struct {
	Name        string
	Description string
	Type        string
}

// Warning records a per-operation anomaly that did not abort the build,
// such as a request body declaring several content types.
type Warning struct {
	Code    spec.ErrorCode
	Message string
}

// ViewModel is the version-independent aggregate handed to the render
// stages. It is built once per generation call and never mutated after the
// builder returns it.
type ViewModel struct {
	ClassName   string
	ModuleName  string
	Description string
	// Domain is the computed base URL (scheme://host/basePath for 2.0,
	// first server URL for 3.x, basePath for legacy).
	Domain string

	IsES6  bool
	IsNode bool

	Methods     []Method
	Definitions []Definition

	// Document-wide security flags: true if any method uses that kind.
	IsSecure       bool
	IsSecureToken  bool
	IsSecureAPIKey bool
	IsSecureBasic  bool

	Warnings []Warning
}
