package view

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apiformats/clientgen/internal/spec"
	"github.com/apiformats/clientgen/internal/typemap"
)

// TypeMapper maps schema and parameter nodes to target type descriptor
// strings. The builders consume it as a black box.
type TypeMapper interface {
	MapSchema(ref *openapi3.SchemaRef, doc *spec.Document) string
	MapParameter(p *spec.Parameter, doc *spec.Document) string
}

// Options is the caller-supplied options bag for one generation call.
type Options struct {
	// ClassName names the generated class. Required.
	ClassName string
	// ModuleName is an optional module identifier passed to templates.
	ModuleName string
	// Multiple requests per-tag grouping: each method gets a Destination
	// so the splitter can partition the rendered output.
	Multiple bool
	// RequestBodyParameterName overrides the name of the pseudo-parameter
	// synthesized from an OpenAPI 3.x request body.
	RequestBodyParameterName string
	// IsES6 is a target-dialect flag passed through to templates.
	IsES6 bool
	// IsNode marks a server-side target, which permits proxy-injected
	// header parameters.
	IsNode bool
	// Types is the type-mapping collaborator; defaults to the TypeScript
	// mapper when nil.
	Types TypeMapper
}

// Builder assembles the version-independent view model from a document.
type Builder interface {
	BuildView(doc *spec.Document, opts Options) (*ViewModel, error)
}

// BuilderFor selects the builder matching the document's version marker.
// A document with no recognized marker is rejected rather than silently
// handled as legacy.
func BuilderFor(doc *spec.Document) (Builder, error) {
	if doc == nil {
		return nil, &spec.Error{Code: spec.MissingRequiredOption, Message: "view: document is required"}
	}
	switch doc.DetectVersion() {
	case spec.VersionSwagger2:
		return v2Builder{}, nil
	case spec.VersionOpenAPI3:
		return v3Builder{}, nil
	case spec.VersionLegacy:
		return v1Builder{}, nil
	default:
		return nil, &spec.Error{Code: spec.UnsupportedVersion, Message: "view: document carries no recognized version marker (expected swagger 2.0, openapi 3.x, or swaggerVersion 1.x)"}
	}
}

// Build dispatches on the document version and runs the matching builder.
func Build(doc *spec.Document, opts Options) (*ViewModel, error) {
	if opts.ClassName == "" {
		return nil, &spec.Error{Code: spec.MissingRequiredOption, Message: "view: class name is required"}
	}
	b, err := BuilderFor(doc)
	if err != nil {
		return nil, err
	}
	return b.BuildView(doc, opts)
}

// methodVerbs is the verb whitelist, in emission order. Verbs outside this
// set are silently skipped.
var methodVerbs = []string{
	"get", "post", "put", "delete", "patch", "copy", "head", "options",
	"link", "unlink", "purge", "lock", "unlock", "propfind",
}

var methodVerbSet = func() map[string]bool {
	set := make(map[string]bool, len(methodVerbs))
	for _, v := range methodVerbs {
		set[v] = true
	}
	return set
}()

// buildState carries the per-call mutable pieces: the method-name
// allocator, the document-wide security accumulator, and collected
// warnings. A fresh state is constructed for every generation call so
// nothing leaks across documents.
type buildState struct {
	doc      *spec.Document
	opts     Options
	version  spec.Version
	types    TypeMapper
	names    *nameAllocator
	security *securityAccumulator
	warnings []Warning
}

func newBuildState(doc *spec.Document, opts Options) *buildState {
	types := opts.Types
	if types == nil {
		types = typemap.TypeScript{}
	}
	return &buildState{
		doc:      doc,
		opts:     opts,
		version:  doc.DetectVersion(),
		types:    types,
		names:    newNameAllocator(),
		security: &securityAccumulator{},
	}
}

func (st *buildState) warnf(code spec.ErrorCode, format string, args ...any) {
	st.warnings = append(st.warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// newViewModel seeds the aggregate with document metadata and option
// pass-throughs.
func (st *buildState) newViewModel(domain string) *ViewModel {
	vm := &ViewModel{
		ClassName:  st.opts.ClassName,
		ModuleName: st.opts.ModuleName,
		Domain:     domain,
		IsES6:      st.opts.IsES6,
		IsNode:     st.opts.IsNode,
	}
	if st.doc.Info != nil {
		vm.Description = st.doc.Info.Description
	}
	return vm
}

// finalize folds the accumulated per-call state into the view model.
func (st *buildState) finalize(vm *ViewModel) *ViewModel {
	vm.IsSecureToken = st.security.token
	vm.IsSecureAPIKey = st.security.apiKey
	vm.IsSecureBasic = st.security.basic
	vm.IsSecure = vm.IsSecureToken || vm.IsSecureAPIKey || vm.IsSecureBasic
	vm.Warnings = st.warnings
	return vm
}

// newMethod allocates the method name and fills the verb-derived fields
// shared by all three builders.
func (st *buildState) newMethod(operationID, verb, path string) Method {
	name := st.names.allocate(methodNameFor(operationID, verb, path))
	upper := upperVerb(verb)
	return Method{
		Name:   name,
		Verb:   upper,
		Path:   path,
		IsGET:  upper == "GET",
		IsPOST: upper == "POST",
	}
}

// classifyAll resolves and classifies a raw parameter list in declared
// order. A broken reference aborts the whole build.
func (st *buildState) classifyAll(raw []*spec.Parameter) ([]Parameter, error) {
	var out []Parameter
	for _, rp := range raw {
		resolved, err := resolveParameter(st.doc, rp)
		if err != nil {
			return nil, err
		}
		p, ok := st.classify(resolved)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// finishMethod computes the derived flags once parameters and headers are
// in place.
func (st *buildState) finishMethod(m *Method) {
	allOptional := true
	for _, p := range m.Parameters {
		switch p.Location {
		case InBody:
			m.HasBody = true
		case InForm:
			m.HasBody = true
			m.IsFormMethod = true
		}
		// Required path parameters are supplied structurally and do not
		// block an empty-by-default parameter object.
		if p.Required && p.Location != InPath {
			allOptional = false
		}
	}
	m.AllParametersOptional = allOptional
	m.HasExtraHeader = len(m.Headers) > 0
	markLast(m.Responses)
}

// applySecurity sets the method flags and promotes the document-wide ones.
func (st *buildState) applySecurity(m *Method, flags securityFlags) {
	m.IsSecureToken = flags.token
	m.IsSecureAPIKey = flags.apiKey
	m.IsSecureBasic = flags.basic
	m.IsSecure = flags.token || flags.apiKey || flags.basic
	st.security.record(flags)
}

// destinationFor returns the lower-cased first tag when multi-file output
// is requested.
func (st *buildState) destinationFor(tags []string) string {
	if !st.opts.Multiple || len(tags) == 0 {
		return ""
	}
	return lowerFirstTag(tags[0])
}

// buildDefinitions flattens a schema table into Definition entries, sorted
// by name for deterministic output.
func (st *buildState) buildDefinitions(table map[string]*openapi3.SchemaRef) []Definition {
	if len(table) == 0 {
		return nil
	}
	out := make([]Definition, 0, len(table))
	for _, name := range sortedKeys(table) {
		ref := table[name]
		def := Definition{Name: name, Type: st.types.MapSchema(ref, st.doc)}
		if ref != nil && ref.Value != nil {
			def.Description = ref.Value.Description
		}
		out = append(out, def)
	}
	return out
}

func markLast(responses []Response) {
	for i := range responses {
		responses[i].Last = i == len(responses)-1
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
