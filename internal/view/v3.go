package view

import (
	"strings"

	"github.com/apiformats/clientgen/internal/spec"
)

// v3Builder walks an OpenAPI 3.x document.
type v3Builder struct{}

func (v3Builder) BuildView(doc *spec.Document, opts Options) (*ViewModel, error) {
	st := newBuildState(doc, opts)
	vm := st.newViewModel(v3Domain(doc))

	var schemes map[string]*spec.SecurityScheme
	if doc.Components != nil {
		schemes = doc.Components.SecuritySchemes
	}

	for _, path := range sortedKeys(doc.Paths) {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, verb := range methodVerbs {
			op := item.Operations[verb]
			if op == nil {
				continue
			}

			m := st.newMethod(op.OperationID, verb, path)
			m.Summary = op.Summary
			m.Description = op.Description
			m.Destination = st.destinationFor(op.Tags)
			st.applySecurity(&m, mergeSecurity(schemes, doc.Security, op.Security))

			raw := make([]*spec.Parameter, 0, len(op.Parameters)+len(item.Parameters))
			raw = append(raw, op.Parameters...)
			raw = append(raw, item.Parameters...)
			params, err := st.classifyAll(raw)
			if err != nil {
				return nil, err
			}
			m.Parameters = params

			if accept := v3AcceptTypes(op); len(accept) > 0 {
				m.Headers = append(m.Headers, Header{Name: "Accept", Value: strings.Join(accept, ", ")})
			}

			rb, err := resolveRequestBody(doc, op.RequestBody)
			if err != nil {
				return nil, err
			}
			if rb != nil && len(rb.Content) > 0 {
				contentTypes := sortedKeys(rb.Content)
				ct := contentTypes[0]
				if len(contentTypes) > 1 {
					st.warnf(spec.AmbiguousContentType,
						"%s %s: request body declares %d content types; using %s",
						m.Verb, path, len(contentTypes), ct)
				}
				pseudo := &spec.Parameter{
					Name:        st.bodyParameterName(rb),
					In:          bodyLocation(ct),
					Required:    rb.Required,
					Description: rb.Description,
				}
				if media := rb.Content[ct]; media != nil {
					pseudo.Schema = media.Schema
				}
				if p, ok := st.classify(pseudo); ok {
					m.Parameters = append(m.Parameters, p)
				}
				m.Headers = append(m.Headers, Header{Name: "Content-Type", Value: ct})
			}

			m.Responses = st.v3Responses(op)
			st.finishMethod(&m)
			vm.Methods = append(vm.Methods, m)
		}
	}

	if doc.Components != nil {
		vm.Definitions = st.buildDefinitions(doc.Components.Schemas)
	}
	return st.finalize(vm), nil
}

// bodyParameterName picks the synthesized pseudo-parameter's name: caller
// override, then the document's extension field, then the fixed fallback.
func (st *buildState) bodyParameterName(rb *spec.RequestBody) string {
	if st.opts.RequestBodyParameterName != "" {
		return st.opts.RequestBodyParameterName
	}
	if rb.BodyName != "" {
		return rb.BodyName
	}
	return "body"
}

// bodyLocation classifies a request body content type as a form or body
// pseudo-parameter location.
func bodyLocation(contentType string) string {
	if contentType == "application/x-www-form-urlencoded" || strings.HasPrefix(contentType, "multipart/") {
		return "formData"
	}
	return "body"
}

// v3AcceptTypes collects the distinct response content types of the
// successful responses, sorted.
func v3AcceptTypes(op *spec.Operation) []string {
	set := make(map[string]struct{})
	for _, code := range successStatuses {
		resp := op.Responses[code]
		if resp == nil {
			continue
		}
		for ct := range resp.Content {
			set[ct] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// v3Responses emits one descriptor per (status, content type) pair of the
// successful responses.
func (st *buildState) v3Responses(op *spec.Operation) []Response {
	var out []Response
	for _, code := range successStatuses {
		resp := op.Responses[code]
		if resp == nil {
			continue
		}
		for _, ct := range sortedKeys(resp.Content) {
			media := resp.Content[ct]
			var typ string
			if media != nil {
				typ = st.types.MapSchema(media.Schema, st.doc)
			}
			out = append(out, Response{Code: code, ContentType: ct, Type: typ})
		}
	}
	return out
}

// v3Domain uses the first server URL.
func v3Domain(doc *spec.Document) string {
	if len(doc.Servers) == 0 || doc.Servers[0] == nil {
		return ""
	}
	return strings.TrimRight(doc.Servers[0].URL, "/")
}
