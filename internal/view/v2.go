package view

import (
	"strings"

	"github.com/apiformats/clientgen/internal/spec"
)

// v2Builder walks a Swagger 2.0 document.
type v2Builder struct{}

// successStatuses are the response codes surfaced as response descriptors.
var successStatuses = []string{"200", "201"}

func (v2Builder) BuildView(doc *spec.Document, opts Options) (*ViewModel, error) {
	st := newBuildState(doc, opts)
	vm := st.newViewModel(v2Domain(doc))

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
			st.applySecurity(&m, mergeSecurity(doc.SecurityDefinitions, doc.Security, op.Security))

			// Operation-specific parameters first, then the path-level
			// shared ones, in declared order.
			raw := make([]*spec.Parameter, 0, len(op.Parameters)+len(item.Parameters))
			raw = append(raw, op.Parameters...)
			raw = append(raw, item.Parameters...)
			params, err := st.classifyAll(raw)
			if err != nil {
				return nil, err
			}
			m.Parameters = params

			produces := fallback(op.Produces, doc.Produces)
			consumes := fallback(op.Consumes, doc.Consumes)
			if len(produces) > 0 {
				m.Headers = append(m.Headers, Header{Name: "Accept", Value: strings.Join(produces, ", ")})
			}
			if len(consumes) > 0 {
				m.Headers = append(m.Headers, Header{Name: "Content-Type", Value: strings.Join(consumes, ", ")})
			}

			m.Responses = st.v2Responses(op, produces)
			st.finishMethod(&m)
			vm.Methods = append(vm.Methods, m)
		}
	}

	vm.Definitions = st.buildDefinitions(doc.Definitions)
	return st.finalize(vm), nil
}

// v2Responses emits one descriptor per declared content type for each
// successful response. 2.0 responses carry a single schema; the content
// types come from the produces list.
func (st *buildState) v2Responses(op *spec.Operation, produces []string) []Response {
	var out []Response
	for _, code := range successStatuses {
		resp := op.Responses[code]
		if resp == nil || resp.Schema == nil {
			continue
		}
		typ := st.types.MapSchema(resp.Schema, st.doc)
		if len(produces) == 0 {
			out = append(out, Response{Code: code, Type: typ})
			continue
		}
		for _, ct := range produces {
			out = append(out, Response{Code: code, ContentType: ct, Type: typ})
		}
	}
	return out
}

// v2Domain computes scheme://host/basePath, empty when any part is absent.
func v2Domain(doc *spec.Document) string {
	if len(doc.Schemes) == 0 || doc.Host == "" || doc.BasePath == "" {
		return ""
	}
	return doc.Schemes[0] + "://" + doc.Host + strings.TrimRight(doc.BasePath, "/")
}

// fallback returns the operation-level list when present, otherwise the
// document-level one.
func fallback(primary, secondary []string) []string {
	if len(primary) > 0 {
		return primary
	}
	return secondary
}
