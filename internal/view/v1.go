package view

import (
	"strings"

	"github.com/apiformats/clientgen/internal/spec"
)

// v1Builder walks a legacy Swagger 1.x document. The apis table is a slice,
// so method order follows the document directly.
type v1Builder struct{}

func (v1Builder) BuildView(doc *spec.Document, opts Options) (*ViewModel, error) {
	st := newBuildState(doc, opts)
	vm := st.newViewModel(strings.TrimRight(doc.BasePath, "/"))

	for _, api := range doc.APIs {
		if api == nil {
			continue
		}
		for _, op := range api.Operations {
			if op == nil {
				continue
			}
			verb := strings.ToLower(op.Method)
			// The legacy format has always skipped OPTIONS outright, on
			// top of the shared verb whitelist. Preserved as-is; the
			// other builders do not share this rule.
			if verb == "options" {
				continue
			}
			if !methodVerbSet[verb] {
				continue
			}

			m := st.newMethod(op.Nickname, verb, api.Path)
			m.Summary = op.Summary
			m.Description = op.Notes
			st.applySecurity(&m, mergeSecurity(doc.Authorizations, nil, legacyRequirements(op.Authorizations)))

			params, err := st.classifyAll(op.Parameters)
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

			// 1.x operations declare a bare response type rather than a
			// response map; response descriptors only exist for 2.0/3.x.
			st.finishMethod(&m)
			vm.Methods = append(vm.Methods, m)
		}
	}

	vm.Definitions = st.buildDefinitions(doc.Models)
	return st.finalize(vm), nil
}
