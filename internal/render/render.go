// Package render turns a view model into client source text. The view model
// is target-independent; this package adds the per-target derived fields
// (grouped parameters, formatted response lines) and executes the embedded
// template for the selected dialect.
package render

import (
	"fmt"
	"strings"

	"github.com/apiformats/clientgen/internal/view"
)

// Target selects the rendered dialect.
type Target string

const (
	TargetTypeScript Target = "typescript"
	TargetNode       Target = "node"
)

// ParseTarget validates a user-supplied target name.
func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(s))) {
	case TargetTypeScript:
		return TargetTypeScript, nil
	case TargetNode:
		return TargetNode, nil
	default:
		return "", fmt.Errorf("unknown target %q (supported: typescript, node)", s)
	}
}

// Extension is the file extension of the rendered output, dot included.
func (t Target) Extension() string {
	if t == TargetNode {
		return ".js"
	}
	return ".ts"
}

func (t Target) templateName() string {
	if t == TargetNode {
		return "node.js.tmpl"
	}
	return "typescript.ts.tmpl"
}

// Method wraps a view method with the render-stage fields the templates
// consume: parameters grouped by location and preformatted response lines.
type Method struct {
	view.Method

	PathParameters   []view.Parameter
	QueryParameters  []view.Parameter
	HeaderParameters []view.Parameter
	BodyParameters   []view.Parameter
	FormParameters   []view.Parameter

	// ResponseLines are the doc-comment lines describing successful
	// responses, one per (status, content type) descriptor.
	ResponseLines []string
}

// Model is the template execution root.
type Model struct {
	*view.ViewModel
	Target  Target
	Methods []Method
}

// Render executes the target template over the prepared model.
func Render(vm *view.ViewModel, target Target) (string, error) {
	eng, err := newEngine()
	if err != nil {
		return "", err
	}
	return eng.execute(target.templateName(), Prepare(vm, target))
}

// Prepare runs the render-stage passes: parameter grouping by location and
// response-descriptor formatting. The view model itself is not mutated.
func Prepare(vm *view.ViewModel, target Target) *Model {
	model := &Model{ViewModel: vm, Target: target}
	model.Methods = make([]Method, 0, len(vm.Methods))
	for _, m := range vm.Methods {
		model.Methods = append(model.Methods, prepareMethod(m))
	}
	return model
}

func prepareMethod(m view.Method) Method {
	out := Method{Method: m}
	for _, p := range m.Parameters {
		switch p.Location {
		case view.InPath:
			out.PathParameters = append(out.PathParameters, p)
		case view.InQuery:
			out.QueryParameters = append(out.QueryParameters, p)
		case view.InHeader:
			out.HeaderParameters = append(out.HeaderParameters, p)
		case view.InBody:
			out.BodyParameters = append(out.BodyParameters, p)
		case view.InForm:
			out.FormParameters = append(out.FormParameters, p)
		}
	}
	for _, r := range m.Responses {
		out.ResponseLines = append(out.ResponseLines, responseLine(r))
	}
	return out
}

// responseLine formats one response descriptor for the method doc comment.
func responseLine(r view.Response) string {
	typ := r.Type
	if typ == "" {
		typ = "any"
	}
	if r.ContentType == "" {
		return fmt.Sprintf("%s: %s", r.Code, typ)
	}
	return fmt.Sprintf("%s (%s): %s", r.Code, r.ContentType, typ)
}
