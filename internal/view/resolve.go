package view

import (
	"fmt"
	"strings"

	"github.com/apiformats/clientgen/internal/spec"
)

// Pointer prefixes for the shared-parameter tables. Resolution matches on
// these explicit prefixes instead of counting pointer segments, and rejects
// anything it cannot classify.
const (
	v2ParameterPrefix   = "#/parameters/"
	v3ParameterPrefix   = "#/components/parameters/"
	v3RequestBodyPrefix = "#/components/requestBodies/"
)

// resolveParameter follows a parameter's $ref pointer to its shared
// definition. A pointer that is missing from the backing table, or that
// matches no known table prefix, is a BrokenReference: returning an empty
// parameter instead would corrupt every later field derivation.
func resolveParameter(doc *spec.Document, p *spec.Parameter) (*spec.Parameter, error) {
	if p == nil {
		return nil, brokenRef("", "nil parameter")
	}
	if p.Ref == "" {
		return p, nil
	}
	switch {
	case strings.HasPrefix(p.Ref, v2ParameterPrefix):
		name := strings.TrimPrefix(p.Ref, v2ParameterPrefix)
		if target, ok := doc.Parameters[name]; ok && target != nil {
			return target, nil
		}
		return nil, brokenRef(p.Ref, "no shared parameter %q", name)
	case strings.HasPrefix(p.Ref, v3ParameterPrefix):
		name := strings.TrimPrefix(p.Ref, v3ParameterPrefix)
		if doc.Components != nil {
			if target, ok := doc.Components.Parameters[name]; ok && target != nil {
				return target, nil
			}
		}
		return nil, brokenRef(p.Ref, "no component parameter %q", name)
	default:
		return nil, brokenRef(p.Ref, "unclassifiable parameter pointer")
	}
}

// resolveRequestBody follows a request body's $ref against the 3.x
// components table.
func resolveRequestBody(doc *spec.Document, rb *spec.RequestBody) (*spec.RequestBody, error) {
	if rb == nil || rb.Ref == "" {
		return rb, nil
	}
	if !strings.HasPrefix(rb.Ref, v3RequestBodyPrefix) {
		return nil, brokenRef(rb.Ref, "unclassifiable request body pointer")
	}
	name := strings.TrimPrefix(rb.Ref, v3RequestBodyPrefix)
	if doc.Components != nil {
		if target, ok := doc.Components.RequestBodies[name]; ok && target != nil {
			return target, nil
		}
	}
	return nil, brokenRef(rb.Ref, "no component request body %q", name)
}

func brokenRef(pointer, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if pointer != "" {
		msg = fmt.Sprintf("broken reference %s: %s", pointer, msg)
	} else {
		msg = "broken reference: " + msg
	}
	return &spec.Error{Code: spec.BrokenReference, Message: msg, Pointer: pointer}
}
