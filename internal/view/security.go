package view

import (
	"strings"

	"github.com/apiformats/clientgen/internal/spec"
)

// securityFlags are the per-operation results of merging security
// requirements against the scheme table.
type securityFlags struct {
	token  bool
	apiKey bool
	basic  bool
}

// securityAccumulator tracks the document-wide flags. Promotion is
// monotonic within one generation call: once an operation needs a kind,
// the flag stays set so templates emit the shared credential handling.
type securityAccumulator struct {
	token  bool
	apiKey bool
	basic  bool
}

func (a *securityAccumulator) record(f securityFlags) {
	a.token = a.token || f.token
	a.apiKey = a.apiKey || f.apiKey
	a.basic = a.basic || f.basic
}

// mergeSecurity merges the document-level default requirements with the
// operation-level ones. Operation requirements fully replace the defaults
// when present (an explicit empty list therefore disables security for the
// operation). The merged set has OR semantics across entries; membership of
// any scheme of a kind sets that kind's flag.
func mergeSecurity(schemes map[string]*spec.SecurityScheme, docReqs spec.SecurityRequirements, opReqs *spec.SecurityRequirements) securityFlags {
	var flags securityFlags
	if len(schemes) == 0 {
		return flags
	}
	reqs := docReqs
	if opReqs != nil {
		reqs = *opReqs
	}
	for _, req := range reqs {
		for name := range req {
			scheme, ok := schemes[name]
			if !ok || scheme == nil {
				continue
			}
			switch schemeKind(scheme) {
			case "token":
				flags.token = true
			case "apiKey":
				flags.apiKey = true
			case "basic":
				flags.basic = true
			}
		}
	}
	return flags
}

// schemeKind folds the per-version scheme vocabulary into the three kinds
// the view surfaces. OpenAPI 3.x spells basic auth as type http with
// scheme basic, and bearer schemes behave like tokens.
func schemeKind(s *spec.SecurityScheme) string {
	switch strings.ToLower(s.Type) {
	case "oauth2":
		return "token"
	case "apikey":
		return "apiKey"
	case "basic", "basicauth":
		return "basic"
	case "http":
		switch strings.ToLower(s.Scheme) {
		case "basic":
			return "basic"
		case "bearer":
			return "token"
		}
	}
	return ""
}

// legacyRequirements adapts a Swagger 1.x operation's authorizations map
// into requirement form so the merger treats all versions alike.
func legacyRequirements(auth map[string][]any) *spec.SecurityRequirements {
	if auth == nil {
		return nil
	}
	req := make(spec.SecurityRequirement, len(auth))
	for name := range auth {
		req[name] = nil
	}
	reqs := spec.SecurityRequirements{req}
	return &reqs
}
