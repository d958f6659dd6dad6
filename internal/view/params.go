package view

import (
	"encoding/json"
	"strings"

	"github.com/apiformats/clientgen/internal/spec"
)

// classify turns a resolved raw parameter node into a view parameter. It
// returns ok=false when the parameter is dropped: excluded from bindings,
// proxy-injected on a non-server target, or carrying a location the
// transport model does not know. Each step is independent and idempotent.
func (st *buildState) classify(raw *spec.Parameter) (Parameter, bool) {
	if raw.ExcludeFromBindings {
		return Parameter{}, false
	}
	if raw.ProxyHeader != "" && !st.opts.IsNode {
		return Parameter{}, false
	}

	location, ok := classifyLocation(raw, st.version)
	if !ok {
		return Parameter{}, false
	}

	p := Parameter{
		Name:          raw.Name,
		CamelCaseName: camelCase(raw.Name),
		Location:      location,
		Required:      raw.Required,
		Description:   raw.Description,
	}

	if enum := declaredEnum(raw); len(enum) == 1 {
		p.IsSingleton = true
		p.Singleton = enum[0]
	}

	if location == InQuery && raw.NamePattern != "" {
		p.IsPatternType = true
		p.Pattern = raw.NamePattern
	}

	if raw.Default != nil {
		p.HasDefault = true
		p.Default = raw.Default
		if serialized, err := json.Marshal(raw.Default); err == nil {
			p.DefaultJSON = string(serialized)
		}
	}

	p.Type = st.types.MapParameter(raw, st.doc)

	if !p.Required {
		p.Cardinality = "?"
	}

	return p, true
}

// classifyLocation reads the version-appropriate discriminator field:
// `in` for 2.0/3.x, `paramType` for legacy.
func classifyLocation(raw *spec.Parameter, version spec.Version) (Location, bool) {
	field := raw.In
	if version == spec.VersionLegacy {
		field = raw.ParamType
	}
	switch strings.ToLower(field) {
	case "path":
		return InPath, true
	case "query":
		return InQuery, true
	case "header":
		return InHeader, true
	case "body":
		return InBody, true
	case "form", "formdata":
		return InForm, true
	default:
		return "", false
	}
}

// declaredEnum finds the parameter's enum, whether declared inline (2.0,
// legacy) or on the schema node (3.x).
func declaredEnum(raw *spec.Parameter) []any {
	if len(raw.Enum) > 0 {
		return raw.Enum
	}
	if raw.Schema != nil && raw.Schema.Value != nil {
		return raw.Schema.Value.Enum
	}
	return nil
}
