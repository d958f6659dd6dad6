package view

import (
	"strconv"
	"strings"
	"unicode"
)

// nameAllocator hands out unique method names within one generation call.
// It is never shared between calls: each builder constructs a fresh one.
type nameAllocator struct {
	used map[string]struct{}
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]struct{})}
}

// allocate records and returns the first unused candidate: the name itself,
// then name_1, name_2, and so on.
func (a *nameAllocator) allocate(name string) string {
	if _, taken := a.used[name]; !taken {
		a.used[name] = struct{}{}
		return name
	}
	for i := 1; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if _, taken := a.used[candidate]; !taken {
			a.used[candidate] = struct{}{}
			return candidate
		}
	}
}

// methodNameFor derives the method name from an explicit operation id when
// present, otherwise from the verb and path.
func methodNameFor(operationID, verb, path string) string {
	if operationID != "" {
		return sanitizeIdentifier(operationID)
	}
	return nameFromVerbAndPath(verb, path)
}

// sanitizeIdentifier replaces the characters an operation id may carry that
// are disallowed in identifiers. A leading digit gets an underscore prefix
// so the result stays syntactically valid.
func sanitizeIdentifier(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r == '.' || r == '-' || r == '{' || r == '}' || unicode.IsSpace(r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// nameFromVerbAndPath derives a method name from the verb and path:
// GET /users/{id} becomes getUsersById. Path-parameter segments are
// rewritten as by<Name> before camel-casing.
func nameFromVerbAndPath(verb, path string) string {
	verb = strings.ToLower(verb)
	if path == "" || path == "/" {
		return verb
	}
	path = strings.TrimSuffix(path, "/")
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, seg := range segments {
		if len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			segments[i] = "by" + upperFirst(seg[1:len(seg)-1])
		}
	}
	joined := camelCase(strings.Join(segments, "-"))
	return verb + upperFirst(joined)
}

// camelCase joins words split on separators and case boundaries, lowering
// the first word and capitalizing the rest. Unlike Go-style naming helpers
// it never uppercases initialisms: byId must stay byId.
func camelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i == 0 {
			b.WriteString(w)
		} else {
			b.WriteString(upperFirst(w))
		}
	}
	return b.String()
}

// splitWords breaks a string on non-alphanumeric runes and lower-to-upper
// case boundaries.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	prev := rune(0)
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			prev = r
			continue
		}
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			flush()
		}
		current.WriteRune(r)
		prev = r
	}
	flush()
	return words
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func upperVerb(verb string) string {
	return strings.ToUpper(verb)
}

func lowerFirstTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
