package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// engine wraps the parsed template set shared by the render targets.
type engine struct {
	templates *template.Template
}

func newEngine() (*engine, error) {
	root := template.New("").Funcs(templateFuncs())
	err := fs.WalkDir(embedded, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := embedded.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading embedded template %s: %w", path, err)
		}
		name := strings.TrimPrefix(path, "templates/")
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing embedded template %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading embedded templates: %w", err)
	}
	return &engine{templates: root}, nil
}

func (e *engine) execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote": func(s string) string { return "'" + s + "'" },
		"upperFirst": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"join": strings.Join,
		// js renders a decoded YAML/JSON value as a JavaScript literal.
		"js": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", fmt.Errorf("rendering value as literal: %w", err)
			}
			return string(b), nil
		},
		"hasForm": func(methods []Method) bool {
			for _, m := range methods {
				if m.IsFormMethod {
					return true
				}
			}
			return false
		},
	}
}
