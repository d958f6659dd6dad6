package spec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	invyaml "github.com/invopop/yaml"
	"gopkg.in/yaml.v3"
)

// Settings configures loader behavior.
type Settings struct {
	// HTTPTimeout bounds the fetch of a remote document.
	HTTPTimeout time.Duration
	// Validate runs kin-openapi's structural validation over OpenAPI 3.x
	// inputs. Off by default: the pipeline itself does not require a
	// grammatically perfect document.
	Validate bool
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{HTTPTimeout: 10 * time.Second}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithValidation(v bool) Option           { return func(s *Settings) { s.Validate = v } }

// Load reads a document from a filesystem path or an http/https URL and
// parses it. file:// URLs are rejected; use a plain path instead.
func Load(ctx context.Context, input string, opts ...Option) (*Document, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &Error{Code: InputError, Message: "spec: input is empty"}
	}

	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	u, uerr := url.Parse(input)
	isURL := uerr == nil && u.Scheme != "" && u.Host != ""

	var raw []byte
	location := input
	if isURL {
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return nil, &Error{Code: InputError, Message: fmt.Sprintf("spec: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
		}
		data, err := fetch(ctx, input, settings.HTTPTimeout)
		if err != nil {
			return nil, &Error{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		raw = data
	} else {
		abs, err := filepath.Abs(input)
		if err != nil {
			return nil, &Error{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: input, Cause: err}
		}
		location = abs
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, &Error{Code: InputError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
		}
		raw = data
	}

	return parse(ctx, raw, location, settings)
}

// Parse decodes an in-memory document (JSON or YAML).
func Parse(ctx context.Context, data []byte, opts ...Option) (*Document, error) {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	return parse(ctx, data, "", settings)
}

func parse(ctx context.Context, data []byte, location string, settings Settings) (*Document, error) {
	// Cheap well-formedness probe before the typed decode, so syntax
	// errors surface with a parse message rather than a field mismatch.
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, &Error{Code: ParseError, Message: fmt.Sprintf("parse document: %v", err), Location: location, Cause: err}
	}

	var doc Document
	// invopop/yaml converts via JSON, so json tags and the custom
	// PathItem/SchemaRef unmarshalers apply to YAML inputs too.
	if err := invyaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Code: ParseError, Message: fmt.Sprintf("decode document: %v", err), Location: location, Cause: err}
	}

	if settings.Validate && doc.DetectVersion() == VersionOpenAPI3 {
		if err := validateV3(ctx, data); err != nil {
			return nil, &Error{Code: ValidationError, Message: err.Error(), Location: location, Cause: err}
		}
	}

	return &doc, nil
}

// validateV3 runs the kin-openapi loader and validator over a 3.x input.
// Best effort: external refs are not followed.
func validateV3(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	t, err := loader.LoadFromData(data)
	if err != nil {
		return err
	}
	return t.Validate(ctx)
}

func fetch(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}
