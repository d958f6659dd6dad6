package spec

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func specErrorCode(t *testing.T, err error) ErrorCode {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected structured error, got %T: %v", err, err)
	}
	return se.Code
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	content := `{"swagger": "2.0", "info": {"title": "Test"}, "paths": {}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.DetectVersion() != VersionSwagger2 {
		t.Fatalf("version = %v, want %v", doc.DetectVersion(), VersionSwagger2)
	}
	if doc.Info == nil || doc.Info.Title != "Test" {
		t.Fatalf("info mismatch: %+v", doc.Info)
	}
}

func TestLoadYAMLInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	content := `
swagger: "2.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses: {}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	item := doc.Paths["/pets"]
	if item == nil {
		t.Fatalf("missing /pets path item")
	}
	op := item.Operations["get"]
	if op == nil || op.OperationID != "listPets" {
		t.Fatalf("operation mismatch: %+v", item.Operations)
	}
}

func TestLoadEmptyInput(t *testing.T) {
	_, err := Load(context.Background(), "  ")
	if code := specErrorCode(t, err); code != InputError {
		t.Fatalf("code = %v, want %v", code, InputError)
	}
}

func TestLoadRejectsNonHTTPScheme(t *testing.T) {
	_, err := Load(context.Background(), "ftp://example.com/spec.yaml")
	if code := specErrorCode(t, err); code != InputError {
		t.Fatalf("code = %v, want %v", code, InputError)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	if code := specErrorCode(t, err); code != InputError {
		t.Fatalf("code = %v, want %v", code, InputError)
	}
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"openapi": "3.0.3", "paths": {}}`))
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.DetectVersion() != VersionOpenAPI3 {
		t.Fatalf("version = %v, want %v", doc.DetectVersion(), VersionOpenAPI3)
	}
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL)
	if code := specErrorCode(t, err); code != NetworkError {
		t.Fatalf("code = %v, want %v", code, NetworkError)
	}
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse(context.Background(), []byte("{not yaml: ["))
	if code := specErrorCode(t, err); code != ParseError {
		t.Fatalf("code = %v, want %v", code, ParseError)
	}
}

func TestParseValidationCatchesBadV3(t *testing.T) {
	// paths entries must be objects; validation rejects this, plain parsing
	// does not.
	raw := []byte(`{"openapi": "3.0.3", "info": {"title": "t", "version": "1"}, "paths": null}`)

	if _, err := Parse(context.Background(), raw); err != nil {
		t.Fatalf("parse without validation: %v", err)
	}

	_, err := Parse(context.Background(), raw, WithValidation(true))
	if code := specErrorCode(t, err); code != ValidationError {
		t.Fatalf("code = %v, want %v", code, ValidationError)
	}
}
