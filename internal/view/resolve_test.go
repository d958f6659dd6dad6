package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apiformats/clientgen/internal/spec"
)

func requireBrokenRef(t *testing.T, err error) *spec.Error {
	t.Helper()
	require.Error(t, err)
	var se *spec.Error
	require.True(t, errors.As(err, &se), "expected a structured error, got %T", err)
	require.Equal(t, spec.BrokenReference, se.Code)
	return se
}

func TestResolveParameterInlinePassesThrough(t *testing.T) {
	doc := &spec.Document{Swagger: "2.0"}
	p := &spec.Parameter{Name: "limit", In: "query"}
	resolved, err := resolveParameter(doc, p)
	require.NoError(t, err)
	require.Same(t, p, resolved)
}

func TestResolveParameterV2Table(t *testing.T) {
	doc := &spec.Document{
		Swagger: "2.0",
		Parameters: map[string]*spec.Parameter{
			"limitParam": {Name: "limit", In: "query", Type: "integer"},
		},
	}

	resolved, err := resolveParameter(doc, &spec.Parameter{Ref: "#/parameters/limitParam"})
	require.NoError(t, err)
	require.Equal(t, "limit", resolved.Name)

	err = func() error {
		_, err := resolveParameter(doc, &spec.Parameter{Ref: "#/parameters/missing"})
		return err
	}()
	se := requireBrokenRef(t, err)
	require.Equal(t, "#/parameters/missing", se.Pointer)
}

func TestResolveParameterV3Table(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Components: &spec.Components{
			Parameters: map[string]*spec.Parameter{
				"petId": {Name: "petId", In: "path", Required: true},
			},
		},
	}

	resolved, err := resolveParameter(doc, &spec.Parameter{Ref: "#/components/parameters/petId"})
	require.NoError(t, err)
	require.Equal(t, "petId", resolved.Name)

	_, err = resolveParameter(doc, &spec.Parameter{Ref: "#/components/parameters/missing"})
	requireBrokenRef(t, err)
}

func TestResolveParameterUnclassifiablePointer(t *testing.T) {
	doc := &spec.Document{Swagger: "2.0"}
	_, err := resolveParameter(doc, &spec.Parameter{Ref: "#/definitions/Pet"})
	se := requireBrokenRef(t, err)
	require.Equal(t, "#/definitions/Pet", se.Pointer)
}

func TestResolveRequestBody(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Components: &spec.Components{
			RequestBodies: map[string]*spec.RequestBody{
				"Pet": {Required: true},
			},
		},
	}

	rb, err := resolveRequestBody(doc, nil)
	require.NoError(t, err)
	require.Nil(t, rb)

	rb, err = resolveRequestBody(doc, &spec.RequestBody{Ref: "#/components/requestBodies/Pet"})
	require.NoError(t, err)
	require.True(t, rb.Required)

	_, err = resolveRequestBody(doc, &spec.RequestBody{Ref: "#/components/requestBodies/missing"})
	requireBrokenRef(t, err)

	_, err = resolveRequestBody(doc, &spec.RequestBody{Ref: "#/parameters/Pet"})
	requireBrokenRef(t, err)
}
