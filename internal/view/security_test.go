package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apiformats/clientgen/internal/spec"
)

func testSchemes() map[string]*spec.SecurityScheme {
	return map[string]*spec.SecurityScheme{
		"oauth":      {Type: "oauth2"},
		"key":        {Type: "apiKey", Name: "X-Api-Key", In: "header"},
		"httpBasic":  {Type: "http", Scheme: "basic"},
		"httpBearer": {Type: "http", Scheme: "bearer"},
		"legacy":     {Type: "basicAuth"},
	}
}

func TestMergeSecurityUsesDocumentDefault(t *testing.T) {
	docReqs := spec.SecurityRequirements{{"oauth": {"read"}}}
	flags := mergeSecurity(testSchemes(), docReqs, nil)
	require.True(t, flags.token)
	require.False(t, flags.apiKey)
	require.False(t, flags.basic)
}

func TestMergeSecurityOperationReplacesDefault(t *testing.T) {
	docReqs := spec.SecurityRequirements{{"oauth": nil}}
	opReqs := spec.SecurityRequirements{{"key": nil}}
	flags := mergeSecurity(testSchemes(), docReqs, &opReqs)
	require.False(t, flags.token, "operation requirements replace, not extend")
	require.True(t, flags.apiKey)
}

func TestMergeSecurityEmptyOperationListDisables(t *testing.T) {
	docReqs := spec.SecurityRequirements{{"oauth": nil}}
	opReqs := spec.SecurityRequirements{}
	flags := mergeSecurity(testSchemes(), docReqs, &opReqs)
	require.Equal(t, securityFlags{}, flags)
}

func TestMergeSecurityHTTPSchemes(t *testing.T) {
	flags := mergeSecurity(testSchemes(), spec.SecurityRequirements{{"httpBasic": nil}}, nil)
	require.True(t, flags.basic)

	flags = mergeSecurity(testSchemes(), spec.SecurityRequirements{{"httpBearer": nil}}, nil)
	require.True(t, flags.token, "bearer schemes behave like tokens")

	flags = mergeSecurity(testSchemes(), spec.SecurityRequirements{{"legacy": nil}}, nil)
	require.True(t, flags.basic)
}

func TestMergeSecurityUnknownSchemeIgnored(t *testing.T) {
	flags := mergeSecurity(testSchemes(), spec.SecurityRequirements{{"missing": nil}}, nil)
	require.Equal(t, securityFlags{}, flags)
}

func TestAccumulatorPromotionIsMonotonic(t *testing.T) {
	acc := &securityAccumulator{}
	acc.record(securityFlags{token: true})
	acc.record(securityFlags{})
	acc.record(securityFlags{basic: true})
	require.True(t, acc.token, "a later unsecured operation must not clear the flag")
	require.True(t, acc.basic)
	require.False(t, acc.apiKey)
}

func TestLegacyRequirements(t *testing.T) {
	require.Nil(t, legacyRequirements(nil))

	reqs := legacyRequirements(map[string][]any{"oauth2": {}})
	require.NotNil(t, reqs)
	require.Len(t, *reqs, 1)
	_, ok := (*reqs)[0]["oauth2"]
	require.True(t, ok)
}
