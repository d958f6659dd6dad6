package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apiformats/clientgen/internal/view"
)

func sampleViewModel() *view.ViewModel {
	return &view.ViewModel{
		ClassName:     "PetStore",
		Domain:        "https://petstore.example.com/v2",
		IsSecureToken: true,
		Definitions: []view.Definition{
			{Name: "Pet", Type: "object", Description: "A pet"},
		},
		Methods: []view.Method{
			{
				Name:    "getPetsById",
				Verb:    "GET",
				Path:    "/pets/{id}",
				Summary: "Find a pet",
				IsGET:   true,
				Headers: []view.Header{{Name: "Accept", Value: "application/json"}},
				Parameters: []view.Parameter{
					{Name: "id", CamelCaseName: "id", Location: view.InPath, Required: true, Type: "number"},
					{Name: "page-size", CamelCaseName: "pageSize", Location: view.InQuery, Type: "number", HasDefault: true, Default: float64(20), DefaultJSON: "20"},
					{Name: "format", CamelCaseName: "format", Location: view.InQuery, Type: "'json'", IsSingleton: true, Singleton: "json"},
				},
				Responses:             []view.Response{{Code: "200", ContentType: "application/json", Type: "Pet", Last: true}},
				HasExtraHeader:        true,
				AllParametersOptional: true,
			},
			{
				Name:   "createPet",
				Verb:   "POST",
				Path:   "/pets",
				IsPOST: true,
				Parameters: []view.Parameter{
					{Name: "body", CamelCaseName: "body", Location: view.InBody, Required: true, Type: "Pet", Cardinality: ""},
				},
				HasBody: true,
			},
		},
	}
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("TypeScript")
	require.NoError(t, err)
	require.Equal(t, TargetTypeScript, target)
	require.Equal(t, ".ts", target.Extension())

	target, err = ParseTarget("node")
	require.NoError(t, err)
	require.Equal(t, TargetNode, target)
	require.Equal(t, ".js", target.Extension())

	_, err = ParseTarget("python")
	require.Error(t, err)
}

func TestPrepareGroupsParametersByLocation(t *testing.T) {
	model := Prepare(sampleViewModel(), TargetTypeScript)
	require.Len(t, model.Methods, 2)

	get := model.Methods[0]
	require.Len(t, get.PathParameters, 1)
	require.Len(t, get.QueryParameters, 2)
	require.Empty(t, get.BodyParameters)
	require.Equal(t, []string{"200 (application/json): Pet"}, get.ResponseLines)

	create := model.Methods[1]
	require.Len(t, create.BodyParameters, 1)
}

func TestResponseLine(t *testing.T) {
	require.Equal(t, "200 (application/json): Pet", responseLine(view.Response{Code: "200", ContentType: "application/json", Type: "Pet"}))
	require.Equal(t, "201: Pet", responseLine(view.Response{Code: "201", Type: "Pet"}))
	require.Equal(t, "200: any", responseLine(view.Response{Code: "200"}))
}

func TestRenderTypeScript(t *testing.T) {
	out, err := Render(sampleViewModel(), TargetTypeScript)
	require.NoError(t, err)

	require.Contains(t, out, "export class PetStore {")
	require.Contains(t, out, "export type Pet = object;")
	require.Contains(t, out, "setToken(token: string): void")
	require.Contains(t, out, "getPetsById(parameters: {")
	require.Contains(t, out, "} = {}): Promise<Response>", "all-optional methods default the parameter object")
	require.Contains(t, out, "headers['Accept'] = 'application/json';")
	require.Contains(t, out, "path.replace('{' + 'id' + '}'")
	require.Contains(t, out, "query['page-size'] = parameters.pageSize;")
	require.Contains(t, out, `parameters.format = "json";`, "singleton values are inlined")
	require.Contains(t, out, "parameters.pageSize = 20;")
	require.Contains(t, out, "* Response 200 (application/json): Pet")
	require.Contains(t, out, "method: 'POST',")
	require.Contains(t, out, "body: body !== undefined ? JSON.stringify(body) : undefined,")
	require.NotContains(t, out, "setApiKey", "unused credential helpers are omitted")
	require.NotContains(t, out, "buildFormBody", "form helper only appears for form methods")
}

func TestRenderNodeExportStyles(t *testing.T) {
	vm := sampleViewModel()

	out, err := Render(vm, TargetNode)
	require.NoError(t, err)
	require.Contains(t, out, "class PetStore {")
	require.Contains(t, out, "module.exports = PetStore;")
	require.NotContains(t, out, "export default")

	vm.IsES6 = true
	out, err = Render(vm, TargetNode)
	require.NoError(t, err)
	require.Contains(t, out, "export default PetStore;")
	require.NotContains(t, out, "module.exports")
}

func TestRenderNodeFormMethod(t *testing.T) {
	vm := &view.ViewModel{
		ClassName: "Auth",
		Methods: []view.Method{
			{
				Name: "login", Verb: "POST", Path: "/login", IsPOST: true,
				Parameters: []view.Parameter{
					{Name: "username", CamelCaseName: "username", Location: view.InForm, Required: true, Type: "string"},
				},
				HasBody:      true,
				IsFormMethod: true,
			},
		},
	}
	out, err := Render(vm, TargetNode)
	require.NoError(t, err)
	require.Contains(t, out, "form['username'] = parameters.username;")
	require.Contains(t, out, "body: buildFormBody(form),")
	require.Contains(t, out, "function buildFormBody(form)")
}
