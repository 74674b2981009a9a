package api

import (
	"fmt"

	"github.com/gapline/gapline/internal/config"
	"github.com/gapline/gapline/pkg/openapi"
)

// buildSpec generates the OpenAPI document for the service.
func buildSpec(cfg *config.Config) (*openapi.Spec, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Step": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"number":        {Type: "integer", Example: 1},
				"description":   {Type: "string"},
				"approver_role": {Type: "string"},
				"approver_name": {Type: "string"},
				"is_automated":  {Type: "boolean"},
			},
			Required: []string{"number", "description"},
		},
		"Process": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                 {Type: "string", Format: "uuid"},
				"name":               {Type: "string"},
				"system":             {Type: "string"},
				"variant":            {Type: "string", Enum: []any{"as_is", "to_be"}},
				"standard_type":      {Type: "string", Enum: []any{"american", "japanese", "iso"}},
				"related_process_id": {Type: "string", Format: "uuid"},
				"steps":              {Type: "array", Items: &openapi.Schema{Ref: "#/components/schemas/Step"}},
			},
		},
		"Finding": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"finding_type":   {Type: "string"},
				"description":    {Type: "string"},
				"recommendation": {Type: "string"},
				"impact":         {Type: "string", Enum: []any{"Low", "Medium", "High"}},
				"effort":         {Type: "string", Enum: []any{"Low", "Medium", "High"}},
			},
		},
		"Analysis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"as_is_process_id": {Type: "string", Format: "uuid"},
				"to_be_process_id": {Type: "string", Format: "uuid"},
				"summary":          {Type: "string"},
				"findings":         {Type: "array", Items: &openapi.Schema{Ref: "#/components/schemas/Finding"}},
				"warnings":         {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"stage":        {Type: "string", Enum: []any{"extract", "analyze"}},
				"instructions": {Type: "string"},
				"active":       {Type: "boolean"},
			},
		},
	})

	addProcessPaths(spec)
	addAnalysisPaths(spec)
	addPromptPaths(spec)

	return spec, nil
}

func addProcessPaths(spec *openapi.Spec) {
	spec.Paths["/processes"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List processes",
			Tags:    []string{"processes"},
			Responses: map[int]*openapi.Response{
				200: jsonResponse("Paginated process list", &openapi.Schema{Ref: "#/components/schemas/Process"}),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a process from a JSON draft",
			Tags:    []string{"processes"},
			Responses: map[int]*openapi.Response{
				201: jsonResponse("Created process", &openapi.Schema{Ref: "#/components/schemas/Process"}),
				422: {Ref: "#/components/responses/BadRequest"},
			},
		},
	}

	spec.Paths["/processes/extract"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Extract a process from an uploaded document",
			Description: "Accepts a multipart form with a pdf, doc, or docx file plus variant metadata. The document is processed and discarded; only the structured snapshot is stored.",
			Tags:        []string{"processes"},
			Responses: map[int]*openapi.Response{
				201: jsonResponse("Extracted process with diagram and step statistics", &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"process": {Ref: "#/components/schemas/Process"},
						"diagram": {Type: "string", Description: "Mermaid flowchart source"},
						"stats":   {Type: "object", Description: "Derived step statistics"},
					},
				}),
				413: {Ref: "#/components/responses/BadRequest"},
				415: {Ref: "#/components/responses/BadRequest"},
				422: {Ref: "#/components/responses/BadRequest"},
			},
		},
	}

	spec.Paths["/processes/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a process with its steps",
			Tags:       []string{"processes"},
			Parameters: []*openapi.Parameter{idParam()},
			Responses: map[int]*openapi.Response{
				200: jsonResponse("Process", &openapi.Schema{Ref: "#/components/schemas/Process"}),
				404: {Ref: "#/components/responses/NotFound"},
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a process",
			Tags:       []string{"processes"},
			Parameters: []*openapi.Parameter{idParam()},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: {Ref: "#/components/responses/NotFound"},
			},
		},
	}

	for _, sub := range []string{"diagram", "stats", "versions"} {
		spec.Paths[fmt.Sprintf("/processes/{id}/%s", sub)] = &openapi.PathItem{
			Get: &openapi.Operation{
				Summary:    fmt.Sprintf("Get process %s", sub),
				Tags:       []string{"processes"},
				Parameters: []*openapi.Parameter{idParam()},
				Responses: map[int]*openapi.Response{
					200: {Description: "OK"},
					404: {Ref: "#/components/responses/NotFound"},
				},
			},
		}
	}
}

func addAnalysisPaths(spec *openapi.Spec) {
	spec.Paths["/analyses"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List gap analyses",
			Tags:    []string{"analyses"},
			Responses: map[int]*openapi.Response{
				200: jsonResponse("Paginated analysis list", &openapi.Schema{Ref: "#/components/schemas/Analysis"}),
			},
		},
	}

	spec.Paths["/analyses/compare"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Run a gap analysis",
			Description: "Compares a stored as_is process against a stored to_be process and persists the findings.",
			Tags:        []string{"analyses"},
			Responses: map[int]*openapi.Response{
				201: jsonResponse("Completed analysis", &openapi.Schema{Ref: "#/components/schemas/Analysis"}),
				404: {Ref: "#/components/responses/NotFound"},
				422: {Ref: "#/components/responses/BadRequest"},
				504: {Description: "Model call timed out"},
			},
		},
	}

	spec.Paths["/analyses/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get an analysis with its findings",
			Tags:       []string{"analyses"},
			Parameters: []*openapi.Parameter{idParam()},
			Responses: map[int]*openapi.Response{
				200: jsonResponse("Analysis", &openapi.Schema{Ref: "#/components/schemas/Analysis"}),
				404: {Ref: "#/components/responses/NotFound"},
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete an analysis",
			Tags:       []string{"analyses"},
			Parameters: []*openapi.Parameter{idParam()},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: {Ref: "#/components/responses/NotFound"},
			},
		},
	}
}

func addPromptPaths(spec *openapi.Spec) {
	spec.Paths["/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List prompt overrides",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				200: jsonResponse("Paginated prompt list", &openapi.Schema{Ref: "#/components/schemas/Prompt"}),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a prompt override",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				201: jsonResponse("Created prompt", &openapi.Schema{Ref: "#/components/schemas/Prompt"}),
				409: {Ref: "#/components/responses/Conflict"},
			},
		},
	}

	spec.Paths["/prompts/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a prompt override",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{idParam()},
			Responses: map[int]*openapi.Response{
				200: jsonResponse("Prompt", &openapi.Schema{Ref: "#/components/schemas/Prompt"}),
				404: {Ref: "#/components/responses/NotFound"},
			},
		},
	}
}

func idParam() *openapi.Parameter {
	return &openapi.Parameter{
		Name:     "id",
		In:       "path",
		Required: true,
		Schema:   &openapi.Schema{Type: "string", Format: "uuid"},
	}
}

func jsonResponse(desc string, schema *openapi.Schema) *openapi.Response {
	return &openapi.Response{
		Description: desc,
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: schema},
		},
	}
}
