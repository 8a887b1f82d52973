package documents

import "github.com/JaimeStill/docmatrix/pkg/openapi"

type spec struct {
	List          *openapi.Operation
	Find          *openapi.Operation
	Upload        *openapi.Operation
	SetVisibility *openapi.Operation
	Delete        *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List documents",
		Description: "List the requester's documents, or every accessible document with scope=accessible",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Filter by title (contains)", false),
			openapi.QueryParam("sort", "string", "Comma separated fields, '-' prefix for descending", false),
			openapi.QueryParam("scope", "string", "own (default) or accessible", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Documents list", "DocumentPageResult"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find document",
		Description: "Find a document by ID. Private documents are visible to their owner and to admins.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document details", "Document"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload document",
		Description: "Upload a UTF-8 text file. Documents are private unless is_private=false.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file":       {Type: "string", Format: "binary", Description: "Plain-text file"},
							"title":      {Type: "string", Description: "Optional title (defaults to filename)"},
							"is_private": {Type: "boolean", Description: "Defaults to true"},
						},
						Required: []string{"file"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Document uploaded", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "File too large"},
		},
	},
	SetVisibility: &openapi.Operation{
		Summary:     "Set document visibility",
		Description: "Make a document private or public. Owner only.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		RequestBody: openapi.RequestBodyJSON("VisibilityCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document updated", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete document",
		Description: "Delete a document, its scan history, and its stored file. Owner or admin.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "integer", Format: "int64"},
				"owner_id":    {Type: "string", Format: "uuid"},
				"title":       {Type: "string"},
				"content":     {Type: "string", Description: "Omitted in list views"},
				"filename":    {Type: "string", Description: "Original filename"},
				"storage_key": {Type: "string", Description: "Storage location key"},
				"size_bytes":  {Type: "integer", Format: "int64"},
				"is_private":  {Type: "boolean"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"VisibilityCommand": {
			Type:     "object",
			Required: []string{"is_private"},
			Properties: map[string]*openapi.Schema{
				"is_private": {Type: "boolean"},
			},
		},
		"DocumentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Document")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
