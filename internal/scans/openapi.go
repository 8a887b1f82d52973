package scans

import "github.com/JaimeStill/docmatrix/pkg/openapi"

type spec struct {
	Scan    *openapi.Operation
	Matches *openapi.Operation
	Export  *openapi.Operation
	History *openapi.Operation
}

var thresholdParam = openapi.QueryParam("threshold", "number", "Minimum similarity score, 0 to 100 (default 70)", false)

var Spec = spec{
	Scan: &openapi.Operation{
		Summary:     "Scan document",
		Description: "Compare a document against every document the requester can see. Costs one credit unless the requester is an admin.",
		RequestBody: openapi.RequestBodyJSON("ScanCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Scan completed", "ScanResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Matches: &openapi.Operation{
		Summary:     "Previous scan results",
		Description: "Recorded matches for a document at or above the threshold. Does not rescore.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("documentId", "Source document ID"),
			thresholdParam,
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recorded matches", "ResultResponse"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export scan results",
		Description: "Recorded matches rendered as a plain-text attachment, one block per matched document.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("documentId", "Source document ID"),
			thresholdParam,
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Export file",
				Content: map[string]*openapi.MediaType{
					"text/plain": {Schema: &openapi.Schema{Type: "string"}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	History: &openapi.Operation{
		Summary:     "Scan history",
		Description: "Every recorded comparison for a document whose matched document is still visible.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("documentId", "Source document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Scan records",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("ScanRecord")}},
				},
			},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	algorithm := &openapi.Schema{Type: "string", Enum: []string{"embedding", "levenshtein"}}
	score := &openapi.Schema{Type: "number", Minimum: openapi.Float(0), Maximum: openapi.Float(100)}

	return map[string]*openapi.Schema{
		"ScanCommand": {
			Type:     "object",
			Required: []string{"document_id"},
			Properties: map[string]*openapi.Schema{
				"document_id": {Type: "integer", Format: "int64"},
				"threshold":   {Type: "number", Minimum: openapi.Float(0), Maximum: openapi.Float(100), Description: "Defaults to 70"},
			},
		},
		"ScanMatch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"documentId":      {Type: "integer", Format: "int64"},
				"title":           {Type: "string"},
				"similarityScore": score,
				"isUserDocument":  {Type: "boolean"},
				"content":         {Type: "string"},
				"algorithm":       algorithm,
			},
		},
		"ScanResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"sourceDocumentId":    {Type: "integer", Format: "int64"},
				"sourceDocumentTitle": {Type: "string"},
				"scannedThreshold":    score,
				"matches":             {Type: "array", Items: openapi.SchemaRef("ScanMatch")},
				"scanDate":            {Type: "string", Format: "date-time"},
				"algorithm":           algorithm,
				"persistFailures":     {Type: "integer", Description: "Matches that could not be recorded"},
			},
		},
		"ScanResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string"},
				"scan":    openapi.SchemaRef("ScanResult"),
			},
		},
		"ResultResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"scan": openapi.SchemaRef("ScanResult"),
			},
		},
		"ScanRecord": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                  {Type: "integer", Format: "int64"},
				"user_id":             {Type: "string", Format: "uuid"},
				"source_document_id":  {Type: "integer", Format: "int64"},
				"matched_document_id": {Type: "integer", Format: "int64"},
				"similarity_score":    score,
				"algorithm":           algorithm,
				"scan_date":           {Type: "string", Format: "date-time"},
			},
		},
	}
}
