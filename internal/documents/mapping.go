package documents

import (
	"github.com/JaimeStill/docmatrix/pkg/query"
	"github.com/JaimeStill/docmatrix/pkg/repository"
)

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("title", "Title").
	Project("content", "Content").
	Project("filename", "Filename").
	Project("storage_key", "StorageKey").
	Project("size_bytes", "SizeBytes").
	Project("is_private", "IsPrivate").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// summaryProjection omits content for list views.
var summaryProjection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("title", "Title").
	Project("filename", "Filename").
	Project("storage_key", "StorageKey").
	Project("size_bytes", "SizeBytes").
	Project("is_private", "IsPrivate").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var (
	defaultSort = query.SortField{Field: "CreatedAt", Descending: true}
	idSort      = query.SortField{Field: "ID"}
)

const returning = `RETURNING id, owner_id, title, content, filename, storage_key, size_bytes, is_private, created_at, updated_at`

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&d.Content,
		&d.Filename,
		&d.StorageKey,
		&d.SizeBytes,
		&d.IsPrivate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func scanSummary(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&d.Filename,
		&d.StorageKey,
		&d.SizeBytes,
		&d.IsPrivate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
