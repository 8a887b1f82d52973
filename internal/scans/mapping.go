package scans

import (
	"github.com/JaimeStill/docmatrix/pkg/query"
	"github.com/JaimeStill/docmatrix/pkg/repository"
)

var projection = query.NewProjectionMap("public", "document_scans", "s").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("source_document_id", "SourceDocumentID").
	Project("matched_document_id", "MatchedDocumentID").
	Project("similarity_score", "SimilarityScore").
	Project("algorithm_used", "Algorithm").
	Project("scan_date", "ScanDate")

var byScore = []query.SortField{
	{Field: "SimilarityScore", Descending: true},
	{Field: "ID"},
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.UserID,
		&r.SourceDocumentID,
		&r.MatchedDocumentID,
		&r.SimilarityScore,
		&r.Algorithm,
		&r.ScanDate,
	)
	return r, err
}
