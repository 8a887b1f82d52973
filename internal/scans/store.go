package scans

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/docmatrix/pkg/query"
	"github.com/JaimeStill/docmatrix/pkg/repository"
)

// Store is append-only persistence for scan records. Rows disappear only
// when a referenced document is deleted.
type Store interface {
	Insert(ctx context.Context, rec Record) (*Record, error)
	// FindBySource returns every record for sourceID, highest score first.
	FindBySource(ctx context.Context, sourceID int64) ([]Record, error)
	// FindBySourceAboveThreshold returns records scoring at least threshold, highest score first.
	FindBySourceAboveThreshold(ctx context.Context, sourceID int64, threshold float64) ([]Record, error)
}

type store struct {
	db *sql.DB
}

// NewStore creates a Store backed by the document_scans table.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Insert(ctx context.Context, rec Record) (*Record, error) {
	q := `INSERT INTO document_scans(user_id, source_document_id, matched_document_id, similarity_score, algorithm_used)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, user_id, source_document_id, matched_document_id, similarity_score, algorithm_used, scan_date`

	out, err := repository.QueryOne(ctx, s.db, q, []any{
		rec.UserID, rec.SourceDocumentID, rec.MatchedDocumentID, rec.SimilarityScore, rec.Algorithm,
	}, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, err)
	}
	return &out, nil
}

func (s *store) FindBySource(ctx context.Context, sourceID int64) ([]Record, error) {
	return s.find(ctx, query.
		NewBuilder(projection, byScore[0]).
		WhereEquals("SourceDocumentID", sourceID))
}

func (s *store) FindBySourceAboveThreshold(ctx context.Context, sourceID int64, threshold float64) ([]Record, error) {
	return s.find(ctx, query.
		NewBuilder(projection, byScore[0]).
		WhereEquals("SourceDocumentID", sourceID).
		WhereAtLeast("SimilarityScore", threshold))
}

func (s *store) find(ctx context.Context, qb *query.Builder) ([]Record, error) {
	q, args := qb.OrderBy(byScore...).BuildSelect()

	records, err := repository.QueryMany(ctx, s.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query scan records: %w", err)
	}
	return records, nil
}
