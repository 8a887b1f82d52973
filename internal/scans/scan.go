// Package scans compares a source document against every document its
// requester can see, records the matches, and serves them back later.
package scans

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/similarity"
)

// Record is one persisted pairwise comparison. Records are append-only:
// repeated scans of the same pair produce additional rows.
type Record struct {
	ID                int64                `json:"id"`
	UserID            uuid.UUID            `json:"user_id"`
	SourceDocumentID  int64                `json:"source_document_id"`
	MatchedDocumentID int64                `json:"matched_document_id"`
	SimilarityScore   float64              `json:"similarity_score"`
	Algorithm         similarity.Algorithm `json:"algorithm"`
	ScanDate          time.Time            `json:"scan_date"`
}

// Match is a candidate that met the threshold, enriched for display.
type Match struct {
	DocumentID      int64                `json:"documentId"`
	Title           string               `json:"title"`
	SimilarityScore float64              `json:"similarityScore"`
	IsUserDocument  bool                 `json:"isUserDocument"`
	Content         string               `json:"content,omitempty"`
	Algorithm       similarity.Algorithm `json:"algorithm"`
}

// Result is the outcome of a scan or a replay of persisted matches.
type Result struct {
	SourceDocumentID    int64                `json:"sourceDocumentId"`
	SourceDocumentTitle string               `json:"sourceDocumentTitle"`
	ScannedThreshold    float64              `json:"scannedThreshold"`
	Matches             []Match              `json:"matches"`
	ScanDate            time.Time            `json:"scanDate"`
	Algorithm           similarity.Algorithm `json:"algorithm"`
	// PersistFailures counts matches that could not be recorded.
	PersistFailures int `json:"persistFailures,omitempty"`
}

// ScanCommand is the body of a scan request.
type ScanCommand struct {
	DocumentID int64    `json:"document_id" validate:"required,gt=0"`
	Threshold  *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ScanResponse wraps a fresh scan.
type ScanResponse struct {
	Message string  `json:"message"`
	Scan    *Result `json:"scan"`
}

// ResultResponse wraps a replay of persisted matches.
type ResultResponse struct {
	Scan *Result `json:"scan"`
}
