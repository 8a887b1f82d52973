package scans

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExportFile is a rendered export of recorded matches.
type ExportFile struct {
	Filename   string
	StorageKey string
	Body       []byte
	Result     *Result
}

func exportKey(documentID int64) string {
	return fmt.Sprintf("exports/%d.txt", documentID)
}

func (s *scanner) Export(ctx context.Context, requester uuid.UUID, documentID int64, threshold float64) (*ExportFile, error) {
	result, err := s.Previous(ctx, requester, documentID, threshold)
	if err != nil {
		return nil, err
	}

	file := &ExportFile{
		Filename:   fmt.Sprintf("%d.txt", documentID),
		StorageKey: exportKey(documentID),
		Body:       Render(result),
		Result:     result,
	}

	if err := s.blobs.Store(ctx, file.StorageKey, file.Body); err != nil {
		s.logger.Warn("export copy not stored", "storage_key", file.StorageKey, "error", err)
	}

	return file, nil
}

// Render writes one block per distinct matched document, keeping the first
// (highest scoring) occurrence.
func Render(result *Result) []byte {
	var b strings.Builder
	seen := make(map[int64]bool, len(result.Matches))

	for _, m := range result.Matches {
		if seen[m.DocumentID] {
			continue
		}
		seen[m.DocumentID] = true

		fmt.Fprintf(&b, "Document ID: %d\nTitle: %s\nSimilarity Score: %v\nContent: %s\n\n---------\n",
			m.DocumentID, m.Title, m.SimilarityScore, m.Content)
	}

	return []byte(b.String())
}
