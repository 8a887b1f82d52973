package scans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/similarity"
	"github.com/JaimeStill/docmatrix/pkg/storage"
)

// Scorer compares two normalized texts.
type Scorer interface {
	Score(ctx context.Context, a, b string) similarity.Score
}

// System defines the scan operations.
type System interface {
	// Scan scores the source against every accessible candidate, records each
	// match at or above threshold, and returns the matches by score descending.
	Scan(ctx context.Context, requester uuid.UUID, documentID int64, threshold float64) (*Result, error)
	// Previous replays recorded matches at or above threshold without rescoring.
	Previous(ctx context.Context, requester uuid.UUID, documentID int64, threshold float64) (*Result, error)
	// Export renders Previous as a text file and keeps a copy in blob storage.
	Export(ctx context.Context, requester uuid.UUID, documentID int64, threshold float64) (*ExportFile, error)
	// History returns every visible record for the source.
	History(ctx context.Context, requester uuid.UUID, documentID int64) ([]Record, error)
}

type scanner struct {
	docs     Documents
	resolver *Resolver
	store    Store
	scorer   Scorer
	blobs    storage.System
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// New creates the scan system.
func New(docs Documents, store Store, scorer Scorer, blobs storage.System, cfg Config, logger *slog.Logger) System {
	return &scanner{
		docs:     docs,
		resolver: NewResolver(docs),
		store:    store,
		scorer:   scorer,
		blobs:    blobs,
		cfg:      cfg,
		logger:   logger.With("system", "scans"),
		now:      time.Now,
	}
}

func (s *scanner) Scan(ctx context.Context, requester uuid.UUID, documentID int64, threshold float64) (*Result, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}

	start := s.now()
	source, candidates, err := s.resolver.Resolve(ctx, requester, documentID)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return s.empty(source, threshold), nil
	}

	sourceText := similarity.OptimizeForComparison(source.Content, s.cfg.MaxComparisonLength)
	scores := s.scoreAll(ctx, sourceText, candidates)

	matches := make([]Match, 0)
	records := make([]Record, 0)
	for i, c := range candidates {
		score := scores[i]
		if score.Value < threshold {
			continue
		}
		matches = append(matches, Match{
			DocumentID:      c.ID,
			Title:           c.Title,
			SimilarityScore: score.Value,
			IsUserDocument:  c.OwnedBy(requester),
			Content:         c.Content,
			Algorithm:       score.Algorithm,
		})
		records = append(records, Record{
			UserID:            requester,
			SourceDocumentID:  source.ID,
			MatchedDocumentID: c.ID,
			SimilarityScore:   score.Value,
			Algorithm:         score.Algorithm,
		})
	}

	failures := s.persist(ctx, records)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	algorithm := similarity.DefaultAlgorithm
	if len(records) > 0 {
		algorithm = records[0].Algorithm
	}

	result := &Result{
		SourceDocumentID:    source.ID,
		SourceDocumentTitle: source.Title,
		ScannedThreshold:    threshold,
		Matches:             matches,
		ScanDate:            s.now().UTC(),
		Algorithm:           algorithm,
		PersistFailures:     failures,
	}

	s.logger.Info("scan completed",
		"source_id", source.ID,
		"candidates", len(candidates),
		"matches", len(matches),
		"persist_failures", failures,
		"duration", s.now().Sub(start))

	return result, nil
}

// scoreAll scores each candidate against sourceText. Scores are indexed by
// candidate position regardless of completion order.
func (s *scanner) scoreAll(ctx context.Context, sourceText string, candidates []documents.Document) []similarity.Score {
	scores := make([]similarity.Score, len(candidates))

	var g errgroup.Group
	g.SetLimit(max(s.cfg.Workers, 1))

	for i := range candidates {
		g.Go(func() error {
			text := similarity.OptimizeForComparison(candidates[i].Content, s.cfg.MaxComparisonLength)
			scores[i] = s.scorer.Score(ctx, sourceText, text)
			return nil
		})
	}

	g.Wait()
	return scores
}

// persist inserts each record independently and returns the failure count.
func (s *scanner) persist(ctx context.Context, records []Record) int {
	failures := 0
	for _, rec := range records {
		if _, err := s.store.Insert(ctx, rec); err != nil {
			failures++
			s.logger.Error("persist scan match failed",
				"source_id", rec.SourceDocumentID,
				"matched_id", rec.MatchedDocumentID,
				"error", err)
		}
	}
	return failures
}

func (s *scanner) Previous(ctx context.Context, requester uuid.UUID, documentID int64, threshold float64) (*Result, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}

	source, err := s.resolver.Source(ctx, requester, documentID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindBySourceAboveThreshold(ctx, source.ID, threshold)
	if err != nil {
		return nil, err
	}

	visible, docs, err := s.visible(ctx, requester, records)
	if err != nil {
		return nil, err
	}

	if len(visible) == 0 {
		return s.empty(source, threshold), nil
	}

	matches := make([]Match, len(visible))
	for i, rec := range visible {
		doc := docs[rec.MatchedDocumentID]
		matches[i] = Match{
			DocumentID:      rec.MatchedDocumentID,
			Title:           doc.Title,
			SimilarityScore: rec.SimilarityScore,
			IsUserDocument:  doc.OwnedBy(requester),
			Content:         doc.Content,
			Algorithm:       rec.Algorithm,
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	return &Result{
		SourceDocumentID:    source.ID,
		SourceDocumentTitle: source.Title,
		ScannedThreshold:    threshold,
		Matches:             matches,
		ScanDate:            visible[0].ScanDate.UTC(),
		Algorithm:           visible[0].Algorithm,
	}, nil
}

func (s *scanner) History(ctx context.Context, requester uuid.UUID, documentID int64) ([]Record, error) {
	source, err := s.resolver.Source(ctx, requester, documentID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindBySource(ctx, source.ID)
	if err != nil {
		return nil, err
	}

	visible, _, err := s.visible(ctx, requester, records)
	return visible, err
}

// visible drops records whose matched document no longer exists or is now
// private to someone else. It returns the surviving records in order along
// with the documents they reference.
func (s *scanner) visible(ctx context.Context, requester uuid.UUID, records []Record) ([]Record, map[int64]*documents.Document, error) {
	docs := make(map[int64]*documents.Document)
	gone := make(map[int64]bool)
	out := make([]Record, 0, len(records))

	for _, rec := range records {
		id := rec.MatchedDocumentID
		if gone[id] {
			continue
		}

		if _, ok := docs[id]; !ok {
			doc, err := s.docs.Find(ctx, id)
			if err != nil {
				if errors.Is(err, documents.ErrNotFound) {
					gone[id] = true
					continue
				}
				return nil, nil, fmt.Errorf("find matched document: %w", err)
			}
			if !doc.AccessibleTo(requester) {
				gone[id] = true
				continue
			}
			docs[id] = doc
		}

		out = append(out, rec)
	}

	return out, docs, nil
}

func (s *scanner) empty(source *documents.Document, threshold float64) *Result {
	return &Result{
		SourceDocumentID:    source.ID,
		SourceDocumentTitle: source.Title,
		ScannedThreshold:    threshold,
		Matches:             []Match{},
		ScanDate:            s.now().UTC(),
		Algorithm:           similarity.DefaultAlgorithm,
	}
}

func checkThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, t)
	}
	return nil
}
