package similarity

import (
	"context"
	"fmt"
	"log/slog"
)

// Algorithm names the strategy that produced a score. The values are persisted.
type Algorithm string

const (
	AlgorithmEmbedding   Algorithm = "embedding"
	AlgorithmLevenshtein Algorithm = "levenshtein"
)

// DefaultAlgorithm labels results that carry no matches.
const DefaultAlgorithm = AlgorithmLevenshtein

// Embedder produces a vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Score is a similarity value in [0,100] and the algorithm that produced it.
type Score struct {
	Value     float64
	Algorithm Algorithm
}

// attempt is the outcome of the embedding strategy for one pair.
type attempt struct {
	value float64
	err   error
}

// Scorer compares two normalized texts. It prefers the embedding strategy and
// falls back to Levenshtein for any pair whose embedding attempt fails.
type Scorer struct {
	embedder Embedder
	logger   *slog.Logger
}

// NewScorer creates a Scorer. A nil embedder scores every pair with Levenshtein.
func NewScorer(embedder Embedder, logger *slog.Logger) *Scorer {
	return &Scorer{
		embedder: embedder,
		logger:   logger.With("system", "similarity"),
	}
}

// Score compares a and b. It never fails: embedding errors are logged and the
// pair is rescored locally.
func (s *Scorer) Score(ctx context.Context, a, b string) Score {
	if s.embedder != nil {
		res := s.embedding(ctx, a, b)
		if res.err == nil {
			return Score{Value: res.value, Algorithm: AlgorithmEmbedding}
		}
		s.logger.Warn("embedding similarity failed, using levenshtein", "error", res.err)
	}

	return Score{
		Value:     LevenshteinSimilarity(a, b),
		Algorithm: AlgorithmLevenshtein,
	}
}

func (s *Scorer) embedding(ctx context.Context, a, b string) attempt {
	va, err := s.embedder.Embed(ctx, a)
	if err != nil {
		return attempt{err: fmt.Errorf("embed source: %w", err)}
	}
	vb, err := s.embedder.Embed(ctx, b)
	if err != nil {
		return attempt{err: fmt.Errorf("embed candidate: %w", err)}
	}

	cos, err := Cosine(va, vb)
	if err != nil {
		return attempt{err: err}
	}

	return attempt{value: round2(clamp(cos*100, 0, 100))}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
