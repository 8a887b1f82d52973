package api

import (
	"fmt"

	"github.com/JaimeStill/docmatrix/internal/config"
	"github.com/JaimeStill/docmatrix/internal/credits"
	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/embeddings"
	"github.com/JaimeStill/docmatrix/internal/scans"
	"github.com/JaimeStill/docmatrix/internal/similarity"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Scans     scans.System
	Credits   credits.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) (*Domain, error) {
	db := runtime.Database.Connection()

	documentsSys := documents.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	// The embedder stays an untyped nil when disabled so the scorer
	// sees no embedder at all.
	var embedder similarity.Embedder
	if cfg.Embedding.Enabled {
		client, err := embeddings.New(&cfg.Embedding, runtime.Cache, runtime.Logger)
		if err != nil {
			return nil, fmt.Errorf("embeddings init failed: %w", err)
		}
		embedder = client
	}

	scansSys := scans.New(
		documentsSys,
		scans.NewStore(db),
		similarity.NewScorer(embedder, runtime.Logger),
		runtime.Storage,
		cfg.Scan,
		runtime.Logger,
	)

	return &Domain{
		Documents: documentsSys,
		Scans:     scansSys,
		Credits:   credits.New(db, cfg.Credits, runtime.Logger),
	}, nil
}
