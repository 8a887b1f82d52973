package scans

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/documents"
)

// Documents is the document lookup the scanner depends on.
type Documents interface {
	Find(ctx context.Context, id int64) (*documents.Document, error)
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]documents.Document, error)
}

// Resolver decides which documents a scan compares against.
type Resolver struct {
	docs Documents
}

// NewResolver creates a Resolver over docs.
func NewResolver(docs Documents) *Resolver {
	return &Resolver{docs: docs}
}

// Source returns the document requester wants to scan. It fails with
// ErrNotFound when it does not exist and ErrAccessDenied when it is private
// and owned by someone else.
func (r *Resolver) Source(ctx context.Context, requester uuid.UUID, id int64) (*documents.Document, error) {
	doc, err := r.docs.Find(ctx, id)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("find source document: %w", err)
	}

	if !doc.AccessibleTo(requester) {
		return nil, fmt.Errorf("%w: %d", ErrAccessDenied, id)
	}
	return doc, nil
}

// Resolve returns the source document and the comparison set: everything
// requester owns plus every public document, minus the source.
func (r *Resolver) Resolve(ctx context.Context, requester uuid.UUID, id int64) (*documents.Document, []documents.Document, error) {
	source, err := r.Source(ctx, requester, id)
	if err != nil {
		return nil, nil, err
	}

	accessible, err := r.docs.ListAccessible(ctx, requester)
	if err != nil {
		return nil, nil, fmt.Errorf("list accessible documents: %w", err)
	}

	candidates := make([]documents.Document, 0, len(accessible))
	for _, d := range accessible {
		if d.ID != source.ID {
			candidates = append(candidates, d)
		}
	}
	return source, candidates, nil
}
