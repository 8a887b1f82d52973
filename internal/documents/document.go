// Package documents stores uploaded plain-text documents and answers the
// ownership and visibility questions the scanner depends on.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded text document. Content is immutable after creation;
// only IsPrivate may change, and only by the owner.
type Document struct {
	ID         int64     `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"storage_key"`
	SizeBytes  int64     `json:"size_bytes"`
	IsPrivate  bool      `json:"is_private"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AccessibleTo reports whether userID may read the document.
func (d Document) AccessibleTo(userID uuid.UUID) bool {
	return !d.IsPrivate || d.OwnerID == userID
}

// OwnedBy reports whether userID created the document.
func (d Document) OwnedBy(userID uuid.UUID) bool {
	return d.OwnerID == userID
}

// Scope selects which documents List returns.
type Scope string

const (
	// ScopeOwn lists only the requester's documents.
	ScopeOwn Scope = "own"
	// ScopeAccessible lists the requester's documents plus every public one.
	ScopeAccessible Scope = "accessible"
)

// ParseScope maps a query value onto a Scope, defaulting to ScopeOwn.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeOwn:
		return ScopeOwn, nil
	case ScopeAccessible:
		return ScopeAccessible, nil
	}
	return "", ErrInvalidScope
}

// CreateCommand contains the data required to create a new document.
// Data holds the raw file bytes; Content is derived from it.
type CreateCommand struct {
	OwnerID   uuid.UUID
	Title     string
	Filename  string
	IsPrivate bool
	Data      []byte
}

// VisibilityCommand toggles whether a document is private.
type VisibilityCommand struct {
	IsPrivate *bool `json:"is_private" validate:"required"`
}
