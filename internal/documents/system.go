package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/pagination"
)

// System defines the document management operations.
// Implementations handle blob storage and database persistence.
type System interface {
	List(ctx context.Context, requester uuid.UUID, scope Scope, page pagination.PageRequest) (*pagination.PageResult[Document], error)
	// Find returns the document regardless of visibility.
	Find(ctx context.Context, id int64) (*Document, error)
	// View returns the document if requester may read it.
	View(ctx context.Context, requester identity.Identity, id int64) (*Document, error)
	// ListAccessible returns every document owned by userID or public, by id ascending.
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	SetVisibility(ctx context.Context, requester identity.Identity, id int64, isPrivate bool) (*Document, error)
	Delete(ctx context.Context, requester identity.Identity, id int64) error
}
