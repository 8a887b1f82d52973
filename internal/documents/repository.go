package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/pagination"
	"github.com/JaimeStill/docmatrix/pkg/query"
	"github.com/JaimeStill/docmatrix/pkg/repository"
	"github.com/JaimeStill/docmatrix/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository with database and blob storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    storage,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, requester uuid.UUID, scope Scope, page pagination.PageRequest) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(summaryProjection, defaultSort).
		WhereContains("Title", page.Search)

	switch scope {
	case ScopeAccessible:
		qb.WhereOwnedOrPublic("OwnerID", "IsPrivate", requester)
	default:
		qb.WhereEquals("OwnerID", requester)
	}

	if len(page.Sort) > 0 {
		qb.OrderBy(page.Sort...)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Document, error) {
	q, args := query.
		NewBuilder(projection, idSort).
		BuildSingle("ID", id)

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) View(ctx context.Context, requester identity.Identity, id int64) (*Document, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && !doc.AccessibleTo(requester.UserID) {
		return nil, ErrForbidden
	}
	return doc, nil
}

func (r *repo) ListAccessible(ctx context.Context, userID uuid.UUID) ([]Document, error) {
	q, args := query.
		NewBuilder(projection, idSort).
		WhereOwnedOrPublic("OwnerID", "IsPrivate", userID).
		BuildSelect()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query accessible documents: %w", err)
	}
	return docs, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	content, err := textContent(cmd.Data)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(cmd.Filename), filepath.Ext(cmd.Filename))
	}

	storageKey := buildStorageKey(cmd.OwnerID, cmd.Filename)
	if err := r.storage.Store(ctx, storageKey, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := `INSERT INTO documents(owner_id, title, content, filename, storage_key, size_bytes, is_private)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		` + returning

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.OwnerID, title, content, cmd.Filename, storageKey, int64(len(cmd.Data)), cmd.IsPrivate,
		}, scanDocument)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, storageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", doc.ID, "owner_id", doc.OwnerID, "storage_key", storageKey)
	return &doc, nil
}

func (r *repo) SetVisibility(ctx context.Context, requester identity.Identity, id int64, isPrivate bool) (*Document, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.OwnedBy(requester.UserID) {
		return nil, ErrForbidden
	}

	q := `UPDATE documents SET is_private = $1, updated_at = NOW()
		WHERE id = $2
		` + returning

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{isPrivate, id}, scanDocument)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document visibility changed", "id", doc.ID, "is_private", doc.IsPrivate)
	return &doc, nil
}

func (r *repo) Delete(ctx context.Context, requester identity.Identity, id int64) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if !requester.IsAdmin() && !doc.OwnedBy(requester.UserID) {
		return ErrForbidden
	}

	q := `DELETE FROM documents WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.storage.Delete(ctx, doc.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Error("storage cleanup failed", "storage_key", doc.StorageKey, "error", err)
	}

	r.logger.Info("document deleted", "id", id, "by", requester.UserID)
	return nil
}

// textContent accepts only non-empty UTF-8 text.
func textContent(data []byte) (string, error) {
	if len(data) == 0 || !utf8.Valid(data) {
		return "", ErrInvalidFile
	}
	if !strings.HasPrefix(http.DetectContentType(data), "text/") {
		return "", ErrInvalidFile
	}
	return string(data), nil
}

func buildStorageKey(owner uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s_%s", owner.String(), uuid.NewString(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
