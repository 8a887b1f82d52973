// Package storage provides a key/value blob store used for uploaded document
// files and rendered scan exports.
package storage

import (
	"context"
	"errors"

	"github.com/JaimeStill/docmatrix/pkg/lifecycle"
)

// Storage errors returned by System implementations.
var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrInvalidKey covers empty keys, absolute keys, and path traversal.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System stores and retrieves blobs by slash-separated key.
type System interface {
	// Store writes data at key, replacing any existing blob.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the blob at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is present at key.
	Exists(ctx context.Context, key string) (bool, error)

	Start(lc *lifecycle.Coordinator) error
}
