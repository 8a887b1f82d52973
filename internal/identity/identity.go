// Package identity carries the authenticated requester through a request.
// Authentication happens upstream; the gateway forwards the caller as headers.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Request headers set by the upstream gateway.
const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
)

// Role is the requester's privilege level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrMissingIdentity = errors.New("missing identity")
	ErrInvalidIdentity = errors.New("invalid identity")
)

// Identity is the requester of the current operation.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// IsAdmin reports whether the identity bypasses ownership and credit checks.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Parse builds an Identity from raw header values. An empty role means RoleUser.
func Parse(userID, role string) (Identity, error) {
	if userID == "" {
		return Identity{}, ErrMissingIdentity
	}

	id, err := uuid.Parse(userID)
	if err != nil || id == uuid.Nil {
		return Identity{}, fmt.Errorf("%w: user id %q", ErrInvalidIdentity, userID)
	}

	r := Role(role)
	switch r {
	case "":
		r = RoleUser
	case RoleUser, RoleAdmin:
	default:
		return Identity{}, fmt.Errorf("%w: role %q", ErrInvalidIdentity, role)
	}

	return Identity{UserID: id, Role: r}, nil
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
