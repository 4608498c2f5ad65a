// Package repository defines the persistence contracts the use case layer
// depends on, keeping the domain free of GORM and Redis details.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the credential and identity store.
type UserRepository interface {
	// FindByEmail retrieves a user by their unique email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create persists a new user. The password must already be hashed; a
	// duplicate email fails with a Conflict before any row is written.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user's mutable fields.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID. Admin-only flow.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByRole returns all users holding the given role, newest first.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// ListRecentByRole returns the most recent signups holding the role.
	ListRecentByRole(ctx context.Context, role entity.Role, limit int) ([]*entity.User, error)

	// CountByRole counts users holding the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
