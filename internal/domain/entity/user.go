// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record for an account. The secret is stored only as a
// bcrypt hash and is never re-derived; plaintext passwords exist solely in
// the sign-up and sign-in request paths.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // Unique login identifier.
	Name         string    // Display name shown in the storefront.
	PasswordHash string    // bcrypt hash of the user's secret.
	Role         Role      // Single role: user, seller, or admin.
	Avatar       string    // Optional avatar reference, presentational only.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
