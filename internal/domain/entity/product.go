package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry owned by a seller (or an admin acting as one).
// AverageRating is denormalized and maintained atomically on review append.
type Product struct {
	ID            uuid.UUID
	Title         string
	Price         float64 // Non-negative display price.
	Description   string
	Category      string
	Image         string    // Binary-as-text encoded image payload.
	SellerID      uuid.UUID // Must reference a user with the seller or admin role.
	AverageRating float64   // Rounded to 2 decimals, 0 when unreviewed.
	RatingCount   int64
	Reviews       []*Review
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Review is an append-only rating attributed to a user identity.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int // Bounded 1..5 inclusive.
	Comment   string
	CreatedAt time.Time
}

const (
	// MinRating and MaxRating bound a review's rating value.
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether a rating falls within the allowed bounds.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
