package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository is the persistence adapter for cart state. The cart itself
// is a plain entity mutated in the use case layer; this interface only
// serializes and deserializes it at defined boundaries.
//
// A scope identifies whose cart it is: the authenticated user's ID, or an
// anonymous cart cookie value for guests.
type CartRepository interface {
	// Load returns the cart for a scope. A missing cart loads as empty,
	// never as an error.
	Load(ctx context.Context, scope string) (*entity.Cart, error)

	// Save persists the cart for a scope.
	Save(ctx context.Context, scope string, cart *entity.Cart) error

	// Delete drops the cart for a scope.
	Delete(ctx context.Context, scope string) error
}
