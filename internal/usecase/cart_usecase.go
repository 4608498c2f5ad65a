package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AddCartItemInput defines the data required to add a line to a cart.
// Title, UnitPrice and Image are snapshotted from the catalog at add time.
type AddCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartUsecase defines the interface for cart business operations. A scope
// identifies whose cart is addressed: the authenticated user's ID or the
// anonymous cart cookie value for guests.
type CartUsecase interface {
	// GetCart returns the cart for a scope; a missing cart is empty.
	GetCart(ctx context.Context, scope string) (*entity.Cart, error)

	// AddItem merges a line into the cart by product identity: adding an
	// already-present product increments its quantity.
	AddItem(ctx context.Context, scope string, input *AddCartItemInput) (*entity.Cart, error)

	// UpdateItemQuantity sets a line's quantity, clamped at 0. The
	// quantity-0 line stays in the cart until removed explicitly.
	UpdateItemQuantity(ctx context.Context, scope string, productID uuid.UUID, quantity int) (*entity.Cart, error)

	// RemoveItem deletes a line by product identity; removing an absent
	// line is a no-op.
	RemoveItem(ctx context.Context, scope string, productID uuid.UUID) (*entity.Cart, error)

	// ClearCart empties the cart for a scope.
	ClearCart(ctx context.Context, scope string) error

	// MergeCarts folds the source scope's cart into the destination scope's
	// cart line by line, then drops the source. Used when a guest signs in.
	MergeCarts(ctx context.Context, fromScope, toScope string) (*entity.Cart, error)
}
