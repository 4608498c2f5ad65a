package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when no product matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository persists catalog entries and their reviews.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a product with its reviews.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListBySeller returns products owned by the given seller, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)

	// ListAll returns every product, newest first.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// ListByCategory returns products in a category, newest first.
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)

	// Search returns products whose title or description matches the query.
	Search(ctx context.Context, query string) ([]*entity.Product, error)

	// AppendReview appends a review and recomputes the product's running
	// average in a single atomic update, never read-then-write, so
	// concurrent appends cannot lose each other.
	AppendReview(ctx context.Context, review *entity.Review) error
}
