package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a catalog entry.
// SellerID is an admin-only override for creating on a seller's behalf;
// for every other role the seller identity comes from the actor's verified
// claims.
type CreateProductInput struct {
	Actor       *service.Claims
	SellerID    uuid.UUID
	Title       string
	Price       float64
	Description string
	Category    string
	Image       string
}

// UpdateProductInput defines the data for a product update. Rating fields are
// not updatable here; they move only through review appends.
type UpdateProductInput struct {
	Actor       *service.Claims
	ProductID   uuid.UUID
	Title       string
	Price       float64
	Description string
	Category    string
	Image       string
}

// ListProductsInput narrows the public catalog listing. Category and Search
// are optional and mutually independent filters.
type ListProductsInput struct {
	Category string
	Search   string
}

// AddReviewInput defines the data required to append a review.
type AddReviewInput struct {
	Actor     *service.Claims
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// ProductUsecase defines the interface for catalog business operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, actor *service.Claims, productID uuid.UUID) error

	// GetProduct and ListProducts serve the public storefront; no session is
	// required.
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, input *ListProductsInput) ([]*entity.Product, error)

	// ListMyProducts returns the actor's own catalog entries.
	ListMyProducts(ctx context.Context, actor *service.Claims) ([]*entity.Product, error)

	AddReview(ctx context.Context, input *AddReviewInput) (*entity.Product, error)
}
