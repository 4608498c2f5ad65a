package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireActor guards operations that need a session.
func requireActor(actor *service.Claims) error {
	if actor == nil {
		return domainerrors.ErrUnauthenticated
	}

	return nil
}

// CreateProduct creates a catalog entry. The seller identity comes from the
// actor's verified claims; only an admin may name a different seller, and a
// named seller that does not exist fails the ownership FK in the repository.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := requireActor(input.Actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(input.Actor.Role, authz.ResourceProduct, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateProductFields(input.Title, input.Price); err != nil {
		return nil, err
	}

	sellerID := input.Actor.UserID
	if input.SellerID != uuid.Nil && input.SellerID != input.Actor.UserID {
		if input.Actor.Role != entity.RoleAdmin {
			return nil, domainerrors.ErrForbidden.WrapMessage("only admins may create products for another seller")
		}

		sellerID = input.SellerID
	}

	product := &entity.Product{
		Title:       strings.TrimSpace(input.Title),
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Image:       input.Image,
		SellerID:    sellerID,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("sellerID", sellerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.Any("sellerID", product.SellerID))

	return product, nil
}

// UpdateProduct modifies a catalog entry. Existence is checked before
// ownership, so probing another seller's product ID yields NotFound for a
// missing product and Forbidden only for one that exists.
func (srv *productService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if err := requireActor(input.Actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(input.Actor.Role, authz.ResourceProduct, authz.ActionUpdate); err != nil {
		return nil, err
	}

	product, err := srv.loadOwnedProduct(ctx, input.Actor, input.ProductID)
	if err != nil {
		return nil, err
	}

	if err := validateProductFields(input.Title, input.Price); err != nil {
		return nil, err
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Price = input.Price
	product.Description = input.Description
	product.Category = input.Category
	product.Image = input.Image

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", product.ID))

	return product, nil
}

// DeleteProduct removes a catalog entry, subject to the same existence-first
// ownership rule as UpdateProduct.
func (srv *productService) DeleteProduct(ctx context.Context, actor *service.Claims, productID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if err := authz.Authorize(actor.Role, authz.ResourceProduct, authz.ActionDelete); err != nil {
		return err
	}

	if _, err := srv.loadOwnedProduct(ctx, actor, productID); err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", productID))

	return nil
}

// GetProduct serves the public product page, reviews included.
func (srv *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// ListProducts serves the public catalog, optionally narrowed by a search
// query or a category.
func (srv *productService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) ([]*entity.Product, error) {
	switch {
	case input != nil && strings.TrimSpace(input.Search) != "":
		products, err := srv.productRepo.Search(ctx, strings.TrimSpace(input.Search))
		if err != nil {
			return nil, errors.Wrap(err, "failed to search products")
		}

		return products, nil
	case input != nil && input.Category != "":
		products, err := srv.productRepo.ListByCategory(ctx, input.Category)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list products by category")
		}

		return products, nil
	default:
		products, err := srv.productRepo.ListAll(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list products")
		}

		return products, nil
	}
}

// ListMyProducts returns the actor's own catalog entries.
func (srv *productService) ListMyProducts(ctx context.Context, actor *service.Claims) ([]*entity.Product, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor.Role, authz.ResourceProduct, authz.ActionListOwn); err != nil {
		return nil, err
	}

	products, err := srv.productRepo.ListBySeller(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list own products")
	}

	return products, nil
}

// AddReview appends a review attributed to the actor's verified identity and
// returns the product with its refreshed rating aggregate.
func (srv *productService) AddReview(ctx context.Context, input *usecase.AddReviewInput) (*entity.Product, error) {
	if err := requireActor(input.Actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(input.Actor.Role, authz.ResourceReview, authz.ActionCreate); err != nil {
		return nil, err
	}
	if !entity.ValidRating(input.Rating) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("rating must be between 1 and 5")
	}

	review := &entity.Review{
		ProductID: input.ProductID,
		UserID:    input.Actor.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := srv.productRepo.AppendReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		srv.log(ctx).Error("Failed to append review", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to append review")
	}

	srv.log(ctx).Debug("Review appended", slog.Any("productID", input.ProductID), slog.Any("userID", input.Actor.UserID))

	return srv.GetProduct(ctx, input.ProductID)
}

// loadOwnedProduct fetches a product and applies the ownership rule: admins
// may act on any product, sellers only on their own.
func (srv *productService) loadOwnedProduct(ctx context.Context, actor *service.Claims, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	if !authz.CanActOn(actor.UserID.String(), product.SellerID.String(), actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("product belongs to another seller")
	}

	return product, nil
}

func validateProductFields(title string, price float64) error {
	if strings.TrimSpace(title) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("title is required")
	}
	if price < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("price must be non-negative")
	}

	return nil
}
