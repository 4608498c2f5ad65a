package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. The cart entity owns the
// merge/clamp/remove rules; this service only loads, mutates, and saves it at
// the scope boundary.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the cart for a scope; a missing cart is empty, never an error.
func (srv *cartService) GetCart(ctx context.Context, scope string) (*entity.Cart, error) {
	cart, err := srv.cartRepo.Load(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return cart, nil
}

// AddItem merges a line into the cart by product identity. The line snapshot
// (title, unit price, image) is taken from the catalog at add time.
func (srv *cartService) AddItem(ctx context.Context, scope string, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for cart add")
	}

	cart, err := srv.cartRepo.Load(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart.Add(entity.CartItem{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		Quantity:  input.Quantity,
		Image:     product.Image,
	})

	if err := srv.cartRepo.Save(ctx, scope, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	srv.log(ctx).Debug("Cart item added", slog.Any("productID", product.ID), slog.Int("quantity", input.Quantity))

	return cart, nil
}

// UpdateItemQuantity sets a line's quantity, clamped at 0. The quantity-0
// line is retained until removed explicitly.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, scope string, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	cart, err := srv.cartRepo.Load(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	if !cart.UpdateQuantity(productID, quantity) {
		return nil, domainerrors.ErrNotFound.WrapMessage("product not in cart")
	}

	if err := srv.cartRepo.Save(ctx, scope, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return cart, nil
}

// RemoveItem deletes a line by product identity. Removing an absent line
// leaves the cart unchanged and is not an error.
func (srv *cartService) RemoveItem(ctx context.Context, scope string, productID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.Load(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	if cart.Remove(productID) {
		if err := srv.cartRepo.Save(ctx, scope, cart); err != nil {
			return nil, errors.Wrap(err, "failed to save cart")
		}
	}

	return cart, nil
}

// ClearCart empties the cart for a scope.
func (srv *cartService) ClearCart(ctx context.Context, scope string) error {
	if err := srv.cartRepo.Delete(ctx, scope); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// MergeCarts folds the source scope's cart into the destination's through the
// entity's Add, so quantities of shared products accumulate, then drops the
// source. Used when a guest with an anonymous cart signs in.
func (srv *cartService) MergeCarts(ctx context.Context, fromScope, toScope string) (*entity.Cart, error) {
	if fromScope == "" || fromScope == toScope {
		return srv.GetCart(ctx, toScope)
	}

	source, err := srv.cartRepo.Load(ctx, fromScope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load source cart")
	}

	target, err := srv.cartRepo.Load(ctx, toScope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load target cart")
	}

	for _, item := range source.Items {
		target.Add(item)
	}

	if err := srv.cartRepo.Save(ctx, toScope, target); err != nil {
		return nil, errors.Wrap(err, "failed to save merged cart")
	}

	if err := srv.cartRepo.Delete(ctx, fromScope); err != nil {
		// The merge already succeeded; a dangling anonymous cart only costs
		// its TTL.
		srv.log(ctx).Warn("Failed to drop source cart after merge", slog.Any("error", err))
	}

	return target, nil
}
