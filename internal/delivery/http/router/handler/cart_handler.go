package handler

import (
	"log/slog"
	"net/http"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/cookie"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers. Carts work for both
// signed-in users and guests; the scope is the user ID when a session exists,
// otherwise the anonymous cart cookie.
type CartHandler struct {
	uc     usecase.CartUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, cfg *config.Config, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, cfg: cfg, logger: logger}
}

// scope returns the cart scope for the request, issuing a guest cart cookie
// when the request is anonymous and ensure is set.
func (h *CartHandler) scope(c echo.Context, ensure bool) string {
	if claims := deliverycontext.GetClaims(c); claims != nil {
		return claims.UserID.String()
	}

	if ensure {
		return cookie.EnsureCartID(c, h.cfg.Redis.CartTTL)
	}

	return cookie.ReadCartID(c)
}

// Get returns the cart for the current scope. An anonymous request without a
// cart cookie gets an empty cart without issuing one.
func (h *CartHandler) Get(c echo.Context) error {
	scope := h.scope(c, false)
	if scope == "" {
		return response.Success(c, http.StatusOK, newCartView(&entity.Cart{}), "Cart retrieved")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), scope)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCartView(cart), "Cart retrieved")
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddItem merges a product line into the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	productID, err := parseUUIDField(req.ProductID, "productId")
	if err != nil {
		return err
	}

	cart, err := h.uc.AddItem(c.Request().Context(), h.scope(c, true), &usecase.AddCartItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCartView(cart), "Item added to cart")
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a line's quantity, clamped at zero.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	cart, err := h.uc.UpdateItemQuantity(c.Request().Context(), h.scope(c, true), productID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCartView(cart), "Cart updated")
}

// RemoveItem deletes a line by product identity.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), h.scope(c, true), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCartView(cart), "Item removed from cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	scope := h.scope(c, false)
	if scope != "" {
		if err := h.uc.ClearCart(c.Request().Context(), scope); err != nil {
			return errors.WithStack(err)
		}
	}

	return response.Success(c, http.StatusOK, newCartView(&entity.Cart{}), "Cart cleared")
}
