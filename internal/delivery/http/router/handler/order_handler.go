package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for checkout and order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

type beginCheckoutRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Shipping  struct {
		Name    string `json:"name" validate:"required"`
		Email   string `json:"email" validate:"required,email"`
		Phone   string `json:"phone" validate:"required"`
		Address string `json:"address" validate:"required"`
		Pincode string `json:"pincode" validate:"required"`
	} `json:"shipping"`
}

// BeginCheckout registers a payment intent with the gateway and persists the
// order as pending. The response carries what the payment widget needs.
func (h *OrderHandler) BeginCheckout(c echo.Context) error {
	var req beginCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	productID, err := parseUUIDField(req.ProductID, "productId")
	if err != nil {
		return err
	}

	output, err := h.uc.BeginCheckout(c.Request().Context(), &usecase.BeginCheckoutInput{
		Actor:     deliverycontext.GetClaims(c),
		ProductID: productID,
		Quantity:  req.Quantity,
		Shipping: entity.ShippingInfo{
			Name:    req.Shipping.Name,
			Email:   req.Shipping.Email,
			Phone:   req.Shipping.Phone,
			Address: req.Shipping.Address,
			Pincode: req.Shipping.Pincode,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"order": newOrderView(output.Order),
		"gatewayOrder": &gatewayOrderView{
			OrderID:   output.GatewayOrder.ID,
			Amount:    output.GatewayOrder.Amount,
			Currency:  output.GatewayOrder.Currency,
			Status:    output.GatewayOrder.Status,
			Receipt:   output.GatewayOrder.Receipt,
			CreatedAt: output.GatewayOrder.CreatedAt,
		},
	}, "Checkout started")
}

type finalizeCheckoutRequest struct {
	GatewayOrderID string `json:"gatewayOrderId" validate:"required"`
	PaymentID      string `json:"paymentId" validate:"required"`
	Signature      string `json:"signature" validate:"required"`
}

// FinalizeCheckout verifies the payment signature server-side and moves the
// order to processing. Replays of the same callback succeed idempotently.
// The purchased line is dropped from the buyer's cart on success.
func (h *OrderHandler) FinalizeCheckout(c echo.Context) error {
	var req finalizeCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid finalize input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.FinalizeCheckout(c.Request().Context(), &usecase.FinalizeCheckoutInput{
		Actor:          deliverycontext.GetClaims(c),
		GatewayOrderID: req.GatewayOrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Payment verified"
	if output.AlreadyFinalized {
		message = "Payment already verified"
	}

	return response.Success(c, http.StatusOK, newOrderView(output.Order), message)
}

// ListMine returns the current user's orders, newest first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, err := h.uc.ListMyOrders(c.Request().Context(), deliverycontext.GetClaims(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "Orders retrieved")
}

// Stats aggregates the current user's order history into lifetime, yearly,
// and monthly windows.
func (h *OrderHandler) Stats(c echo.Context) error {
	stats, err := h.uc.GetStats(c.Request().Context(), deliverycontext.GetClaims(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Order statistics retrieved")
}
