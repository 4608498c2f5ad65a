package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// BeginCheckoutInput defines the data required to start a checkout.
type BeginCheckoutInput struct {
	Actor     *service.Claims
	ProductID uuid.UUID
	Quantity  int
	Shipping  entity.ShippingInfo
}

// FinalizeCheckoutInput carries the payment gateway's completion callback.
type FinalizeCheckoutInput struct {
	Actor          *service.Claims
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// UpdateOrderStatusInput defines an admin-driven status transition.
type UpdateOrderStatusInput struct {
	Actor   *service.Claims
	OrderID uuid.UUID
	Status  entity.OrderStatus
}

// --- Output DTOs ---

// BeginCheckoutOutput returns the pending order and the gateway order the
// storefront hands to the payment widget.
type BeginCheckoutOutput struct {
	Order        *entity.Order
	GatewayOrder *service.GatewayOrder
}

// FinalizeCheckoutOutput returns the paid order. AlreadyFinalized reports a
// replayed callback that was absorbed idempotently.
type FinalizeCheckoutOutput struct {
	Order            *entity.Order
	AlreadyFinalized bool
}

// OrderUsecase defines the interface for checkout and order business operations.
type OrderUsecase interface {
	// BeginCheckout registers a payment intent with the gateway and persists
	// the order as pending, keyed by the gateway order ID.
	BeginCheckout(ctx context.Context, input *BeginCheckoutInput) (*BeginCheckoutOutput, error)

	// FinalizeCheckout verifies the payment signature server-side and
	// transitions the order pending -> processing. Replays succeed without
	// re-applying the transition.
	FinalizeCheckout(ctx context.Context, input *FinalizeCheckoutInput) (*FinalizeCheckoutOutput, error)

	// ListMyOrders returns the actor's orders, newest first.
	ListMyOrders(ctx context.Context, actor *service.Claims) ([]*entity.Order, error)

	// GetStats aggregates the actor's order history into lifetime, current
	// year, and current month windows in the configured time zone.
	GetStats(ctx context.Context, actor *service.Claims) (*entity.OrderStats, error)

	// ListAllOrders returns every order. Admin only.
	ListAllOrders(ctx context.Context, actor *service.Claims) ([]*entity.Order, error)

	// UpdateStatus applies an admin status transition, validated against the
	// order lifecycle state machine.
	UpdateStatus(ctx context.Context, input *UpdateOrderStatusInput) (*entity.Order, error)
}
