package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the lifecycle of an order.
type OrderStatus string

const (
	// OrderStatusPending marks an order persisted after gateway order
	// creation but before payment signature verification.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing marks a paid order awaiting shipment.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped marks an order handed to the carrier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered is terminal.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is terminal and reachable from any state
	// prior to delivery.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status may move to next.
// pending -> processing happens only through checkout finalization;
// cancellation is allowed from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// ProductSnapshot is the denormalized copy of the purchased product embedded
// in an order. It is frozen at checkout time so later catalog edits never
// change order history.
type ProductSnapshot struct {
	ProductID  uuid.UUID
	Title      string
	UnitPrice  float64
	Quantity   int
	TotalPrice float64
	Image      string
}

// ShippingInfo holds the destination captured at checkout.
type ShippingInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Pincode string
}

// Order is immutable once created except for its status field. It is never
// deleted. GatewayOrderID keys the idempotent finalize operation.
type Order struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Product        ProductSnapshot
	Shipping       ShippingInfo
	GatewayOrderID string // External payment gateway order reference.
	PaymentID      string // Set when the payment is verified.
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderStats aggregates a user's order history into three time windows,
// computed in the service's configured time zone.
type OrderStats struct {
	LifetimeOrders int     `json:"lifetimeOrders"`
	LifetimeSpent  float64 `json:"lifetimeSpent"`
	YearlyOrders   int     `json:"yearlyOrders"`
	YearlySpent    float64 `json:"yearlySpent"`
	MonthlyOrders  int     `json:"monthlyOrders"`
	MonthlySpent   float64 `json:"monthlySpent"`
}
