package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists order records. Orders are append-only apart from
// their status field and are never deleted.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by its internal ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByGatewayOrderID retrieves an order by the payment gateway's
	// order reference, the key for idempotent finalization.
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error)

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListAll returns every order, newest first. Admin-only flow.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// MarkPaid transitions a pending order to processing and records the
	// payment reference as one conditional update. It reports whether a row
	// changed; a false result with no error means the order was not pending.
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (bool, error)

	// UpdateStatus sets an order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
