package service

import (
	"context"
	"time"
)

// CreateGatewayOrderInput is the request sent to the hosted payment provider.
// Amount is in integer minor currency units (e.g. paise).
type CreateGatewayOrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]any
}

// GatewayOrder is the provider's view of a created order.
type GatewayOrder struct {
	ID        string
	Amount    int64
	Currency  string
	Status    string
	Receipt   string
	CreatedAt time.Time
}

// PaymentGateway abstracts the hosted payment provider. Implementations must
// bound each call with the configured timeout so a gateway hang never leaves
// a request stuck.
type PaymentGateway interface {
	// CreateOrder registers a payment intent with the provider.
	CreateOrder(ctx context.Context, input *CreateGatewayOrderInput) (*GatewayOrder, error)

	// VerifySignature checks the completion callback's signature server-side
	// before any order is marked paid.
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}
