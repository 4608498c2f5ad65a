// Package payment implements the hosted payment gateway adapter on Razorpay.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	razorpay "github.com/razorpay/razorpay-go"
)

const defaultGatewayTimeout = 10 * time.Second

// razorpayGateway implements the domain's PaymentGateway interface.
type razorpayGateway struct {
	client    *razorpay.Client
	keySecret string
	timeout   time.Duration
}

// NewRazorpayGateway is the constructor for razorpayGateway.
func NewRazorpayGateway(cfg *config.Config) (service.PaymentGateway, error) {
	if cfg.Payment == nil || cfg.Payment.KeyID == "" || cfg.Payment.KeySecret == "" {
		return nil, errors.New("payment gateway credentials are required")
	}

	timeout := cfg.Payment.Timeout
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}

	return &razorpayGateway{
		client:    razorpay.NewClient(cfg.Payment.KeyID, cfg.Payment.KeySecret),
		keySecret: cfg.Payment.KeySecret,
		timeout:   timeout,
	}, nil
}

type orderResult struct {
	order map[string]any
	err   error
}

// CreateOrder registers a payment intent with Razorpay. The SDK call is not
// context-aware, so it runs in a goroutine raced against the configured
// timeout; on timeout the goroutine is abandoned and its result discarded.
func (g *razorpayGateway) CreateOrder(ctx context.Context, input *service.CreateGatewayOrderInput) (*service.GatewayOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload := map[string]any{
		"amount":   input.Amount,
		"currency": input.Currency,
		"receipt":  input.Receipt,
	}
	if len(input.Notes) > 0 {
		payload["notes"] = input.Notes
	}

	resultCh := make(chan orderResult, 1)
	go func() {
		order, err := g.client.Order.Create(payload, nil)
		resultCh <- orderResult{order: order, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, domainerrors.ErrExternalService.WrapMessage("payment gateway timed out")
	case result := <-resultCh:
		if result.err != nil {
			return nil, domainerrors.ErrExternalService.WrapMessage(result.err.Error())
		}

		return toGatewayOrder(result.order), nil
	}
}

// VerifySignature recomputes the HMAC-SHA256 of "orderID|paymentID" with the
// key secret and compares it against the callback's signature in constant
// time.
func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func toGatewayOrder(raw map[string]any) *service.GatewayOrder {
	order := &service.GatewayOrder{}

	if id, ok := raw["id"].(string); ok {
		order.ID = id
	}
	if currency, ok := raw["currency"].(string); ok {
		order.Currency = currency
	}
	if status, ok := raw["status"].(string); ok {
		order.Status = status
	}
	if receipt, ok := raw["receipt"].(string); ok {
		order.Receipt = receipt
	}
	order.Amount = toInt64(raw["amount"])
	if createdAt := toInt64(raw["created_at"]); createdAt > 0 {
		order.CreatedAt = time.Unix(createdAt, 0)
	}

	return order
}

// The Razorpay SDK decodes JSON into map[string]any, so numbers arrive as
// float64 regardless of their wire type.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
