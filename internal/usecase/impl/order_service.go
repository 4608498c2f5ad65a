package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultCurrency = "INR"

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	gateway     service.PaymentGateway
	currency    string
	statsZone   *time.Location
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	Gateway     service.PaymentGateway
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService. The statistics time
// zone is resolved here so a bad zone name fails at startup, not per request.
func NewOrderService(params OrderServiceParams) (usecase.OrderUsecase, error) {
	currency := defaultCurrency
	if params.Config.Payment != nil && params.Config.Payment.Currency != "" {
		currency = params.Config.Payment.Currency
	}

	zoneName := "UTC"
	if params.Config.Stats != nil && params.Config.Stats.Timezone != "" {
		zoneName = params.Config.Stats.Timezone
	}
	statsZone, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown stats timezone %q", zoneName)
	}

	return &orderService{
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		cartRepo:    params.CartRepo,
		gateway:     params.Gateway,
		currency:    currency,
		statsZone:   statsZone,
		logger:      params.Logger,
	}, nil
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BeginCheckout snapshots the product, registers a payment intent with the
// gateway, and persists the order as pending keyed by the gateway order ID.
// The persisted amount is authoritative; nothing from the client's cart price
// survives into the order.
func (srv *orderService) BeginCheckout(ctx context.Context, input *usecase.BeginCheckoutInput) (*usecase.BeginCheckoutOutput, error) {
	if err := requireActor(input.Actor); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for checkout")
	}

	totalPrice := product.Price * float64(input.Quantity)

	gatewayOrder, err := srv.gateway.CreateOrder(ctx, &service.CreateGatewayOrderInput{
		Amount:   toMinorUnits(totalPrice),
		Currency: srv.currency,
		Receipt:  fmt.Sprintf("rcpt_%s_%d", input.Actor.UserID, time.Now().Unix()),
		Notes: map[string]any{
			"userId":    input.Actor.UserID.String(),
			"productId": product.ID.String(),
		},
	})
	if err != nil {
		srv.log(ctx).Error("Gateway order creation failed", slog.Any("userID", input.Actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create gateway order")
	}

	order := &entity.Order{
		UserID: input.Actor.UserID,
		Product: entity.ProductSnapshot{
			ProductID:  product.ID,
			Title:      product.Title,
			UnitPrice:  product.Price,
			Quantity:   input.Quantity,
			TotalPrice: totalPrice,
			Image:      product.Image,
		},
		Shipping:       input.Shipping,
		GatewayOrderID: gatewayOrder.ID,
		Status:         entity.OrderStatusPending,
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		srv.log(ctx).Error("Failed to persist pending order", slog.String("gatewayOrderID", gatewayOrder.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist pending order")
	}

	srv.log(ctx).Info("Checkout started",
		slog.Any("orderID", order.ID),
		slog.String("gatewayOrderID", gatewayOrder.ID),
		slog.Int64("amountMinor", gatewayOrder.Amount),
	)

	return &usecase.BeginCheckoutOutput{Order: order, GatewayOrder: gatewayOrder}, nil
}

// FinalizeCheckout verifies the completion callback's signature server-side,
// then transitions the order pending -> processing through a conditional
// update. A replayed callback finds the order already processing and succeeds
// without re-applying anything.
func (srv *orderService) FinalizeCheckout(ctx context.Context, input *usecase.FinalizeCheckoutInput) (*usecase.FinalizeCheckoutOutput, error) {
	if err := requireActor(input.Actor); err != nil {
		return nil, err
	}

	if !srv.gateway.VerifySignature(input.GatewayOrderID, input.PaymentID, input.Signature) {
		srv.log(ctx).Warn("Payment signature rejected", slog.String("gatewayOrderID", input.GatewayOrderID))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("payment signature verification failed")
	}

	order, err := srv.orderRepo.FindByGatewayOrderID(ctx, input.GatewayOrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order for finalization")
	}

	if !authz.CanActOn(input.Actor.UserID.String(), order.UserID.String(), input.Actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("order belongs to another user")
	}

	applied, err := srv.orderRepo.MarkPaid(ctx, input.GatewayOrderID, input.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to mark order paid")
	}

	if !applied {
		// Not pending anymore. The earlier snapshot may predate a concurrent
		// finalize, so the decision runs on a fresh read: an order that moved
		// past pending is a replay, a cancelled one cannot be finalized.
		order, err = srv.orderRepo.FindByGatewayOrderID(ctx, input.GatewayOrderID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to reload order after finalization")
		}

		if order.Status == entity.OrderStatusPending || order.Status == entity.OrderStatusCancelled {
			return nil, domainerrors.ErrInvalidTransition.WrapMessage("order can no longer be finalized")
		}

		srv.log(ctx).Info("Finalization replay absorbed", slog.String("gatewayOrderID", input.GatewayOrderID))

		return &usecase.FinalizeCheckoutOutput{Order: order, AlreadyFinalized: true}, nil
	}

	order.Status = entity.OrderStatusProcessing
	order.PaymentID = input.PaymentID

	// The paid line leaves the cart; failure here never unwinds the payment.
	srv.dropPurchasedLine(ctx, order)

	srv.log(ctx).Info("Checkout finalized", slog.Any("orderID", order.ID), slog.String("paymentID", input.PaymentID))

	return &usecase.FinalizeCheckoutOutput{Order: order}, nil
}

func (srv *orderService) dropPurchasedLine(ctx context.Context, order *entity.Order) {
	scope := order.UserID.String()

	cart, err := srv.cartRepo.Load(ctx, scope)
	if err != nil {
		srv.log(ctx).Warn("Failed to load cart after checkout", slog.Any("error", err))

		return
	}

	if cart.Remove(order.Product.ProductID) {
		if err := srv.cartRepo.Save(ctx, scope, cart); err != nil {
			srv.log(ctx).Warn("Failed to save cart after checkout", slog.Any("error", err))
		}
	}
}

// ListMyOrders returns the actor's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, actor *service.Claims) ([]*entity.Order, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor.Role, authz.ResourceOrder, authz.ActionListOwn); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetStats aggregates the actor's order history in a single pass: lifetime,
// current calendar year, and current calendar month, all evaluated in the
// configured time zone.
func (srv *orderService) GetStats(ctx context.Context, actor *service.Claims) (*entity.OrderStats, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor.Role, authz.ResourceOrder, authz.ActionListOwn); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders for stats")
	}

	return aggregateOrderStats(orders, time.Now().In(srv.statsZone), srv.statsZone), nil
}

func aggregateOrderStats(orders []*entity.Order, now time.Time, zone *time.Location) *entity.OrderStats {
	stats := &entity.OrderStats{}

	for _, order := range orders {
		placedAt := order.CreatedAt.In(zone)

		stats.LifetimeOrders++
		stats.LifetimeSpent += order.Product.TotalPrice

		if placedAt.Year() == now.Year() {
			stats.YearlyOrders++
			stats.YearlySpent += order.Product.TotalPrice

			if placedAt.Month() == now.Month() {
				stats.MonthlyOrders++
				stats.MonthlySpent += order.Product.TotalPrice
			}
		}
	}

	return stats
}

// ListAllOrders returns every order in the system. Admin only.
func (srv *orderService) ListAllOrders(ctx context.Context, actor *service.Claims) ([]*entity.Order, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor.Role, authz.ResourceOrder, authz.ActionListAll); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

// UpdateStatus applies an admin status transition after validating it against
// the order lifecycle state machine.
func (srv *orderService) UpdateStatus(ctx context.Context, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if err := requireActor(input.Actor); err != nil {
		return nil, err
	}
	if err := authz.Authorize(input.Actor.Role, authz.ResourceOrder, authz.ActionUpdateStatus); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	order, err := srv.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !order.Status.CanTransitionTo(input.Status) {
		return nil, domainerrors.ErrInvalidTransition.WrapMessage(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Status))
	}

	if err := srv.orderRepo.UpdateStatus(ctx, input.OrderID, input.Status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	order.Status = input.Status

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", order.ID), slog.String("status", input.Status.String()))

	return order, nil
}

// toMinorUnits converts a display price to integer minor currency units.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
