package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain's OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("gateway order already recorded")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order by its internal ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByGatewayOrderID retrieves an order by the payment gateway's reference.
func (repo *orderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("gateway_order_id = ?", gatewayOrderID).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by gateway order id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByUser returns a user's orders, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var models []model.OrderModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return toOrderDomainList(models), nil
}

// ListAll returns every order, newest first.
func (repo *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	var models []model.OrderModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainList(models), nil
}

// MarkPaid transitions a pending order to processing and records the payment
// reference. The status guard lives in the WHERE clause, so a replayed
// finalization matches zero rows instead of double-applying.
func (repo *orderRepository) MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("gateway_order_id = ? AND status = ?", gatewayOrderID, entity.OrderStatusPending.String()).
		Updates(map[string]any{
			"status":     entity.OrderStatusProcessing.String(),
			"payment_id": paymentID,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark order paid")
	}

	return result.RowsAffected > 0, nil
}

// UpdateStatus sets an order's status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:     data.ID,
		UserID: data.UserID,
		Product: entity.ProductSnapshot{
			ProductID:  data.ProductID,
			Title:      data.ProductTitle,
			UnitPrice:  data.UnitPrice,
			Quantity:   data.Quantity,
			TotalPrice: data.TotalPrice,
			Image:      data.ProductImage,
		},
		Shipping: entity.ShippingInfo{
			Name:    data.ShippingName,
			Email:   data.ShippingEmail,
			Phone:   data.ShippingPhone,
			Address: data.ShippingAddress,
			Pincode: data.ShippingPincode,
		},
		GatewayOrderID: data.GatewayOrderID,
		PaymentID:      data.PaymentID,
		Status:         entity.OrderStatus(data.Status),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func toOrderDomainList(models []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, toOrderDomain(&models[i]))
	}

	return orders
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		ProductID:       data.Product.ProductID,
		ProductTitle:    data.Product.Title,
		UnitPrice:       data.Product.UnitPrice,
		Quantity:        data.Product.Quantity,
		TotalPrice:      data.Product.TotalPrice,
		ProductImage:    data.Product.Image,
		ShippingName:    data.Shipping.Name,
		ShippingEmail:   data.Shipping.Email,
		ShippingPhone:   data.Shipping.Phone,
		ShippingAddress: data.Shipping.Address,
		ShippingPincode: data.Shipping.Pincode,
		GatewayOrderID:  data.GatewayOrderID,
		PaymentID:       data.PaymentID,
		Status:          data.Status.String(),
	}
}
