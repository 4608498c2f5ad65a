package handler

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// View models decouple the wire shape from the domain entities. The user view
// in particular exists so the password hash can never leak into a response.

type userView struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
	Avatar    string      `json:"avatar,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

func newUserView(user *entity.User) *userView {
	return &userView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

func newUserViews(users []*entity.User) []*userView {
	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}

	return views
}

type reviewView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type productView struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Price         float64       `json:"price"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category,omitempty"`
	Image         string        `json:"image,omitempty"`
	SellerID      uuid.UUID     `json:"sellerId"`
	AverageRating float64       `json:"averageRating"`
	RatingCount   int64         `json:"ratingCount"`
	Reviews       []*reviewView `json:"reviews,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func newProductView(product *entity.Product) *productView {
	view := &productView{
		ID:            product.ID,
		Title:         product.Title,
		Price:         product.Price,
		Description:   product.Description,
		Category:      product.Category,
		Image:         product.Image,
		SellerID:      product.SellerID,
		AverageRating: product.AverageRating,
		RatingCount:   product.RatingCount,
		CreatedAt:     product.CreatedAt,
	}

	for _, review := range product.Reviews {
		view.Reviews = append(view.Reviews, &reviewView{
			ID:        review.ID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return view
}

func newProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}

	return views
}

type cartView struct {
	Items []entity.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func newCartView(cart *entity.Cart) *cartView {
	items := cart.Items
	if items == nil {
		items = []entity.CartItem{}
	}

	return &cartView{Items: items, Total: cart.Total()}
}

type orderView struct {
	ID             uuid.UUID          `json:"id"`
	UserID         uuid.UUID          `json:"userId"`
	ProductID      uuid.UUID          `json:"productId"`
	Title          string             `json:"title"`
	UnitPrice      float64            `json:"unitPrice"`
	Quantity       int                `json:"quantity"`
	TotalPrice     float64            `json:"totalPrice"`
	Image          string             `json:"image,omitempty"`
	Shipping       shippingView       `json:"shipping"`
	GatewayOrderID string             `json:"gatewayOrderId"`
	PaymentID      string             `json:"paymentId,omitempty"`
	Status         entity.OrderStatus `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type shippingView struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
}

func newOrderView(order *entity.Order) *orderView {
	return &orderView{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductID:  order.Product.ProductID,
		Title:      order.Product.Title,
		UnitPrice:  order.Product.UnitPrice,
		Quantity:   order.Product.Quantity,
		TotalPrice: order.Product.TotalPrice,
		Image:      order.Product.Image,
		Shipping: shippingView{
			Name:    order.Shipping.Name,
			Email:   order.Shipping.Email,
			Phone:   order.Shipping.Phone,
			Address: order.Shipping.Address,
			Pincode: order.Shipping.Pincode,
		},
		GatewayOrderID: order.GatewayOrderID,
		PaymentID:      order.PaymentID,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
	}
}

func newOrderViews(orders []*entity.Order) []*orderView {
	views := make([]*orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}

	return views
}

type gatewayOrderView struct {
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Receipt   string    `json:"receipt"`
	CreatedAt time.Time `json:"createdAt"`
}
