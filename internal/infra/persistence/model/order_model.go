package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. The purchased product and shipping
// destination are denormalized into the row so order history survives catalog
// edits. GatewayOrderID is unique: it keys idempotent checkout finalization.
type OrderModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	ProductID    uuid.UUID `gorm:"type:uuid;not null"`
	ProductTitle string    `gorm:"type:varchar(255);not null"`
	UnitPrice    float64   `gorm:"type:numeric(12,2);not null"`
	Quantity     int       `gorm:"not null"`
	TotalPrice   float64   `gorm:"type:numeric(12,2);not null"`
	ProductImage string    `gorm:"type:text"`

	ShippingName    string `gorm:"type:varchar(100)"`
	ShippingEmail   string `gorm:"type:varchar(255)"`
	ShippingPhone   string `gorm:"type:varchar(32)"`
	ShippingAddress string `gorm:"type:text"`
	ShippingPincode string `gorm:"type:varchar(16)"`

	GatewayOrderID string `gorm:"type:varchar(64);unique;not null"`
	PaymentID      string `gorm:"type:varchar(64)"`
	Status         string `gorm:"type:varchar(16);not null;default:'pending';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
