package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. RatingSum and RatingCount back
// the denormalized AverageRating; all three move together in one UPDATE on
// review append.
type ProductModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Price         float64   `gorm:"type:numeric(12,2);not null"`
	Description   string    `gorm:"type:text"`
	Category      string    `gorm:"type:varchar(100);index"`
	Image         string    `gorm:"type:text"`
	SellerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AverageRating float64   `gorm:"type:numeric(4,2);not null;default:0"`
	RatingSum     int64     `gorm:"not null;default:0"`
	RatingCount   int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Reviews []ReviewModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel mirrors the 'reviews' table. Rows are append-only.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
