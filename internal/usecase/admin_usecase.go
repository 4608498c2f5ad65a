package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// UpdateUserInput defines an admin-driven user update. Zero-value fields are
// left unchanged.
type UpdateUserInput struct {
	Actor  *service.Claims
	UserID uuid.UUID
	Name   string
	Avatar string
	Role   entity.Role
}

// DashboardStats is the back-office overview: per-role account counts and the
// most recent signups.
type DashboardStats struct {
	TotalUsers   int64          `json:"totalUsers"`
	TotalSellers int64          `json:"totalSellers"`
	RecentUsers  []*entity.User `json:"recentUsers"`
}

// AdminUsecase defines the interface for back-office operations. Every
// operation requires the admin role.
type AdminUsecase interface {
	ListUsers(ctx context.Context, actor *service.Claims, role entity.Role) ([]*entity.User, error)
	GetUser(ctx context.Context, actor *service.Claims, userID uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actor *service.Claims, userID uuid.UUID) error

	// GetDashboard aggregates account counts and recent signups for the
	// back-office landing page.
	GetDashboard(ctx context.Context, actor *service.Claims) (*DashboardStats, error)
}
