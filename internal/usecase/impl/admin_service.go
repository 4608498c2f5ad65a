package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const dashboardRecentUsersLimit = 5

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:  params.UserRepo,
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func requireAdmin(actor *service.Claims, action authz.Action) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return authz.Authorize(actor.Role, authz.ResourceUser, action)
}

// ListUsers returns accounts holding the given role, newest first. An empty
// role lists regular shoppers.
func (srv *adminService) ListUsers(ctx context.Context, actor *service.Claims, role entity.Role) ([]*entity.User, error) {
	if err := requireAdmin(actor, authz.ActionListAll); err != nil {
		return nil, err
	}

	if role == "" {
		role = entity.RoleUser
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	users, err := srv.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser retrieves a single account.
func (srv *adminService) GetUser(ctx context.Context, actor *service.Claims, userID uuid.UUID) (*entity.User, error) {
	if err := requireAdmin(actor, authz.ActionListAll); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// UpdateUser applies an admin edit to an account. Zero-value fields are left
// unchanged; the password hash is never touched from here.
func (srv *adminService) UpdateUser(ctx context.Context, input *usecase.UpdateUserInput) (*entity.User, error) {
	if err := requireAdmin(input.Actor, authz.ActionUpdate); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Role != "" {
		if !input.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
		}
		user.Role = input.Role
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated by admin", slog.Any("userID", user.ID), slog.Any("adminID", input.Actor.UserID))

	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves; losing the
// last admin through a self-delete is not a recoverable state.
func (srv *adminService) DeleteUser(ctx context.Context, actor *service.Claims, userID uuid.UUID) error {
	if err := requireAdmin(actor, authz.ActionDelete); err != nil {
		return err
	}

	if actor.UserID == userID {
		return domainerrors.ErrValidationFailed.WrapMessage("cannot delete own account")
	}

	// The account and its catalog go together: a deleted seller must not
	// leave orphaned products behind. Orders are history and stay.
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		products, err := repos.ProductRepo().ListBySeller(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list user's products")
		}
		for _, product := range products {
			if err := repos.ProductRepo().Delete(ctx, product.ID); err != nil {
				return errors.Wrap(err, "failed to delete user's product")
			}
		}

		return repos.UserRepo().Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted by admin", slog.Any("userID", userID), slog.Any("adminID", actor.UserID))

	return nil
}

// GetDashboard aggregates per-role account counts and the most recent
// shopper signups for the back-office landing page.
func (srv *adminService) GetDashboard(ctx context.Context, actor *service.Claims) (*usecase.DashboardStats, error) {
	if err := requireAdmin(actor, authz.ActionListAll); err != nil {
		return nil, err
	}

	totalUsers, err := srv.userRepo.CountByRole(ctx, entity.RoleUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	totalSellers, err := srv.userRepo.CountByRole(ctx, entity.RoleSeller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sellers")
	}

	recentUsers, err := srv.userRepo.ListRecentByRole(ctx, entity.RoleUser, dashboardRecentUsersLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent users")
	}

	return &usecase.DashboardStats{
		TotalUsers:   totalUsers,
		TotalSellers: totalSellers,
		RecentUsers:  recentUsers,
	}, nil
}
