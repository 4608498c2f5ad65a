package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(userRepo *fakeUserRepo) usecase.AdminUsecase {
	return newTestAdminServiceWithProducts(userRepo, newFakeProductRepo())
}

func newTestAdminServiceWithProducts(userRepo *fakeUserRepo, productRepo *fakeProductRepo) usecase.AdminUsecase {
	return NewAdminService(AdminServiceParams{
		UserRepo: userRepo,
		TxManager: &fakeTxManager{
			userRepo:    userRepo,
			productRepo: productRepo,
			orderRepo:   newFakeOrderRepo(),
		},
		Logger: newDiscardLogger(),
	})
}

func seedUser(t *testing.T, repo *fakeUserRepo, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Email: uuid.NewString() + "@example.com",
		Name:  "Seeded",
		Role:  role,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func TestAdminService_RequiresAdminRole(t *testing.T) {
	svc := newTestAdminService(newFakeUserRepo())
	ctx := context.Background()

	for _, actor := range []*service.Claims{
		actorWithRole(entity.RoleUser),
		actorWithRole(entity.RoleSeller),
		nil,
	} {
		_, err := svc.ListUsers(ctx, actor, entity.RoleUser)
		assert.Error(t, err)

		_, err = svc.GetDashboard(ctx, actor)
		assert.Error(t, err)
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAdminService(repo)
	ctx := context.Background()
	admin := actorWithRole(entity.RoleAdmin)

	seedUser(t, repo, entity.RoleUser)
	seedUser(t, repo, entity.RoleUser)
	seedUser(t, repo, entity.RoleSeller)

	users, err := svc.ListUsers(ctx, admin, entity.RoleUser)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	sellers, err := svc.ListUsers(ctx, admin, entity.RoleSeller)
	require.NoError(t, err)
	assert.Len(t, sellers, 1)

	_, err = svc.ListUsers(ctx, admin, entity.Role("bogus"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_UpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAdminService(repo)
	ctx := context.Background()
	admin := actorWithRole(entity.RoleAdmin)

	user := seedUser(t, repo, entity.RoleUser)

	updated, err := svc.UpdateUser(ctx, &usecase.UpdateUserInput{
		Actor:  admin,
		UserID: user.ID,
		Name:   "Renamed",
		Role:   entity.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, entity.RoleSeller, updated.Role)
	assert.Equal(t, user.Email, updated.Email)

	_, err = svc.UpdateUser(ctx, &usecase.UpdateUserInput{Actor: admin, UserID: uuid.New(), Name: "X"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.UpdateUser(ctx, &usecase.UpdateUserInput{Actor: admin, UserID: user.ID, Role: entity.Role("bogus")})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_DeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAdminService(repo)
	ctx := context.Background()
	admin := actorWithRole(entity.RoleAdmin)

	user := seedUser(t, repo, entity.RoleUser)

	require.NoError(t, svc.DeleteUser(ctx, admin, user.ID))

	err := svc.DeleteUser(ctx, admin, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Self-deletion is refused.
	err = svc.DeleteUser(ctx, admin, admin.UserID)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_DeleteUser_RemovesSellerCatalog(t *testing.T) {
	userRepo := newFakeUserRepo()
	productRepo := newFakeProductRepo()
	svc := newTestAdminServiceWithProducts(userRepo, productRepo)
	ctx := context.Background()
	admin := actorWithRole(entity.RoleAdmin)

	seller := seedUser(t, userRepo, entity.RoleSeller)
	require.NoError(t, productRepo.Create(ctx, &entity.Product{Title: "Walnut Desk", Price: 8999, SellerID: seller.ID}))
	require.NoError(t, productRepo.Create(ctx, &entity.Product{Title: "Oak Chair", Price: 1299, SellerID: seller.ID}))

	require.NoError(t, svc.DeleteUser(ctx, admin, seller.ID))

	// The account and its catalog are gone together.
	_, err := userRepo.FindByID(ctx, seller.ID)
	assert.Error(t, err)

	remaining, err := productRepo.ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestAdminService_GetDashboard(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAdminService(repo)
	ctx := context.Background()
	admin := actorWithRole(entity.RoleAdmin)

	for i := 0; i < 7; i++ {
		seedUser(t, repo, entity.RoleUser)
	}
	seedUser(t, repo, entity.RoleSeller)

	dashboard, err := svc.GetDashboard(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, int64(7), dashboard.TotalUsers)
	assert.Equal(t, int64(1), dashboard.TotalSellers)
	assert.Len(t, dashboard.RecentUsers, dashboardRecentUsersLimit)
}
