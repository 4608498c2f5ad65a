package impl

import (
	"context"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: 7 * 24 * time.Hour}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokenService
}

func newTestHasher() service.PasswordHasher {
	return auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})
}

func newTestAuthService(t *testing.T, userRepo *fakeUserRepo) usecase.AuthUsecase {
	t.Helper()

	return NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       newTestHasher(),
		TokenService: newTestTokenService(t),
		Logger:       newDiscardLogger(),
	})
}

func TestAuthService_SignUp(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(t, userRepo)

	out, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.Equal(t, "asha@example.com", out.User.Email)
	assert.NotEqual(t, "s3cret-password", out.User.PasswordHash)
	assert.True(t, newTestHasher().Check("s3cret-password", out.User.PasswordHash))
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(t, userRepo)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &usecase.SignUpInput{Name: "A", Email: "dup@example.com", Password: "pw-one-1"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, &usecase.SignUpInput{Name: "B", Email: "dup@example.com", Password: "pw-two-2"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestAuthService_SignUp_RejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name: "X", Email: "x@example.com", Password: "pw", Role: entity.Role("superuser"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_SignIn(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(t, userRepo)
	ctx := context.Background()

	signedUp, err := svc.SignUp(ctx, &usecase.SignUpInput{
		Name: "Asha", Email: "asha@example.com", Password: "s3cret-password", Role: entity.RoleSeller,
	})
	require.NoError(t, err)

	out, err := svc.SignIn(ctx, &usecase.SignInInput{Email: "asha@example.com", Password: "s3cret-password"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, signedUp.User.ID, out.User.ID)

	// The minted claims carry the verified identity.
	claims, err := newTestTokenService(t).VerifyAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleSeller, claims.Role)
}

func TestAuthService_SignIn_FailuresAreIndistinguishable(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(t, userRepo)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &usecase.SignUpInput{Name: "A", Email: "known@example.com", Password: "right-password"})
	require.NoError(t, err)

	// Unknown email and wrong password both resolve to the same credential
	// error; the caller cannot tell which half failed.
	_, unknownErr := svc.SignIn(ctx, &usecase.SignInInput{Email: "unknown@example.com", Password: "whatever"})
	_, wrongPwErr := svc.SignIn(ctx, &usecase.SignInInput{Email: "known@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, domainerrors.ErrInvalidCredentials)
}
