package impl

import (
	"context"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestClaims() *service.Claims {
	return &service.Claims{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Name:   "Shopper",
		Role:   entity.RoleUser,
		Avatar: "avatar-ref",
	}
}

// expiredAccessTokenService mints access tokens that are already expired
// while keeping the refresh side valid, using the same secrets as
// newTestTokenService.
func expiredAccessTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: -time.Minute, RefreshTokenTTL: 7 * 24 * time.Hour}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokenService
}

func newTestSessionService(t *testing.T) usecase.SessionUsecase {
	t.Helper()

	return NewSessionService(SessionServiceParams{
		TokenService: newTestTokenService(t),
		Logger:       newDiscardLogger(),
	})
}

func TestSessionService_Resolve_ValidAccessToken(t *testing.T) {
	tokenService := newTestTokenService(t)
	svc := newTestSessionService(t)
	claims := sessionTestClaims()

	accessToken, err := tokenService.IssueAccessToken(claims)
	require.NoError(t, err)

	out, err := svc.Resolve(context.Background(), &usecase.ResolveSessionInput{AccessToken: accessToken})
	require.NoError(t, err)

	require.NotNil(t, out.Claims)
	assert.Equal(t, claims.UserID, out.Claims.UserID)
	assert.Equal(t, claims.Role, out.Claims.Role)
	assert.Empty(t, out.NewAccessToken, "a valid access token needs no reissue")
}

func TestSessionService_Resolve_ReissueFromRefreshToken(t *testing.T) {
	tokenService := newTestTokenService(t)
	svc := newTestSessionService(t)
	claims := sessionTestClaims()

	expiredAccess, err := expiredAccessTokenService(t).IssueAccessToken(claims)
	require.NoError(t, err)
	refreshToken, err := tokenService.IssueRefreshToken(claims)
	require.NoError(t, err)

	out, err := svc.Resolve(context.Background(), &usecase.ResolveSessionInput{
		AccessToken:  expiredAccess,
		RefreshToken: refreshToken,
	})
	require.NoError(t, err)

	// Claims come from the refresh token, and the reissued access token
	// verifies on its own.
	require.NotNil(t, out.Claims)
	assert.Equal(t, claims.UserID, out.Claims.UserID)
	assert.Equal(t, claims.Email, out.Claims.Email)
	require.NotEmpty(t, out.NewAccessToken)

	reissued, err := tokenService.VerifyAccessToken(out.NewAccessToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, reissued.UserID)
}

func TestSessionService_Resolve_NoTokensIsNoSession(t *testing.T) {
	svc := newTestSessionService(t)

	out, err := svc.Resolve(context.Background(), &usecase.ResolveSessionInput{})

	// Explicit no-session state: nil claims, nil error.
	require.NoError(t, err)
	assert.Nil(t, out.Claims)
	assert.Empty(t, out.NewAccessToken)
}

func TestSessionService_Resolve_UnusableTokensAreNoSession(t *testing.T) {
	svc := newTestSessionService(t)

	out, err := svc.Resolve(context.Background(), &usecase.ResolveSessionInput{
		AccessToken:  "garbage",
		RefreshToken: "also-garbage",
	})

	require.NoError(t, err)
	assert.Nil(t, out.Claims)
}

func TestSessionService_Resolve_AccessTokenNotUsableAsRefresh(t *testing.T) {
	tokenService := newTestTokenService(t)
	svc := newTestSessionService(t)
	claims := sessionTestClaims()

	// An access token placed in the refresh slot must not resolve a session.
	accessToken, err := tokenService.IssueAccessToken(claims)
	require.NoError(t, err)

	out, err := svc.Resolve(context.Background(), &usecase.ResolveSessionInput{RefreshToken: accessToken})
	require.NoError(t, err)
	assert.Nil(t, out.Claims)
}
