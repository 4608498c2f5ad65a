package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServiceWithTTL(t *testing.T, accessTTL time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: accessTTL, RefreshTokenTTL: 7 * 24 * time.Hour}

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokenSvc
}

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, service.TokenService) {
	t.Helper()

	tokenSvc := tokenServiceWithTTL(t, 15*time.Minute)
	sessionUC := impl.NewSessionService(impl.SessionServiceParams{
		TokenService: tokenSvc,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return NewAuthMiddleware(sessionUC, tokenSvc), tokenSvc
}

func testClaims() *service.Claims {
	return &service.Claims{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Name:   "Shopper",
		Role:   entity.RoleUser,
	}
}

func runResolve(t *testing.T, m *AuthMiddleware, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder, *service.Claims) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *service.Claims
	err := m.ResolveSession(func(c echo.Context) error {
		seen = deliverycontext.GetClaims(c)

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return c, rec, seen
}

func TestAuthMiddleware_ResolveSession_ValidAccessCookie(t *testing.T) {
	m, tokenSvc := newTestAuthMiddleware(t)
	claims := testClaims()

	accessToken, err := tokenSvc.IssueAccessToken(claims)
	require.NoError(t, err)

	_, rec, seen := runResolve(t, m, &http.Cookie{Name: "accessToken", Value: accessToken})

	require.NotNil(t, seen)
	assert.Equal(t, claims.UserID, seen.UserID)
	assert.Equal(t, claims.Role, seen.Role)

	// No reissue happened, so no cookies were rewritten.
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthMiddleware_ResolveSession_ReissueRewritesCookies(t *testing.T) {
	m, tokenSvc := newTestAuthMiddleware(t)
	claims := testClaims()

	expiredAccess, err := tokenServiceWithTTL(t, -time.Minute).IssueAccessToken(claims)
	require.NoError(t, err)
	refreshToken, err := tokenSvc.IssueRefreshToken(claims)
	require.NoError(t, err)

	_, rec, seen := runResolve(t, m,
		&http.Cookie{Name: "accessToken", Value: expiredAccess},
		&http.Cookie{Name: "refreshToken", Value: refreshToken},
	)

	require.NotNil(t, seen)
	assert.Equal(t, claims.UserID, seen.UserID)

	// The access cookie was rewritten with a verifiable token, and the display
	// cookies were regenerated from the verified claims.
	byName := map[string]*http.Cookie{}
	for _, ck := range rec.Result().Cookies() {
		byName[ck.Name] = ck
	}

	require.Contains(t, byName, "accessToken")
	reissued, err := tokenSvc.VerifyAccessToken(byName["accessToken"].Value)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, reissued.UserID)
	assert.True(t, byName["accessToken"].HttpOnly)

	require.Contains(t, byName, "userEmail")
	assert.Equal(t, claims.Email, byName["userEmail"].Value)
	assert.False(t, byName["userEmail"].HttpOnly)

	require.Contains(t, byName, "id")
	assert.Equal(t, claims.UserID.String(), byName["id"].Value)
}

func TestAuthMiddleware_ResolveSession_AnonymousPassesThrough(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	_, rec, seen := runResolve(t, m)

	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	e := echo.New()

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/orders", nil), httptest.NewRecorder())
	err := m.RequireAuth(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/orders", nil), httptest.NewRecorder())
	deliverycontext.SetClaims(c, testClaims())
	assert.NoError(t, m.RequireAuth(next)(c))
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	e := echo.New()

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	adminOnly := m.RequireRole(entity.RoleAdmin)(next)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/users", nil), httptest.NewRecorder())
	deliverycontext.SetClaims(c, testClaims())
	err := adminOnly(c)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/users", nil), httptest.NewRecorder())
	admin := testClaims()
	admin.Role = entity.RoleAdmin
	deliverycontext.SetClaims(c, admin)
	assert.NoError(t, adminOnly(c))
}
