package middleware

import (
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/cookie"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the cookie-borne session on every request and
// enforces authentication or role requirements on protected groups.
type AuthMiddleware struct {
	sessionUC usecase.SessionUsecase
	tokenSvc  service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionUC usecase.SessionUsecase, tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{sessionUC: sessionUC, tokenSvc: tokenSvc}
}

// ResolveSession walks the token pair through the session state machine and
// stores the resolved claims on the context. A request without a session
// passes through with nil claims; anonymous browsing is a valid state, not an
// error. When the access token was reissued from the refresh token, the
// access cookie is rewritten and the display cookies are regenerated from the
// verified claims.
func (m *AuthMiddleware) ResolveSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := m.sessionUC.Resolve(c.Request().Context(), &usecase.ResolveSessionInput{
			AccessToken:  cookie.Read(c, cookie.AccessToken),
			RefreshToken: cookie.Read(c, cookie.RefreshToken),
		})
		if err != nil {
			return err
		}

		if out.Claims != nil {
			deliverycontext.SetClaims(c, out.Claims)
		}

		if out.NewAccessToken != "" {
			cookie.SetAccess(c, out.NewAccessToken, m.tokenSvc.AccessTokenTTL())
			cookie.SetDisplay(c, out.Claims, m.tokenSvc.RefreshTokenTTL())
		}

		return next(c)
	}
}

// RequireAuth rejects requests that carry no resolved session. It must run
// after ResolveSession.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetClaims(c) == nil {
			return domainerrors.ErrUnauthenticated
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the resolved session's
// role. It must be used AFTER RequireAuth.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.GetClaims(c)
			if claims == nil {
				return domainerrors.ErrUnauthenticated
			}

			if claims.Role != requiredRole {
				return domainerrors.ErrForbidden.WrapMessage("require '" + requiredRole.String() + "' role")
			}

			return next(c)
		}
	}
}
