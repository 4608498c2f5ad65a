// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/cookie"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for credential and session handlers.
type AuthHandler struct {
	authUC   usecase.AuthUsecase
	cartUC   usecase.CartUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, cartUC usecase.CartUsecase, tokenSvc service.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:   authUC,
		cartUC:   cartUC,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user seller"`
}

// SignUp handles account registration.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-up input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.SignUp(c.Request().Context(), &usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserView(output.User), "Account created successfully")
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn handles the credential check, sets the session cookies, and folds a
// guest cart into the signed-in user's cart.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.SignIn(c.Request().Context(), &usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	claims := &service.Claims{
		UserID: output.User.ID,
		Email:  output.User.Email,
		Name:   output.User.Name,
		Role:   output.User.Role,
		Avatar: output.User.Avatar,
	}
	cookie.SetSession(c, &service.TokenPair{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, claims, h.tokenSvc.AccessTokenTTL(), h.tokenSvc.RefreshTokenTTL())

	// A guest cart built before signing in moves to the user's scope.
	if guestScope := cookie.ReadCartID(c); guestScope != "" {
		if _, err := h.cartUC.MergeCarts(c.Request().Context(), guestScope, output.User.ID.String()); err != nil {
			h.logger.Warn("guest cart merge failed",
				slog.String("userId", output.User.ID.String()),
				slog.Any("error", err),
			)
		}
		cookie.ClearCartID(c)
	}

	return response.Success(c, http.StatusOK, newUserView(output.User), "Signed in successfully")
}

// SignOut clears the session and display cookies. Tokens are stateless, so
// there is nothing to revoke server-side.
func (h *AuthHandler) SignOut(c echo.Context) error {
	cookie.ClearSession(c)

	return response.Success(c, http.StatusOK, nil, "Signed out successfully")
}

// Me returns the identity of the current session, straight from the verified
// claims.
func (h *AuthHandler) Me(c echo.Context) error {
	claims := deliverycontext.GetClaims(c)

	return response.Success(c, http.StatusOK, map[string]any{
		"id":     claims.UserID,
		"email":  claims.Email,
		"name":   claims.Name,
		"role":   claims.Role,
		"avatar": claims.Avatar,
	}, "Session resolved")
}
