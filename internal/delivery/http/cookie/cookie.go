// Package cookie centralizes every cookie the storefront sets or reads.
//
// Two classes exist. Session cookies carry the signed token pair and are
// HTTP-only. Display cookies mirror a few claim fields for client-side
// rendering; they are write-only output regenerated from verified claims on
// every resolve and are never read back as input.
package cookie

import (
	"net/http"
	"time"

	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// AccessToken and RefreshToken carry the signed session credentials.
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"

	// Display cookie names, readable by the storefront frontend.
	DisplayEmail  = "userEmail"
	DisplayName   = "userName"
	DisplayRole   = "userRole"
	DisplayAvatar = "avatar"
	DisplayID     = "id"

	// CartID scopes the anonymous cart of a guest browser.
	CartID = "cartId"
)

var displayNames = []string{DisplayEmail, DisplayName, DisplayRole, DisplayAvatar, DisplayID}

func set(c echo.Context, name, value string, maxAge time.Duration, httpOnly bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   true,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteStrictMode,
	})
}

func clear(c echo.Context, name string, httpOnly bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteStrictMode,
	})
}

// Read returns the named cookie's value, or empty when absent.
func Read(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return ck.Value
}

// SetSession writes both session tokens plus the display cookies derived from
// the verified claims.
func SetSession(c echo.Context, pair *service.TokenPair, claims *service.Claims, accessTTL, refreshTTL time.Duration) {
	set(c, AccessToken, pair.AccessToken, accessTTL, true)
	set(c, RefreshToken, pair.RefreshToken, refreshTTL, true)
	SetDisplay(c, claims, refreshTTL)
}

// SetAccess rewrites only the access token, used on the transparent reissue
// path.
func SetAccess(c echo.Context, token string, ttl time.Duration) {
	set(c, AccessToken, token, ttl, true)
}

// SetDisplay regenerates the presentational cookies from verified claims.
// These are never authorization inputs.
func SetDisplay(c echo.Context, claims *service.Claims, ttl time.Duration) {
	set(c, DisplayEmail, claims.Email, ttl, false)
	set(c, DisplayName, claims.Name, ttl, false)
	set(c, DisplayRole, claims.Role.String(), ttl, false)
	set(c, DisplayAvatar, claims.Avatar, ttl, false)
	set(c, DisplayID, claims.UserID.String(), ttl, false)
}

// ClearSession removes the session and display cookies on logout.
func ClearSession(c echo.Context) {
	clear(c, AccessToken, true)
	clear(c, RefreshToken, true)
	for _, name := range displayNames {
		clear(c, name, false)
	}
}

// ReadCartID returns the guest cart scope, or empty when none was issued.
func ReadCartID(c echo.Context) string {
	return Read(c, CartID)
}

// EnsureCartID returns the guest cart scope, issuing a fresh one when the
// browser has none yet.
func EnsureCartID(c echo.Context, ttl time.Duration) string {
	if id := ReadCartID(c); id != "" {
		return id
	}

	id := "guest_" + uuid.NewString()
	set(c, CartID, id, ttl, true)

	return id
}

// ClearCartID drops the guest cart scope, used after the cart is merged into
// a signed-in user's cart.
func ClearCartID(c echo.Context) {
	clear(c, CartID, true)
}
