package service

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the claim set embedded in both token kinds. It is the only
// trusted identity source in the system: display cookies are regenerated
// from verified claims and never read back as input.
type Claims struct {
	UserID uuid.UUID   `json:"uid"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   entity.Role `json:"role"`
	Avatar string      `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair carries the two cookie-borne credentials of a request. Either
// field may be empty.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService mints and verifies the two token kinds. Access and refresh
// tokens are signed with distinct secrets so compromise of one cannot forge
// the other.
type TokenService interface {
	// IssueAccessToken mints a short-lived access token for the claim set.
	IssueAccessToken(claims *Claims) (string, error)

	// IssueRefreshToken mints a long-lived refresh token for the claim set.
	IssueRefreshToken(claims *Claims) (string, error)

	// VerifyAccessToken validates an access token and returns its claims.
	// Expired and tampered tokens fail with the same error.
	VerifyAccessToken(token string) (*Claims, error)

	// VerifyRefreshToken validates a refresh token and returns its claims.
	VerifyRefreshToken(token string) (*Claims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
