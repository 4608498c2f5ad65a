package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// ResolveSessionInput carries the cookie-borne token pair of a request.
// Either token may be empty.
type ResolveSessionInput struct {
	AccessToken  string
	RefreshToken string
}

// ResolveSessionOutput is the result of session resolution. A nil Claims with
// a nil error is the explicit no-session state, not a failure. NewAccessToken
// is set only when the access token was reissued from the refresh token, in
// which case the caller must rewrite the access cookie.
type ResolveSessionOutput struct {
	Claims         *service.Claims
	NewAccessToken string
}

// SessionUsecase resolves a request's session state from its token pair.
type SessionUsecase interface {
	// Resolve walks the session state machine: a valid access token yields
	// its claims; an invalid access token with a valid refresh token yields
	// the refresh token's claims plus a freshly minted access token; anything
	// else is the no-session state. Resolution itself never errors on bad
	// tokens; the absence of a session is data, not an exception.
	Resolve(ctx context.Context, input *ResolveSessionInput) (*ResolveSessionOutput, error)
}
