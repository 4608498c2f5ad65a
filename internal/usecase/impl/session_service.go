package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve walks the session state machine over the request's token pair.
//
//	valid access                        -> claims from the access token
//	invalid access + valid refresh      -> claims from the REFRESH token,
//	                                       plus a freshly minted access token
//	anything else                       -> no session (nil claims, nil error)
//
// The reissued access token is built from the refresh token's verified claims
// only; nothing from the expired access token survives.
func (srv *sessionService) Resolve(ctx context.Context, input *usecase.ResolveSessionInput) (*usecase.ResolveSessionOutput, error) {
	if input.AccessToken != "" {
		claims, err := srv.tokenService.VerifyAccessToken(input.AccessToken)
		if err == nil {
			return &usecase.ResolveSessionOutput{Claims: claims}, nil
		}
	}

	if input.RefreshToken == "" {
		return &usecase.ResolveSessionOutput{}, nil
	}

	refreshClaims, err := srv.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		// An unusable refresh token resolves to no session rather than an
		// error; the caller clears cookies and treats the request as guest.
		srv.log(ctx).Debug("Refresh token rejected during session resolve")

		return &usecase.ResolveSessionOutput{}, nil
	}

	// Strip the registered claims inherited from the refresh token so the
	// reissued access token gets its own subject and expiry.
	freshClaims := &service.Claims{
		UserID: refreshClaims.UserID,
		Email:  refreshClaims.Email,
		Name:   refreshClaims.Name,
		Role:   refreshClaims.Role,
		Avatar: refreshClaims.Avatar,
	}

	newAccessToken, err := srv.tokenService.IssueAccessToken(freshClaims)
	if err != nil {
		srv.log(ctx).Error("Failed to reissue access token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to reissue access token")
	}

	srv.log(ctx).Debug("Access token reissued from refresh token", slog.Any("userID", freshClaims.UserID))

	return &usecase.ResolveSessionOutput{
		Claims:         freshClaims,
		NewAccessToken: newAccessToken,
	}, nil
}
