package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// CurrentSessionInput represents the bearer token of a request.
type CurrentSessionInput struct {
	AccessToken string
}

// CurrentSessionUseCase resolves the session an access token belongs to.
type CurrentSessionUseCase struct {
	tokenService adapter.TokenService
	sessions     Sessions
}

// NewCurrentSessionUseCase creates a new CurrentSessionUseCase instance.
func NewCurrentSessionUseCase(tokenService adapter.TokenService, sessions Sessions) *CurrentSessionUseCase {
	return &CurrentSessionUseCase{
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// Execute returns the live session, rebuilding it when needed. A missing,
// invalid or expired token yields an AuthError.
func (uc *CurrentSessionUseCase) Execute(ctx context.Context, input CurrentSessionInput) (*session.Session, error) {
	token := strings.TrimSpace(input.AccessToken)
	if token == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingToken,
			"authorization token is required",
			domainerror.ErrNoActiveSession,
		)
	}

	claims, err := uc.tokenService.ValidateAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpiredToken) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeExpiredToken,
				"token has expired",
				domainerror.ErrExpiredToken,
			)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid or expired token",
			domainerror.ErrInvalidToken,
		)
	}

	return uc.sessions.Resolve(ctx, claims.SessionID, claims.UserID)
}
