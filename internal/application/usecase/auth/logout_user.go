package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
	SessionID    uuid.UUID
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	sessions     Sessions
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, sessions Sessions) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// Execute invalidates the refresh token and discards the session. It never fails.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.RefreshToken != "" {
		if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
			slog.Warn("Failed to invalidate refresh token on logout", "error", err)
		}
	}

	if input.SessionID != uuid.Nil {
		uc.sessions.End(ctx, input.SessionID)
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
