package background

import (
	"context"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// ResetBackgroundUseCase restores the default background color.
type ResetBackgroundUseCase struct {
	userRepo adapter.UserRepository
}

// NewResetBackgroundUseCase creates a new ResetBackgroundUseCase instance.
func NewResetBackgroundUseCase(userRepo adapter.UserRepository) *ResetBackgroundUseCase {
	return &ResetBackgroundUseCase{
		userRepo: userRepo,
	}
}

// Execute stores the default background with the same rollback rules as an update.
func (uc *ResetBackgroundUseCase) Execute(ctx context.Context, s *session.Session) (*UpdateBackgroundOutput, error) {
	def := entity.DefaultBackground()
	if err := apply(ctx, uc.userRepo, s, def); err != nil {
		return nil, err
	}
	return &UpdateBackgroundOutput{Background: def}, nil
}
