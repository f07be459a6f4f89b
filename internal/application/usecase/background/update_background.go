// Package background contains the dashboard background preference use cases.
package background

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/application/optimistic"
	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// UpdateBackgroundInput represents the input for changing the background.
type UpdateBackgroundInput struct {
	Session *session.Session
	Type    string
	Value   string
}

// UpdateBackgroundOutput represents the output of a background change.
type UpdateBackgroundOutput struct {
	Background entity.DashboardBackground
}

// UpdateBackgroundUseCase changes the background optimistically: the session
// shows the new value at once and reverts to the previous one if saving fails.
type UpdateBackgroundUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateBackgroundUseCase creates a new UpdateBackgroundUseCase instance.
func NewUpdateBackgroundUseCase(userRepo adapter.UserRepository) *UpdateBackgroundUseCase {
	return &UpdateBackgroundUseCase{
		userRepo: userRepo,
	}
}

// Execute validates and applies the new background.
func (uc *UpdateBackgroundUseCase) Execute(ctx context.Context, input UpdateBackgroundInput) (*UpdateBackgroundOutput, error) {
	next := entity.DashboardBackground{
		Type:  entity.BackgroundType(strings.ToLower(strings.TrimSpace(input.Type))),
		Value: strings.TrimSpace(input.Value),
	}

	if err := next.Validate(); err != nil {
		return nil, domainerror.NewBackgroundError(
			domainerror.ErrCodeInvalidBackground,
			err.Error(),
			err,
		)
	}

	if err := apply(ctx, uc.userRepo, input.Session, next); err != nil {
		return nil, err
	}

	return &UpdateBackgroundOutput{Background: next}, nil
}

// apply runs the optimistic update of s's background through the user repository.
func apply(ctx context.Context, userRepo adapter.UserRepository, s *session.Session, next entity.DashboardBackground) error {
	userID := s.UserID()

	err := s.Background.Update(ctx, next, func(ctx context.Context, bg entity.DashboardBackground) error {
		return userRepo.UpdateBackground(ctx, userID, bg)
	})
	if err == nil {
		s.MarkBackgroundSynced()
		return nil
	}

	if errors.Is(err, optimistic.ErrInFlight) {
		return domainerror.NewBackgroundError(
			domainerror.ErrCodeBackgroundInFlight,
			"background is already being changed",
			err,
		)
	}

	slog.Error("Failed to save background preference, restored previous value",
		"userID", userID,
		"restored", s.Background.Get().Value,
		"error", err,
	)
	return domainerror.NewBackgroundError(
		domainerror.ErrCodeBackgroundPersistFailed,
		"failed to save background preference",
		errors.Join(domainerror.ErrBackgroundPersistFailed, err),
	)
}
