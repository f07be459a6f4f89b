// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// Sessions manages the lifecycle of logged in sessions.
type Sessions interface {
	Start(ctx context.Context, user *entity.User) (*session.Session, error)
	Resolve(ctx context.Context, sessionID, userID uuid.UUID) (*session.Session, error)
	End(ctx context.Context, sessionID uuid.UUID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func missingFields(fields ...string) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeMissingFields,
		strings.Join(fields, ", ")+" must not be empty",
		nil,
	)
}

func authUnavailable(err error) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeAuthUnavailable,
		"authentication service unavailable",
		err,
	)
}
